// Команда invoice повторно отправляет счёт по серверу: находит последний
// оплаченный заказ сервера, рендерит счёт, шлёт его владельцу на почту и
// кладёт копию в объектное хранилище.
//
//	go run ./cmd/invoice <panel-identifier>
package main

import (
	"fmt"
	"io"
	"os"

	"backend/internal/app/config"
	"backend/internal/app/ds"
	"backend/internal/app/dsn"
	"backend/internal/app/mail"
	"backend/internal/app/repository"
	"backend/internal/app/storage"

	"github.com/sirupsen/logrus"
)

type invoiceStore interface {
	GetServerByPanelIdentifier(identifier string) (*ds.GameServer, error)
	GetLatestPaidOrderForServer(serverID uint) (*ds.GameServerOrder, error)
}

type invoiceSender interface {
	SendBookingConfirmation(to string, inv mail.Invoice) error
}

type invoiceArchiver interface {
	UploadInvoice(orderID uint, html []byte) (string, error)
}

func run(args []string, store invoiceStore, sender invoiceSender, archiver invoiceArchiver, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: invoice <panel-identifier>")
		return 1
	}

	server, err := store.GetServerByPanelIdentifier(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "server %q not found: %v\n", args[0], err)
		return 1
	}

	order, err := store.GetLatestPaidOrderForServer(server.ID)
	if err != nil {
		fmt.Fprintf(stderr, "no paid order for server %q: %v\n", args[0], err)
		return 1
	}

	paidAt := order.CreatedAt
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	inv := mail.Invoice{
		OrderID:    order.ID,
		ServerName: server.Name,
		GameName:   order.CreationGameData.Game.Name,
		Login:      order.User.Login,
		CPUPercent: order.CPUPercent,
		RAMMb:      order.RAMMb,
		DiskMb:     order.DiskMb,
		PriceCents: order.PriceCents,
		PaidAt:     paidAt,
		ExpiresAt:  server.ExpiresAt,
	}

	if order.User.Email == "" {
		fmt.Fprintf(stderr, "order %d has no customer email\n", order.ID)
		return 1
	}

	if err := sender.SendBookingConfirmation(order.User.Email, inv); err != nil {
		fmt.Fprintf(stderr, "cannot send invoice: %v\n", err)
		return 1
	}

	// Копия в хранилище для сверки; сбой не отменяет отправку
	if archiver != nil {
		html, err := mail.RenderInvoice(inv)
		if err == nil {
			if _, err := archiver.UploadInvoice(order.ID, html); err != nil {
				fmt.Fprintf(stderr, "warning: cannot archive invoice: %v\n", err)
			}
		}
	}

	fmt.Fprintf(os.Stdout, "invoice for order %d sent to %s\n", order.ID, order.User.Email)
	return 0
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("cannot read config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("cannot init repository: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
		cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		logrus.Fatalf("cannot init minio: %v", err)
	}

	os.Exit(run(os.Args[1:], repo, mail.NewClient(cfg.Mail), minioClient, os.Stderr))
}
