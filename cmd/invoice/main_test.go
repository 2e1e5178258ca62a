package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/mail"
)

type fakeStore struct {
	server *ds.GameServer
	order  *ds.GameServerOrder
}

func (f *fakeStore) GetServerByPanelIdentifier(identifier string) (*ds.GameServer, error) {
	if f.server == nil || f.server.PanelIdentifier != identifier {
		return nil, errors.New("сервер не найден")
	}
	return f.server, nil
}

func (f *fakeStore) GetLatestPaidOrderForServer(serverID uint) (*ds.GameServerOrder, error) {
	if f.order == nil {
		return nil, errors.New("заказ не найден")
	}
	return f.order, nil
}

type fakeSender struct {
	to   string
	inv  mail.Invoice
	fail bool
}

func (f *fakeSender) SendBookingConfirmation(to string, inv mail.Invoice) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.to = to
	f.inv = inv
	return nil
}

type fakeArchiver struct {
	uploaded [][]byte
}

func (f *fakeArchiver) UploadInvoice(orderID uint, html []byte) (string, error) {
	f.uploaded = append(f.uploaded, html)
	return "invoices/test.html", nil
}

func testFixtures() (*fakeStore, *fakeSender, *fakeArchiver) {
	paidAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		server: &ds.GameServer{
			ID:              5,
			PanelIdentifier: "abc123",
			Name:            "my-server",
			ExpiresAt:       paidAt.AddDate(0, 0, 30),
		},
		order: &ds.GameServerOrder{
			ID:         42,
			Status:     ds.OrderStatusActive,
			CPUPercent: 100,
			RAMMb:      2048,
			DiskMb:     10240,
			PriceCents: 900,
			PaidAt:     &paidAt,
			User:       ds.User{Login: "steve", Email: "steve@example.com"},
		},
	}
	return store, &fakeSender{}, &fakeArchiver{}
}

func TestRunSendsInvoice(t *testing.T) {
	store, sender, archiver := testFixtures()
	var stderr bytes.Buffer

	code := run([]string{"abc123"}, store, sender, archiver, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	if sender.to != "steve@example.com" {
		t.Errorf("sent to %q", sender.to)
	}
	if sender.inv.OrderID != 42 || sender.inv.PriceCents != 900 {
		t.Errorf("invoice fields: %+v", sender.inv)
	}
	if sender.inv.ServerName != "my-server" {
		t.Errorf("server name = %q", sender.inv.ServerName)
	}

	if len(archiver.uploaded) != 1 {
		t.Fatalf("archived copies = %d, want 1", len(archiver.uploaded))
	}
	if !bytes.Contains(archiver.uploaded[0], []byte("9.00")) {
		t.Error("archived invoice missing amount")
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		mutate func(*fakeStore, *fakeSender)
		want   string
	}{
		{
			name: "без аргументов",
			args: nil,
			want: "usage:",
		},
		{
			name: "лишние аргументы",
			args: []string{"a", "b"},
			want: "usage:",
		},
		{
			name: "неизвестный сервер",
			args: []string{"nope"},
			want: "not found",
		},
		{
			name:   "нет оплаченного заказа",
			args:   []string{"abc123"},
			mutate: func(s *fakeStore, _ *fakeSender) { s.order = nil },
			want:   "no paid order",
		},
		{
			name:   "нет email",
			args:   []string{"abc123"},
			mutate: func(s *fakeStore, _ *fakeSender) { s.order.User.Email = "" },
			want:   "no customer email",
		},
		{
			name:   "сбой отправки",
			args:   []string{"abc123"},
			mutate: func(_ *fakeStore, snd *fakeSender) { snd.fail = true },
			want:   "cannot send invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, sender, archiver := testFixtures()
			if tt.mutate != nil {
				tt.mutate(store, sender)
			}

			var stderr bytes.Buffer
			code := run(tt.args, store, sender, archiver, &stderr)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.want)
			}
		})
	}
}
