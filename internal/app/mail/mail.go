// Package mail отправка транзакционных писем (подтверждение аренды, счёт)
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"backend/internal/app/config"
)

// Invoice данные счёта/подтверждения для письма
type Invoice struct {
	OrderID    uint
	ServerName string
	GameName   string
	Login      string
	CPUPercent int
	RAMMb      int
	DiskMb     int
	PriceCents int64
	PaidAt     time.Time
	ExpiresAt  time.Time
}

// PriceEuro сумма в евро для шаблона
func (i Invoice) PriceEuro() string {
	return fmt.Sprintf("%d.%02d", i.PriceCents/100, i.PriceCents%100)
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<html>
<body>
	<h2>Подтверждение аренды игрового сервера</h2>
	<p>Здравствуйте, {{.Login}}!</p>
	<p>Заказ №{{.OrderID}} оплачен {{.PaidAt.Format "02.01.2006"}}.</p>
	<table>
		<tr><td>Сервер</td><td>{{.ServerName}} ({{.GameName}})</td></tr>
		<tr><td>CPU</td><td>{{.CPUPercent}}%</td></tr>
		<tr><td>RAM</td><td>{{.RAMMb}} MB</td></tr>
		<tr><td>Диск</td><td>{{.DiskMb}} MB</td></tr>
		<tr><td>Оплачено</td><td>{{.PriceEuro}} EUR</td></tr>
		<tr><td>Действует до</td><td>{{.ExpiresAt.Format "02.01.2006"}}</td></tr>
	</table>
</body>
</html>`))

type Client struct {
	cfg config.MailConfig
	// подменяется в тестах
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewClient(cfg config.MailConfig) *Client {
	return &Client{cfg: cfg, send: smtp.SendMail}
}

// RenderInvoice рендерит HTML тела письма-счёта
func RenderInvoice(inv Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, inv); err != nil {
		return nil, fmt.Errorf("cannot render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// SendBookingConfirmation отправляет письмо-подтверждение со счётом
func (c *Client) SendBookingConfirmation(to string, inv Invoice) error {
	body, err := RenderInvoice(inv)
	if err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Order #%d confirmed\r\n", inv.OrderID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	msg.Write(body)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.From, c.cfg.Password, c.cfg.Host)

	if err := c.send(addr, auth, c.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("cannot send confirmation mail: %w", err)
	}
	return nil
}
