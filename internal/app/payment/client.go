// Package payment клиент платёжного провайдера (checkout sessions).
// Суммы передаются только целыми центами, уже рассчитанными на момент
// создания заказа - клиент никогда не пересчитывает цену сам.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/app/config"
)

// CreateSessionParams параметры создания checkout-сессии.
// IdempotencyKey обязателен: провайдер дедуплицирует повторные запросы
// с тем же ключом, поэтому ретрай не создаёт вторую сессию.
type CreateSessionParams struct {
	AmountCents    int64
	Description    string
	IdempotencyKey string
	SuccessURL     string
	CancelURL      string
}

// Session созданная платёжная сессия
type Session struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Client struct {
	cfg    config.PaymentConfig
	client *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type createSessionRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}

// CreateCheckoutSession создаёт checkout-сессию на уже рассчитанную сумму
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	if params.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key is required")
	}

	body, err := json.Marshal(createSessionRequest{
		AmountCents: params.AmountCents,
		Currency:    "eur",
		Description: params.Description,
		SuccessURL:  params.SuccessURL,
		CancelURL:   params.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Idempotency-Key", params.IdempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider responded %d: %s", resp.StatusCode, respBody)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("cannot decode session response: %w", err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("payment provider returned empty session id")
	}

	return &session, nil
}
