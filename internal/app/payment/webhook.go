package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// WebhookEvent событие платёжного провайдера
type WebhookEvent struct {
	Type      string `json:"type"` // checkout.session.completed, checkout.session.expired
	SessionID string `json:"session_id"`
}

const (
	EventSessionCompleted = "checkout.session.completed"
	EventSessionExpired   = "checkout.session.expired"
)

// VerifyWebhook проверяет HMAC-SHA256 подпись сырого тела запроса и
// разбирает событие. Подпись передаётся hex-строкой в заголовке.
func VerifyWebhook(body []byte, signature, secret string) (*WebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("webhook signature mismatch")
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("cannot decode webhook event: %w", err)
	}
	if event.SessionID == "" {
		return nil, fmt.Errorf("webhook event without session id")
	}

	return &event, nil
}
