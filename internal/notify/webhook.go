package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
)

// RegistrationEvent is the payload posted to the webhook when a new
// household registers through the public form.
type RegistrationEvent struct {
	Event      string    `json:"event"`
	WargaID    int64     `json:"wargaId"`
	Nama       string    `json:"nama"`
	Lingkungan string    `json:"lingkungan"`
	Rayon      string    `json:"rayon"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Notifier announces registration events.
type Notifier interface {
	RegistrationReceived(ctx context.Context, w *models.Warga) error
}

// WebhookNotifier posts registration events to a configured HTTP endpoint.
// An empty URL disables it. Delivery failures are the caller's problem to
// log, never to propagate to the registrant.
type WebhookNotifier struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		client: client,
		url:    url,
		logger: logger,
	}
}

func (n *WebhookNotifier) RegistrationReceived(ctx context.Context, w *models.Warga) error {
	if n.url == "" {
		return nil
	}

	event := RegistrationEvent{
		Event:      "warga.registered",
		WargaID:    w.ID,
		Nama:       w.Nama,
		Lingkungan: w.Lingkungan,
		Rayon:      w.Rayon,
		Status:     w.Status,
		ReceivedAt: time.Now().UTC(),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to deliver registration webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("registration webhook rejected: %s", resp.Status())
	}

	n.logger.Info("Registration webhook delivered",
		zap.Int64("warga_id", w.ID),
		zap.Int("status_code", resp.StatusCode()),
	)
	return nil
}
