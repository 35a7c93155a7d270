package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Notifier avisa canais externos sobre tickets recém-abertos.
type Notifier interface {
	Notify(ctx context.Context, msg Notification) error
}

// Notification carrega o mínimo necessário para o aviso.
type Notification struct {
	TicketID string `json:"ticket_id"`
	Subject  string `json:"subject"`
	Priority string `json:"priority,omitempty"`
}

// WebhookNotifier posta o aviso em um webhook JSON genérico.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier devolve nil quando não há webhook configurado.
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	if webhookURL == "" {
		return nil
	}
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, msg Notification) error {
	if n == nil || n.webhookURL == "" {
		return errors.New("webhook não configurado")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New("webhook recusou o aviso")
	}
	return nil
}
