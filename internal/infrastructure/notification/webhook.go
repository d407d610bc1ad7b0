package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// WebhookNotifier delivers notifications by POSTing them as JSON to a
// configured endpoint. Transient failures are retried with backoff; the
// final error after retries is returned to the caller, who treats
// delivery as best-effort.
type WebhookNotifier struct {
	client *retryablehttp.Client
	url    string
	logger *zap.Logger
}

// Config holds webhook delivery settings
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
}

// NewWebhookNotifier creates a WebhookNotifier for the given endpoint
func NewWebhookNotifier(cfg Config, logger *zap.Logger) *WebhookNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil

	return &WebhookNotifier{
		client: client,
		url:    cfg.URL,
		logger: logger,
	}
}

// Notify posts the notification to the webhook endpoint
func (n *WebhookNotifier) Notify(ctx context.Context, notification scheduling.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}

	n.logger.Debug("notification delivered",
		zap.String("kind", notification.Kind),
		zap.String("client_id", notification.ClientID.String()),
	)
	return nil
}

var _ scheduling.Notifier = (*WebhookNotifier)(nil)
