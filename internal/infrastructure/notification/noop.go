package notification

import (
	"context"

	"github.com/billfold/backend/internal/domain/scheduling"
	"go.uber.org/zap"
)

// LogNotifier logs notifications instead of delivering them. Used when no
// webhook endpoint is configured, typically in development.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification and reports success
func (n *LogNotifier) Notify(ctx context.Context, notification scheduling.Notification) error {
	n.logger.Info("notification",
		zap.String("kind", notification.Kind),
		zap.String("client_id", notification.ClientID.String()),
		zap.String("subject", notification.Subject),
	)
	return nil
}

var _ scheduling.Notifier = (*LogNotifier)(nil)
