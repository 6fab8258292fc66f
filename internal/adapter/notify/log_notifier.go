package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/port"
)

// LogNotifier stands in when no broker is configured: deliveries land in
// the log instead of a topic. Useful for development and single-box
// deployments.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Send(_ context.Context, n port.Notification) error {
	l.logger.Info("notification",
		zap.String("kind", string(n.Kind)),
		zap.String("recipient", n.Recipient),
		zap.String("order_id", n.Order.ID),
		zap.String("status", string(n.Status)),
		zap.String("total", n.Order.Total.StringFixed(2)))
	return nil
}
