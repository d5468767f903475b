package notify

import (
	"context"

	"github.com/retailpos/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// LogSender delivers notifications to the application log. It stands in for
// a real delivery channel (SMS, push) until one is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("notify")}
}

// Send writes the notification to the log
func (s *LogSender) Send(_ context.Context, n *notification.Notification) error {
	s.logger.Info("notification delivered",
		zap.String("notification_id", n.ID.String()),
		zap.String("type", string(n.Type)),
		zap.String("installment_id", n.InstallmentID.String()),
		zap.String("notify_date", n.NotifyDate.Format("2006-01-02")),
		zap.String("message", n.Message),
	)
	return nil
}
