package sender

import (
	"context"

	"go.uber.org/zap"

	"lunchly/internal/domain/aggregate"
)

// LogSender logs purchase orders instead of sending them. Used in development
// when no SMTP relay is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new log sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendPurchaseOrder logs the purchase order and reports success.
func (s *LogSender) SendPurchaseOrder(ctx context.Context, po *aggregate.PurchaseOrder, fromEmail, toEmail string) error {
	s.logger.Info("purchase order sent (log sender)",
		zap.String("purchase_order_id", po.GetID()),
		zap.String("from", fromEmail),
		zap.String("to", toEmail),
		zap.Int("orders", len(po.Orders())))
	return nil
}
