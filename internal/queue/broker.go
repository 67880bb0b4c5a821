package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	// Healthy reports whether the broker connection is still usable.
	Healthy() bool
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueStockAdjustments      = "stock-adjustments"
	QueueOrderNotifications    = "order-notifications"
	QueueStockAdjustmentsDLQ   = "stock-adjustments-dlq"
	QueueOrderNotificationsDLQ = "order-notifications-dlq"
)
