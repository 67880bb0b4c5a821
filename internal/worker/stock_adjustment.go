package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StockAdjustmentWorker consumes post-checkout stock adjustments and applies
// them as atomic conditional decrements. Failed adjustments are retried by
// the broker and eventually parked on the dead letter queue.
type StockAdjustmentWorker struct {
	productRepo repo.ProductRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewStockAdjustmentWorker(
	productRepo repo.ProductRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *StockAdjustmentWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockAdjustmentWorker{
		productRepo: productRepo,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *StockAdjustmentWorker) Start() error {
	w.logger.Info("starting stock adjustment worker")

	return w.broker.Subscribe(w.ctx, queue.QueueStockAdjustments, w.handleMessage)
}

func (w *StockAdjustmentWorker) Stop() {
	w.logger.Info("stopping stock adjustment worker")
	w.cancel()
}

func (w *StockAdjustmentWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.StockAdjustmentMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing stock adjustment",
		"order_id", msg.OrderID,
		"product_id", msg.ProductID,
		"attribute", msg.AttributeName,
		"option", msg.OptionName,
	)

	productID, err := primitive.ObjectIDFromHex(msg.ProductID)
	if err != nil {
		w.logger.Errorw("invalid product ID", "product_id", msg.ProductID, "error", err)
		return fmt.Errorf("invalid product ID: %w", err)
	}

	if err := w.productRepo.DecrementOptionStock(ctx, productID, msg.AttributeName, msg.OptionName, msg.Quantity); err != nil {
		w.logger.Errorw("failed to adjust stock", "order_id", msg.OrderID, "product_id", msg.ProductID, "error", err)
		return err
	}

	return nil
}
