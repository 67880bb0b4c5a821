package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/mailer"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationWorker consumes order-placed events and mails the confirmation
// to the purchaser and the store operator.
type NotificationWorker struct {
	orderRepo   repo.OrderRepository
	userRepo    repo.UserRepository
	addressRepo repo.AddressRepository
	mailer      mailer.Mailer
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewNotificationWorker(
	orderRepo repo.OrderRepository,
	userRepo repo.UserRepository,
	addressRepo repo.AddressRepository,
	m mailer.Mailer,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationWorker{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		mailer:      m,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *NotificationWorker) Start() error {
	w.logger.Info("starting notification worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderNotifications, w.handleMessage)
}

func (w *NotificationWorker) Stop() {
	w.logger.Info("stopping notification worker")
	w.cancel()
}

func (w *NotificationWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.OrderPlacedMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing order notification", "user_id", msg.UserID, "orders", len(msg.OrderIDs))

	userID, err := primitive.ObjectIDFromHex(msg.UserID)
	if err != nil {
		w.logger.Errorw("invalid user ID", "user_id", msg.UserID, "error", err)
		return fmt.Errorf("invalid user ID: %w", err)
	}
	addressID, err := primitive.ObjectIDFromHex(msg.AddressID)
	if err != nil {
		w.logger.Errorw("invalid address ID", "address_id", msg.AddressID, "error", err)
		return fmt.Errorf("invalid address ID: %w", err)
	}

	user, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		w.logger.Errorw("failed to load user", "user_id", msg.UserID, "error", err)
		return fmt.Errorf("failed to load user: %w", err)
	}
	address, err := w.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		w.logger.Errorw("failed to load address", "address_id", msg.AddressID, "error", err)
		return fmt.Errorf("failed to load address: %w", err)
	}

	orders := make([]domain.Order, 0, len(msg.OrderIDs))
	var grandTotal float64
	for _, orderID := range msg.OrderIDs {
		order, err := w.orderRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			w.logger.Errorw("failed to load order", "order_id", orderID, "error", err)
			return fmt.Errorf("failed to load order: %w", err)
		}
		orders = append(orders, *order)
		grandTotal += order.TotalAmount
	}

	data := mailer.OrderConfirmationData{
		UserName:    user.Name,
		UserEmail:   user.Email,
		Orders:      orders,
		Address:     *address,
		GrandTotal:  grandTotal,
		PlacedAtStr: msg.PlacedAt.Format("02 Jan 2006 15:04"),
	}

	if err := w.mailer.SendOrderConfirmation(data); err != nil {
		w.logger.Errorw("failed to send order confirmation", "user_id", msg.UserID, "error", err)
		return err
	}

	return nil
}
