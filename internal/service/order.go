package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo   repo.OrderRepository
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		broker:      broker,
		logger:      logger,
	}
}

// PlaceOrderInput is the checkout payload. Payment fields are opaque
// pass-through metadata from the payment collaborator.
type PlaceOrderInput struct {
	CartLineIDs    []primitive.ObjectID
	AddressID      primitive.ObjectID
	PaymentID      string
	PaymentStatus  string
	CustomImageURL string
}

// PlaceOrder converts each referenced cart line into one order document.
//
// The commit phase is fail-fast and all-or-nothing: every line and its
// product must load, and the ordered bulk insert either lands the whole
// batch or aborts the checkout. Everything after persistence is best-effort:
// stock adjustments and the confirmation notification go through the durable
// queues, and the cart is cleared; failures there are logged and never fail
// the response.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, input PlaceOrderInput) ([]domain.Order, error) {
	if len(input.CartLineIDs) == 0 {
		return nil, ErrCartLineNotFound
	}

	lines := make([]domain.CartLine, 0, len(input.CartLineIDs))
	for _, lineID := range input.CartLineIDs {
		line, err := s.cartRepo.GetByID(ctx, lineID, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCartLineNotFound, lineID.Hex())
			}
			return nil, fmt.Errorf("failed to load cart line: %w", err)
		}
		lines = append(lines, *line)
	}

	orders := make([]domain.Order, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID.Hex())
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}

		total := line.LineTotal()
		orders = append(orders, domain.Order{
			OrderID:   domain.NewOrderID(),
			UserID:    userID,
			ProductID: line.ProductID,
			ProductDetails: domain.ProductSnapshot{
				Name:   product.Name,
				Images: product.Images,
				// attribute values come from the cart line snapshot, not the
				// live product, so prices agreed at add-to-cart time hold
				SelectedAttributes: line.SelectedAttributes,
			},
			Quantity:          line.Quantity,
			SubTotalAmount:    total,
			TotalAmount:       total,
			DeliveryAddressID: input.AddressID,
			PaymentID:         input.PaymentID,
			PaymentStatus:     input.PaymentStatus,
			CustomImageURL:    input.CustomImageURL,
			TrackingStatus:    domain.TrackingPending,
			TrackingHistory:   []domain.TrackingEvent{},
		})
	}

	if err := s.orderRepo.CreateMany(ctx, orders); err != nil {
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	s.publishStockAdjustments(ctx, orders)
	s.clearCart(ctx, userID)
	s.publishOrderPlaced(ctx, userID, input.AddressID, orders)

	s.logger.Infow("orders placed", "user_id", userID.Hex(), "count", len(orders))

	return orders, nil
}

func (s *OrderService) publishStockAdjustments(ctx context.Context, orders []domain.Order) {
	for _, order := range orders {
		for _, attr := range order.ProductDetails.SelectedAttributes {
			msg := domain.StockAdjustmentMessage{
				ProductID:     order.ProductID.Hex(),
				AttributeName: attr.AttributeName,
				OptionName:    attr.OptionName,
				Quantity:      order.Quantity,
				OrderID:       order.OrderID,
			}
			body, err := json.Marshal(msg)
			if err != nil {
				s.logger.Errorw("failed to marshal stock adjustment", "order_id", order.OrderID, "error", err)
				continue
			}
			if err := s.broker.Publish(ctx, queue.QueueStockAdjustments, body); err != nil {
				s.logger.Errorw("failed to publish stock adjustment", "order_id", order.OrderID, "error", err)
			}
		}
	}
}

func (s *OrderService) clearCart(ctx context.Context, userID primitive.ObjectID) {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		s.logger.Errorw("failed to clear cart after checkout", "user_id", userID.Hex(), "error", err)
	}
	if err := s.userRepo.ClearCartRefs(ctx, userID); err != nil {
		s.logger.Errorw("failed to clear cart refs after checkout", "user_id", userID.Hex(), "error", err)
	}
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, userID, addressID primitive.ObjectID, orders []domain.Order) {
	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.OrderID)
	}
	msg := domain.OrderPlacedMessage{
		UserID:    userID.Hex(),
		OrderIDs:  orderIDs,
		AddressID: addressID.Hex(),
		PlacedAt:  time.Now(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Errorw("failed to marshal order notification", "user_id", userID.Hex(), "error", err)
		return
	}
	if err := s.broker.Publish(ctx, queue.QueueOrderNotifications, body); err != nil {
		s.logger.Errorw("failed to publish order notification", "user_id", userID.Hex(), "error", err)
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// Stats assembles the admin dashboard counters from the order and user
// collections.
func (s *OrderService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}

	users, err := s.userRepo.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	stats.TotalUsers = users

	return stats, nil
}

// UpdateTracking advances an order along the fulfilment chain and appends the
// transition to its history.
func (s *OrderService) UpdateTracking(ctx context.Context, orderID string, status domain.TrackingStatus, updatedBy string) (*domain.Order, error) {
	if !domain.ValidTrackingStatus(status) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrackingStatus, status)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.CanAdvanceTo(status); err != nil {
		return nil, err
	}

	event := domain.TrackingEvent{
		Status:    status,
		UpdatedBy: updatedBy,
		Timestamp: time.Now(),
	}

	updated, err := s.orderRepo.UpdateTracking(ctx, orderID, status, event)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update tracking: %w", err)
	}

	s.logger.Infow("tracking updated", "order_id", orderID, "status", status)

	return updated, nil
}

// CancelOrder cancels one of the caller's own orders. A non-empty reason is
// required and recorded alongside the cancellation date.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string, userID primitive.ObjectID, reason string) (*domain.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrCancellationReasonRequired
	}

	order, err := s.orderRepo.GetByOrderIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := order.CanCancel(); err != nil {
		return nil, err
	}

	cancelled, err := s.orderRepo.Cancel(ctx, orderID, userID, reason, time.Now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Infow("order cancelled", "order_id", orderID, "user_id", userID.Hex())

	return cancelled, nil
}

// DeleteOrder hides an order from listings. The document is kept; delivered
// orders cannot be hidden.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.CanSoftDelete(); err != nil {
		return err
	}

	if err := s.orderRepo.SoftDelete(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Infow("order deleted", "order_id", orderID)

	return nil
}
