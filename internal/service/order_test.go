package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	userID    primitive.ObjectID
	addressID primitive.ObjectID
	product   *domain.Product
	lines     map[primitive.ObjectID]*domain.CartLine
	cartRepo  *MockCartRepo
	prodRepo  *MockProductRepo
	userRepo  *MockUserRepo
	broker    *RecordingBroker
}

func newCheckoutFixture(t *testing.T, quantities ...int64) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		userID:    primitive.NewObjectID(),
		addressID: primitive.NewObjectID(),
		product:   testProduct(),
		lines:     make(map[primitive.ObjectID]*domain.CartLine),
		broker:    NewRecordingBroker(),
	}

	for _, qty := range quantities {
		id := primitive.NewObjectID()
		f.lines[id] = &domain.CartLine{
			ID:        id,
			UserID:    f.userID,
			ProductID: f.product.ID,
			Quantity:  qty,
			SelectedAttributes: []domain.SelectedAttribute{
				{AttributeName: "Size", OptionName: "S", Price: 100, Stock: int64Ptr(5)},
			},
		}
	}

	f.cartRepo = &MockCartRepo{
		GetByIDFunc: func(ctx context.Context, id, userID primitive.ObjectID) (*domain.CartLine, error) {
			if line, ok := f.lines[id]; ok && userID == f.userID {
				return line, nil
			}
			return nil, repo.ErrNotFound
		},
	}
	f.prodRepo = &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			if id == f.product.ID {
				return f.product, nil
			}
			return nil, repo.ErrNotFound
		},
	}
	f.userRepo = &MockUserRepo{}

	return f
}

func (f *checkoutFixture) lineIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(f.lines))
	for id := range f.lines {
		ids = append(ids, id)
	}
	return ids
}

func (f *checkoutFixture) service(orderRepo *MockOrderRepo) *OrderService {
	return NewOrderService(orderRepo, f.cartRepo, f.prodRepo, f.userRepo, f.broker, zap.NewNop().Sugar())
}

func TestPlaceOrderOneOrderPerLine(t *testing.T) {
	f := newCheckoutFixture(t, 2, 3)

	var inserted []domain.Order
	orderRepo := &MockOrderRepo{
		CreateManyFunc: func(ctx context.Context, orders []domain.Order) error {
			inserted = orders
			return nil
		},
	}
	svc := f.service(orderRepo)

	orders, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})
	require.NoError(t, err)

	require.Len(t, orders, 2)
	require.Len(t, inserted, 2)

	seenIDs := make(map[string]struct{})
	for _, order := range orders {
		assert.Regexp(t, "^ORD-[0-9a-f]{24}$", order.OrderID)
		seenIDs[order.OrderID] = struct{}{}
		assert.Equal(t, f.userID, order.UserID)
		assert.Equal(t, domain.TrackingPending, order.TrackingStatus)
		assert.Equal(t, "Herbal Tea", order.ProductDetails.Name)
		// totalAmount = quantity * sum of snapshotted prices
		assert.Equal(t, float64(order.Quantity)*100, order.TotalAmount)
		assert.Equal(t, order.TotalAmount, order.SubTotalAmount)
	}
	assert.Len(t, seenIDs, 2)
}

func TestPlaceOrderSnapshotComesFromCartLine(t *testing.T) {
	f := newCheckoutFixture(t, 1)

	// product price changed after the line was added; the order must keep
	// the price frozen in the cart line
	f.product.AttributeGroups[0].Options[0].Price = 999

	svc := f.service(&MockOrderRepo{})

	orders, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, float64(100), orders[0].TotalAmount)
	assert.Equal(t, float64(100), orders[0].ProductDetails.SelectedAttributes[0].Price)
}

func TestPlaceOrderClearsCart(t *testing.T) {
	f := newCheckoutFixture(t, 1)

	var cartCleared, refsCleared bool
	f.cartRepo.DeleteByUserFunc = func(ctx context.Context, userID primitive.ObjectID) error {
		cartCleared = true
		return nil
	}
	f.userRepo.ClearCartRefsFunc = func(ctx context.Context, userID primitive.ObjectID) error {
		refsCleared = true
		return nil
	}
	svc := f.service(&MockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})

	require.NoError(t, err)
	assert.True(t, cartCleared)
	assert.True(t, refsCleared)
}

func TestPlaceOrderPublishesStockAdjustmentsAndNotification(t *testing.T) {
	f := newCheckoutFixture(t, 2)
	svc := f.service(&MockOrderRepo{})

	orders, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})
	require.NoError(t, err)

	adjustments := f.broker.Published[queue.QueueStockAdjustments]
	require.Len(t, adjustments, 1)

	var adj domain.StockAdjustmentMessage
	require.NoError(t, json.Unmarshal(adjustments[0], &adj))
	assert.Equal(t, f.product.ID.Hex(), adj.ProductID)
	assert.Equal(t, "Size", adj.AttributeName)
	assert.Equal(t, "S", adj.OptionName)
	assert.Equal(t, int64(2), adj.Quantity)

	notifications := f.broker.Published[queue.QueueOrderNotifications]
	require.Len(t, notifications, 1)

	var placed domain.OrderPlacedMessage
	require.NoError(t, json.Unmarshal(notifications[0], &placed))
	assert.Equal(t, f.userID.Hex(), placed.UserID)
	assert.Equal(t, []string{orders[0].OrderID}, placed.OrderIDs)
	assert.Equal(t, f.addressID.Hex(), placed.AddressID)
}

func TestPlaceOrderPublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newCheckoutFixture(t, 1)
	f.broker.PublishErr = errors.New("broker unavailable")
	svc := f.service(&MockOrderRepo{})

	orders, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})

	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrderBatchInsertFailureAborts(t *testing.T) {
	f := newCheckoutFixture(t, 1, 1)

	orderRepo := &MockOrderRepo{
		CreateManyFunc: func(ctx context.Context, orders []domain.Order) error {
			return errors.New("duplicate key")
		},
	}
	var cartCleared bool
	f.cartRepo.DeleteByUserFunc = func(ctx context.Context, userID primitive.ObjectID) error {
		cartCleared = true
		return nil
	}
	svc := f.service(orderRepo)

	_, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: f.lineIDs(),
		AddressID:   f.addressID,
	})

	require.Error(t, err)
	assert.False(t, cartCleared)
	assert.Empty(t, f.broker.Published)
}

func TestPlaceOrderMissingLineFailsFast(t *testing.T) {
	f := newCheckoutFixture(t, 1)

	orderRepo := &MockOrderRepo{
		CreateManyFunc: func(ctx context.Context, orders []domain.Order) error {
			t.Fatal("no orders may be created when a line is missing")
			return nil
		},
	}
	svc := f.service(orderRepo)

	ids := append(f.lineIDs(), primitive.NewObjectID())
	_, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		CartLineIDs: ids,
		AddressID:   f.addressID,
	})

	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestPlaceOrderEmptyCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	svc := f.service(&MockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), f.userID, PlaceOrderInput{
		AddressID: f.addressID,
	})

	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func newOrderService(orderRepo *MockOrderRepo, userRepo *MockUserRepo) *OrderService {
	return NewOrderService(orderRepo, &MockCartRepo{}, &MockProductRepo{}, userRepo, NewRecordingBroker(), zap.NewNop().Sugar())
}

func TestUpdateTrackingPendingJumpsToShipped(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", TrackingStatus: domain.TrackingPending}

	var appended domain.TrackingEvent
	orderRepo := &MockOrderRepo{
		GetByOrderIDFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return order, nil
		},
		UpdateTrackingFunc: func(ctx context.Context, orderID string, status domain.TrackingStatus, event domain.TrackingEvent) (*domain.Order, error) {
			appended = event
			updated := *order
			updated.TrackingStatus = status
			return &updated, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	updated, err := svc.UpdateTracking(context.Background(), "ORD-1", domain.TrackingShipped, "admin")
	require.NoError(t, err)

	assert.Equal(t, domain.TrackingShipped, updated.TrackingStatus)
	assert.Equal(t, domain.TrackingShipped, appended.Status)
	assert.Equal(t, "admin", appended.UpdatedBy)
	assert.False(t, appended.Timestamp.IsZero())
}

func TestUpdateTrackingRejectsBackwardTransition(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", TrackingStatus: domain.TrackingShipped}
	orderRepo := &MockOrderRepo{
		GetByOrderIDFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	_, err := svc.UpdateTracking(context.Background(), "ORD-1", domain.TrackingProcessing, "admin")

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestUpdateTrackingRejectsUnknownStatus(t *testing.T) {
	svc := newOrderService(&MockOrderRepo{}, &MockUserRepo{})

	_, err := svc.UpdateTracking(context.Background(), "ORD-1", domain.TrackingStatus("Returned"), "admin")

	assert.ErrorIs(t, err, domain.ErrUnknownTrackingStatus)
}

func TestUpdateTrackingRejectsCancelledOrder(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", TrackingStatus: domain.TrackingCancelled, IsCancelled: true}
	orderRepo := &MockOrderRepo{
		GetByOrderIDFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	_, err := svc.UpdateTracking(context.Background(), "ORD-1", domain.TrackingShipped, "admin")

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyCancelled)
}

func TestCancelOrderFromProcessing(t *testing.T) {
	userID := primitive.NewObjectID()
	order := &domain.Order{OrderID: "ORD-1", UserID: userID, TrackingStatus: domain.TrackingProcessing}

	orderRepo := &MockOrderRepo{
		GetByOrderIDForUserFunc: func(ctx context.Context, orderID string, uID primitive.ObjectID) (*domain.Order, error) {
			return order, nil
		},
		CancelFunc: func(ctx context.Context, orderID string, uID primitive.ObjectID, reason string, at time.Time) (*domain.Order, error) {
			cancelled := *order
			cancelled.IsCancelled = true
			cancelled.TrackingStatus = domain.TrackingCancelled
			cancelled.CancellationReason = reason
			cancelled.CancellationDate = &at
			return &cancelled, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	cancelled, err := svc.CancelOrder(context.Background(), "ORD-1", userID, "changed my mind")
	require.NoError(t, err)

	assert.True(t, cancelled.IsCancelled)
	assert.Equal(t, domain.TrackingCancelled, cancelled.TrackingStatus)
	assert.Equal(t, "changed my mind", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancellationDate)
}

func TestCancelOrderFromShippedFails(t *testing.T) {
	userID := primitive.NewObjectID()
	order := &domain.Order{OrderID: "ORD-1", UserID: userID, TrackingStatus: domain.TrackingShipped}
	orderRepo := &MockOrderRepo{
		GetByOrderIDForUserFunc: func(ctx context.Context, orderID string, uID primitive.ObjectID) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	_, err := svc.CancelOrder(context.Background(), "ORD-1", userID, "too late")

	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
}

func TestCancelOrderRequiresReason(t *testing.T) {
	svc := newOrderService(&MockOrderRepo{}, &MockUserRepo{})

	_, err := svc.CancelOrder(context.Background(), "ORD-1", primitive.NewObjectID(), "   ")

	assert.ErrorIs(t, err, ErrCancellationReasonRequired)
}

func TestDeleteOrderDeliveredFails(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", TrackingStatus: domain.TrackingDelivered}
	orderRepo := &MockOrderRepo{
		GetByOrderIDFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	err := svc.DeleteOrder(context.Background(), "ORD-1")

	assert.ErrorIs(t, err, domain.ErrOrderNotDeletable)
}

func TestDeleteOrder(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", TrackingStatus: domain.TrackingProcessing}
	var softDeleted bool
	orderRepo := &MockOrderRepo{
		GetByOrderIDFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return order, nil
		},
		SoftDeleteFunc: func(ctx context.Context, orderID string) error {
			softDeleted = true
			return nil
		},
	}
	svc := newOrderService(orderRepo, &MockUserRepo{})

	err := svc.DeleteOrder(context.Background(), "ORD-1")

	require.NoError(t, err)
	assert.True(t, softDeleted)
}

func TestStats(t *testing.T) {
	orderRepo := &MockOrderRepo{
		StatsFunc: func(ctx context.Context) (*domain.OrderStats, error) {
			return &domain.OrderStats{TotalOrders: 10, CancelledOrders: 2, DeliveredOrders: 5, ReceivedOrders: 3}, nil
		},
	}
	userRepo := &MockUserRepo{
		CountByRoleFunc: func(ctx context.Context, role string) (int64, error) {
			assert.Equal(t, domain.RoleUser, role)
			return 42, nil
		},
	}
	svc := newOrderService(orderRepo, userRepo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(10), stats.TotalOrders)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := newOrderService(&MockOrderRepo{}, &MockUserRepo{})

	_, err := svc.GetOrder(context.Background(), "ORD-missing")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}
