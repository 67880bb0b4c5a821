package service

import (
	"context"
	"sync"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockProductRepo struct {
	CreateFunc               func(ctx context.Context, product *domain.Product) error
	GetByIDFunc              func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	UpdateFunc               func(ctx context.Context, product *domain.Product) error
	DeleteFunc               func(ctx context.Context, id primitive.ObjectID) error
	ListFunc                 func(ctx context.Context, filter repo.ListProductsFilter) ([]domain.Product, int64, error)
	DecrementOptionStockFunc func(ctx context.Context, productID primitive.ObjectID, attributeName, optionName string, qty int64) error
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repo.ErrNotFound
}

func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepo) List(ctx context.Context, filter repo.ListProductsFilter) ([]domain.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) DecrementOptionStock(ctx context.Context, productID primitive.ObjectID, attributeName, optionName string, qty int64) error {
	if m.DecrementOptionStockFunc != nil {
		return m.DecrementOptionStockFunc(ctx, productID, attributeName, optionName, qty)
	}
	return nil
}

type MockCartRepo struct {
	CreateFunc               func(ctx context.Context, line *domain.CartLine) error
	GetByIDFunc              func(ctx context.Context, id, userID primitive.ObjectID) (*domain.CartLine, error)
	ListByUserFunc           func(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error)
	FindByUserAndProductFunc func(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error)
	UpdateQuantityFunc       func(ctx context.Context, id, userID primitive.ObjectID, quantity int64) error
	DeleteFunc               func(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUserFunc         func(ctx context.Context, userID primitive.ObjectID) error
}

func (m *MockCartRepo) Create(ctx context.Context, line *domain.CartLine) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, line)
	}
	return nil
}

func (m *MockCartRepo) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.CartLine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, repo.ErrNotFound
}

func (m *MockCartRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error) {
	if m.FindByUserAndProductFunc != nil {
		return m.FindByUserAndProductFunc(ctx, userID, productID)
	}
	return nil, nil
}

func (m *MockCartRepo) UpdateQuantity(ctx context.Context, id, userID primitive.ObjectID, quantity int64) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, userID, quantity)
	}
	return nil
}

func (m *MockCartRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockCartRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}

type MockOrderRepo struct {
	CreateManyFunc          func(ctx context.Context, orders []domain.Order) error
	GetByOrderIDFunc        func(ctx context.Context, orderID string) (*domain.Order, error)
	GetByOrderIDForUserFunc func(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error)
	ListByUserFunc          func(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	ListAllFunc             func(ctx context.Context) ([]domain.Order, error)
	UpdateTrackingFunc      func(ctx context.Context, orderID string, status domain.TrackingStatus, event domain.TrackingEvent) (*domain.Order, error)
	CancelFunc              func(ctx context.Context, orderID string, userID primitive.ObjectID, reason string, at time.Time) (*domain.Order, error)
	SoftDeleteFunc          func(ctx context.Context, orderID string) error
	StatsFunc               func(ctx context.Context) (*domain.OrderStats, error)
}

func (m *MockOrderRepo) CreateMany(ctx context.Context, orders []domain.Order) error {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, orders)
	}
	return nil
}

func (m *MockOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, repo.ErrNotFound
}

func (m *MockOrderRepo) GetByOrderIDForUser(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error) {
	if m.GetByOrderIDForUserFunc != nil {
		return m.GetByOrderIDForUserFunc(ctx, orderID, userID)
	}
	return nil, repo.ErrNotFound
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateTracking(ctx context.Context, orderID string, status domain.TrackingStatus, event domain.TrackingEvent) (*domain.Order, error) {
	if m.UpdateTrackingFunc != nil {
		return m.UpdateTrackingFunc(ctx, orderID, status, event)
	}
	return nil, repo.ErrNotFound
}

func (m *MockOrderRepo) Cancel(ctx context.Context, orderID string, userID primitive.ObjectID, reason string, at time.Time) (*domain.Order, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, orderID, userID, reason, at)
	}
	return nil, repo.ErrNotFound
}

func (m *MockOrderRepo) SoftDelete(ctx context.Context, orderID string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, orderID)
	}
	return nil
}

func (m *MockOrderRepo) Stats(ctx context.Context) (*domain.OrderStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.OrderStats{}, nil
}

type MockUserRepo struct {
	GetByIDFunc       func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	PushCartRefFunc   func(ctx context.Context, userID, productID primitive.ObjectID) error
	ClearCartRefsFunc func(ctx context.Context, userID primitive.ObjectID) error
	CountByRoleFunc   func(ctx context.Context, role string) (int64, error)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repo.ErrNotFound
}

func (m *MockUserRepo) PushCartRef(ctx context.Context, userID, productID primitive.ObjectID) error {
	if m.PushCartRefFunc != nil {
		return m.PushCartRefFunc(ctx, userID, productID)
	}
	return nil
}

func (m *MockUserRepo) ClearCartRefs(ctx context.Context, userID primitive.ObjectID) error {
	if m.ClearCartRefsFunc != nil {
		return m.ClearCartRefsFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

// RecordingBroker captures published messages per queue. PublishErr, when
// set, makes every publish fail.
type RecordingBroker struct {
	mu         sync.Mutex
	Published  map[string][][]byte
	PublishErr error
}

func NewRecordingBroker() *RecordingBroker {
	return &RecordingBroker{Published: make(map[string][][]byte)}
}

func (b *RecordingBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Published[queueName] = append(b.Published[queueName], message)
	return nil
}

func (b *RecordingBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *RecordingBroker) Healthy() bool {
	return true
}

func (b *RecordingBroker) Close() error {
	return nil
}
