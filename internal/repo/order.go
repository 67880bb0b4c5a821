package repo

import (
	"context"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	// CreateMany inserts the checkout batch as an ordered bulk write. Any
	// insert failure fails the whole batch.
	CreateMany(ctx context.Context, orders []domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	GetByOrderIDForUser(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	// ListAll returns all non-deleted orders, newest first.
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateTracking(ctx context.Context, orderID string, status domain.TrackingStatus, event domain.TrackingEvent) (*domain.Order, error)
	Cancel(ctx context.Context, orderID string, userID primitive.ObjectID, reason string, at time.Time) (*domain.Order, error)
	SoftDelete(ctx context.Context, orderID string) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}
