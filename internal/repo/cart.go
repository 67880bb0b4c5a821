package repo

import (
	"context"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartRepository interface {
	Create(ctx context.Context, line *domain.CartLine) error
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, id, userID primitive.ObjectID, quantity int64) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}
