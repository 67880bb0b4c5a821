package repo

import (
	"context"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	PushCartRef(ctx context.Context, userID, productID primitive.ObjectID) error
	ClearCartRefs(ctx context.Context, userID primitive.ObjectID) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type AddressRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Address, error)
}
