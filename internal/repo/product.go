package repo

import (
	"context"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListProductsFilter narrows and pages the product listing. Search runs
// against the text index; ComboOffer nil means no combo filtering.
type ListProductsFilter struct {
	Search     string
	ComboOffer *bool
	Page       int64
	Limit      int64
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter ListProductsFilter) ([]domain.Product, int64, error)

	// DecrementOptionStock atomically subtracts qty from one option's stock,
	// flooring at zero. Untracked (null) stock is left untouched. The
	// subtract-or-floor must happen inside the storage engine, never as an
	// application-level read-modify-write.
	DecrementOptionStock(ctx context.Context, productID primitive.ObjectID, attributeName, optionName string, qty int64) error
}
