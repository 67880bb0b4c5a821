package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:   primitive.NewObjectID(),
		Name: "Herbal Tea",
		AttributeGroups: []domain.AttributeGroup{
			{
				Name: "Size",
				Options: []domain.AttributeOption{
					{Name: "S", Price: 100, Stock: int64Ptr(5)},
					{Name: "L", Price: 150, Stock: int64Ptr(0)},
				},
			},
			{
				Name: "Weight",
				Options: []domain.AttributeOption{
					{Name: "250g", Price: 40, Stock: nil, Unit: "g"},
				},
			},
		},
	}
}

func newCartService(cartRepo *MockCartRepo, productRepo *MockProductRepo, userRepo *MockUserRepo) *CartService {
	return NewCartService(cartRepo, productRepo, userRepo, zap.NewNop().Sugar())
}

func TestAddLine(t *testing.T) {
	product := testProduct()
	userID := primitive.NewObjectID()

	var created *domain.CartLine
	var pushedRef bool
	cartRepo := &MockCartRepo{
		CreateFunc: func(ctx context.Context, line *domain.CartLine) error {
			created = line
			return nil
		},
	}
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	userRepo := &MockUserRepo{
		PushCartRefFunc: func(ctx context.Context, uID, pID primitive.ObjectID) error {
			pushedRef = true
			return nil
		},
	}
	svc := newCartService(cartRepo, productRepo, userRepo)

	line, err := svc.AddLine(context.Background(), userID, product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "S"},
		{AttributeName: "Weight", OptionName: "250g"},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, int64(1), line.Quantity)
	require.Len(t, line.SelectedAttributes, 2)
	assert.Equal(t, float64(100), line.SelectedAttributes[0].Price)
	require.NotNil(t, line.SelectedAttributes[0].Stock)
	assert.Equal(t, int64(5), *line.SelectedAttributes[0].Stock)
	assert.Nil(t, line.SelectedAttributes[1].Stock)
	assert.Equal(t, "g", line.SelectedAttributes[1].Unit)
	assert.True(t, pushedRef)
}

func TestAddLineSelectionRequired(t *testing.T) {
	product := testProduct()
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(&MockCartRepo{}, productRepo, &MockUserRepo{})

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, nil)

	assert.ErrorIs(t, err, ErrSelectionRequired)
}

func TestAddLineUnknownAttributeAndOption(t *testing.T) {
	product := testProduct()
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(&MockCartRepo{}, productRepo, &MockUserRepo{})

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Color", OptionName: "Red"},
	})
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	_, err = svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "XXL"},
	})
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestAddLineRepeatedAttributeRejected(t *testing.T) {
	product := testProduct()
	userID := primitive.NewObjectID()

	var created bool
	cartRepo := &MockCartRepo{
		CreateFunc: func(ctx context.Context, line *domain.CartLine) error {
			created = true
			return nil
		},
		FindByUserAndProductFunc: func(ctx context.Context, uID, pID primitive.ObjectID) ([]domain.CartLine, error) {
			return []domain.CartLine{{
				UserID:    uID,
				ProductID: pID,
				Quantity:  1,
				SelectedAttributes: []domain.SelectedAttribute{
					{AttributeName: "Size", OptionName: "S", Price: 100},
				},
			}}, nil
		},
	}
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(cartRepo, productRepo, &MockUserRepo{})

	// the doubled pair must never turn into a second, double-priced line
	// alongside the existing {Size, S} one
	_, err := svc.AddLine(context.Background(), userID, product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "S"},
		{AttributeName: "Size", OptionName: "S"},
	})
	assert.ErrorIs(t, err, ErrRepeatedAttribute)

	// two different options still claim the same group once
	_, err = svc.AddLine(context.Background(), userID, product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "S"},
		{AttributeName: "Size", OptionName: "L"},
	})
	assert.ErrorIs(t, err, ErrRepeatedAttribute)

	assert.False(t, created)
}

func TestAddLineOutOfStock(t *testing.T) {
	product := testProduct()
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(&MockCartRepo{}, productRepo, &MockUserRepo{})

	// the L option has a tracked stock of zero
	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "L"},
	})

	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddLineUntrackedStockIsOrderable(t *testing.T) {
	product := testProduct()
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(&MockCartRepo{}, productRepo, &MockUserRepo{})

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Weight", OptionName: "250g"},
	})

	assert.NoError(t, err)
}

func TestAddLineDuplicateSelectionAnyOrder(t *testing.T) {
	product := testProduct()
	existing := []domain.CartLine{
		{
			SelectedAttributes: []domain.SelectedAttribute{
				{AttributeName: "Size", OptionName: "S", Price: 100},
				{AttributeName: "Weight", OptionName: "250g", Price: 40},
			},
		},
	}
	cartRepo := &MockCartRepo{
		FindByUserAndProductFunc: func(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error) {
			return existing, nil
		},
	}
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(cartRepo, productRepo, &MockUserRepo{})

	// same pairs submitted in reversed order must still collide
	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Weight", OptionName: "250g"},
		{AttributeName: "Size", OptionName: "S"},
	})

	assert.ErrorIs(t, err, ErrDuplicateCartLine)
}

func TestAddLineDifferentSelectionIsNotDuplicate(t *testing.T) {
	product := testProduct()
	existing := []domain.CartLine{
		{
			SelectedAttributes: []domain.SelectedAttribute{
				{AttributeName: "Size", OptionName: "S", Price: 100},
			},
		},
	}
	cartRepo := &MockCartRepo{
		FindByUserAndProductFunc: func(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error) {
			return existing, nil
		},
	}
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	svc := newCartService(cartRepo, productRepo, &MockUserRepo{})

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Weight", OptionName: "250g"},
	})

	assert.NoError(t, err)
}

func TestAddLinePushCartRefFailureDoesNotFail(t *testing.T) {
	product := testProduct()
	productRepo := &MockProductRepo{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return product, nil
		},
	}
	userRepo := &MockUserRepo{
		PushCartRefFunc: func(ctx context.Context, userID, productID primitive.ObjectID) error {
			return errors.New("users collection unavailable")
		},
	}
	svc := newCartService(&MockCartRepo{}, productRepo, userRepo)

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), product.ID, []SelectionInput{
		{AttributeName: "Size", OptionName: "S"},
	})

	assert.NoError(t, err)
}

func TestUpdateQuantityBelowOneDeletesLine(t *testing.T) {
	var deleted bool
	cartRepo := &MockCartRepo{
		DeleteFunc: func(ctx context.Context, id, userID primitive.ObjectID) error {
			deleted = true
			return nil
		},
		UpdateQuantityFunc: func(ctx context.Context, id, userID primitive.ObjectID, quantity int64) error {
			t.Fatal("quantity update must not be called for quantity below 1")
			return nil
		},
	}
	svc := newCartService(cartRepo, &MockProductRepo{}, &MockUserRepo{})

	err := svc.UpdateQuantity(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 0)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDecrementLineAtQuantityOneDeletes(t *testing.T) {
	lineID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	var deleted bool
	cartRepo := &MockCartRepo{
		GetByIDFunc: func(ctx context.Context, id, uID primitive.ObjectID) (*domain.CartLine, error) {
			return &domain.CartLine{ID: lineID, UserID: userID, Quantity: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, id, uID primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	svc := newCartService(cartRepo, &MockProductRepo{}, &MockUserRepo{})

	err := svc.DecrementLine(context.Background(), userID, lineID)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDecrementLineAtQuantityTwoKeepsLine(t *testing.T) {
	lineID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	var newQuantity int64
	cartRepo := &MockCartRepo{
		GetByIDFunc: func(ctx context.Context, id, uID primitive.ObjectID) (*domain.CartLine, error) {
			return &domain.CartLine{ID: lineID, UserID: userID, Quantity: 2}, nil
		},
		UpdateQuantityFunc: func(ctx context.Context, id, uID primitive.ObjectID, quantity int64) error {
			newQuantity = quantity
			return nil
		},
		DeleteFunc: func(ctx context.Context, id, uID primitive.ObjectID) error {
			t.Fatal("line must not be deleted when quantity stays at 1")
			return nil
		},
	}
	svc := newCartService(cartRepo, &MockProductRepo{}, &MockUserRepo{})

	err := svc.DecrementLine(context.Background(), userID, lineID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), newQuantity)
}

func TestIncrementLine(t *testing.T) {
	lineID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	var newQuantity int64
	cartRepo := &MockCartRepo{
		GetByIDFunc: func(ctx context.Context, id, uID primitive.ObjectID) (*domain.CartLine, error) {
			return &domain.CartLine{ID: lineID, UserID: userID, Quantity: 2}, nil
		},
		UpdateQuantityFunc: func(ctx context.Context, id, uID primitive.ObjectID, quantity int64) error {
			newQuantity = quantity
			return nil
		},
	}
	svc := newCartService(cartRepo, &MockProductRepo{}, &MockUserRepo{})

	err := svc.IncrementLine(context.Background(), userID, lineID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), newQuantity)
}

func TestRemoveLineNotFound(t *testing.T) {
	cartRepo := &MockCartRepo{
		DeleteFunc: func(ctx context.Context, id, userID primitive.ObjectID) error {
			return repo.ErrNotFound
		},
	}
	svc := newCartService(cartRepo, &MockProductRepo{}, &MockUserRepo{})

	err := svc.RemoveLine(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestAddLineProductNotFound(t *testing.T) {
	svc := newCartService(&MockCartRepo{}, &MockProductRepo{}, &MockUserRepo{})

	_, err := svc.AddLine(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), []SelectionInput{
		{AttributeName: "Size", OptionName: "S"},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
}
