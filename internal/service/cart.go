package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/catalog"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartService struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	logger      *zap.SugaredLogger
}

func NewCartService(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	logger *zap.SugaredLogger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// SelectionInput is one requested {attribute, option} pair.
type SelectionInput struct {
	AttributeName string `json:"attribute_name"`
	OptionName    string `json:"option_name"`
}

// AddLine validates the selection against the live product, snapshots the
// resolved option values, and persists a new line with quantity 1. Adding a
// selection that exactly matches an existing line's attribute set (in any
// order) is rejected; clients increment the existing line instead.
//
// The duplicate check is read-then-write and can race under concurrent
// double submission from the same user; that is a known, accepted weakness
// rather than something papered over with locking.
func (s *CartService) AddLine(ctx context.Context, userID, productID primitive.ObjectID, selection []SelectionInput) (*domain.CartLine, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if len(product.AttributeGroups) > 0 && len(selection) == 0 {
		return nil, ErrSelectionRequired
	}

	snapshot := make([]domain.SelectedAttribute, 0, len(selection))
	seen := make(map[string]struct{}, len(selection))
	for _, sel := range selection {
		// one pair per attribute group; a repeated name would inflate the
		// line total and slip past the multiset duplicate check below
		if _, dup := seen[sel.AttributeName]; dup {
			return nil, fmt.Errorf("%w: %s", ErrRepeatedAttribute, sel.AttributeName)
		}
		seen[sel.AttributeName] = struct{}{}

		group := catalog.FindGroup(product, sel.AttributeName)
		if group == nil {
			return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, sel.AttributeName)
		}
		opt := catalog.FindOption(group, sel.OptionName)
		if opt == nil {
			return nil, fmt.Errorf("%w: %s for %s", ErrOptionNotFound, sel.OptionName, sel.AttributeName)
		}
		if opt.Stock != nil && *opt.Stock < 1 {
			return nil, fmt.Errorf("%w: %s for %s", ErrOutOfStock, sel.OptionName, sel.AttributeName)
		}

		var stock *int64
		if opt.Stock != nil {
			v := *opt.Stock
			stock = &v
		}
		snapshot = append(snapshot, domain.SelectedAttribute{
			AttributeName: sel.AttributeName,
			OptionName:    sel.OptionName,
			Price:         opt.Price,
			Stock:         stock,
			Unit:          opt.Unit,
		})
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart lines: %w", err)
	}
	for i := range existing {
		if domain.SameSelection(existing[i].SelectedAttributes, snapshot) {
			return nil, ErrDuplicateCartLine
		}
	}

	line := &domain.CartLine{
		UserID:             userID,
		ProductID:          productID,
		Quantity:           1,
		SelectedAttributes: snapshot,
	}

	if err := s.cartRepo.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to create cart line: %w", err)
	}

	// denormalized convenience link on the user record; the cart collection
	// stays authoritative, so a failure here is logged, not raised
	if err := s.userRepo.PushCartRef(ctx, userID, productID); err != nil {
		s.logger.Warnw("failed to push cart ref", "user_id", userID.Hex(), "product_id", productID.Hex(), "error", err)
	}

	s.logger.Infow("cart line added", "user_id", userID.Hex(), "product_id", productID.Hex(), "line_id", line.ID.Hex())

	return line, nil
}

func (s *CartService) ListLines(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	return lines, nil
}

// UpdateQuantity sets a line's quantity. A quantity below 1 deletes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID primitive.ObjectID, quantity int64) error {
	if quantity < 1 {
		return s.RemoveLine(ctx, userID, lineID)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, lineID, userID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCartLineNotFound
		}
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	return nil
}

func (s *CartService) IncrementLine(ctx context.Context, userID, lineID primitive.ObjectID) error {
	line, err := s.getLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	return s.UpdateQuantity(ctx, userID, lineID, line.Quantity+1)
}

// DecrementLine lowers the quantity by one, deleting the line when the
// result would fall below 1.
func (s *CartService) DecrementLine(ctx context.Context, userID, lineID primitive.ObjectID) error {
	line, err := s.getLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	return s.UpdateQuantity(ctx, userID, lineID, line.Quantity-1)
}

func (s *CartService) RemoveLine(ctx context.Context, userID, lineID primitive.ObjectID) error {
	if err := s.cartRepo.Delete(ctx, lineID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCartLineNotFound
		}
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	return nil
}

func (s *CartService) getLine(ctx context.Context, userID, lineID primitive.ObjectID) (*domain.CartLine, error) {
	line, err := s.cartRepo.GetByID(ctx, lineID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCartLineNotFound
		}
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}

	return line, nil
}
