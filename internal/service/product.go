package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/catalog"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductService struct {
	productRepo repo.ProductRepository
	logger      *zap.SugaredLogger
}

func NewProductService(productRepo repo.ProductRepository, logger *zap.SugaredLogger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// UpdateProductInput carries the updatable product fields; nil pointers and
// nil slices mean "leave unchanged".
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Images          []string
	AttributeGroups []domain.AttributeGroup
	MoreDetails     []domain.DetailEntry
	Publish         *bool
	ComboOffer      *bool
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := catalog.ValidateAttributes(product.AttributeGroups); err != nil {
		return err
	}
	if err := validateDetails(product.MoreDetails); err != nil {
		return err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Infow("product created", "product_id", product.ID.Hex(), "name", product.Name)

	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.AttributeGroups != nil {
		product.AttributeGroups = input.AttributeGroups
	}
	if input.MoreDetails != nil {
		product.MoreDetails = input.MoreDetails
	}
	if input.Publish != nil {
		product.Publish = *input.Publish
	}
	if input.ComboOffer != nil {
		product.ComboOffer = *input.ComboOffer
	}

	if err := catalog.ValidateAttributes(product.AttributeGroups); err != nil {
		return nil, err
	}
	if err := validateDetails(product.MoreDetails); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Infow("product updated", "product_id", product.ID.Hex())

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Infow("product deleted", "product_id", id.Hex())

	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter repo.ListProductsFilter) ([]domain.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// AddAttributeGroup appends an empty attribute group; options arrive through
// AddAttributeOption afterwards, so the relaxed mutation validation applies.
func (s *ProductService) AddAttributeGroup(ctx context.Context, id primitive.ObjectID, name string) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := catalog.AddGroup(product, name); err != nil {
		return nil, err
	}

	return s.persistMutation(ctx, product)
}

// RemoveAttributeGroup is idempotent: removing an absent group returns the
// product unchanged.
func (s *ProductService) RemoveAttributeGroup(ctx context.Context, id primitive.ObjectID, name string) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog.RemoveGroup(product, name)

	return s.persistMutation(ctx, product)
}

func (s *ProductService) AddAttributeOption(ctx context.Context, id primitive.ObjectID, groupName string, opt domain.AttributeOption) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := catalog.AddOption(product, groupName, opt); err != nil {
		return nil, err
	}

	return s.persistMutation(ctx, product)
}

// RemoveAttributeOption is idempotent like RemoveAttributeGroup.
func (s *ProductService) RemoveAttributeOption(ctx context.Context, id primitive.ObjectID, groupName, optionName string) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog.RemoveOption(product, groupName, optionName)

	return s.persistMutation(ctx, product)
}

func (s *ProductService) UpdateMoreDetails(ctx context.Context, id primitive.ObjectID, details []domain.DetailEntry) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateDetails(details); err != nil {
		return nil, err
	}

	product.MoreDetails = details

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product details: %w", err)
	}

	return product, nil
}

// ResolveSelection prices a selection against the live product. The
// storefront calls this before allowing add-to-cart.
func (s *ProductService) ResolveSelection(ctx context.Context, id primitive.ObjectID, selection map[string]string) (catalog.Resolution, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return catalog.Resolution{}, err
	}

	return catalog.Resolve(product, selection)
}

func (s *ProductService) persistMutation(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := catalog.ValidateMutation(product.AttributeGroups); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product attributes: %w", err)
	}

	s.logger.Infow("product attributes updated", "product_id", product.ID.Hex())

	return product, nil
}

func validateDetails(details []domain.DetailEntry) error {
	for _, entry := range details {
		if strings.TrimSpace(entry.Key) == "" {
			return ErrEmptyDetailKey
		}
	}
	return nil
}
