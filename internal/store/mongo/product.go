package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	product.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": product})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) List(ctx context.Context, filter repo.ListProductsFilter) ([]domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}
	if filter.ComboOffer != nil {
		query["combo_offer"] = *filter.ComboOffer
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	if filter.Search != "" {
		opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// DecrementOptionStock subtracts qty from one tracked option, flooring at
// zero, entirely inside MongoDB. Two conditional updates cover the cases:
// enough stock gets an $inc, short stock gets $set to 0. Each update is
// atomic and stock only ever decreases between them, so the floor holds
// under concurrent checkouts. Untracked (null) stock never matches either
// array filter and is left untouched.
func (r *ProductRepository) DecrementOptionStock(ctx context.Context, productID primitive.ObjectID, attributeName, optionName string, qty int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": productID}

	// the subtract update must carry nothing but the arrayFiltered $inc:
	// bundling an unconditional $set here would bump ModifiedCount even when
	// the stock filter matches no element, skipping the floor branch below
	subtract := bson.M{
		"$inc": bson.M{"attributes.$[g].options.$[o].stock": -qty},
	}
	subtractOpts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"g.name": attributeName},
			bson.M{"o.name": optionName, "o.stock": bson.M{"$gte": qty}},
		},
	})

	result, err := r.collection.UpdateOne(ctx, filter, subtract, subtractOpts)
	if err != nil {
		return fmt.Errorf("failed to decrement option stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	if result.ModifiedCount > 0 {
		return nil
	}

	// not enough stock left (or option/group name absent): floor tracked
	// stock at zero
	floor := bson.M{
		"$set": bson.M{
			"attributes.$[g].options.$[o].stock": int64(0),
			"updated_at":                         time.Now(),
		},
	}
	floorOpts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"g.name": attributeName},
			bson.M{"o.name": optionName, "o.stock": bson.M{"$type": "number", "$lt": qty}},
		},
	})

	if _, err := r.collection.UpdateOne(ctx, filter, floor, floorOpts); err != nil {
		return fmt.Errorf("failed to floor option stock: %w", err)
	}

	return nil
}
