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

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		collection: db.Collection("cart_products"),
	}
}

func (r *CartRepository) Create(ctx context.Context, line *domain.CartLine) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	line.CreatedAt = time.Now()
	line.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, line)
	if err != nil {
		return fmt.Errorf("failed to create cart line: %w", err)
	}

	return nil
}

func (r *CartRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var line domain.CartLine
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&line)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}

	return &line, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []domain.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart lines: %w", err)
	}

	return lines, nil
}

func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to find cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []domain.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart lines: %w", err)
	}

	return lines, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id, userID primitive.ObjectID, quantity int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"quantity":   quantity,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update cart line quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
