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
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) PushCartRef(ctx context.Context, userID, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"shopping_cart": productID},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to push cart ref: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *UserRepository) ClearCartRefs(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"shopping_cart": []primitive.ObjectID{},
			"updated_at":    time.Now(),
		},
	}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("failed to clear cart refs: %w", err)
	}

	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

type AddressRepository struct {
	collection *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{
		collection: db.Collection("addresses"),
	}
}

func (r *AddressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var address domain.Address
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return &address, nil
}
