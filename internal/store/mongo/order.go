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

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *OrderRepository) CreateMany(ctx context.Context, orders []domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(orders))
	for i := range orders {
		if orders[i].ID.IsZero() {
			orders[i].ID = primitive.NewObjectID()
		}
		orders[i].CreatedAt = now
		orders[i].UpdatedAt = now
		docs = append(docs, orders[i])
	}

	// ordered insert: the first failure aborts the batch so a checkout can
	// never leave a confirmed partial order set behind
	opts := options.InsertMany().SetOrdered(true)
	if _, err := r.collection.InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID, "is_deleted": false}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) GetByOrderIDForUser(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID, "user_id": userID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_deleted": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) UpdateTracking(ctx context.Context, orderID string, status domain.TrackingStatus, event domain.TrackingEvent) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"order_id": orderID, "is_deleted": false}
	update := bson.M{
		"$set": bson.M{
			"tracking_status": status,
			"updated_at":      time.Now(),
		},
		"$push": bson.M{"tracking_history": event},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tracking status: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) Cancel(ctx context.Context, orderID string, userID primitive.ObjectID, reason string, at time.Time) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"order_id": orderID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"is_cancelled":        true,
			"cancellation_reason": reason,
			"cancellation_date":   at,
			"tracking_status":     domain.TrackingCancelled,
			"updated_at":          time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) SoftDelete(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"order_id": orderID, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	totalOrders, err := r.collection.CountDocuments(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	cancelledOrders, err := r.collection.CountDocuments(ctx, bson.M{"is_deleted": false, "is_cancelled": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count cancelled orders: %w", err)
	}

	deliveredOrders, err := r.collection.CountDocuments(ctx, bson.M{"is_deleted": false, "tracking_status": domain.TrackingDelivered})
	if err != nil {
		return nil, fmt.Errorf("failed to count delivered orders: %w", err)
	}

	// TotalUsers is filled in by the service from the user repository
	return &domain.OrderStats{
		TotalOrders:     totalOrders,
		CancelledOrders: cancelledOrders,
		DeliveredOrders: deliveredOrders,
		ReceivedOrders:  totalOrders - cancelledOrders - deliveredOrders,
	}, nil
}
