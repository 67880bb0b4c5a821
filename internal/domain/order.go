package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSnapshot is the frozen copy of product data embedded in an order at
// checkout. It is copied verbatim from the cart line and never re-resolved
// against the live product.
type ProductSnapshot struct {
	Name               string              `bson:"name" json:"name"`
	Images             []string            `bson:"image" json:"image"`
	SelectedAttributes []SelectedAttribute `bson:"selected_attributes" json:"selected_attributes"`
}

// TrackingEvent is one append-only entry of an order's tracking history.
type TrackingEvent struct {
	Status    TrackingStatus `bson:"status" json:"status"`
	UpdatedBy string         `bson:"updated_by" json:"updated_by"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
}

// Order is an immutable record of one committed cart line. Only the tracking,
// cancellation and soft-delete fields change after creation.
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID            string             `bson:"order_id" json:"order_id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID          primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductDetails     ProductSnapshot    `bson:"product_details" json:"product_details"`
	Quantity           int64              `bson:"quantity" json:"quantity"`
	SubTotalAmount     float64            `bson:"sub_total_amount" json:"sub_total_amount"`
	TotalAmount        float64            `bson:"total_amount" json:"total_amount"`
	DeliveryAddressID  primitive.ObjectID `bson:"delivery_address" json:"delivery_address"`
	PaymentID          string             `bson:"payment_id" json:"payment_id"`
	PaymentStatus      string             `bson:"payment_status" json:"payment_status"`
	CustomImageURL     string             `bson:"custom_image_url,omitempty" json:"custom_image_url,omitempty"`
	TrackingStatus     TrackingStatus     `bson:"tracking_status" json:"tracking_status"`
	TrackingHistory    []TrackingEvent    `bson:"tracking_history" json:"tracking_history"`
	IsCancelled        bool               `bson:"is_cancelled" json:"is_cancelled"`
	CancellationReason string             `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time         `bson:"cancellation_date,omitempty" json:"cancellation_date,omitempty"`
	IsDeleted          bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderStats are the admin dashboard counters. Received covers orders that
// are neither cancelled nor delivered yet.
type OrderStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalOrders     int64 `json:"totalOrders"`
	CancelledOrders int64 `json:"cancelledOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
	ReceivedOrders  int64 `json:"receivedOrders"`
}

// NewOrderID generates a human-readable globally unique order id. Ids are
// never reused.
func NewOrderID() string {
	return "ORD-" + primitive.NewObjectID().Hex()
}
