package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectedAttribute is a frozen copy of one option's values as they were when
// the line was added. Later product edits never alter an existing cart line.
type SelectedAttribute struct {
	AttributeName string  `bson:"attribute_name" json:"attribute_name"`
	OptionName    string  `bson:"option_name" json:"option_name"`
	Price         float64 `bson:"price" json:"price"`
	Stock         *int64  `bson:"stock" json:"stock"`
	Unit          string  `bson:"unit" json:"unit"`
}

// CartLine is one (user, product, selection) tuple with a quantity. At most
// one line may exist per distinct {attribute, option} combination for a given
// user and product.
type CartLine struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ProductID          primitive.ObjectID  `bson:"product_id" json:"product_id"`
	Quantity           int64               `bson:"quantity" json:"quantity"`
	SelectedAttributes []SelectedAttribute `bson:"selected_attributes" json:"selected_attributes"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}

// LineTotal is quantity times the sum of the snapshotted option prices.
func (l *CartLine) LineTotal() float64 {
	var sum float64
	for _, attr := range l.SelectedAttributes {
		sum += attr.Price
	}
	return float64(l.Quantity) * sum
}

// SameSelection reports whether two selections cover the same
// {attribute, option} pairs, regardless of ordering. Prices, stock and units
// are snapshots and take no part in line identity.
func SameSelection(a, b []SelectedAttribute) bool {
	if len(a) != len(b) {
		return false
	}
	pairs := make(map[[2]string]int, len(a))
	for _, attr := range a {
		pairs[[2]string{attr.AttributeName, attr.OptionName}]++
	}
	for _, attr := range b {
		key := [2]string{attr.AttributeName, attr.OptionName}
		if pairs[key] == 0 {
			return false
		}
		pairs[key]--
	}
	return true
}
