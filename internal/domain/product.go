package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttributeOption is one concrete choice within an attribute group. A nil
// Stock means the option is untracked (unlimited); order placement never
// decrements untracked options.
type AttributeOption struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
	Stock *int64  `bson:"stock" json:"stock"`
	Unit  string  `bson:"unit" json:"unit"`
}

// AttributeGroup is a named axis of product variation (e.g. "Size").
// Groups are embedded in their product and never shared across products.
type AttributeGroup struct {
	Name    string            `bson:"name" json:"name"`
	Options []AttributeOption `bson:"options" json:"options"`
}

// DetailEntry is one key/value pair of a product's free-form details.
// Stored as an ordered list so admin-entered ordering survives round trips.
type DetailEntry struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	Images          []string           `bson:"image" json:"image"`
	AttributeGroups []AttributeGroup   `bson:"attributes" json:"attributes"`
	MoreDetails     []DetailEntry      `bson:"more_details" json:"more_details"`
	Publish         bool               `bson:"publish" json:"publish"`
	ComboOffer      bool               `bson:"combo_offer" json:"combo_offer"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
