package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleUser = "USER"

// User carries only the fields the storefront core touches. Authentication
// and profile management live in a separate service. ShoppingCart is a
// denormalized convenience link; the cart collection stays authoritative.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	Mobile       string               `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Role         string               `bson:"role" json:"role"`
	ShoppingCart []primitive.ObjectID `bson:"shopping_cart" json:"shopping_cart"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Mobile      string             `bson:"mobile" json:"mobile"`
	AddressLine string             `bson:"address_line" json:"address_line"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	Pincode     string             `bson:"pincode" json:"pincode"`
	Country     string             `bson:"country" json:"country"`
}
