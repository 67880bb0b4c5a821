package domain

import "time"

// StockAdjustmentMessage asks the stock worker to decrement one option's
// live stock. Adjustments are advisory: they run after the order batch is
// committed and never roll it back.
type StockAdjustmentMessage struct {
	ProductID     string `json:"product_id"`
	AttributeName string `json:"attribute_name"`
	OptionName    string `json:"option_name"`
	Quantity      int64  `json:"quantity"`
	OrderID       string `json:"order_id"`
}

// OrderPlacedMessage triggers the confirmation notification for a checkout.
// Delivery failure must never surface to the purchaser.
type OrderPlacedMessage struct {
	UserID    string    `json:"user_id"`
	OrderIDs  []string  `json:"order_ids"`
	AddressID string    `json:"address_id"`
	PlacedAt  time.Time `json:"placed_at"`
}
