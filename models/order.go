package models

import "time"

// OrderStatus labels an order in the history.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is the snapshot taken at checkout. It is never mutated after
// it has been appended to the history.
type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date      time.Time   `gorm:"index;not null" json:"date"`
	Items     []OrderLine `gorm:"serializer:json;not null" json:"items"`
	Subtotal  int64       `json:"subtotal,omitempty"`
	Discount  int64       `json:"discount,omitempty"`
	PromoCode string      `json:"promo_code,omitempty"`
	Total     int64       `gorm:"not null" json:"total"`
	Customer  Customer    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Status    OrderStatus `gorm:"not null" json:"status"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderLine is a cart line frozen into an order.
type OrderLine struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Customer holds the contact details entered at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Comment string `json:"comment,omitempty"`
}

// CartLine is a product with a quantity of at least one.
type CartLine struct {
	Product  Product
	Quantity int
}

// Total returns price * quantity.
func (l CartLine) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// DiscountKind tells how a promo code's amount is interpreted.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// PromoCode is an entry of the static promo registry.
type PromoCode struct {
	Code        string       `json:"code"`
	Kind        DiscountKind `json:"kind"`
	Amount      int64        `json:"amount"`
	Description string       `json:"description"`
}
