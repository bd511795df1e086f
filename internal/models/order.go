package models

import "time"

// Order represents a customer order with its line items
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"orderId"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	OrderDate  time.Time `gorm:"not null;index" json:"orderDate"`
	TotalPrice float64   `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
	Status     string    `gorm:"default:PENDING;not null;index" json:"status"`
	PaymentID  *uint     `gorm:"index" json:"paymentId"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Associations
	OrderDetails []OrderDetail `gorm:"foreignKey:OrderID" json:"orderDetails"`
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Payment      *Payment      `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderDetail is a single line item of an order
type OrderDetail struct {
	ID          uint    `gorm:"primaryKey" json:"orderDetailsId"`
	OrderID     uint    `gorm:"not null;index" json:"orderId"`
	ProductID   uint    `gorm:"not null;index" json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName specifies the table name for OrderDetail
func (OrderDetail) TableName() string {
	return "order_details"
}

// Order status constants
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// Contains returns true if any line item references the given product
func (o *Order) Contains(productID uint) bool {
	for _, d := range o.OrderDetails {
		if d.ProductID == productID {
			return true
		}
	}
	return false
}

// MayProcess returns true if the order can start processing
func (o *Order) MayProcess() bool {
	return o.Status == OrderStatusPending
}

// MayShip returns true if the order can be handed to shipping
func (o *Order) MayShip() bool {
	return o.Status == OrderStatusProcessing
}

// MayDeliver returns true if the order can be marked delivered
func (o *Order) MayDeliver() bool {
	return o.Status == OrderStatusShipped
}

// MayCancel returns true if the order can still be cancelled
func (o *Order) MayCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// OrderResponse is the JSON response format for orders
type OrderResponse struct {
	ID            uint          `json:"orderId"`
	UserID        uint          `json:"userId"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	OrderDate     time.Time     `json:"orderDate"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        string        `json:"status"`
	PaymentID     *uint         `json:"paymentId"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	Comment       *string       `json:"comment"`
	OrderDetails  []OrderDetail `json:"orderDetails"`
}

// ToResponse converts Order to OrderResponse, denormalizing customer and
// payment details when the associations are loaded.
func (o *Order) ToResponse() OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		OrderDate:    o.OrderDate,
		TotalPrice:   o.TotalPrice,
		Status:       o.Status,
		PaymentID:    o.PaymentID,
		Comment:      o.Comment,
		OrderDetails: o.OrderDetails,
	}
	if o.User != nil {
		resp.CustomerName = o.User.Name
		resp.CustomerEmail = o.User.Email
	}
	if o.Payment != nil {
		resp.PaymentMethod = o.Payment.PaymentMethod
	}
	return resp
}
