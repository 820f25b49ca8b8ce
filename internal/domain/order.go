package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// Order is immutable after creation except for the status transition
// pending -> completed, which also stamps CompletedAt.
type Order struct {
	ID          int64       `json:"id"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt"`
	Items       []OrderItem `json:"items"`
}

// OrderItem snapshots the product name and unit price at purchase time, so
// later product edits or deletes do not rewrite history.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	PricePerKg  int64   `json:"pricePerKg"`
	PaidAmount  int64   `json:"paidAmount"`
	WeightKg    float64 `json:"weightKg"`
}

// TotalAmount sums the paid amounts of all line items.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.PaidAmount
	}
	return total
}

// TotalWeight sums the weights of all line items in kilograms.
func (o *Order) TotalWeight() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.WeightKg
	}
	return total
}
