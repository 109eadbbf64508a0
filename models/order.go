package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Fulfillment statuses in delivery order.
	OrderStatusPending        OrderStatus = "pending"          // Order placed, awaiting acceptance
	OrderStatusAccepted       OrderStatus = "accepted"         // Accepted by the shop
	OrderStatusShipped        OrderStatus = "shipped"          // Handed to the courier
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // With the delivery agent
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the item
	OrderStatusCancelled      OrderStatus = "cancelled"        // Terminal, reachable from any non-terminal state

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// orderStatusRank positions each forward-moving status. Cancelled carries
// no rank: it is reachable from any non-terminal state instead.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:        0,
	OrderStatusAccepted:       1,
	OrderStatusShipped:        2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

var (
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrBackwardTransition   = errors.New("order status cannot move backward")
	ErrTerminalOrderStatus  = errors.New("order is in a terminal status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusAccepted:
		return OrderStatusAccepted, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusOutForDelivery:
		return OrderStatusOutForDelivery, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentStatusPending:
		return PaymentStatusPending, nil
	case PaymentStatusPaid:
		return PaymentStatusPaid, nil
	case PaymentStatusFailed:
		return PaymentStatusFailed, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

// Terminal reports whether no further fulfillment transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition enforces the fulfillment state machine: statuses only move
// forward through the rank order, and Cancelled is allowed from any
// non-terminal state. A same-status update is a no-op and passes.
func CanTransition(from, to OrderStatus) error {
	if to == from {
		return nil
	}
	if from.Terminal() {
		return ErrTerminalOrderStatus
	}
	if to == OrderStatusCancelled {
		return nil
	}
	toRank, ok := orderStatusRank[to]
	if !ok {
		return ErrInvalidOrderStatus
	}
	if toRank < orderStatusRank[from] {
		return ErrBackwardTransition
	}
	return nil
}

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `json:"-"`
	AddressID     uint            `gorm:"not null" json:"address_id"`
	Address       UserAddress     `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentID     string          `gorm:"uniqueIndex;not null" json:"payment_id"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	Status        OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem snapshots the product name and unit price at purchase time so
// later catalog edits never rewrite order history.
type OrderItem struct {
	ID                uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           uint            `gorm:"index" json:"order_id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CustomizationText string          `json:"customization_text,omitempty"`
	ImagePath         string          `json:"image_path,omitempty"`
	Whatsapp          string          `json:"whatsapp,omitempty"`
	UseDefault        bool            `json:"use_default"`
}
