package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

var orderStatusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusPaid:      1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionOrder allows forward moves only: pending → paid → shipped → delivered.
func CanTransitionOrder(from, to string) bool {
	f, okFrom := orderStatusRank[from]
	t, okTo := orderStatusRank[to]
	return okFrom && okTo && t > f
}

// ShippingAddress is embedded into orders with a ship_ column prefix.
type ShippingAddress struct {
	Line1    string  `json:"line1" gorm:"not null"`
	Line2    *string `json:"line2,omitempty"`
	City     string  `json:"city" gorm:"not null"`
	County   *string `json:"county,omitempty"`
	Postcode string  `json:"postcode" gorm:"not null"`
	Country  string  `json:"country" gorm:"not null"`
}

// ═══════════════════════════════════════════════════════════
// Order (GORM)
// ═══════════════════════════════════════════════════════════

type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"not null;uniqueIndex"`
	PaymentIntentID string          `json:"payment_intent_id" gorm:"not null;uniqueIndex"`
	CustomerName    string          `json:"customer_name" gorm:"not null"`
	CustomerEmail   string          `json:"customer_email" gorm:"not null;index"`
	CustomerPhone   *string         `json:"customer_phone,omitempty"`
	Shipping        ShippingAddress `json:"shipping" gorm:"embedded;embeddedPrefix:ship_"`
	Notes           *string         `json:"notes,omitempty" gorm:"type:text"`
	Total           decimal.Decimal `json:"total" gorm:"type:numeric(12,2);not null" swaggertype:"string"`
	Currency        string          `json:"currency" gorm:"size:3;not null"`
	Status          string          `json:"status" gorm:"not null;index;check:status IN ('pending', 'paid', 'shipped', 'delivered')"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime;index:idx_orders_created,sort:desc"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// ItemCount returns the total number of units on the order.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// OrderItem snapshots the part name and price at the moment of purchase.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	PartID    uuid.UUID       `json:"part_id" gorm:"type:uuid;not null;index"`
	PartName  string          `json:"part_name" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null" swaggertype:"string"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	LineTotal decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2);not null" swaggertype:"string"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ═══════════════════════════════════════════════════════════
// Requests / responses
// ═══════════════════════════════════════════════════════════

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered"`
}

// OrderListRow is the dashboard table row.
type OrderListRow struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (o *Order) ToListRow() OrderListRow {
	return OrderListRow{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ItemCount:     o.ItemCount(),
		Total:         o.Total,
		Currency:      o.Currency,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

type OrderStats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	PaidOrders      int64           `json:"paid_orders"`
	ShippedOrders   int64           `json:"shipped_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	Revenue         decimal.Decimal `json:"revenue" swaggertype:"string"`
	AverageOrder    decimal.Decimal `json:"average_order" swaggertype:"string"`
	UnitsSold       int64           `json:"units_sold"`
}

// OrderTrackingResponse is what a guest sees when looking up their order.
type OrderTrackingResponse struct {
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total" swaggertype:"string"`
	Currency    string          `json:"currency"`
	Items       []OrderItem     `json:"items"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	ShippedAt   *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (o *Order) ToTracking() OrderTrackingResponse {
	return OrderTrackingResponse{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Total,
		Currency:    o.Currency,
		Items:       o.Items,
		PaidAt:      o.PaidAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
	}
}
