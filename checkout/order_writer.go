package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDraft is everything needed to record a paid order.
type OrderDraft struct {
	PaymentIntentID string
	Shipping        ShippingInfo
	Items           []cart.Item
	Total           decimal.Decimal
	Currency        string
}

// OrderWriter records paid orders. RecordPaidOrder is idempotent on the
// payment intent id: a second call returns the order written by the first.
type OrderWriter interface {
	RecordPaidOrder(ctx context.Context, draft OrderDraft) (*models.Order, error)
	FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error)
}

type GormOrderWriter struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOrderWriter(db *gorm.DB) *GormOrderWriter {
	return &GormOrderWriter{db: db, now: time.Now}
}

func (w *GormOrderWriter) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var order models.Order
	err := w.db.WithContext(ctx).
		Preload("Items").
		Where("payment_intent_id = ?", paymentIntentID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (w *GormOrderWriter) RecordPaidOrder(ctx context.Context, draft OrderDraft) (*models.Order, error) {
	if existing, err := w.FindByPaymentIntent(ctx, draft.PaymentIntentID); err != nil {
		return nil, err
	} else if existing != nil {
		log.Printf("[checkout.order] order %s already recorded for %s", existing.OrderNumber, draft.PaymentIntentID)
		return existing, nil
	}

	// A clash on order_number is retried with a fresh number; a clash on
	// payment_intent_id means a concurrent writer won.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		order := w.buildOrder(draft)
		err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			return decrementStock(tx, draft.Items)
		})
		if err == nil {
			log.Printf("[checkout.order] ✅ recorded order %s for %s", order.OrderNumber, draft.PaymentIntentID)
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if existing, findErr := w.FindByPaymentIntent(ctx, draft.PaymentIntentID); findErr == nil && existing != nil {
			return existing, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("could not allocate order number: %w", lastErr)
}

func (w *GormOrderWriter) buildOrder(draft OrderDraft) *models.Order {
	now := w.now().UTC()
	s := draft.Shipping
	order := &models.Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		PaymentIntentID: draft.PaymentIntentID,
		CustomerName:    s.Name,
		CustomerEmail:   s.Email,
		CustomerPhone:   s.Phone,
		Shipping: models.ShippingAddress{
			Line1:    s.AddressLine1,
			Line2:    s.AddressLine2,
			City:     s.City,
			County:   s.County,
			Postcode: s.Postcode,
			Country:  s.Country,
		},
		Notes:    s.Notes,
		Total:    draft.Total,
		Currency: draft.Currency,
		Status:   models.OrderStatusPaid,
		PaidAt:   &now,
	}
	for _, it := range draft.Items {
		order.Items = append(order.Items, models.OrderItem{
			PartID:    it.PartID,
			PartName:  it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return order
}

// decrementStock never blocks a paid order: stock is clamped at zero and the
// part flips to out_of_stock.
func decrementStock(tx *gorm.DB, items []cart.Item) error {
	for _, it := range items {
		res := tx.Exec(`
			UPDATE parts
			SET stock_quantity = GREATEST(stock_quantity - ?, 0),
			    availability = CASE WHEN stock_quantity - ? <= 0 THEN 'out_of_stock' ELSE availability END,
			    updated_at = NOW()
			WHERE id = ?`,
			it.Quantity, it.Quantity, it.PartID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("[checkout.order] ⚠️ part %s (%s) no longer exists, stock not adjusted", it.PartID, it.Name)
		}
	}
	return nil
}
