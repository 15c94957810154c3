package order_controller

import (
	"time"

	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
)

var (
	mailer    *services.OrderMailer
	feed      *services.OrderFeed
	reconcile checkout.ReconciliationQueue
	business  = services.DefaultBusiness
)

// Init wires the collaborators shared with the checkout flow. Any of them
// may be nil: the matching endpoints then answer 503 and status changes
// skip the customer email or the live broadcast.
func Init(m *services.OrderMailer, f *services.OrderFeed, q checkout.ReconciliationQueue) {
	mailer = m
	feed = f
	reconcile = q
}

// applyStatus moves order to status and stamps the milestone timestamps the
// first time each is reached. Skipped milestones are stamped too, so an
// order marked delivered straight from paid still records when it shipped.
func applyStatus(order *models.Order, status string, now time.Time) {
	order.Status = status
	switch status {
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
		fallthrough
	case models.OrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
		fallthrough
	case models.OrderStatusPaid:
		if order.PaidAt == nil {
			order.PaidAt = &now
		}
	}
}
