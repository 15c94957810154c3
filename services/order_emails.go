package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
)

// EmailSender is satisfied by ResendClient.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string, attachments ...EmailAttachment) error
}

// OrderMailer emails customers about their orders. It is registered as a
// checkout notifier so every recorded order gets a confirmation with the
// invoice attached.
type OrderMailer struct {
	sender   EmailSender
	business BusinessDetails
	timeout  time.Duration
}

func NewOrderMailer(sender EmailSender, business BusinessDetails) *OrderMailer {
	return &OrderMailer{sender: sender, business: business, timeout: 30 * time.Second}
}

// OrderRecorded sends the confirmation in the background.
func (m *OrderMailer) OrderRecorded(_ context.Context, order *models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if err := m.SendConfirmation(ctx, order); err != nil {
			log.Printf("[order.email] ❌ confirmation for %s failed: %v", order.OrderNumber, err)
		}
	}()
}

// SendConfirmation sends the "order received" email with the PDF invoice.
func (m *OrderMailer) SendConfirmation(ctx context.Context, order *models.Order) error {
	pdfBytes, err := GenerateInvoicePDF(order, m.business)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order %s confirmed - JP Performance Cars", order.OrderNumber)
	intro := "Thanks for your order. We've received your payment and will let you know as soon as it ships."
	return m.sender.Send(ctx, order.CustomerEmail, subject, m.orderHTML(order, intro), invoiceAttachment(order, pdfBytes))
}

// SendInvoice re-sends the invoice on request from the dashboard.
func (m *OrderMailer) SendInvoice(ctx context.Context, order *models.Order) error {
	pdfBytes, err := GenerateInvoicePDF(order, m.business)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your invoice #%s from JP Performance Cars", order.OrderNumber)
	intro := "Please find your invoice attached."
	return m.sender.Send(ctx, order.CustomerEmail, subject, m.orderHTML(order, intro), invoiceAttachment(order, pdfBytes))
}

// SendStatusUpdate tells the customer their order has shipped or arrived.
func (m *OrderMailer) SendStatusUpdate(ctx context.Context, order *models.Order) error {
	var intro string
	switch order.Status {
	case models.OrderStatusShipped:
		intro = "Good news: your order is on its way."
	case models.OrderStatusDelivered:
		intro = "Your order has been marked as delivered. Enjoy the upgrade!"
	default:
		return nil
	}
	subject := fmt.Sprintf("Order %s update - JP Performance Cars", order.OrderNumber)
	return m.sender.Send(ctx, order.CustomerEmail, subject, m.orderHTML(order, intro))
}

func invoiceAttachment(order *models.Order, content []byte) EmailAttachment {
	return EmailAttachment{Filename: fmt.Sprintf("invoice-%s.pdf", order.OrderNumber), Content: content}
}

func (m *OrderMailer) orderHTML(order *models.Order, intro string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(`
      <tr>
        <td style="padding: 8px 0; font-size: 14px; color: #18181b;">%s</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; color: #18181b;">%d</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; font-weight: 600; color: #18181b;">%s</td>
      </tr>`,
			html.EscapeString(item.PartName), item.Quantity, utils.FormatMoney(item.LineTotal, order.Currency)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order %s</title></head>
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; background-color: #f4f4f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 640px; margin: auto; background: #ffffff; padding: 24px;">
    <tr><td style="border-bottom: 3px solid #c8102e; padding-bottom: 12px;">
      <h1 style="margin: 0; font-size: 22px; color: #18181b;">%s</h1>
    </td></tr>
    <tr><td style="padding: 16px 0; font-size: 14px; color: #18181b;">
      <p>Hi %s,</p>
      <p>%s</p>
      <p style="color: #71717a;">Order number: <strong>%s</strong></p>
    </td></tr>
    <tr><td>
      <table width="100%%" cellpadding="0" cellspacing="0" border="0">
        <thead><tr>
          <th style="text-align: left; font-size: 12px; text-transform: uppercase;">Part</th>
          <th style="text-align: right; font-size: 12px; text-transform: uppercase;">Qty</th>
          <th style="text-align: right; font-size: 12px; text-transform: uppercase;">Total</th>
        </tr></thead>
        <tbody>%s</tbody>
      </table>
    </td></tr>
    <tr><td style="padding-top: 12px; text-align: right; font-size: 16px; font-weight: bold;">Total %s</td></tr>
    <tr><td style="padding-top: 24px; font-size: 12px; color: #71717a;">Questions? Reply to this email or contact %s.</td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(m.business.Name),
		html.EscapeString(order.CustomerName),
		html.EscapeString(intro),
		html.EscapeString(order.OrderNumber),
		rows.String(),
		utils.FormatMoney(order.Total, order.Currency),
		html.EscapeString(m.business.Email),
	)
}
