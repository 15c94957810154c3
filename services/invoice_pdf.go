package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	invoiceDark  = color.Color{Red: 24, Green: 24, Blue: 27}
	invoiceMuted = color.Color{Red: 113, Green: 113, Blue: 122}
	invoiceRed   = color.Color{Red: 200, Green: 16, Blue: 46}
)

// BusinessDetails is printed in the invoice header.
type BusinessDetails struct {
	Name    string
	Email   string
	Address string
}

var DefaultBusiness = BusinessDetails{
	Name:    "JP PERFORMANCE CARS",
	Email:   "info@jpperformancecars.co.uk",
	Address: "Unit 4, Maple Industrial Estate, Leeds LS12 6AB",
}

// GenerateInvoicePDF renders an A4 invoice for order. Items must be loaded.
func GenerateInvoicePDF(order *models.Order, business BusinessDetails) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	money := func(v decimal.Decimal) string {
		return utils.FormatMoney(v, order.Currency)
	}

	m.Row(15, func() {
		m.Col(8, func() {
			m.Text("INVOICE", props.Text{Size: 24, Style: consts.Bold, Color: invoiceDark})
		})
		m.Col(4, func() {
			m.Text(strings.ToUpper(order.Status), props.Text{Size: 10, Style: consts.Bold, Color: invoiceRed, Align: consts.Right})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(business.Name, props.Text{Size: 14, Style: consts.Bold, Color: invoiceDark})
		})
	})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(business.Address, props.Text{Size: 9, Color: invoiceMuted})
		})
	})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(business.Email, props.Text{Size: 9, Color: invoiceMuted})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("SHIP TO", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark})
		})
		m.Col(6, func() {
			m.Text("INVOICE DETAILS", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark, Align: consts.Right})
		})
	})

	left := append([]string{order.CustomerName, order.CustomerEmail}, addressLines(order.Shipping)...)
	right := []string{
		fmt.Sprintf("Invoice #%s", order.OrderNumber),
		fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")),
		fmt.Sprintf("Payment ref: %s", order.PaymentIntentID),
	}
	for i := 0; i < len(left) || i < len(right); i++ {
		l, r := "", ""
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(l, props.Text{Size: 9, Color: invoiceDark})
			})
			m.Col(6, func() {
				m.Text(r, props.Text{Size: 9, Color: invoiceMuted, Align: consts.Right})
			})
		})
	}

	m.Row(8, func() {})

	header := props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark}
	headerRight := header
	headerRight.Align = consts.Right
	m.Row(6, func() {
		m.Col(6, func() { m.Text("Part", header) })
		m.Col(2, func() { m.Text("Qty", headerRight) })
		m.Col(2, func() { m.Text("Price", headerRight) })
		m.Col(2, func() { m.Text("Total", headerRight) })
	})
	m.Line(0.5, props.Line{Color: invoiceMuted})

	cell := props.Text{Size: 9, Color: invoiceDark}
	cellRight := cell
	cellRight.Align = consts.Right
	for _, item := range order.Items {
		m.Row(6, func() {
			m.Col(6, func() { m.Text(item.PartName, cell) })
			m.Col(2, func() { m.Text(fmt.Sprintf("%d", item.Quantity), cellRight) })
			m.Col(2, func() { m.Text(money(item.UnitPrice), cellRight) })
			m.Col(2, func() { m.Text(money(item.LineTotal), cellRight) })
		})
	}

	m.Row(8, func() {})

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 12, Style: consts.Bold, Color: invoiceDark, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(money(order.Total), props.Text{Size: 12, Style: consts.Bold, Color: invoiceDark, Align: consts.Right})
		})
	})

	if order.Notes != nil && *order.Notes != "" {
		m.Row(8, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Notes: "+*order.Notes, props.Text{Size: 8, Color: invoiceMuted})
			})
		})
	}

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for shopping with JP Performance Cars.", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark})
		})
	})

	buf, err := m.Output()
	if err != nil {
		log.Printf("[invoice] failed to generate PDF for %s: %v", order.OrderNumber, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func addressLines(a models.ShippingAddress) []string {
	lines := []string{a.Line1}
	if a.Line2 != nil && *a.Line2 != "" {
		lines = append(lines, *a.Line2)
	}
	city := a.City
	if a.County != nil && *a.County != "" {
		city += ", " + *a.County
	}
	return append(lines, city, a.Postcode, a.Country)
}
