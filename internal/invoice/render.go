package invoice

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/harshava123/powderlegacy/internal/domain"
)

// Render builds the invoice HTML purely from an order snapshot. It is
// deterministic for a given order and regenerable at any time; the order
// record, not the invoice, is the source of truth for totals.
func Render(order *domain.Order) (string, error) {
	data := buildView(order)
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.String(), nil
}

// Filename returns the suggested download name for an order's invoice.
func Filename(orderID string) string {
	return fmt.Sprintf("Invoice_%s.html", orderID)
}

type lineView struct {
	Title    string
	Quantity int
	Price    int64
	Total    int64
}

type view struct {
	OrderID       string
	PaymentID     string
	Date          string
	PaymentMethod string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	Lines         []lineView
	Subtotal      int64
	Savings       int64
	DeliveryFee   int64
	GrandTotal    int64
}

func buildView(order *domain.Order) view {
	v := view{
		OrderID:       order.OrderID,
		PaymentID:     orDefault(order.PaymentID, "N/A"),
		Date:          order.CreatedAt.Format("2 January 2006"),
		PaymentMethod: "Razorpay",
		CustomerName:  "Customer",
		Email:         "N/A",
		Phone:         "N/A",
		Address:       "N/A",
		Subtotal:      order.Totals.Subtotal,
		Savings:       order.Totals.Savings,
		DeliveryFee:   order.Totals.DeliveryFee,
		GrandTotal:    order.Totals.GrandTotal,
	}
	if a := order.Address; a != nil {
		if name := a.FullName(); name != "" {
			v.CustomerName = name
		}
		v.Email = orDefault(a.Email, "N/A")
		v.Phone = orDefault(a.Phone, "N/A")
		v.Address = fmt.Sprintf("%s, %s, %s %s", a.Address, a.City, a.State, a.Pincode)
	}
	for _, it := range order.Items {
		v.Lines = append(v.Lines, lineView{
			Title:    fmt.Sprintf("%s (%s)", it.Name, it.Size),
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    it.Subtotal(),
		})
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page { margin: 0.3in; size: A4; }
        body { font-family: Arial, sans-serif; font-size: 10px; line-height: 1.3; margin: 0; padding: 0; color: #333; }
        .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 15px; border-bottom: 2px solid #8B7355; padding-bottom: 10px; }
        .company-name { font-size: 16px; font-weight: bold; color: #8B7355; margin: 0; }
        .company-tagline { font-size: 8px; color: #666; margin: 0; }
        .invoice-title { font-size: 20px; font-weight: bold; color: #8B7355; text-align: center; margin: 15px 0; }
        .details-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-bottom: 15px; }
        .detail-section h3 { font-size: 12px; color: #8B7355; margin: 0 0 8px 0; border-bottom: 1px solid #8B7355; padding-bottom: 3px; }
        .detail-row { display: flex; justify-content: space-between; margin: 3px 0; font-size: 9px; }
        .detail-label { font-weight: bold; }
        .items-table { width: 100%; border-collapse: collapse; margin: 15px 0; font-size: 9px; }
        .items-table th { background: #8B7355; color: white; padding: 8px; text-align: left; font-weight: bold; }
        .items-table td { padding: 6px; border: 1px solid #ddd; }
        .items-table tr:nth-child(even) { background: #f9f9f9; }
        .totals { margin-top: 15px; }
        .total-row { display: flex; justify-content: space-between; margin: 5px 0; font-size: 10px; }
        .total-row.final { border-top: 2px solid #8B7355; padding-top: 8px; font-weight: bold; font-size: 12px; color: #8B7355; }
        .footer { margin-top: 20px; text-align: center; font-size: 8px; color: #666; border-top: 1px solid #ddd; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1 class="company-name">THE POWDER LEGACY</h1>
            <p class="company-tagline">100% HAND-MADE &bull; Traditional Self-Care Products</p>
        </div>
    </div>

    <div class="invoice-title">INVOICE</div>

    <div class="details-grid">
        <div class="detail-section">
            <h3>Invoice Details</h3>
            <div class="detail-row"><span class="detail-label">Invoice No:</span><span>{{.OrderID}}</span></div>
            <div class="detail-row"><span class="detail-label">Payment ID:</span><span>{{.PaymentID}}</span></div>
            <div class="detail-row"><span class="detail-label">Date:</span><span>{{.Date}}</span></div>
            <div class="detail-row"><span class="detail-label">Payment Method:</span><span>{{.PaymentMethod}}</span></div>
        </div>

        <div class="detail-section">
            <h3>Customer Details</h3>
            <div class="detail-row"><span class="detail-label">Name:</span><span>{{.CustomerName}}</span></div>
            <div class="detail-row"><span class="detail-label">Email:</span><span>{{.Email}}</span></div>
            <div class="detail-row"><span class="detail-label">Phone:</span><span>{{.Phone}}</span></div>
            <div class="detail-row"><span class="detail-label">Address:</span><span>{{.Address}}</span></div>
        </div>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Product</th>
                <th>Quantity</th>
                <th>Unit Price</th>
                <th>Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>&#8377;{{.Price}}</td><td>&#8377;{{.Total}}</td></tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <div class="total-row">
            <span>Subtotal:</span>
            <span>&#8377;{{.Subtotal}}</span>
        </div>
        <div class="total-row">
            <span>Savings:</span>
            <span>-&#8377;{{.Savings}}</span>
        </div>
        <div class="total-row">
            <span>Delivery Charges:</span>
            <span>&#8377;{{.DeliveryFee}}</span>
        </div>
        <div class="total-row final">
            <span>Grand Total:</span>
            <span>&#8377;{{.GrandTotal}}</span>
        </div>
    </div>

    <div class="footer">
        <p>Thank you for choosing The Powder Legacy!</p>
        <p>For any queries, contact us at: support@powderlegacy.com</p>
    </div>
</body>
</html>`))
