package domain

import (
	"time"
)

// Product is a catalog entry. The catalog is an external collaborator; the
// storefront never mutates it.
type Product struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Images   []string      `json:"images"`
	Sizes    []ProductSize `json:"sizes"`
}

// ProductSize is a purchasable variant of a product, each with its own price
// and stock count. Prices are whole rupees.
type ProductSize struct {
	Label    string  `json:"size"`
	WeightKG float64 `json:"weight_kg"`
	Price    int64   `json:"price"`
	Stock    int     `json:"stock"`
}

// SizeByLabel returns the size with the given label, or nil.
func (p *Product) SizeByLabel(label string) *ProductSize {
	for i := range p.Sizes {
		if p.Sizes[i].Label == label {
			return &p.Sizes[i]
		}
	}
	return nil
}

// FirstImage returns the product's primary image, or fallback when the
// product carries none.
func (p *Product) FirstImage(fallback string) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return fallback
}

// CartLineItem is one purchasable unit inside the cart. (ProductID, Size) is
// the identity key. Price and image are snapshots taken at add time and do not
// follow later catalog changes.
type CartLineItem struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Image     string `json:"image,omitempty"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	MaxStock  int    `json:"max_stock"`
}

// Subtotal returns price * quantity for this line.
func (it CartLineItem) Subtotal() int64 {
	return it.Price * int64(it.Quantity)
}

// Matches reports whether the line has the given identity key.
func (it CartLineItem) Matches(productID int64, size string) bool {
	return it.ProductID == productID && it.Size == size
}

// Cart holds the current cart lines. At most one line exists per
// (ProductID, Size) pair.
type Cart struct {
	Items []CartLineItem `json:"items"`
}

// Total is the sum of price * quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities over all lines (cart badge count, not
// line count).
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Savings is rendered on invoices but no discount tier exists yet, so it is
// always zero.
func (c *Cart) Savings() int64 {
	return 0
}

// Find returns the index of the line with the given identity key, or -1.
func (c *Cart) Find(productID int64, size string) int {
	for i, it := range c.Items {
		if it.Matches(productID, size) {
			return i
		}
	}
	return -1
}

// ShippingAddress is the structured address captured at the first checkout
// step. Only presence of the required fields is validated.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
}

// FullName joins first and last name for prefill and invoices.
func (a *ShippingAddress) FullName() string {
	name := a.FirstName
	if a.LastName != "" {
		name = a.FirstName + " " + a.LastName
	}
	return name
}

// Lines renders the address as display lines for emails.
func (a *ShippingAddress) Lines() []string {
	lines := make([]string, 0, 5)
	if n := a.FullName(); n != "" {
		lines = append(lines, n)
	}
	if a.Address != "" {
		lines = append(lines, a.Address)
	}
	region := a.City
	if a.State != "" {
		region += ", " + a.State
	}
	if a.Pincode != "" {
		region += " " + a.Pincode
	}
	if region != "" {
		lines = append(lines, region)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	if a.Phone != "" {
		lines = append(lines, "Phone: "+a.Phone)
	}
	return lines
}

// DeliverySelection is the chosen delivery tier plus its flat fee, persisted
// to the order draft at the delivery step.
type DeliverySelection struct {
	Tier         DeliveryTier `json:"tier"`
	Fee          int64        `json:"fee"`
	Instructions string       `json:"instructions,omitempty"`
}

// OrderDraft accumulates checkout state across steps. Address and Delivery
// persist independently so leaving mid-flow never loses an earlier step.
type OrderDraft struct {
	Address  *ShippingAddress   `json:"address,omitempty"`
	Delivery *DeliverySelection `json:"delivery,omitempty"`
}

// OrderTotals breaks down what the customer was charged.
// GrandTotal = Subtotal - Savings + DeliveryFee.
type OrderTotals struct {
	Subtotal    int64 `json:"subtotal"`
	Savings     int64 `json:"savings"`
	DeliveryFee int64 `json:"delivery"`
	GrandTotal  int64 `json:"total"`
}

// Order is the persisted record written once per successful payment. Writes
// are upserts keyed by OrderID so duplicate confirmation events merge instead
// of duplicating rows.
type Order struct {
	OrderID       string             `json:"order_id"`
	PaymentID     string             `json:"payment_id,omitempty"`
	UserID        string             `json:"user_id,omitempty"`
	Items         []CartLineItem     `json:"items"`
	Totals        OrderTotals        `json:"totals"`
	Address       *ShippingAddress   `json:"shipping_address,omitempty"`
	Delivery      *DeliverySelection `json:"delivery_info,omitempty"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
}
