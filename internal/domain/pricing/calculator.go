// Package pricing turns order line items into money figures.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one product, quantity and unit price entry of a draft order
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Amount returns quantity × unit price
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Discount carries at most one source of truth for an order discount.
// A non-nil Amount is used verbatim and Rate is ignored.
type Discount struct {
	Rate   *decimal.Decimal // percent, 0-100 expected
	Amount *decimal.Decimal
}

// NoDiscount is the zero discount
var NoDiscount = Discount{}

// RateDiscount builds a percentage discount
func RateDiscount(rate decimal.Decimal) Discount {
	return Discount{Rate: &rate}
}

// AmountDiscount builds a fixed amount discount
func AmountDiscount(amount decimal.Decimal) Discount {
	return Discount{Amount: &amount}
}

// PricedOrder holds the derived money fields of an order.
// TotalAmount always equals Subtotal - DiscountAmount and is not floored at zero.
type PricedOrder struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Calculator prices orders, rounding rate discounts to a fixed currency scale.
type Calculator struct {
	scale int32
}

// NewCalculator creates a calculator rounding to scale decimal places (0 for yen)
func NewCalculator(scale int32) *Calculator {
	return &Calculator{scale: scale}
}

// Price computes subtotal, discount and total for one order.
// Quantities and prices are not validated; whatever arithmetic follows is returned.
func (c *Calculator) Price(items []LineItem, discount Discount) PricedOrder {
	subtotal := c.Subtotal(items)
	discountAmount := c.DiscountAmount(subtotal, discount)

	return PricedOrder{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TotalAmount:    subtotal.Sub(discountAmount),
	}
}

// Subtotal sums quantity × unit price over items
func (c *Calculator) Subtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	return subtotal
}

// DiscountAmount resolves the discount against subtotal.
// Precedence: explicit amount, then round(subtotal × rate / 100), then zero.
func (c *Calculator) DiscountAmount(subtotal decimal.Decimal, discount Discount) decimal.Decimal {
	switch {
	case discount.Amount != nil:
		return *discount.Amount
	case discount.Rate != nil:
		return subtotal.Mul(*discount.Rate).Div(hundred).Round(c.scale)
	default:
		return decimal.Zero
	}
}
