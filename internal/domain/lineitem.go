package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is a priced reference to a catalog product. It belongs to exactly
// one ScopeNode and is never shared between nodes.
type LineItem struct {
	ID          string // empty until persisted
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
}

// NewLineItem builds a line item from catalog data. The unit price defaults
// to the product's sale price unless an override is given; the unit cost is
// always the product's purchase cost at attach time.
func NewLineItem(p *Product, quantity int, unitPriceOverride *decimal.Decimal) (*LineItem, error) {
	if p == nil {
		return nil, fmt.Errorf("product is required")
	}
	li := &LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.SalePrice,
		UnitCost:    p.PurchaseCost,
	}
	if unitPriceOverride != nil {
		li.UnitPrice = *unitPriceOverride
	}
	if err := li.Validate(); err != nil {
		return nil, err
	}
	return li, nil
}

// Validate checks quantity >= 1 and non-negative price and cost.
func (li *LineItem) Validate() error {
	if li.Quantity < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidQuantity, li.Quantity)
	}
	if li.UnitPrice.IsNegative() || li.UnitCost.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

func (li *LineItem) LineRevenue() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li *LineItem) LineCost() decimal.Decimal {
	return li.UnitCost.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Clone returns a value copy with a fresh (empty) identity.
func (li *LineItem) Clone() *LineItem {
	c := *li
	c.ID = ""
	return &c
}

// SameValues reports whether two items carry the same product, quantity,
// price and cost, ignoring identity.
func (li *LineItem) SameValues(other *LineItem) bool {
	return li.ProductID == other.ProductID &&
		li.ProductName == other.ProductName &&
		li.Quantity == other.Quantity &&
		li.UnitPrice.Equal(other.UnitPrice) &&
		li.UnitCost.Equal(other.UnitCost)
}
