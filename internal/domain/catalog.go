package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. SalePrice and PurchaseCost seed the unit price
// and unit cost of line items attached from it.
type Product struct {
	ID           string
	Name         string
	SalePrice    decimal.Decimal
	PurchaseCost decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
