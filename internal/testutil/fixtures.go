package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testCodeCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func WithCustomer(id string) ProjectOption {
	return func(p *domain.Project) {
		p.CustomerID = &id
	}
}

// NewTestProject builds a draft project with a unique TST-2026-NNNN code.
func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Code:      domain.FormatCode("TST", 2026, int(testCodeCounter.Add(1))),
		Title:     title,
		Status:    domain.ProjectDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestProduct builds a catalog product. price and cost are decimal strings.
func NewTestProduct(name, price, cost string) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:           uuid.New().String(),
		Name:         name,
		SalePrice:    decimal.RequireFromString(price),
		PurchaseCost: decimal.RequireFromString(cost),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func NewTestCustomer(name string) *domain.Customer {
	return &domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     "+90 555 000 0000",
		Email:     "buyer@example.com",
		CreatedAt: time.Now().UTC(),
	}
}
