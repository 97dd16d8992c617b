package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned by catalog lookups for unknown product ids.
var ErrProductNotFound = errors.New("product not found")

type catalogService struct {
	products repository.ProductRepo
}

func NewCatalogService(products repository.ProductRepo) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) Create(ctx context.Context, name string, salePrice, purchaseCost decimal.Decimal) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if salePrice.IsNegative() || purchaseCost.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ID:           uuid.New().String(),
		Name:         name,
		SalePrice:    salePrice,
		PurchaseCost: purchaseCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, err
}

func (s *catalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

type customerService struct {
	customers repository.CustomerRepo
}

func NewCustomerService(customers repository.CustomerRepo) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, name, phone, email string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	c := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Customer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}
