package repository

import (
	"context"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ScopeNodeRepo persists flattened tree nodes.
type ScopeNodeRepo interface {
	ListByProject(ctx context.Context, projectID string) ([]codec.NodeRow, error)
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)
	ProjectOf(ctx context.Context, id string) (string, error)
	Upsert(ctx context.Context, n codec.NodeRow) error
	Delete(ctx context.Context, id string) error
}

// LineItemRepo persists flattened line items.
type LineItemRepo interface {
	ListByProject(ctx context.Context, projectID string) ([]codec.ItemRow, error)
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)
	Upsert(ctx context.Context, li codec.ItemRow) error
	Delete(ctx context.Context, id string) error
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// CodeSequenceRepo hands out project codes.
type CodeSequenceRepo interface {
	NextCode(ctx context.Context, prefix string, year int) (string, error)
}
