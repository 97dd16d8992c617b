package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects   repository.ProjectRepo
	uow        db.UnitOfWork
	codePrefix string
	observer   UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, codePrefix string, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects:   projects,
		uow:        uow,
		codePrefix: codePrefix,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Create allocates a code, stores the project record and its root node in
// one transaction, and returns the empty quote.
func (s *projectService) Create(ctx context.Context, title string, customerID *string) (quote *Quote, err error) {
	fields := map[string]any{"title": title}
	defer useCase(ctx, s.observer, "create-project", fields)(&err)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("project title is required")
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:         uuid.New().String(),
		Title:      title,
		CustomerID: customerID,
		Status:     domain.ProjectDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	root := domain.NewProjectRoot(title)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if customerID != nil {
			if _, err := repository.NewSQLiteCustomerRepo(tx).GetByID(ctx, *customerID); err != nil {
				return fmt.Errorf("customer %s: %w", *customerID, err)
			}
		}
		code, err := repository.NewSQLiteCodeSequenceRepo(tx).NextCode(ctx, s.codePrefix, now.Year())
		if err != nil {
			return err
		}
		project.Code = code
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, project); err != nil {
			return err
		}
		return writeSnapshot(ctx, tx, project.ID, codec.Flatten(project.ID, []*domain.ScopeNode{root}, uuid.NewString))
	})
	if err != nil {
		return nil, err
	}
	fields["project_id"] = project.ID
	fields["code"] = project.Code

	return &Quote{Project: project, Roots: []*domain.ScopeNode{root}}, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrProjectNotFound)
	}
	return p, err
}

// Resolve accepts a project id or code.
func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	p, err := s.projects.GetByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p, err = s.projects.GetByCode(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project %q: %w", ref, domain.ErrProjectNotFound)
	}
	return p, err
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if !domain.ValidProjectStatuses[string(status)] {
		return nil, fmt.Errorf("invalid project status %q", status)
	}
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project with its whole tree.
func (s *projectService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}
