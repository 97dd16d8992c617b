package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/service"
)

// resolveProject accepts a project code (case-insensitive), a full id, or
// a unique id prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}

	p, err := app.Projects.Resolve(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// loadQuote resolves the project reference and loads its tree.
func loadQuote(ctx context.Context, app *App, input string) (*service.Quote, error) {
	p, err := resolveProject(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Quotes.Load(ctx, p.ID)
}

// resolveNode finds a node in the tree by exact id or unique id prefix.
func resolveNode(root *domain.ScopeNode, input string) (*domain.ScopeNode, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("node ID is required")
	}
	if n := root.FindByID(input); n != nil {
		return n, nil
	}

	var matches []*domain.ScopeNode
	root.Walk(func(n *domain.ScopeNode, _ int) {
		if n.ID != "" && strings.HasPrefix(n.ID, input) {
			matches = append(matches, n)
		}
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("node not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("node ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItem finds one of node's own line items by id or unique id prefix.
func resolveItem(node *domain.ScopeNode, input string) (*domain.LineItem, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("item ID is required")
	}
	var matches []*domain.LineItem
	for _, li := range node.Items() {
		if li.ID == input {
			return li, nil
		}
		if li.ID != "" && strings.HasPrefix(li.ID, input) {
			matches = append(matches, li)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("line item %q not found on node %q", input, node.Name)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
