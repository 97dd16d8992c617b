package importer

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	nodeRefs := make(map[string]bool)
	errs = append(errs, validateNodes(schema.Nodes, nodeRefs)...)
	errs = append(errs, validateItems(schema.Items, nodeRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Title == "" {
		errs = append(errs, fmt.Errorf("project.title is required"))
	}
	if p.Code != "" {
		candidate := domain.Project{Code: p.Code}
		if err := candidate.ValidateCode(); err != nil {
			errs = append(errs, fmt.Errorf("project.code: %w", err))
		}
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}

	return errs
}

func validateNodes(nodes []NodeImport, nodeRefs map[string]bool) []error {
	var errs []error

	if len(nodes) == 0 {
		return []error{fmt.Errorf("nodes: at least the project root is required")}
	}

	roots := 0
	for i, n := range nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)

		if n.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if nodeRefs[n.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, n.Ref))
		}

		if n.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if n.Kind == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		} else if !domain.ValidNodeKinds[n.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, n.Kind))
		}

		// Checked before this node's own ref is recorded, so a node can never
		// name itself or a later node as parent and cycles cannot be expressed.
		if n.ParentRef != nil && *n.ParentRef != "" {
			if !nodeRefs[*n.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in nodes list)", prefix, *n.ParentRef))
			}
		} else {
			roots++
			if n.Kind != string(domain.NodeProject) {
				errs = append(errs, fmt.Errorf("%s: a node without parent_ref must have kind %q", prefix, domain.NodeProject))
			}
		}

		if n.Ref != "" {
			nodeRefs[n.Ref] = true
		}
	}
	if roots != 1 {
		errs = append(errs, fmt.Errorf("nodes: expected exactly one root, found %d", roots))
	}

	return errs
}

func validateItems(items []ItemImport, nodeRefs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.NodeRef == "" {
			errs = append(errs, fmt.Errorf("%s.node_ref is required", prefix))
		} else if !nodeRefs[it.NodeRef] {
			errs = append(errs, fmt.Errorf("%s.node_ref: ref %q not found in nodes", prefix, it.NodeRef))
		}
		if it.ProductID == "" {
			errs = append(errs, fmt.Errorf("%s.product_id is required", prefix))
		}
		if it.Quantity < 1 {
			errs = append(errs, fmt.Errorf("%s.quantity: %w (got %d)", prefix, domain.ErrInvalidQuantity, it.Quantity))
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.unit_price must not be negative", prefix))
		}
		if it.UnitCost != nil && it.UnitCost.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.unit_cost must not be negative", prefix))
		}
	}

	return errs
}
