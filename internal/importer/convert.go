package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/google/uuid"
)

// Converted is an import turned into domain objects. The project has no code
// yet; the caller allocates one when persisting.
type Converted struct {
	Project *domain.Project
	Root    *domain.ScopeNode
	Nodes   int
	Items   int
}

// Convert transforms a validated ImportSchema into a project and its tree.
// catalog must hold every product referenced by an item whose NeedsCatalog
// is true. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, catalog map[string]*domain.Product) (*Converted, error) {
	now := time.Now().UTC()

	status := domain.ProjectDraft
	if schema.Project.Status != "" {
		status = domain.ProjectStatus(schema.Project.Status)
	}
	project := &domain.Project{
		ID:         uuid.New().String(),
		Code:       schema.Project.Code,
		Title:      schema.Project.Title,
		CustomerID: schema.Project.CustomerID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Materialize every node first, then link children in (order, file) order.
	byRef := make(map[string]*domain.ScopeNode, len(schema.Nodes))
	children := make(map[string][]int)
	var root *domain.ScopeNode
	for i, n := range schema.Nodes {
		node := domain.NewScopeNode(n.Name, domain.NodeKind(n.Kind))
		byRef[n.Ref] = node
		if n.ParentRef == nil || *n.ParentRef == "" {
			root = node
			continue
		}
		children[*n.ParentRef] = append(children[*n.ParentRef], i)
	}
	if root == nil {
		return nil, fmt.Errorf("import has no project root")
	}
	for parentRef, idx := range children {
		sort.SliceStable(idx, func(a, b int) bool {
			return schema.Nodes[idx[a]].Order < schema.Nodes[idx[b]].Order
		})
		parent := byRef[parentRef]
		for _, i := range idx {
			if err := parent.AppendChild(byRef[schema.Nodes[i].Ref]); err != nil {
				return nil, fmt.Errorf("linking node %q: %w", schema.Nodes[i].Ref, err)
			}
		}
	}

	items := make([]int, len(schema.Items))
	for i := range items {
		items[i] = i
	}
	sort.SliceStable(items, func(a, b int) bool {
		return schema.Items[items[a]].Order < schema.Items[items[b]].Order
	})
	for _, i := range items {
		it := schema.Items[i]
		node, ok := byRef[it.NodeRef]
		if !ok {
			return nil, fmt.Errorf("node_ref %q not found for item %d", it.NodeRef, i)
		}
		var defaults domain.Product
		if it.NeedsCatalog() {
			p, ok := catalog[it.ProductID]
			if !ok {
				return nil, fmt.Errorf("items[%d]: product %q not in catalog", i, it.ProductID)
			}
			defaults = *p
		}
		li := &domain.LineItem{
			ProductID:   it.ProductID,
			ProductName: domain.CoalesceStr(it.ProductName, defaults.Name),
			Quantity:    it.Quantity,
			UnitPrice:   domain.DecimalFromPtrWithDefault(defaults.SalePrice, it.UnitPrice),
			UnitCost:    domain.DecimalFromPtrWithDefault(defaults.PurchaseCost, it.UnitCost),
		}
		if err := node.AppendItem(li); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}

	return &Converted{
		Project: project,
		Root:    root,
		Nodes:   len(schema.Nodes),
		Items:   len(schema.Items),
	}, nil
}
