package importer

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Export renders a project and its tree in the import format. Refs are
// generated in pre-order, so parents always precede children and the result
// passes ValidateImportSchema unchanged.
func Export(project *domain.Project, root *domain.ScopeNode) *ImportSchema {
	schema := &ImportSchema{
		Project: ProjectImport{
			Title:      project.Title,
			Code:       project.Code,
			CustomerID: project.CustomerID,
			Status:     string(project.Status),
		},
	}

	refs := make(map[*domain.ScopeNode]string)
	root.Walk(func(n *domain.ScopeNode, _ int) {
		ref := fmt.Sprintf("n%d", len(refs)+1)
		refs[n] = ref

		ni := NodeImport{Ref: ref, Name: n.Name, Kind: string(n.Kind)}
		if p := n.Parent(); p != nil && n != root {
			parentRef := refs[p]
			ni.ParentRef = &parentRef
			ni.Order = n.IndexInParent()
		}
		schema.Nodes = append(schema.Nodes, ni)

		for i, li := range n.Items() {
			price, cost := li.UnitPrice, li.UnitCost
			schema.Items = append(schema.Items, ItemImport{
				NodeRef:     ref,
				ProductID:   li.ProductID,
				ProductName: li.ProductName,
				Quantity:    li.Quantity,
				UnitPrice:   &price,
				UnitCost:    &cost,
				Order:       i,
			})
		}
	})
	return schema
}
