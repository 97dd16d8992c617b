// Package codec converts quote trees to flat relational rows and back.
//
// Flatten assigns identities to unsaved nodes and items so repeated saves
// of the same in-memory tree address the same rows. Rehydrate rebuilds the
// tree in two passes: it first materializes every node by id, then links
// parents and children, so storage row order never matters.
package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrDanglingParent indicates a node row whose parent id matches no row.
	ErrDanglingParent = errors.New("node references a missing parent")

	// ErrOrphanItem indicates an item row whose node id matches no row.
	ErrOrphanItem = errors.New("line item references a missing node")
)

// NodeRow is the stored shape of a ScopeNode.
type NodeRow struct {
	ID         string
	ProjectID  string
	ParentID   *string
	Kind       domain.NodeKind
	Name       string
	OrderIndex int
}

// ItemRow is the stored shape of a LineItem.
type ItemRow struct {
	ID          string
	NodeID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	OrderIndex  int
}

// Snapshot is a flattened project tree. Nodes are ordered parent-first.
type Snapshot struct {
	Nodes []NodeRow
	Items []ItemRow
}

// Flatten walks every root breadth-first and emits rows, parents before
// children. Nodes or items with an empty ID get one from newID, written back
// onto the in-memory object.
func Flatten(projectID string, roots []*domain.ScopeNode, newID func() string) Snapshot {
	type queued struct {
		node  *domain.ScopeNode
		index int
	}

	var snap Snapshot
	queue := make([]queued, 0, len(roots))
	for i, r := range roots {
		queue = append(queue, queued{node: r, index: i})
	}
	for head := 0; head < len(queue); head++ {
		n := queue[head].node
		if n.ID == "" {
			n.ID = newID()
		}

		row := NodeRow{
			ID:         n.ID,
			ProjectID:  projectID,
			Kind:       n.Kind,
			Name:       n.Name,
			OrderIndex: queue[head].index,
		}
		if p := n.Parent(); p != nil {
			pid := p.ID
			row.ParentID = &pid
		}
		snap.Nodes = append(snap.Nodes, row)

		for i, it := range n.Items() {
			if it.ID == "" {
				it.ID = newID()
			}
			snap.Items = append(snap.Items, ItemRow{
				ID:          it.ID,
				NodeID:      n.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				UnitCost:    it.UnitCost,
				OrderIndex:  i,
			})
		}
		for i, c := range n.Children() {
			queue = append(queue, queued{node: c, index: i})
		}
	}
	return snap
}

// Rehydrate rebuilds the trees described by the rows and returns the roots
// ordered by their order index.
func Rehydrate(nodes []NodeRow, items []ItemRow) ([]*domain.ScopeNode, error) {
	// Pass 1: materialize nodes without edges.
	byID := make(map[string]*domain.ScopeNode, len(nodes))
	rowByID := make(map[string]NodeRow, len(nodes))
	for _, r := range nodes {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", r.ID)
		}
		n := domain.NewScopeNode(r.Name, r.Kind)
		n.ID = r.ID
		byID[r.ID] = n
		rowByID[r.ID] = r
	}

	// Pass 2: group by parent, validate references, then link in saved order.
	childRows := make(map[string][]NodeRow)
	var rootRows []NodeRow
	for _, r := range nodes {
		if r.ParentID == nil {
			rootRows = append(rootRows, r)
			continue
		}
		if _, ok := byID[*r.ParentID]; !ok {
			return nil, fmt.Errorf("node %q parent %q: %w", r.ID, *r.ParentID, ErrDanglingParent)
		}
		childRows[*r.ParentID] = append(childRows[*r.ParentID], r)
	}
	if err := checkAcyclic(rowByID); err != nil {
		return nil, err
	}

	for parentID, rows := range childRows {
		sortRows(rows)
		parent := byID[parentID]
		for _, r := range rows {
			if err := parent.AppendChild(byID[r.ID]); err != nil {
				return nil, fmt.Errorf("linking node %q: %w", r.ID, err)
			}
		}
	}

	itemsByNode := make(map[string][]ItemRow)
	for _, it := range items {
		if _, ok := byID[it.NodeID]; !ok {
			return nil, fmt.Errorf("item %q node %q: %w", it.ID, it.NodeID, ErrOrphanItem)
		}
		itemsByNode[it.NodeID] = append(itemsByNode[it.NodeID], it)
	}
	for nodeID, rows := range itemsByNode {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].OrderIndex != rows[j].OrderIndex {
				return rows[i].OrderIndex < rows[j].OrderIndex
			}
			return rows[i].ID < rows[j].ID
		})
		node := byID[nodeID]
		for _, r := range rows {
			li := &domain.LineItem{
				ID:          r.ID,
				ProductID:   r.ProductID,
				ProductName: r.ProductName,
				Quantity:    r.Quantity,
				UnitPrice:   r.UnitPrice,
				UnitCost:    r.UnitCost,
			}
			if err := node.AppendItem(li); err != nil {
				return nil, fmt.Errorf("item %q: %w", r.ID, err)
			}
		}
	}

	sortRows(rootRows)
	roots := make([]*domain.ScopeNode, 0, len(rootRows))
	for _, r := range rootRows {
		roots = append(roots, byID[r.ID])
	}
	return roots, nil
}

func sortRows(rows []NodeRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].OrderIndex != rows[j].OrderIndex {
			return rows[i].OrderIndex < rows[j].OrderIndex
		}
		return rows[i].ID < rows[j].ID
	})
}

// checkAcyclic follows parent ids from every row and fails if any chain
// revisits a node. Rows in a cycle never reach a root and would otherwise be
// silently dropped from the result.
func checkAcyclic(rows map[string]NodeRow) error {
	state := make(map[string]int, len(rows)) // 0 unvisited, 1 on path, 2 done
	for id := range rows {
		var path []string
		cur := id
		for {
			if state[cur] == 2 {
				break
			}
			if state[cur] == 1 {
				return fmt.Errorf("node %q: %w", cur, domain.ErrCycleDetected)
			}
			state[cur] = 1
			path = append(path, cur)
			r := rows[cur]
			if r.ParentID == nil {
				break
			}
			cur = *r.ParentID
		}
		for _, p := range path {
			state[p] = 2
		}
	}
	return nil
}
