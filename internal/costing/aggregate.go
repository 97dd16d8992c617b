// Package costing computes revenue, cost and profit rollups over quote trees.
// Every function reads the current tree state; nothing is cached.
package costing

import (
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the financial rollup of one or more trees.
type Summary struct {
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	Profit        decimal.Decimal
	MarginPercent decimal.Decimal
}

func TotalRevenue(roots []*domain.ScopeNode) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roots {
		total = total.Add(r.RecursiveTotal())
	}
	return total
}

func TotalCost(roots []*domain.ScopeNode) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roots {
		total = total.Add(r.RecursiveTotalCost())
	}
	return total
}

func TotalProfit(roots []*domain.ScopeNode) decimal.Decimal {
	return TotalRevenue(roots).Sub(TotalCost(roots))
}

// MarginPercent is profit / revenue * 100, or zero when revenue is zero.
func MarginPercent(roots []*domain.ScopeNode) decimal.Decimal {
	return margin(TotalRevenue(roots), TotalCost(roots))
}

// Summarize computes all four figures in one pass per root.
func Summarize(roots ...*domain.ScopeNode) Summary {
	revenue := TotalRevenue(roots)
	cost := TotalCost(roots)
	return Summary{
		Revenue:       revenue,
		Cost:          cost,
		Profit:        revenue.Sub(cost),
		MarginPercent: margin(revenue, cost),
	}
}

func margin(revenue, cost decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(hundred)
}

// NodeFigures is one row of a per-node breakdown.
type NodeFigures struct {
	Node        *domain.ScopeNode
	Depth       int
	Subtotal    decimal.Decimal
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
	ItemCount   int
	IsLastChild bool
}

// Breakdown lists every node under root depth-first in display order with
// its own subtotal and recursive figures.
func Breakdown(root *domain.ScopeNode) []NodeFigures {
	var rows []NodeFigures
	root.Walk(func(n *domain.ScopeNode, depth int) {
		revenue := n.RecursiveTotal()
		cost := n.RecursiveTotalCost()
		isLast := false
		if p := n.Parent(); p != nil {
			isLast = n.IndexInParent() == p.ChildCount()-1
		}
		rows = append(rows, NodeFigures{
			Node:        n,
			Depth:       depth,
			Subtotal:    n.Subtotal(),
			Revenue:     revenue,
			Cost:        cost,
			Profit:      revenue.Sub(cost),
			ItemCount:   len(n.Items()),
			IsLastChild: isLast,
		})
	})
	return rows
}

// ByKind sums recursive revenue of the top-most nodes of each kind, so a
// flat inside a flat is not counted twice.
func ByKind(root *domain.ScopeNode) map[domain.NodeKind]decimal.Decimal {
	out := map[domain.NodeKind]decimal.Decimal{}
	var visit func(n *domain.ScopeNode, seen map[domain.NodeKind]bool)
	visit = func(n *domain.ScopeNode, seen map[domain.NodeKind]bool) {
		if !seen[n.Kind] {
			out[n.Kind] = out[n.Kind].Add(n.RecursiveTotal())
			next := make(map[domain.NodeKind]bool, len(seen)+1)
			for k := range seen {
				next[k] = true
			}
			next[n.Kind] = true
			seen = next
		}
		for _, c := range n.Children() {
			visit(c, seen)
		}
	}
	visit(root, map[domain.NodeKind]bool{})
	return out
}
