package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScopeNode is one structural unit of a quote: the project itself, a block,
// a floor, a flat, or a free-form zone.
//
// Ownership flows only through the children slice. The parent pointer is a
// navigation link used to walk upward and is never persisted as ownership.
type ScopeNode struct {
	ID   string // empty until persisted
	Name string
	Kind NodeKind

	items     []*LineItem
	children  []*ScopeNode
	parent    *ScopeNode
	listeners []totalsListener
	nextSubID int
}

type totalsListener struct {
	id int
	fn func(origin *ScopeNode)
}

// NewProjectRoot creates the root node of a new quote tree.
func NewProjectRoot(name string) *ScopeNode {
	return NewScopeNode(name, NodeProject)
}

// NewScopeNode creates a detached node with no items or children.
func NewScopeNode(name string, kind NodeKind) *ScopeNode {
	return &ScopeNode{Name: name, Kind: kind}
}

func (n *ScopeNode) Parent() *ScopeNode { return n.parent }

func (n *ScopeNode) IsRoot() bool { return n.parent == nil }

// Root walks parent links up to the top of the tree.
func (n *ScopeNode) Root() *ScopeNode {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Children returns the node's children in display order. The returned slice
// is a copy; reorder the tree through the mutation methods.
func (n *ScopeNode) Children() []*ScopeNode {
	out := make([]*ScopeNode, len(n.children))
	copy(out, n.children)
	return out
}

func (n *ScopeNode) ChildCount() int { return len(n.children) }

// Items returns the node's own line items in order. The returned slice is a copy.
func (n *ScopeNode) Items() []*LineItem {
	out := make([]*LineItem, len(n.items))
	copy(out, n.items)
	return out
}

// AddChild creates a node with the given name and kind, appends it to the
// children and returns it. Kind compatibility is not checked here.
func (n *ScopeNode) AddChild(name string, kind NodeKind) *ScopeNode {
	child := NewScopeNode(name, kind)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// AppendChild attaches a detached subtree (for example a clone) as the last child.
func (n *ScopeNode) AppendChild(child *ScopeNode) error {
	return n.insertChild(child, len(n.children))
}

// InsertChild attaches a detached subtree at index, clamped to [0, len(children)].
func (n *ScopeNode) InsertChild(child *ScopeNode, index int) error {
	return n.insertChild(child, index)
}

func (n *ScopeNode) insertChild(child *ScopeNode, index int) error {
	if child.parent != nil {
		return ErrAlreadyAttached
	}
	if child == n || child.IsAncestorOf(n) {
		return ErrCycleDetected
	}
	index = clampIndex(index, len(n.children))
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.NotifyTotalsChanged()
	return nil
}

// detach unlinks n from its parent's children without notifying.
func (n *ScopeNode) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// IndexInParent returns the node's position among its siblings, or -1 for a root.
func (n *ScopeNode) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n appears on other's parent chain.
func (n *ScopeNode) IsAncestorOf(other *ScopeNode) bool {
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Depth is the number of edges between n and its root.
func (n *ScopeNode) Depth() int {
	d := 0
	for cur := n.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}

// Walk visits n and its descendants depth-first in display order.
func (n *ScopeNode) Walk(fn func(node *ScopeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *ScopeNode) walk(fn func(*ScopeNode, int), depth int) {
	fn(n, depth)
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// FindByID returns the node in n's subtree with the given id, or nil.
func (n *ScopeNode) FindByID(id string) *ScopeNode {
	if id == "" {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

func (n *ScopeNode) Rename(newName string) {
	n.Name = newName
}

// Subtotal is the revenue of the node's own items, not its descendants.
func (n *ScopeNode) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range n.items {
		total = total.Add(it.LineRevenue())
	}
	return total
}

// SubtotalCost is the cost of the node's own items, not its descendants.
func (n *ScopeNode) SubtotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range n.items {
		total = total.Add(it.LineCost())
	}
	return total
}

// RecursiveTotal is Subtotal plus the recursive totals of every child.
// It is recomputed on every call.
func (n *ScopeNode) RecursiveTotal() decimal.Decimal {
	total := n.Subtotal()
	for _, c := range n.children {
		total = total.Add(c.RecursiveTotal())
	}
	return total
}

func (n *ScopeNode) RecursiveTotalCost() decimal.Decimal {
	total := n.SubtotalCost()
	for _, c := range n.children {
		total = total.Add(c.RecursiveTotalCost())
	}
	return total
}

// AttachItem builds a line item from the product and appends it.
func (n *ScopeNode) AttachItem(p *Product, quantity int, unitPriceOverride *decimal.Decimal) (*LineItem, error) {
	li, err := NewLineItem(p, quantity, unitPriceOverride)
	if err != nil {
		return nil, err
	}
	n.items = append(n.items, li)
	n.NotifyTotalsChanged()
	return li, nil
}

// AppendItem appends an already-built item after validating it.
func (n *ScopeNode) AppendItem(li *LineItem) error {
	if err := li.Validate(); err != nil {
		return err
	}
	n.items = append(n.items, li)
	n.NotifyTotalsChanged()
	return nil
}

// DetachItem removes the item if present. A missing item is not an error;
// the return value reports whether anything was removed.
func (n *ScopeNode) DetachItem(li *LineItem) bool {
	for i, it := range n.items {
		if it == li {
			n.items = append(n.items[:i:i], n.items[i+1:]...)
			n.NotifyTotalsChanged()
			return true
		}
	}
	return false
}

// UpdateItem changes quantity and unit price of one of n's items.
func (n *ScopeNode) UpdateItem(li *LineItem, quantity int, unitPrice decimal.Decimal) error {
	owned := false
	for _, it := range n.items {
		if it == li {
			owned = true
			break
		}
	}
	if !owned {
		return fmt.Errorf("line item %q does not belong to node %q", li.ProductName, n.Name)
	}
	candidate := *li
	candidate.Quantity = quantity
	candidate.UnitPrice = unitPrice
	if err := candidate.Validate(); err != nil {
		return err
	}
	li.Quantity = quantity
	li.UnitPrice = unitPrice
	n.NotifyTotalsChanged()
	return nil
}

func (n *ScopeNode) replaceItems(items []*LineItem) {
	n.items = items
	n.NotifyTotalsChanged()
}

// OnTotalsChanged registers fn to run whenever priced content changes in n's
// subtree. The returned func unregisters it.
func (n *ScopeNode) OnTotalsChanged(fn func(origin *ScopeNode)) (cancel func()) {
	n.nextSubID++
	id := n.nextSubID
	n.listeners = append(n.listeners, totalsListener{id: id, fn: fn})
	return func() {
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// NotifyTotalsChanged runs listeners on n and every ancestor up to the root,
// synchronously. Totals are always recomputed on read, so this only tells
// observers to re-read them.
func (n *ScopeNode) NotifyTotalsChanged() {
	for cur := n; cur != nil; cur = cur.parent {
		for _, l := range cur.listeners {
			l.fn(n)
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
