package domain

// Remove detaches n and its whole subtree from the parent. The project root
// cannot be removed; a detached non-root subtree has nothing to detach from.
func (n *ScopeNode) Remove() error {
	if n.parent == nil {
		if n.Kind == NodeProject {
			return ErrCannotRemoveRoot
		}
		return ErrNoParent
	}
	parent := n.parent
	n.detach()
	parent.NotifyTotalsChanged()
	return nil
}

// Clone deep-copies n and its subtree under a new name. Every node and line
// item in the copy has a fresh (empty) identity and the copy is detached; the
// caller decides where to attach it.
func (n *ScopeNode) Clone(newName string) *ScopeNode {
	c := n.cloneSubtree()
	c.Name = newName
	return c
}

func (n *ScopeNode) cloneSubtree() *ScopeNode {
	c := NewScopeNode(n.Name, n.Kind)
	c.items = cloneItems(n.items)
	c.children = make([]*ScopeNode, 0, len(n.children))
	for _, child := range n.children {
		cc := child.cloneSubtree()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func cloneItems(items []*LineItem) []*LineItem {
	out := make([]*LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

// CopyItemsTo replaces target's own items with copies of n's own items.
// Children of either node are not touched.
func (n *ScopeNode) CopyItemsTo(target *ScopeNode) {
	if target == n {
		return
	}
	target.replaceItems(cloneItems(n.items))
}

// ApplyToSiblings copies n's items onto every sibling of the same kind and
// returns how many siblings were updated. Zero matches is not an error.
func (n *ScopeNode) ApplyToSiblings() (int, error) {
	if n.parent == nil {
		return 0, ErrNoParent
	}
	updated := 0
	for _, s := range n.parent.children {
		if s == n || s.Kind != n.Kind {
			continue
		}
		n.CopyItemsTo(s)
		updated++
	}
	return updated, nil
}

// Siblings returns the other children of n's parent, in order.
func (n *ScopeNode) Siblings() []*ScopeNode {
	if n.parent == nil {
		return nil
	}
	out := make([]*ScopeNode, 0, len(n.parent.children)-1)
	for _, s := range n.parent.children {
		if s != n {
			out = append(out, s)
		}
	}
	return out
}

// MoveTo reparents n under newParent at index (clamped to the valid range
// after n has been taken out of its current position). Moving into n's own
// subtree is rejected and leaves the tree unchanged.
func (n *ScopeNode) MoveTo(newParent *ScopeNode, index int) error {
	if n.parent == nil {
		return ErrNoParent
	}
	if newParent == n || n.IsAncestorOf(newParent) {
		return ErrCycleDetected
	}
	oldParent := n.parent
	n.detach()
	index = clampIndex(index, len(newParent.children))
	newParent.children = append(newParent.children, nil)
	copy(newParent.children[index+1:], newParent.children[index:])
	newParent.children[index] = n
	n.parent = newParent

	oldParent.NotifyTotalsChanged()
	if newParent != oldParent {
		newParent.NotifyTotalsChanged()
	}
	return nil
}

// InsertionTarget returns the node a new child of the given kind should be
// added under when selected is the current selection: adding a flat while a
// flat is selected goes to that flat's parent, everything else goes under the
// selection itself.
func InsertionTarget(selected *ScopeNode, kind NodeKind) *ScopeNode {
	if kind == NodeFlat && selected.Kind == NodeFlat && selected.parent != nil {
		return selected.parent
	}
	return selected
}
