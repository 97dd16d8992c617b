package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/estimator/internal/costing"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteService_SaveLoadRoundTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	paint := s.product(t, "Paint", "45.50", "30")
	door := s.product(t, "Door", "350", "210.25")

	q, err := s.projects.Create(ctx, "Acme Towers", nil)
	require.NoError(t, err)
	root := q.Root()
	blockA := root.AddChild("A", domain.NodeBlock)
	floor := blockA.AddChild("1. Floor", domain.NodeFloor)
	flat := floor.AddChild("Flat 1", domain.NodeFlat)
	root.AddChild("Parking", domain.NodeZone)

	_, err = s.quotes.AttachProduct(ctx, flat, door.ID, 2, nil)
	require.NoError(t, err)
	override := dec("40")
	_, err = s.quotes.AttachProduct(ctx, floor, paint.ID, 3, &override)
	require.NoError(t, err)

	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))
	assert.NotEmpty(t, flat.ID, "save assigns ids to new nodes")
	assert.NotEmpty(t, flat.Items()[0].ID)

	loaded, err := s.quotes.Load(ctx, q.Project.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Roots, 1)
	lroot := loaded.Root()

	assert.Equal(t, root.ID, lroot.ID)
	assert.Equal(t, treeShape(root), treeShape(lroot))
	assert.True(t, lroot.RecursiveTotal().Equal(dec("820")))
	assert.True(t, lroot.RecursiveTotalCost().Equal(dec("510.5")))
	lroot.Walk(func(n *domain.ScopeNode, _ int) {
		orig := root.FindByID(n.ID)
		require.NotNil(t, orig)
		assert.True(t, orig.RecursiveTotal().Equal(n.RecursiveTotal()), n.Name)
		assert.True(t, orig.RecursiveTotalCost().Equal(n.RecursiveTotalCost()), n.Name)
	})
}

func TestQuoteService_SaveReconcilesUpdatesInsertsAndDeletes(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "10", "6")

	q, err := s.projects.Create(ctx, "Harbour", nil)
	require.NoError(t, err)
	root := q.Root()
	a := root.AddChild("A", domain.NodeBlock)
	b := root.AddChild("B", domain.NodeBlock)
	a1 := a.AddChild("1. Floor", domain.NodeFloor)
	b1 := b.AddChild("1. Floor", domain.NodeFloor)
	item, err := s.quotes.AttachProduct(ctx, a1, tile.ID, 5, nil)
	require.NoError(t, err)
	_, err = s.quotes.AttachProduct(ctx, b1, tile.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))
	require.Equal(t, 5, s.count(t, "scope_nodes"))
	require.Equal(t, 2, s.count(t, "line_items"))

	// Edit: move a1 under B, drop block A, rename B, change an item, add a zone.
	require.NoError(t, a1.MoveTo(b, 0))
	require.NoError(t, a.Remove())
	b.Rename("Block B")
	require.NoError(t, a1.UpdateItem(item, 7, dec("11")))
	root.AddChild("Lobby", domain.NodeZone)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))

	assert.Equal(t, 5, s.count(t, "scope_nodes"), "root, B, two floors, lobby")
	assert.Equal(t, 2, s.count(t, "line_items"))

	loaded, err := s.quotes.Load(ctx, q.Project.ID)
	require.NoError(t, err)
	lroot := loaded.Root()
	assert.Equal(t, treeShape(root), treeShape(lroot))
	lb := lroot.FindByID(b.ID)
	require.NotNil(t, lb)
	assert.Equal(t, "Block B", lb.Name)
	require.Equal(t, 2, lb.ChildCount())
	assert.Equal(t, a1.ID, lb.Children()[0].ID, "moved floor keeps its id and position")
	assert.Nil(t, lroot.FindByID(a.ID))
	assert.True(t, lroot.RecursiveTotal().Equal(dec("87")))
}

func TestQuoteService_SaveRemovesDeletedItems(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "10", "6")

	q, err := s.projects.Create(ctx, "Items", nil)
	require.NoError(t, err)
	li, err := s.quotes.AttachProduct(ctx, q.Root(), tile.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))
	require.Equal(t, 1, s.count(t, "line_items"))

	assert.True(t, q.Root().DetachItem(li))
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))
	assert.Equal(t, 0, s.count(t, "line_items"))
}

func TestQuoteService_AcmeTowersScenario(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	finish := s.product(t, "Finish-out", "500", "300")

	q, err := s.projects.Create(ctx, "Acme Towers", nil)
	require.NoError(t, err)
	q, err = s.quotes.ReplaceStructure(ctx, q.Project.ID, structure.Counts{Blocks: 2, Floors: 3, FlatsPerFloor: 4})
	require.NoError(t, err)

	flat := q.Root().Children()[0].Children()[0].Children()[0]
	_, err = s.quotes.AttachProduct(ctx, flat, finish.ID, 2, nil)
	require.NoError(t, err)
	assert.True(t, costing.TotalRevenue(q.Roots).Equal(dec("1000")))
	assert.True(t, costing.TotalCost(q.Roots).Equal(dec("600")))

	n, err := flat.ApplyToSiblings()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))

	loaded, err := s.quotes.Load(ctx, q.Project.ID)
	require.NoError(t, err)
	floor := loaded.Root().FindByID(flat.Parent().ID)
	require.NotNil(t, floor)
	assert.True(t, floor.RecursiveTotal().Equal(dec("4000")))
	assert.True(t, costing.TotalRevenue(loaded.Roots).Equal(dec("4000")))
	assert.Equal(t, 4, s.count(t, "line_items"))
}

func TestQuoteService_ReplaceStructureKeepsRoot(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "Acme Towers", nil)
	require.NoError(t, err)
	rootID := q.Root().ID
	q.Root().AddChild("Old zone", domain.NodeZone)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))

	replaced, err := s.quotes.ReplaceStructure(ctx, q.Project.ID, structure.Counts{Blocks: 2, Floors: 3, FlatsPerFloor: 4})
	require.NoError(t, err)
	assert.Equal(t, rootID, replaced.Root().ID)
	assert.Equal(t, "Acme Towers", replaced.Root().Name)
	assert.Equal(t, 33, s.count(t, "scope_nodes"))

	loaded, err := s.quotes.Load(ctx, q.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, rootID, loaded.Root().ID)
	assert.Equal(t, "A", loaded.Root().Children()[0].Name)
}

func TestQuoteService_LoadUnknownProject(t *testing.T) {
	s := newTestServices(t)

	_, err := s.quotes.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestQuoteService_LoadProjectWithoutRoot(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "Rootless", nil)
	require.NoError(t, err)
	_, err = s.db.Exec(`DELETE FROM scope_nodes`)
	require.NoError(t, err)

	_, err = s.quotes.Load(ctx, q.Project.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestQuoteService_SaveRejectsBadRoots(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "Roots", nil)
	require.NoError(t, err)
	block := q.Root().AddChild("A", domain.NodeBlock)

	assert.ErrorIs(t, s.quotes.Save(ctx, q.Project, nil), domain.ErrInvalidRoot)
	assert.ErrorIs(t, s.quotes.Save(ctx, q.Project, []*domain.ScopeNode{block}), domain.ErrInvalidRoot)
	detached := domain.NewScopeNode("Loose", domain.NodeZone)
	assert.ErrorIs(t, s.quotes.Save(ctx, q.Project, []*domain.ScopeNode{detached}), domain.ErrInvalidRoot)
}

func TestQuoteService_SaveUnknownProject(t *testing.T) {
	s := newTestServices(t)
	ghost := &domain.Project{ID: "ghost", Code: "PRJ-2026-0099", Title: "Ghost", Status: domain.ProjectDraft}

	err := s.quotes.Save(context.Background(), ghost, []*domain.ScopeNode{domain.NewProjectRoot("Ghost")})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Equal(t, 0, s.count(t, "scope_nodes"))
}

func TestQuoteService_AttachProductErrorsLeaveNodeUntouched(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "10", "6")
	node := domain.NewProjectRoot("P")

	_, err := s.quotes.AttachProduct(ctx, node, tile.ID, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = s.quotes.AttachProduct(ctx, node, "nope", 1, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Empty(t, node.Items())
}

func TestQuoteService_AttachProductUsesCatalogDefaults(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "10.25", "6")
	node := domain.NewProjectRoot("P")

	li, err := s.quotes.AttachProduct(ctx, node, tile.ID, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tile", li.ProductName)
	assert.True(t, li.UnitPrice.Equal(dec("10.25")))
	assert.True(t, li.UnitCost.Equal(dec("6")))
	assert.True(t, node.Subtotal().Equal(dec("41")))
}

func TestQuoteService_NodeMovedBetweenProjectsKeepsItsItems(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "10", "6")

	a, err := s.projects.Create(ctx, "Source", nil)
	require.NoError(t, err)
	zone := a.Root().AddChild("Lobby", domain.NodeZone)
	_, err = s.quotes.AttachProduct(ctx, zone, tile.ID, 3, nil)
	require.NoError(t, err)
	require.NoError(t, s.quotes.Save(ctx, a.Project, a.Roots))
	b, err := s.projects.Create(ctx, "Target", nil)
	require.NoError(t, err)

	loadedA, err := s.quotes.Load(ctx, a.Project.ID)
	require.NoError(t, err)
	loadedB, err := s.quotes.Load(ctx, b.Project.ID)
	require.NoError(t, err)
	lobby := loadedA.Root().Children()[0]
	require.NoError(t, lobby.MoveTo(loadedB.Root(), 0))

	require.NoError(t, s.quotes.Save(ctx, loadedB.Project, loadedB.Roots))
	require.NoError(t, s.quotes.Save(ctx, loadedA.Project, loadedA.Roots))

	storedB, err := s.quotes.Load(ctx, b.Project.ID)
	require.NoError(t, err)
	require.Len(t, storedB.Root().Children(), 1)
	assert.Equal(t, lobby.ID, storedB.Root().Children()[0].ID)
	assert.True(t, storedB.Root().RecursiveTotal().Equal(dec("30")))

	storedA, err := s.quotes.Load(ctx, a.Project.ID)
	require.NoError(t, err)
	assert.Empty(t, storedA.Root().Children())
	assert.True(t, storedA.Root().RecursiveTotal().IsZero())
	assert.Equal(t, 1, s.count(t, "line_items"))
}

func TestQuoteService_SaveRejectsRootOfAnotherProject(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, err := s.projects.Create(ctx, "Owner", nil)
	require.NoError(t, err)
	a.Root().AddChild("A", domain.NodeBlock)
	require.NoError(t, s.quotes.Save(ctx, a.Project, a.Roots))
	b, err := s.projects.Create(ctx, "Other", nil)
	require.NoError(t, err)
	bRootID := b.Root().ID

	err = s.quotes.Save(ctx, b.Project, a.Roots)
	require.ErrorIs(t, err, domain.ErrForeignRoot)

	storedB, err := s.quotes.Load(ctx, b.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, bRootID, storedB.Root().ID)
	storedA, err := s.quotes.Load(ctx, a.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Root().ID, storedA.Root().ID)
	require.Len(t, storedA.Root().Children(), 1)
	assert.Equal(t, 3, s.count(t, "scope_nodes"))
}
