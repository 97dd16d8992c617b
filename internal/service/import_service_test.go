package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/estimator/internal/importer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleImport(productID string) *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{Title: "Imported Towers", Status: "sent"},
		Nodes: []importer.NodeImport{
			{Ref: "root", Name: "Imported Towers", Kind: "project"},
			{Ref: "a", ParentRef: ptrStr("root"), Name: "A", Kind: "block"},
			{Ref: "f1", ParentRef: ptrStr("a"), Name: "1. Floor", Kind: "floor"},
		},
		Items: []importer.ItemImport{
			{NodeRef: "f1", ProductID: productID, Quantity: 2},
			{NodeRef: "a", ProductID: "custom", ProductName: "Site survey", Quantity: 1, UnitPrice: ptrDec("150"), UnitCost: ptrDec("0")},
		},
	}
}

func TestImportService_ImportFromSchema(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	paint := s.product(t, "Paint", "45", "30")

	res, err := s.imports.ImportQuoteFromSchema(ctx, sampleImport(paint.ID))
	require.NoError(t, err)
	assert.Equal(t, 3, res.NodeCount)
	assert.Equal(t, 2, res.ItemCount)
	assert.Equal(t, currentCode(1), res.Project.Code)

	q, err := s.quotes.Load(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", string(q.Project.Status))
	assert.True(t, q.Root().RecursiveTotal().Equal(dec("240")))
	assert.True(t, q.Root().RecursiveTotalCost().Equal(dec("60")))
}

func TestImportService_KeepsFreeCodeAndReallocatesTakenOne(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	paint := s.product(t, "Paint", "45", "30")

	schema := sampleImport(paint.ID)
	schema.Project.Code = "QT-2024-0007"
	first, err := s.imports.ImportQuoteFromSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, "QT-2024-0007", first.Project.Code)

	second, err := s.imports.ImportQuoteFromSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, currentCode(1), second.Project.Code)
}

func TestImportService_ValidationErrors(t *testing.T) {
	s := newTestServices(t)

	schema := sampleImport("x")
	schema.Project.Title = ""
	schema.Items[0].Quantity = 0

	_, err := s.imports.ImportQuoteFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Equal(t, 0, s.count(t, "projects"))
}

func TestImportService_UnknownProductRollsBack(t *testing.T) {
	s := newTestServices(t)

	_, err := s.imports.ImportQuoteFromSchema(context.Background(), sampleImport("missing-product"))
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, s.count(t, "projects"))
	assert.Equal(t, 0, s.count(t, "scope_nodes"))
}

func TestImportService_FileExportRoundTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	paint := s.product(t, "Paint", "45", "30")

	res, err := s.imports.ImportQuoteFromSchema(ctx, sampleImport(paint.ID))
	require.NoError(t, err)

	exported, err := s.imports.ExportQuote(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Project.Code, exported.Project.Code)
	require.Len(t, exported.Nodes, 3)
	require.Len(t, exported.Items, 2)

	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, importer.WriteImportSchema(path, exported))
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := s.imports.ImportQuote(ctx, path)
	require.NoError(t, err)
	assert.NotEqual(t, res.Project.Code, again.Project.Code, "code already taken")

	orig, err := s.quotes.Load(ctx, res.Project.ID)
	require.NoError(t, err)
	copied, err := s.quotes.Load(ctx, again.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, treeShape(orig.Root()), treeShape(copied.Root()))
	assert.True(t, orig.Root().RecursiveTotal().Equal(copied.Root().RecursiveTotal()))
}

func TestImportService_MissingFile(t *testing.T) {
	s := newTestServices(t)

	_, err := s.imports.ImportQuote(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
