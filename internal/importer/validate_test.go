package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }

func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ImportProjectFixture(),
		Nodes: []NodeImport{
			{Ref: "root", Name: "Acme Towers", Kind: "project"},
			{Ref: "a", ParentRef: ptrStr("root"), Name: "A", Kind: "block"},
		},
		Items: []ItemImport{
			{NodeRef: "a", ProductID: "paint", ProductName: "Paint", Quantity: 2, UnitPrice: ptrDec("500"), UnitCost: ptrDec("300")},
		},
	}
}

func ImportProjectFixture() ProjectImport {
	return ProjectImport{Title: "Acme Towers"}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ProjectFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project = ProjectImport{Code: "bad-code", Status: "won"}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "project.title is required")
	assert.Contains(t, errs[1].Error(), "project.code")
	assert.Contains(t, errs[2].Error(), "project.status")
}

func TestValidateImportSchema_AcceptsValidCode(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.Code = "PRJ-2026-0042"
	schema.Project.Status = "sent"

	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_NoNodes(t *testing.T) {
	schema := validMinimalSchema()
	schema.Nodes = nil
	schema.Items = nil

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least the project root")
}

func TestValidateImportSchema_RootMustBeProject(t *testing.T) {
	schema := validMinimalSchema()
	schema.Nodes[0].Kind = "block"

	errs := ValidateImportSchema(schema)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), `must have kind "project"`)
}

func TestValidateImportSchema_TwoRoots(t *testing.T) {
	schema := validMinimalSchema()
	schema.Nodes = append(schema.Nodes, NodeImport{Ref: "other", Name: "Other", Kind: "project"})

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "exactly one root, found 2")
}

func TestValidateImportSchema_ParentMustComeFirst(t *testing.T) {
	schema := &ImportSchema{
		Project: ImportProjectFixture(),
		Nodes: []NodeImport{
			{Ref: "root", Name: "P", Kind: "project"},
			{Ref: "f", ParentRef: ptrStr("b"), Name: "Floor", Kind: "floor"},
			{Ref: "b", ParentRef: ptrStr("root"), Name: "B", Kind: "block"},
		},
	}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must appear earlier")
}

func TestValidateImportSchema_SelfParentRejected(t *testing.T) {
	schema := &ImportSchema{
		Project: ImportProjectFixture(),
		Nodes: []NodeImport{
			{Ref: "root", Name: "P", Kind: "project"},
			{Ref: "z", ParentRef: ptrStr("z"), Name: "Zone", Kind: "zone"},
		},
	}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `ref "z" not found`)
}

func TestValidateImportSchema_NodeFields(t *testing.T) {
	schema := &ImportSchema{
		Project: ImportProjectFixture(),
		Nodes: []NodeImport{
			{Ref: "root", Name: "P", Kind: "project"},
			{Ref: "root", ParentRef: ptrStr("root"), Name: "", Kind: "tower"},
		},
	}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "duplicate ref")
	assert.Contains(t, errs[1].Error(), "name is required")
	assert.Contains(t, errs[2].Error(), `invalid value "tower"`)
}

func TestValidateImportSchema_ItemFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Items = []ItemImport{
		{NodeRef: "missing", ProductID: "", Quantity: 0, UnitPrice: ptrDec("-1"), UnitCost: ptrDec("-2")},
	}

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 5)
	assert.Contains(t, errs[0].Error(), "node_ref")
	assert.Contains(t, errs[1].Error(), "product_id is required")
	assert.Contains(t, errs[2].Error(), "quantity")
	assert.Contains(t, errs[3].Error(), "unit_price")
	assert.Contains(t, errs[4].Error(), "unit_cost")
}
