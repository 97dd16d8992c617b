package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// ImportSchema is the top-level JSON structure for quote import and export.
type ImportSchema struct {
	Project ProjectImport `json:"project"`
	Nodes   []NodeImport  `json:"nodes"`
	Items   []ItemImport  `json:"items,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Title      string  `json:"title"`
	Code       string  `json:"code,omitempty"`
	CustomerID *string `json:"customer_id,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// NodeImport defines a scope node. Exactly one node has no parent_ref and
// it must be of kind "project". A parent must appear before its children.
type NodeImport struct {
	Ref       string  `json:"ref"`
	ParentRef *string `json:"parent_ref,omitempty"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Order     int     `json:"order"`
}

// ItemImport defines a line item. Name, price and cost fall back to the
// catalog entry for product_id when omitted.
type ItemImport struct {
	NodeRef     string           `json:"node_ref"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Order       int              `json:"order"`
}

// NeedsCatalog reports whether the item relies on catalog defaults.
func (it ItemImport) NeedsCatalog() bool {
	return it.ProductName == "" || it.UnitPrice == nil || it.UnitCost == nil
}

// LoadImportSchema reads and parses a quote import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// EncodeImportSchema writes schema to w as indented JSON.
func EncodeImportSchema(w io.Writer, schema *ImportSchema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("encoding quote: %w", err)
	}
	return nil
}

// WriteImportSchema writes schema as indented JSON to path.
func WriteImportSchema(path string, schema *ImportSchema) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := EncodeImportSchema(f, schema); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
