package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/db"
)

// SQLiteLineItemRepo implements LineItemRepo using a SQLite database.
type SQLiteLineItemRepo struct {
	db db.DBTX
}

// NewSQLiteLineItemRepo creates a new SQLiteLineItemRepo.
func NewSQLiteLineItemRepo(conn db.DBTX) *SQLiteLineItemRepo {
	return &SQLiteLineItemRepo{db: conn}
}

func (r *SQLiteLineItemRepo) ListByProject(ctx context.Context, projectID string) ([]codec.ItemRow, error) {
	query := `SELECT li.id, li.node_id, li.product_id, li.product_name, li.quantity,
			li.unit_price, li.unit_cost, li.order_index
		FROM line_items li
		JOIN scope_nodes n ON li.node_id = n.id
		WHERE n.project_id = ?
		ORDER BY li.order_index, li.id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []codec.ItemRow
	for rows.Next() {
		var it codec.ItemRow
		var priceStr, costStr string
		if err := rows.Scan(&it.ID, &it.NodeID, &it.ProductID, &it.ProductName, &it.Quantity,
			&priceStr, &costStr, &it.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning line item row: %w", err)
		}
		if it.UnitPrice, err = parseDecimal("unit_price", priceStr); err != nil {
			return nil, err
		}
		if it.UnitCost, err = parseDecimal("unit_cost", costStr); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

func (r *SQLiteLineItemRepo) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	return listIDs(ctx, r.db, `SELECT li.id FROM line_items li
		JOIN scope_nodes n ON li.node_id = n.id WHERE n.project_id = ?`, projectID)
}

// Upsert inserts the item or overwrites every column but its id.
func (r *SQLiteLineItemRepo) Upsert(ctx context.Context, it codec.ItemRow) error {
	query := `INSERT INTO line_items (id, node_id, product_id, product_name, quantity, unit_price, unit_cost, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			node_id = excluded.node_id,
			product_id = excluded.product_id,
			product_name = excluded.product_name,
			quantity = excluded.quantity,
			unit_price = excluded.unit_price,
			unit_cost = excluded.unit_cost,
			order_index = excluded.order_index`
	_, err := r.db.ExecContext(ctx, query,
		it.ID, it.NodeID, it.ProductID, it.ProductName, it.Quantity,
		it.UnitPrice.String(), it.UnitCost.String(), it.OrderIndex)
	if err != nil {
		return fmt.Errorf("upserting line item %s: %w", it.ID, err)
	}
	return nil
}

func (r *SQLiteLineItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting line item: %w", err)
	}
	return nil
}
