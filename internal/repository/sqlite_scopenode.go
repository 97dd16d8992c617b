package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteScopeNodeRepo implements ScopeNodeRepo using a SQLite database.
type SQLiteScopeNodeRepo struct {
	db db.DBTX
}

// NewSQLiteScopeNodeRepo creates a new SQLiteScopeNodeRepo.
func NewSQLiteScopeNodeRepo(conn db.DBTX) *SQLiteScopeNodeRepo {
	return &SQLiteScopeNodeRepo{db: conn}
}

func (r *SQLiteScopeNodeRepo) ListByProject(ctx context.Context, projectID string) ([]codec.NodeRow, error) {
	query := `SELECT id, project_id, parent_id, kind, name, order_index
		FROM scope_nodes WHERE project_id = ? ORDER BY order_index, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing scope nodes: %w", err)
	}
	defer rows.Close()

	var nodes []codec.NodeRow
	for rows.Next() {
		var n codec.NodeRow
		var parentID sql.NullString
		var kind string
		if err := rows.Scan(&n.ID, &n.ProjectID, &parentID, &kind, &n.Name, &n.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning scope node row: %w", err)
		}
		n.ParentID = stringPtr(parentID)
		n.Kind = domain.NodeKind(kind)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scope nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteScopeNodeRepo) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	return listIDs(ctx, r.db, `SELECT id FROM scope_nodes WHERE project_id = ?`, projectID)
}

// ProjectOf returns the project a stored node belongs to.
func (r *SQLiteScopeNodeRepo) ProjectOf(ctx context.Context, id string) (string, error) {
	var projectID string
	err := r.db.QueryRowContext(ctx, `SELECT project_id FROM scope_nodes WHERE id = ?`, id).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("scope node %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up scope node %s: %w", id, err)
	}
	return projectID, nil
}

// Upsert inserts the node or overwrites its project, placement, kind and
// name. A node moved between trees is claimed by the project writing it.
// Parents must be written before their children.
func (r *SQLiteScopeNodeRepo) Upsert(ctx context.Context, n codec.NodeRow) error {
	query := `INSERT INTO scope_nodes (id, project_id, parent_id, kind, name, order_index)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			parent_id = excluded.parent_id,
			kind = excluded.kind,
			name = excluded.name,
			order_index = excluded.order_index`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.ProjectID, nullableString(n.ParentID), string(n.Kind), n.Name, n.OrderIndex)
	if err != nil {
		return fmt.Errorf("upserting scope node %s: %w", n.ID, err)
	}
	return nil
}

// Delete removes a node together with any descendants and items still
// attached to it.
func (r *SQLiteScopeNodeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scope_nodes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting scope node: %w", err)
	}
	return nil
}

func listIDs(ctx context.Context, conn db.DBTX, query string, args ...any) ([]string, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ids: %w", err)
	}
	return ids, nil
}
