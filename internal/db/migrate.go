package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCodeSequences(db); err != nil {
		return fmt.Errorf("backfilling code sequences: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		sale_price    TEXT NOT NULL DEFAULT '0',
		purchase_cost TEXT NOT NULL DEFAULT '0',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		customer_id TEXT REFERENCES customers(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','sent','accepted','rejected','archived')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scope_nodes (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES scope_nodes(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL
		            CHECK(kind IN ('project','block','floor','flat','zone')),
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scope_nodes_project ON scope_nodes(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scope_nodes_parent ON scope_nodes(parent_id)`,

	`CREATE TABLE IF NOT EXISTS line_items (
		id           TEXT PRIMARY KEY,
		node_id      TEXT NOT NULL REFERENCES scope_nodes(id) ON DELETE CASCADE,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK(quantity >= 1),
		unit_price   TEXT NOT NULL,
		unit_cost    TEXT NOT NULL,
		order_index  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_line_items_node ON line_items(node_id)`,

	`CREATE TABLE IF NOT EXISTS code_sequences (
		scope    TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,
}

// migrateBackfillCodeSequences raises next_seq for every PREFIX-YYYY scope
// above the highest sequence already used by a stored project code, so codes
// written by imports or older builds are never handed out twice.
func migrateBackfillCodeSequences(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT code FROM projects`)
	if err != nil {
		return fmt.Errorf("listing project codes: %w", err)
	}
	highest := map[string]int{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return fmt.Errorf("scanning project code: %w", err)
		}
		scope, seq, ok := SplitCode(code)
		if !ok {
			continue
		}
		if seq > highest[scope] {
			highest[scope] = seq
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating project codes: %w", err)
	}
	rows.Close()

	for scope, seq := range highest {
		if _, err := db.ExecContext(ctx, `INSERT INTO code_sequences (scope, next_seq) VALUES (?, ?)
			ON CONFLICT(scope) DO UPDATE SET next_seq = MAX(code_sequences.next_seq, excluded.next_seq)`,
			scope, seq+1); err != nil {
			return fmt.Errorf("upserting code sequence %s: %w", scope, err)
		}
	}
	return nil
}

// SplitCode splits "PRJ-2026-0007" into scope "PRJ-2026" and sequence 7.
func SplitCode(code string) (scope string, seq int, ok bool) {
	i := strings.LastIndex(code, "-")
	if i <= 0 || i == len(code)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(code[i+1:])
	if err != nil || n <= 0 {
		return "", 0, false
	}
	return code[:i], n, true
}
