package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteCodeSequenceRepo allocates PREFIX-YYYY-NNNN project codes
// atomically using the code_sequences table.
type SQLiteCodeSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteCodeSequenceRepo creates a new SQLiteCodeSequenceRepo.
func NewSQLiteCodeSequenceRepo(conn db.DBTX) *SQLiteCodeSequenceRepo {
	return &SQLiteCodeSequenceRepo{db: conn}
}

// NextCode returns the next unused code for prefix and year. Numbering
// restarts at 0001 each year and never reuses a number already present in
// projects.
func (r *SQLiteCodeSequenceRepo) NextCode(ctx context.Context, prefix string, year int) (string, error) {
	scope := fmt.Sprintf("%s-%04d", prefix, year)

	seedQuery := `INSERT OR IGNORE INTO code_sequences (scope, next_seq)
		SELECT ?, COALESCE(MAX(CAST(substr(code, ?) AS INTEGER)), 0) + 1
		FROM projects WHERE code LIKE ? || '-%'`
	if _, err := r.db.ExecContext(ctx, seedQuery, scope, len(scope)+2, scope); err != nil {
		return "", fmt.Errorf("seeding code sequence for %s: %w", scope, err)
	}

	var next int
	allocQuery := `UPDATE code_sequences
		SET next_seq = next_seq + 1
		WHERE scope = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, scope).Scan(&next); err != nil {
		return "", fmt.Errorf("allocating next code for %s: %w", scope, err)
	}

	return domain.FormatCode(prefix, year, next), nil
}
