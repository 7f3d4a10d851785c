package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/stats"
)

// StatsRepository is the read-only aggregate surface over the warga table.
// It supports the five read shapes the dashboard needs: total count,
// grouped count, column sums, excluded-set count, and raw column
// projection. Reads run against live data with no snapshot isolation;
// concurrent CRUD writes may land between reads of the same request.
type StatsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewStatsRepository(db *sql.DB, logger *zap.Logger) *StatsRepository {
	return &StatsRepository{db: db, logger: logger}
}

// CountAll counts households matching the filter.
func (r *StatsRepository) CountAll(ctx context.Context, f Filter) (int, error) {
	conds, args := f.conditions()
	query := "SELECT COUNT(*) FROM warga" + whereClause(conds)

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count warga: %w", err)
	}
	return n, nil
}

// GroupCount counts households per distinct value of one column. NULL
// collapses to the empty string; the builder decides whether empty keys
// are dropped or normalized.
func (r *StatsRepository) GroupCount(ctx context.Context, column string, f Filter) ([]stats.GroupCount, error) {
	conds, args := f.conditions()
	query := fmt.Sprintf(
		"SELECT COALESCE(%s, ''), COUNT(*)::int FROM warga%s GROUP BY 1 ORDER BY 1",
		pq.QuoteIdentifier(column), whereClause(conds),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group count %s: %w", column, err)
	}
	defer rows.Close()

	var groups []stats.GroupCount
	for rows.Next() {
		var g stats.GroupCount
		if err := rows.Scan(&g.Label, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SumColumns sums the given numeric columns in one read, returned in the
// same order as requested.
func (r *StatsRepository) SumColumns(ctx context.Context, columns []string, f Filter) ([]int, error) {
	exprs := make([]string, len(columns))
	for i, col := range columns {
		exprs[i] = fmt.Sprintf("COALESCE(SUM(%s), 0)::int", pq.QuoteIdentifier(col))
	}
	conds, args := f.conditions()
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM warga" + whereClause(conds)

	sums := make([]int, len(columns))
	dest := make([]any, len(columns))
	for i := range sums {
		dest[i] = &sums[i]
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to sum columns: %w", err)
	}
	return sums, nil
}

// CountWhereNotIn counts households whose column value is outside the
// excluded set. NULL counts as the empty string, so callers exclude ""
// explicitly when missing values should not count.
func (r *StatsRepository) CountWhereNotIn(ctx context.Context, column string, excluded []string, f Filter) (int, error) {
	conds, args := f.conditions()
	args = append(args, pq.Array(excluded))
	conds = append(conds, fmt.Sprintf("COALESCE(%s, '') <> ALL($%d)", pq.QuoteIdentifier(column), len(args)))
	query := "SELECT COUNT(*) FROM warga" + whereClause(conds)

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s excluding set: %w", column, err)
	}
	return n, nil
}

// CountWhereEquals counts households whose column equals value.
func (r *StatsRepository) CountWhereEquals(ctx context.Context, column string, value string, f Filter) (int, error) {
	conds, args := f.conditions()
	args = append(args, value)
	conds = append(conds, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(column), len(args)))
	query := "SELECT COUNT(*) FROM warga" + whereClause(conds)

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s by value: %w", column, err)
	}
	return n, nil
}

// CountWhereTrue counts households with a TRUE boolean column.
func (r *StatsRepository) CountWhereTrue(ctx context.Context, column string, f Filter) (int, error) {
	conds, args := f.conditions()
	conds = append(conds, fmt.Sprintf("COALESCE(%s, FALSE)", pq.QuoteIdentifier(column)))
	query := "SELECT COUNT(*) FROM warga" + whereClause(conds)

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", column, err)
	}
	return n, nil
}

// ProjectColumns returns the raw text of the given columns for every
// matching row. Encoded-list columns are opaque to the store, so this is
// the one read that hands rows back for per-row decoding.
func (r *StatsRepository) ProjectColumns(ctx context.Context, columns []string, f Filter) ([][]string, error) {
	exprs := make([]string, len(columns))
	for i, col := range columns {
		exprs[i] = fmt.Sprintf("COALESCE(%s, '')", pq.QuoteIdentifier(col))
	}
	conds, args := f.conditions()
	// Ordered read: downstream tie-breaking follows row order, so the
	// projection must come back the same way on every run.
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM warga" + whereClause(conds) + " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to project columns: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row := make([]string, len(columns))
		dest := make([]any, len(columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
