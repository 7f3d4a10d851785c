package repository

import (
	"fmt"
	"strings"
)

// Filter narrows reads to one locality. Zero-value means no filtering.
// Predicates match the raw column values, not normalized zone labels,
// because that is what the dashboard UI sends back from the zone selector.
type Filter struct {
	Lingkungan string
	Rayon      string
}

// conditions returns the filter's SQL predicates and their arguments.
// Callers append their own predicates numbered after len(args).
func (f Filter) conditions() ([]string, []any) {
	var conds []string
	var args []any
	if f.Lingkungan != "" {
		args = append(args, f.Lingkungan)
		conds = append(conds, fmt.Sprintf("lingkungan = $%d", len(args)))
	}
	if f.Rayon != "" {
		args = append(args, f.Rayon)
		conds = append(conds, fmt.Sprintf("rayon = $%d", len(args)))
	}
	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
