package load

import (
	"path"
	"slices"
	"strings"
)

// Filter selects the tables to load and how to name them.
type Filter struct {
	// Include lists table names to load. Entries containing
	// glob meta characters ("sys_*") are matched with path.Match.
	Include []string
	// Prefixes are stripped from table names before deriving the entity
	// name. The first matching prefix wins.
	Prefixes []string
	// CommonColumns are the columns declared by the base entity.
	CommonColumns []string
}

// Included reports if the table is selected by the filter.
func (f Filter) Included(table string) bool {
	return slices.ContainsFunc(f.Include, func(p string) bool {
		return matchTable(p, table)
	})
}

// Unmatched returns the include entries that matched none of the tables.
func (f Filter) Unmatched(tables []*Table) []string {
	var missing []string
	for _, p := range f.Include {
		if !slices.ContainsFunc(tables, func(t *Table) bool { return matchTable(p, t.Name) }) {
			missing = append(missing, p)
		}
	}
	return missing
}

// StripPrefix removes the first matching prefix from the table name.
func (f Filter) StripPrefix(table string) string {
	for _, p := range f.Prefixes {
		if p != "" && strings.HasPrefix(table, p) {
			return strings.TrimPrefix(table, p)
		}
	}
	return table
}

// EntityName derives the entity (class) name of the table.
func (f Filter) EntityName(table string) string {
	return EntityName(f.StripPrefix(table))
}

// IsCommon reports if the column is declared by the base entity.
func (f Filter) IsCommon(column string) bool {
	return slices.Contains(f.CommonColumns, column)
}

func matchTable(pattern, table string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == table
	}
	ok, err := path.Match(pattern, table)
	return err == nil && ok
}
