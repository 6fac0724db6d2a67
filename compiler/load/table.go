package load

import (
	"slices"
)

// Table is the catalog metadata of a single table.
type Table struct {
	Name       string    `json:"name"`
	Comment    string    `json:"comment,omitempty"`
	EntityName string    `json:"entity_name"`
	Columns    []*Column `json:"columns,omitempty"`
}

// Column is the catalog metadata of a single column.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Comment    string `json:"comment,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	Nullable   bool   `json:"nullable,omitempty"`
	// Common marks columns declared by the base entity superclass.
	Common bool `json:"common,omitempty"`
	// PropertyName is the lower camel property name of the column.
	PropertyName string `json:"property_name"`
	// PropertyType is the Kotlin type of the property and
	// TypeImport the import it needs, if any.
	PropertyType string `json:"property_type"`
	TypeImport   string `json:"type_import,omitempty"`
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := *t
	c.Columns = make([]*Column, len(t.Columns))
	for i, col := range t.Columns {
		cc := *col
		c.Columns[i] = &cc
	}
	return &c
}

// CommonColumns returns the columns declared by the base entity, in table order.
func (t *Table) CommonColumns() []*Column {
	return t.filter(func(c *Column) bool { return c.Common })
}

// FieldColumns returns the columns generated as entity fields, in table order.
func (t *Table) FieldColumns() []*Column {
	return t.filter(func(c *Column) bool { return !c.Common })
}

// PrimaryKey returns the first primary key column, or nil.
func (t *Table) PrimaryKey() *Column {
	i := slices.IndexFunc(t.Columns, func(c *Column) bool { return c.PrimaryKey })
	if i < 0 {
		return nil
	}
	return t.Columns[i]
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	i := slices.IndexFunc(t.Columns, func(c *Column) bool { return c.Name == name })
	if i < 0 {
		return nil
	}
	return t.Columns[i]
}

// Imports returns the sorted, de-duplicated type imports of the field columns.
func (t *Table) Imports() []string {
	var imports []string
	for _, c := range t.FieldColumns() {
		if c.TypeImport != "" && !slices.Contains(imports, c.TypeImport) {
			imports = append(imports, c.TypeImport)
		}
	}
	slices.Sort(imports)
	return imports
}

func (t *Table) filter(f func(*Column) bool) []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if f(c) {
			cols = append(cols, c)
		}
	}
	return cols
}
