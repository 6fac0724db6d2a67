package load

import (
	"context"
	"fmt"

	"github.com/zetaframework/zeta-generator/dialect"
	"github.com/zetaframework/zeta-generator/dialect/sql"
)

// Inspector returns the metadata of the tables selected by a filter.
type Inspector interface {
	Tables(context.Context, Filter) ([]*Table, error)
}

// InspectorFunc adapts a function to the Inspector interface.
type InspectorFunc func(context.Context, Filter) ([]*Table, error)

// Tables calls f(ctx, filter).
func (f InspectorFunc) Tables(ctx context.Context, filter Filter) ([]*Table, error) {
	return f(ctx, filter)
}

// Static is an Inspector over in-memory metadata. Tables are named by their
// raw name; EntityName and the Common flags are derived from the filter.
type Static []*Table

// Tables implements Inspector.
func (s Static) Tables(_ context.Context, f Filter) ([]*Table, error) {
	var tables []*Table
	for _, t := range s {
		if !f.Included(t.Name) {
			continue
		}
		c := t.Clone()
		if c.EntityName == "" {
			c.EntityName = f.EntityName(c.Name)
		}
		for _, col := range c.Columns {
			col.Common = f.IsCommon(col.Name)
			if col.PropertyType == "" {
				col.PropertyType, col.TypeImport = PropertyType(col.Type)
			}
			if col.PropertyName == "" {
				col.PropertyName = PropertyName(col.Name, col.PropertyType == "Boolean")
			}
		}
		tables = append(tables, c)
	}
	return tables, nil
}

// catalog runs the dialect specific catalog queries.
type catalog interface {
	// tables returns the name and comment of every base table.
	tables(context.Context, *sql.Driver) ([][2]string, error)
	// columns returns the columns of a table in ordinal order.
	columns(context.Context, *sql.Driver, Filter, string) ([]*Column, error)
}

// SQLInspector reads table metadata from the catalog of a SQL database.
type SQLInspector struct {
	drv     *sql.Driver
	catalog catalog
}

// NewInspector returns an inspector for the dialect of the driver.
func NewInspector(drv *sql.Driver) (*SQLInspector, error) {
	var c catalog
	switch drv.Dialect() {
	case dialect.MySQL:
		c = mysqlCatalog{}
	case dialect.Postgres:
		c = postgresCatalog{}
	case dialect.SQLite:
		c = sqliteCatalog{}
	default:
		return nil, fmt.Errorf("load: no catalog support for dialect %q", drv.Dialect())
	}
	return &SQLInspector{drv: drv, catalog: c}, nil
}

// Tables implements Inspector. Tables are returned in catalog order.
func (i *SQLInspector) Tables(ctx context.Context, f Filter) ([]*Table, error) {
	rows, err := i.catalog.tables(ctx, i.drv)
	if err != nil {
		return nil, fmt.Errorf("load: list tables: %w", err)
	}
	var tables []*Table
	for _, r := range rows {
		name, comment := r[0], r[1]
		if !f.Included(name) {
			continue
		}
		cols, err := i.catalog.columns(ctx, i.drv, f, name)
		if err != nil {
			return nil, fmt.Errorf("load: columns of %s: %w", name, err)
		}
		tables = append(tables, &Table{
			Name:       name,
			Comment:    comment,
			EntityName: f.EntityName(name),
			Columns:    cols,
		})
	}
	return tables, nil
}
