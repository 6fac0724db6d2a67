package load

import (
	"context"

	"github.com/zetaframework/zeta-generator/dialect/sql"
)

const (
	postgresTablesQuery = `SELECT c.relname, COALESCE(obj_description(c.oid, 'pg_class'), '')
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p') AND n.nspname = current_schema()
ORDER BY c.relname`
	postgresColumnsQuery = `SELECT c.column_name, c.data_type, c.is_nullable,
  EXISTS (
    SELECT 1 FROM information_schema.table_constraints tc
    JOIN information_schema.key_column_usage k
      ON k.constraint_name = tc.constraint_name AND k.table_schema = tc.table_schema
    WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = c.table_schema
      AND tc.table_name = c.table_name AND k.column_name = c.column_name
  ),
  COALESCE(col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position::int), '')
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = $1
ORDER BY c.ordinal_position`
)

type postgresCatalog struct{}

func (postgresCatalog) tables(ctx context.Context, drv *sql.Driver) ([][2]string, error) {
	return scanTables(ctx, drv, postgresTablesQuery)
}

func (postgresCatalog) columns(ctx context.Context, drv *sql.Driver, f Filter, table string) ([]*Column, error) {
	rows, err := drv.QueryContext(ctx, postgresColumnsQuery, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []*Column
	for rows.Next() {
		var (
			name, typ, nullable, comment string
			pk                           bool
		)
		if err := rows.Scan(&name, &typ, &nullable, &pk, &comment); err != nil {
			return nil, err
		}
		cols = append(cols, newColumn(f, name, typ, comment, pk, nullable == "YES"))
	}
	return cols, rows.Err()
}
