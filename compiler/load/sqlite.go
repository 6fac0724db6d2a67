package load

import (
	"context"
	stdsql "database/sql"
	"strings"

	"github.com/zetaframework/zeta-generator/dialect/sql"
)

const sqliteTablesQuery = "SELECT name, '' FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"

// sqliteCatalog reads sqlite_master and PRAGMA table_info. SQLite keeps no
// table or column comments.
type sqliteCatalog struct{}

func (sqliteCatalog) tables(ctx context.Context, drv *sql.Driver) ([][2]string, error) {
	return scanTables(ctx, drv, sqliteTablesQuery)
}

func (sqliteCatalog) columns(ctx context.Context, drv *sql.Driver, f Filter, table string) ([]*Column, error) {
	// PRAGMA arguments cannot be bound; the name comes from sqlite_master.
	rows, err := drv.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []*Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             stdsql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, newColumn(f, name, typ, "", pk > 0, notNull == 0 && pk == 0))
	}
	return cols, rows.Err()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
