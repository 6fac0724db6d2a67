package load

import (
	"context"

	"github.com/zetaframework/zeta-generator/dialect/sql"
)

const (
	mysqlTablesQuery = "SELECT `TABLE_NAME`, `TABLE_COMMENT` FROM `information_schema`.`TABLES` " +
		"WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) AND `TABLE_TYPE` = 'BASE TABLE' ORDER BY `TABLE_NAME`"
	mysqlColumnsQuery = "SELECT `COLUMN_NAME`, `COLUMN_TYPE`, `IS_NULLABLE`, `COLUMN_KEY`, `COLUMN_COMMENT` " +
		"FROM `information_schema`.`COLUMNS` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) AND `TABLE_NAME` = ? " +
		"ORDER BY `ORDINAL_POSITION`"
)

type mysqlCatalog struct{}

func (mysqlCatalog) tables(ctx context.Context, drv *sql.Driver) ([][2]string, error) {
	return scanTables(ctx, drv, mysqlTablesQuery)
}

func (mysqlCatalog) columns(ctx context.Context, drv *sql.Driver, f Filter, table string) ([]*Column, error) {
	rows, err := drv.QueryContext(ctx, mysqlColumnsQuery, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []*Column
	for rows.Next() {
		var name, typ, nullable, key, comment string
		if err := rows.Scan(&name, &typ, &nullable, &key, &comment); err != nil {
			return nil, err
		}
		cols = append(cols, newColumn(f, name, typ, comment, key == "PRI", nullable == "YES"))
	}
	return cols, rows.Err()
}

// scanTables runs a query returning (name, comment) pairs.
func scanTables(ctx context.Context, drv *sql.Driver, query string) ([][2]string, error) {
	rows, err := drv.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables [][2]string
	for rows.Next() {
		var name, comment string
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, err
		}
		tables = append(tables, [2]string{name, comment})
	}
	return tables, rows.Err()
}
