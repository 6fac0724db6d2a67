// Package dialect names the database dialects the generator can introspect.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Dialect names coming from configuration are normalized with [Normalize],
// which accepts the common aliases ("postgresql", "pg", "mariadb", "sqlite3")
// and the JDBC URL form used by older generator configurations
// ("jdbc:mysql://host:3306/db").
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver wrapper used by the catalog inspector
package dialect
