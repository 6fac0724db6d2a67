// Package sql wraps database/sql for catalog introspection.
//
// A [Driver] pairs a *sql.DB with the dialect it speaks and records simple
// query statistics, so the inspector can report how many catalog round-trips
// a generation run took and log slow ones:
//
//	dsn, err := sql.DSN(dialect.MySQL, "tcp(localhost:3306)/zeta", "root", "secret")
//	if err != nil {
//	    return err
//	}
//	drv, err := sql.Open(dialect.MySQL, dsn)
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
// The Postgres and SQLite database/sql drivers are registered by the command
// (internal/cli). The MySQL driver registers itself through the DSN helpers
// of this package.
package sql
