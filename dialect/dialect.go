package dialect

import (
	"fmt"
	"strings"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// aliases maps accepted spellings to the canonical dialect name.
var aliases = map[string]string{
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"pg":         Postgres,
}

// Normalize returns the canonical dialect name for s.
// A JDBC URL ("jdbc:mysql://...") resolves to the dialect of its sub-protocol.
func Normalize(s string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(name, "jdbc:"); ok {
		name, _, _ = strings.Cut(rest, ":")
	}
	if d, ok := aliases[name]; ok {
		return d, nil
	}
	return "", fmt.Errorf("dialect: unsupported dialect %q", s)
}

// DriverName returns the database/sql driver name registered for the dialect.
func DriverName(d string) string {
	switch d {
	case SQLite:
		// modernc.org/sqlite registers itself as "sqlite".
		return "sqlite"
	default:
		return d
	}
}
