package sql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/zetaframework/zeta-generator/dialect"
)

// DSN builds the data source name for the dialect from a connection string
// and separately configured credentials. Credentials already present in the
// connection string are overridden by non-empty user/password values.
//
// A JDBC URL ("jdbc:mysql://host:3306/db?useSSL=false") is accepted for MySQL
// and Postgres; its JDBC-only query parameters are dropped.
func DSN(d, conn, user, password string) (string, error) {
	name, err := dialect.Normalize(d)
	if err != nil {
		return "", err
	}
	switch name {
	case dialect.MySQL:
		return mysqlDSN(conn, user, password)
	case dialect.Postgres:
		return postgresDSN(conn, user, password)
	default:
		return strings.TrimPrefix(conn, "jdbc:sqlite:"), nil
	}
}

func mysqlDSN(conn, user, password string) (string, error) {
	if rest, ok := strings.CutPrefix(conn, "jdbc:mysql://"); ok {
		host, db, _ := strings.Cut(rest, "/")
		db, _, _ = strings.Cut(db, "?")
		conn = fmt.Sprintf("tcp(%s)/%s", host, db)
	}
	cfg, err := mysql.ParseDSN(conn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if user != "" {
		cfg.User = user
	}
	if password != "" {
		cfg.Passwd = password
	}
	return cfg.FormatDSN(), nil
}

func postgresDSN(conn, user, password string) (string, error) {
	conn = strings.TrimPrefix(conn, "jdbc:")
	if strings.HasPrefix(conn, "postgresql://") {
		conn = "postgres://" + strings.TrimPrefix(conn, "postgresql://")
	}
	if !strings.HasPrefix(conn, "postgres://") {
		// key=value form.
		var b strings.Builder
		b.WriteString(conn)
		if user != "" {
			fmt.Fprintf(&b, " user=%s", user)
		}
		if password != "" {
			fmt.Fprintf(&b, " password=%s", password)
		}
		return strings.TrimSpace(b.String()), nil
	}
	u, err := url.Parse(conn)
	if err != nil {
		return "", fmt.Errorf("parse postgres dsn: %w", err)
	}
	if user != "" || password != "" {
		name, pass := u.User.Username(), ""
		if p, ok := u.User.Password(); ok {
			pass = p
		}
		if user != "" {
			name = user
		}
		if password != "" {
			pass = password
		}
		u.User = url.UserPassword(name, pass)
	}
	return u.String(), nil
}
