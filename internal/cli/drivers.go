package cli

// Database drivers of the supported dialects. MySQL is registered by dialect/sql.
import (
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
