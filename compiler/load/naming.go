package load

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// EntityName returns the upper camel class name of a (prefix-stripped) table name.
//
//	EntityName("user")      // User
//	EntityName("user_role") // UserRole
func EntityName(table string) string {
	return inflect.Camelize(table)
}

// PropertyName returns the lower camel property name of a column. The "is_"
// prefix of boolean columns is removed, so is_deleted maps to deleted.
func PropertyName(column string, boolean bool) string {
	if boolean {
		if rest, ok := strings.CutPrefix(column, "is_"); ok && rest != "" {
			column = rest
		}
	}
	return inflect.CamelizeDownFirst(column)
}
