package load

import (
	"strings"
)

// Kotlin property types for catalog column types, using java.time for
// temporal columns.
var typeRules = []struct {
	prefixes []string
	kotlin   string
	imp      string
}{
	{[]string{"bool", "boolean", "bit(1)", "tinyint(1)"}, "Boolean", ""},
	{[]string{"bigint", "int8", "bigserial"}, "Long", ""},
	{[]string{"tinyint", "smallint", "mediumint", "int", "integer", "serial", "int2", "int4", "smallserial"}, "Int", ""},
	{[]string{"decimal", "numeric", "money"}, "BigDecimal", "java.math.BigDecimal"},
	{[]string{"float", "real", "float4"}, "Float", ""},
	{[]string{"double", "float8"}, "Double", ""},
	{[]string{"datetime", "timestamp", "timestamptz"}, "LocalDateTime", "java.time.LocalDateTime"},
	{[]string{"date"}, "LocalDate", "java.time.LocalDate"},
	{[]string{"time", "timetz"}, "LocalTime", "java.time.LocalTime"},
	{[]string{"year"}, "Year", "java.time.Year"},
	{[]string{"blob", "tinyblob", "mediumblob", "longblob", "binary", "varbinary", "bytea"}, "ByteArray", ""},
}

// PropertyType returns the Kotlin type and required import of a column type.
// Unknown types map to String.
func PropertyType(columnType string) (kotlin, imp string) {
	t := strings.ToLower(strings.TrimSpace(columnType))
	for _, r := range typeRules {
		for _, p := range r.prefixes {
			if typeHasPrefix(t, p) {
				return r.kotlin, r.imp
			}
		}
	}
	return "String", ""
}

// IsBoolean reports if the column type maps to a Kotlin Boolean.
func IsBoolean(columnType string) bool {
	k, _ := PropertyType(columnType)
	return k == "Boolean"
}

// typeHasPrefix matches p as a whole type name at the start of t, so that
// "int" does not match "interval" and "date" does not match "datetime".
func typeHasPrefix(t, p string) bool {
	if !strings.HasPrefix(t, p) {
		return false
	}
	if len(t) == len(p) || strings.HasSuffix(p, ")") {
		return true
	}
	switch t[len(p)] {
	case '(', ' ', '[':
		return true
	}
	return false
}

// newColumn fills the derived property fields of a catalog column.
func newColumn(f Filter, name, typ, comment string, pk, nullable bool) *Column {
	kt, imp := PropertyType(typ)
	return &Column{
		Name:         name,
		Type:         typ,
		Comment:      comment,
		PrimaryKey:   pk,
		Nullable:     nullable,
		Common:       f.IsCommon(name),
		PropertyName: PropertyName(name, kt == "Boolean"),
		PropertyType: kt,
		TypeImport:   imp,
	}
}
