package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Suffixes of the derived class names.
const (
	dtoSuffix        = "DTO"
	saveDTOSuffix    = "SaveDTO"
	updateDTOSuffix  = "UpdateDTO"
	queryParamSuffix = "QueryParam"
)

// Names holds the identifiers derived for one table.
type Names struct {
	EntityName           string
	DTOName              string
	SaveDTOName          string
	UpdateDTOName        string
	QueryParamName       string
	LowerCamelEntityName string
	AuthorityCode        string
	DTOPackagePath       string
	ParamPackagePath     string
}

// DTOName returns the name of the entity's DTO class.
func DTOName(entity string) string { return entity + dtoSuffix }

// SaveDTOName returns the name of the entity's save DTO class.
func SaveDTOName(entity string) string { return entity + saveDTOSuffix }

// UpdateDTOName returns the name of the entity's update DTO class.
func UpdateDTOName(entity string) string { return entity + updateDTOSuffix }

// QueryParamName returns the name of the entity's query parameter class.
func QueryParamName(entity string) string { return entity + queryParamSuffix }

// LowerFirst lower-cases the first rune of name and leaves the rest untouched.
// An empty name is an InvalidName error.
func LowerFirst(name string) (string, error) {
	if name == "" {
		return "", NewNameError("", name, "cannot lower-case an empty name")
	}
	r, size := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(r) {
		return name, nil
	}
	return string(unicode.ToLower(r)) + name[size:], nil
}

// AuthorityCode returns the permission code of a table: its name with
// every underscore replaced by a colon. Empty segments are kept.
func AuthorityCode(table string) string {
	return strings.Join(strings.Split(table, "_"), ":")
}

// tableMarkers are the trailing comment suffixes naming the table itself.
// The English marker must be a separate word, "Timetable" is left alone.
var tableMarkers = []string{"表", " table"}

// CleanComment removes one trailing table marker from a table comment.
// A blank comment yields "".
func CleanComment(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	for _, m := range tableMarkers {
		if s, ok := strings.CutSuffix(raw, m); ok {
			return s
		}
	}
	return raw
}

// DeriveNames derives the identifiers of a table from its entity name.
func DeriveNames(packageName, moduleName, entity, table string) (Names, error) {
	if strings.TrimSpace(entity) == "" {
		return Names{}, NewNameError(table, entity, "empty entity name")
	}
	lower, err := LowerFirst(entity)
	if err != nil {
		return Names{}, err
	}
	parent := packageName + "." + moduleName
	return Names{
		EntityName:           entity,
		DTOName:              DTOName(entity),
		SaveDTOName:          SaveDTOName(entity),
		UpdateDTOName:        UpdateDTOName(entity),
		QueryParamName:       QueryParamName(entity),
		LowerCamelEntityName: lower,
		AuthorityCode:        AuthorityCode(table),
		DTOPackagePath:       parent + ".model.dto." + lower,
		ParamPackagePath:     parent + ".model.param",
	}, nil
}
