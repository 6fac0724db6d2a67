package gen

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zetaframework/zeta-generator/compiler/load"
)

//go:embed template/*.tmpl
var templateDir embed.FS

// templateNames maps the output kinds to the templates rendering them.
var templateNames = [...]string{
	Controller:  "controller.kt.tmpl",
	Service:     "service.kt.tmpl",
	ServiceImpl: "serviceImpl.kt.tmpl",
	Mapper:      "mapper.kt.tmpl",
	Entity:      "entity.kt.tmpl",
	MapperXML:   "mapper.xml.tmpl",
	DTO:         "entityDTO.kt.tmpl",
	SaveDTO:     "entitySaveDTO.kt.tmpl",
	UpdateDTO:   "entityUpdateDTO.kt.tmpl",
	QueryParam:  "param.kt.tmpl",
}

// TemplateName returns the template rendering the output kind.
func TemplateName(k OutputKind) string {
	if int(k) < len(templateNames) {
		return templateNames[k]
	}
	return ""
}

// Funcs are the functions available to the templates.
var Funcs = template.FuncMap{
	"lowerFirst": func(s string) string {
		l, err := LowerFirst(s)
		if err != nil {
			return s
		}
		return l
	},
	"camel":       inflect.Camelize,
	"lowerCamel":  lowerCamel,
	"title":       title,
	"upper":       strings.ToUpper,
	"join":        strings.Join,
	"contains":    slices.Contains[[]string],
	"shortName":   shortName,
	"hasColumn":   hasColumn,
	"columnNames": columnNames,
	"imports":     imports,
}

// ParseTemplates parses the embedded templates. Templates found in the
// overrides replace the embedded ones of the same name.
func ParseTemplates(overrides ...fs.FS) (*template.Template, error) {
	t, err := template.New("zetagen").Funcs(Funcs).ParseFS(templateDir, "template/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	for _, o := range overrides {
		matches, err := fs.Glob(o, "*.tmpl")
		if err != nil {
			return nil, fmt.Errorf("listing template overrides: %w", err)
		}
		if len(matches) == 0 {
			continue
		}
		if t, err = t.ParseFS(o, "*.tmpl"); err != nil {
			return nil, fmt.Errorf("parsing template overrides: %w", err)
		}
	}
	return t, nil
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	return inflect.CamelizeDownFirst(s)
}

// title is not cached, a cases.Caser must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// shortName returns the simple name of a qualified class reference.
func shortName(ref string) string {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func hasColumn(columns []*load.Column, name string) bool {
	return slices.ContainsFunc(columns, func(c *load.Column) bool { return c.Name == name })
}

func columnNames(columns []*load.Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// imports returns the sorted type imports of the columns.
func imports(columns []*load.Column) []string {
	var paths []string
	for _, c := range columns {
		if c.TypeImport != "" && !slices.Contains(paths, c.TypeImport) {
			paths = append(paths, c.TypeImport)
		}
	}
	slices.Sort(paths)
	return paths
}
