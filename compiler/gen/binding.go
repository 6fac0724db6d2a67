package gen

import (
	"slices"
	"strings"
	"time"

	"github.com/zetaframework/zeta-generator/compiler/load"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

// DateTypeTimePack selects the java.time types for temporal columns.
const DateTypeTimePack = "TIME_PACK"

// CommentDateLayout formats the date written to generated file headers.
const CommentDateLayout = "2006-01-02 15:04:05"

// LogicDeleteColumn is the soft delete column of the generated entities.
const LogicDeleteColumn = "deleted"

// Keys of Binding.CustomPackage.
const (
	KeyEntityDTO            = "entityDTO"
	KeyEntitySaveDTO        = "entitySaveDTO"
	KeyEntityUpdateDTO      = "entityUpdateDTO"
	KeyEntityQueryParam     = "entityQueryParam"
	KeyDTOPackagePath       = "dtoPackagePath"
	KeyParamBasePackagePath = "paramBasePackagePath"
)

// Globals are the template constants shared by every table of a run.
type Globals struct {
	PackageName          string
	ModuleName           string
	DateType             string
	RepositoryAnnotation bool
	Author               string
	CommentDate          string
	Superclass           string
	LogicDeleteColumn    string
}

// NewGlobals returns the run constants for the configuration.
func NewGlobals(c *Config, base kind.Base, now time.Time) *Globals {
	return &Globals{
		PackageName:          c.PackageName,
		ModuleName:           c.ModuleName,
		DateType:             DateTypeTimePack,
		RepositoryAnnotation: c.EnableRepository,
		Author:               c.Author,
		CommentDate:          now.Format(CommentDateLayout),
		Superclass:           base.Superclass,
		LogicDeleteColumn:    LogicDeleteColumn,
	}
}

// CustomFile is a file rendered outside the standard outputs.
type CustomFile struct {
	Kind OutputKind
	// Path is relative to the other output bucket.
	Path     string
	Template string
}

// Binding is the per table record handed to the renderer.
type Binding struct {
	// Table is a copy of the introspected table with a cleaned comment.
	Table *load.Table
	Kind  kind.Kind
	Base  kind.Base
	Names Names
	Paths PathSet
	// Packages holds the package of each standard output.
	Packages      map[string]string
	CustomPackage map[string]string
	AuthorityCode string
	TableComment  string
	// UniqueColumns are the common columns kept on save and update DTOs.
	UniqueColumns []*load.Column
	CustomFiles   []CustomFile
	Globals       *Globals
}

// BuildBinding assembles the binding record of a table. The table is not modified.
func BuildBinding(g *Globals, k kind.Kind, base kind.Base, t *load.Table, n Names, paths PathSet) *Binding {
	table := t.Clone()
	table.Comment = CleanComment(t.Comment)
	parent := g.PackageName + "." + g.ModuleName
	return &Binding{
		Table: table,
		Kind:  k,
		Base:  base,
		Names: n,
		Paths: paths,
		Packages: map[string]string{
			"Parent":      parent,
			"Controller":  parent + "." + controllerDir,
			"Service":     parent + "." + serviceDir,
			"ServiceImpl": parent + "." + strings.ReplaceAll(serviceImplDir, "/", "."),
			"Mapper":      parent + "." + mapperDir,
			"Entity":      parent + "." + strings.ReplaceAll(entityDir, "/", "."),
		},
		CustomPackage: map[string]string{
			KeyEntityDTO:            n.DTOName,
			KeyEntitySaveDTO:        n.SaveDTOName,
			KeyEntityUpdateDTO:      n.UpdateDTOName,
			KeyEntityQueryParam:     n.QueryParamName,
			KeyDTOPackagePath:       n.DTOPackagePath,
			KeyParamBasePackagePath: n.ParamPackagePath,
		},
		AuthorityCode: n.AuthorityCode,
		TableComment:  table.Comment,
		UniqueColumns: UniqueColumns(k, base, table),
		CustomFiles: []CustomFile{
			{Kind: DTO, Path: paths[DTO], Template: templateNames[DTO]},
			{Kind: SaveDTO, Path: paths[SaveDTO], Template: templateNames[SaveDTO]},
			{Kind: UpdateDTO, Path: paths[UpdateDTO], Template: templateNames[UpdateDTO]},
			{Kind: QueryParam, Path: paths[QueryParam], Template: templateNames[QueryParam]},
		},
		Globals: g,
	}
}

// UniqueColumns returns the common columns of the table that are structural
// columns of the kind, in table order.
func UniqueColumns(k kind.Kind, base kind.Base, t *load.Table) []*load.Column {
	columns := []*load.Column{}
	switch k {
	case kind.None, kind.Entity:
	case kind.TreeEntity, kind.StateEntity:
		for _, c := range t.Columns {
			if c.Common && base.IsStructural(c.Name) {
				columns = append(columns, c)
			}
		}
	}
	return columns
}

// UniqueColumnNames returns the names of the unique columns.
func (b *Binding) UniqueColumnNames() []string {
	names := make([]string, len(b.UniqueColumns))
	for i, c := range b.UniqueColumns {
		names[i] = c.Name
	}
	return names
}

// CustomFileMap returns the custom files keyed by their relative path.
func (b *Binding) CustomFileMap() map[string]string {
	m := make(map[string]string, len(b.CustomFiles))
	for _, f := range b.CustomFiles {
		m[f.Path] = f.Template
	}
	return m
}

// SaveColumns returns the columns of the save and update DTOs: the field
// columns followed by the unique columns.
func (b *Binding) SaveColumns() []*load.Column {
	return append(slices.Clone(b.Table.FieldColumns()), b.UniqueColumns...)
}

// Vars returns the variables the templates are executed with.
func (b *Binding) Vars() map[string]any {
	return map[string]any{
		"table":                b.Table,
		"entity":               b.Names.EntityName,
		"entityKind":           b.Kind.String(),
		"names":                b.Names,
		"package":              b.Packages,
		"customPackage":        b.CustomPackage,
		"customFileMap":        b.CustomFileMap(),
		"authorityCode":        b.AuthorityCode,
		"tableComment":         b.TableComment,
		"uniqueColumns":        b.UniqueColumns,
		"saveColumns":          b.SaveColumns(),
		"superEntityClass":     b.Globals.Superclass,
		"superEntityClassName": shortName(b.Globals.Superclass),
		"packageName":          b.Globals.PackageName,
		"moduleName":           b.Globals.ModuleName,
		"dateType":             b.Globals.DateType,
		"repositoryAnnotation": b.Globals.RepositoryAnnotation,
		"author":               b.Globals.Author,
		"date":                 b.Globals.CommentDate,
		"logicDeleteFieldName": b.Globals.LogicDeleteColumn,
	}
}
