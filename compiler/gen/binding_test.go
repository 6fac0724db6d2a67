package gen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetaframework/zeta-generator/compiler/load"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

func testTable(name, entity, comment string, columns ...*load.Column) *load.Table {
	return &load.Table{Name: name, EntityName: entity, Comment: comment, Columns: columns}
}

func col(name string, common bool) *load.Column {
	return &load.Column{Name: name, Type: "varchar(64)", Common: common, PropertyName: load.PropertyName(name, false), PropertyType: "String"}
}

func testBinding(t *testing.T, k kind.Kind, table *load.Table) *Binding {
	t.Helper()
	cfg := &Config{PackageName: "com.zeta", ModuleName: "system", ProjectName: "demo", OutputDir: "/out", Author: "zeta", EnableRepository: true}
	base := kind.MustLookup(k)
	globals := NewGlobals(cfg, base, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	names, err := DeriveNames(cfg.PackageName, cfg.ModuleName, table.EntityName, table.Name)
	require.NoError(t, err)
	layout := KotlinLayout(cfg)
	return BuildBinding(globals, k, base, table, names, layout.Resolve(names))
}

func TestUniqueColumns(t *testing.T) {
	t.Run("entity has no unique columns", func(t *testing.T) {
		b := testBinding(t, kind.Entity, testTable("sys_user", "User", "用户表",
			col("id", true), col("username", false), col("created_by", true)))
		assert.NotNil(t, b.UniqueColumns)
		assert.Empty(t, b.UniqueColumns)
	})

	t.Run("tree entity keeps structural common columns", func(t *testing.T) {
		b := testBinding(t, kind.TreeEntity, testTable("sys_dept", "Dept", "部门表",
			col("id", true), col("name", false), col("parent_id", true), col("create_time", true)))
		assert.Equal(t, []string{"parent_id"}, b.UniqueColumnNames())
	})

	t.Run("table order is preserved", func(t *testing.T) {
		b := testBinding(t, kind.TreeEntity, testTable("sys_menu", "Menu", "",
			col("sort", true), col("id", true), col("label", false), col("parent_id", true)))
		// label is not a common column of this table.
		assert.Equal(t, []string{"sort", "parent_id"}, b.UniqueColumnNames())
	})

	t.Run("state entity", func(t *testing.T) {
		b := testBinding(t, kind.StateEntity, testTable("sys_order", "Order", "",
			col("id", true), col("state", true), col("parent_id", true)))
		assert.Equal(t, []string{"state"}, b.UniqueColumnNames())
	})

	t.Run("none is always empty", func(t *testing.T) {
		table := testTable("sys_dept", "Dept", "", col("parent_id", true), col("state", true))
		assert.Empty(t, UniqueColumns(kind.None, kind.MustLookup(kind.TreeEntity), table))
		assert.Empty(t, testBinding(t, kind.None, table).UniqueColumns)
	})
}

func TestBuildBinding(t *testing.T) {
	table := testTable("sys_user", "User", "用户表", col("id", true), col("username", false))
	b := testBinding(t, kind.Entity, table)

	assert.Equal(t, "用户表", table.Comment, "input table is not modified")
	assert.Equal(t, "用户", b.TableComment)
	assert.Equal(t, "用户", b.Table.Comment)
	assert.Equal(t, "sys:user", b.AuthorityCode)
	assert.Equal(t, map[string]string{
		KeyEntityDTO:            "UserDTO",
		KeyEntitySaveDTO:        "UserSaveDTO",
		KeyEntityUpdateDTO:      "UserUpdateDTO",
		KeyEntityQueryParam:     "UserQueryParam",
		KeyDTOPackagePath:       "com.zeta.system.model.dto.user",
		KeyParamBasePackagePath: "com.zeta.system.model.param",
	}, b.CustomPackage)
	assert.Equal(t, "com.zeta.system.controller", b.Packages["Controller"])
	assert.Equal(t, "com.zeta.system.service.impl", b.Packages["ServiceImpl"])
	assert.Equal(t, "com.zeta.system.dao", b.Packages["Mapper"])
	assert.Equal(t, "com.zeta.system.model.entity", b.Packages["Entity"])

	t.Run("custom files", func(t *testing.T) {
		require.Len(t, b.CustomFiles, 4)
		assert.Equal(t, map[string]string{
			"../model/dto/user/UserDTO.kt":       "entityDTO.kt.tmpl",
			"../model/dto/user/UserSaveDTO.kt":   "entitySaveDTO.kt.tmpl",
			"../model/dto/user/UserUpdateDTO.kt": "entityUpdateDTO.kt.tmpl",
			"../model/param/UserQueryParam.kt":   "param.kt.tmpl",
		}, b.CustomFileMap())
		assert.Equal(t, []OutputKind{DTO, SaveDTO, UpdateDTO, QueryParam}, []OutputKind{
			b.CustomFiles[0].Kind, b.CustomFiles[1].Kind, b.CustomFiles[2].Kind, b.CustomFiles[3].Kind,
		})
	})

	t.Run("globals", func(t *testing.T) {
		g := b.Globals
		assert.Equal(t, "com.zeta", g.PackageName)
		assert.Equal(t, DateTypeTimePack, g.DateType)
		assert.True(t, g.RepositoryAnnotation)
		assert.Equal(t, "2024-03-01 09:30:00", g.CommentDate)
		assert.Equal(t, "org.zetaframework.base.entity.Entity", g.Superclass)
		assert.Equal(t, "deleted", g.LogicDeleteColumn)
	})

	t.Run("vars", func(t *testing.T) {
		vars := b.Vars()
		assert.Equal(t, "User", vars["entity"])
		assert.Equal(t, "sys:user", vars["authorityCode"])
		assert.Equal(t, "com.zeta", vars["packageName"])
		assert.Equal(t, "system", vars["moduleName"])
		assert.Equal(t, true, vars["repositoryAnnotation"])
		assert.Equal(t, DateTypeTimePack, vars["dateType"])
		assert.Equal(t, "Entity", vars["superEntityClassName"])
		assert.Equal(t, b.CustomPackage, vars["customPackage"])
		assert.Equal(t, b.UniqueColumns, vars["uniqueColumns"])
	})
}

func TestSaveColumns(t *testing.T) {
	b := testBinding(t, kind.TreeEntity, testTable("sys_dept", "Dept", "",
		col("id", true), col("parent_id", true), col("name", false), col("code", false)))

	var names []string
	for _, c := range b.SaveColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"name", "code", "parent_id"}, names)
}
