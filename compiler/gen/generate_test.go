package gen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetaframework/zeta-generator/compiler/load"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func catalog() load.Static {
	return load.Static{
		{Name: "sys_user", Comment: "用户表", Columns: []*load.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true, Comment: "主键"},
			{Name: "username", Type: "varchar(64)", Comment: "用户名"},
			{Name: "is_enabled", Type: "tinyint(1)", Nullable: true, Comment: "是否启用"},
			{Name: "birthday", Type: "date", Nullable: true, Comment: "生日"},
			{Name: "deleted", Type: "tinyint(1)", Comment: "逻辑删除"},
			{Name: "created_by", Type: "bigint"},
			{Name: "create_time", Type: "datetime"},
			{Name: "updated_by", Type: "bigint"},
			{Name: "update_time", Type: "datetime"},
		}},
		{Name: "sys_dept", Comment: "部门表", Columns: []*load.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true},
			{Name: "name", Type: "varchar(32)", Comment: "名称"},
			{Name: "parent_id", Type: "bigint", Comment: "父id"},
			{Name: "label", Type: "varchar(32)"},
			{Name: "sort", Type: "int"},
		}},
		{Name: "sys_", Comment: "degenerate", Columns: []*load.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true},
		}},
		{Name: "sys_log", Comment: "日志表"},
	}
}

func testConfig(out string, k kind.Kind, tables ...string) *Config {
	c := Build("demo", "system", "zeta", "sys_", tables)
	c.OutputDir = out
	c.PackageName = "com.zeta"
	c.SuperEntity = k
	c.OpenDir = false
	return c
}

// recorder is a Renderer collecting the rendered jobs.
type recorder struct {
	mu   sync.Mutex
	jobs []*Job
	fail func(*Job) error
}

func (r *recorder) Render(_ context.Context, job *Job) error {
	if r.fail != nil {
		if err := r.fail(job); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *recorder) binding(table string) *Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.jobs, func(j *Job) bool { return j.Table == table })
	if i < 0 {
		return nil
	}
	return r.jobs[i].Binding
}

func TestPlan(t *testing.T) {
	cfg := testConfig("/out", kind.Entity, "sys_user")
	base := kind.MustLookup(kind.Entity)
	tables, err := catalog().Tables(context.Background(), load.Filter{Include: cfg.TableInclude, Prefixes: cfg.TablePrefix, CommonColumns: base.Columns})
	require.NoError(t, err)
	require.Len(t, tables, 1)

	jobs, err := Plan(kind.Entity, base, NewGlobals(cfg, base, time.Now()), KotlinLayout(cfg), tables[0])
	require.NoError(t, err)

	const src = "/out/demo/src/main/kotlin/com/zeta/system"
	var paths, templates []string
	for _, j := range jobs {
		paths = append(paths, j.Path)
		templates = append(templates, j.Template)
		assert.Equal(t, "sys_user", j.Table)
		assert.Same(t, jobs[0].Binding, j.Binding)
	}
	assert.Equal(t, []string{
		src + "/controller/UserController.kt",
		src + "/service/IUserService.kt",
		src + "/service/impl/UserServiceImpl.kt",
		src + "/dao/UserMapper.kt",
		src + "/model/entity/User.kt",
		"/out/demo/src/main/resources/mapper/system/UserMapper.xml",
		src + "/model/dto/user/UserDTO.kt",
		src + "/model/dto/user/UserSaveDTO.kt",
		src + "/model/dto/user/UserUpdateDTO.kt",
		src + "/model/param/UserQueryParam.kt",
	}, paths)
	assert.Equal(t, []string{
		"controller.kt.tmpl", "service.kt.tmpl", "serviceImpl.kt.tmpl", "mapper.kt.tmpl", "entity.kt.tmpl",
		"mapper.xml.tmpl", "entityDTO.kt.tmpl", "entitySaveDTO.kt.tmpl", "entityUpdateDTO.kt.tmpl", "param.kt.tmpl",
	}, templates)
}

func TestRunScenarios(t *testing.T) {
	t.Run("sys_user entity", func(t *testing.T) {
		r := &recorder{}
		report, err := New(testConfig("/out", kind.Entity, "sys_user"), catalog(), r).WithLogger(discard).Run(context.Background())
		require.NoError(t, err)
		require.NoError(t, report.Err())

		b := r.binding("sys_user")
		require.NotNil(t, b)
		assert.Equal(t, "User", b.Names.EntityName)
		assert.Equal(t, "sys:user", b.AuthorityCode)
		assert.Equal(t, "UserDTO", b.Names.DTOName)
		assert.Equal(t, "com.zeta.system.model.dto.user", b.CustomPackage[KeyDTOPackagePath])
		assert.Empty(t, b.UniqueColumns)
		assert.Equal(t, "用户", b.TableComment)
	})

	t.Run("sys_dept tree entity", func(t *testing.T) {
		r := &recorder{}
		report, err := New(testConfig("/out", kind.TreeEntity, "sys_dept"), catalog(), r).WithLogger(discard).Run(context.Background())
		require.NoError(t, err)
		require.NoError(t, report.Err())

		b := r.binding("sys_dept")
		require.NotNil(t, b)
		assert.Equal(t, []string{"parent_id", "label", "sort"}, b.UniqueColumnNames())
		assert.Equal(t, "org.zetaframework.base.entity.TreeEntity", b.Globals.Superclass)
	})
}

func TestRunSkipAndReport(t *testing.T) {
	r := &recorder{fail: func(j *Job) error {
		if j.Table == "sys_log" && j.Kind == Entity {
			return NewGenerationError(PhaseWrite, j.Table, j.Path, "write file", errors.New("disk full"))
		}
		return nil
	}}
	cfg := testConfig("/out", kind.Entity, "sys_user", "sys_", "sys_log", "sys_missing")
	report, err := New(cfg, catalog(), r).WithLogger(discard).WithWorkers(1).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []string{"sys_missing"}, report.Unmatched)
	require.Len(t, report.Tables, 3)

	byTable := map[string]*TableResult{}
	for _, res := range report.Tables {
		byTable[res.Table] = res
	}
	assert.NoError(t, byTable["sys_user"].Err)
	assert.Len(t, byTable["sys_user"].Files, 10)

	assert.True(t, errors.Is(byTable["sys_"].Err, ErrInvalidName))
	assert.Empty(t, byTable["sys_"].Files)

	assert.True(t, errors.Is(byTable["sys_log"].Err, ErrWrite))
	// Rendering stops at the failing file of the table.
	assert.Len(t, byTable["sys_log"].Files, 4)

	assert.Len(t, report.Failed(), 2)
	assert.True(t, errors.Is(report.Err(), ErrInvalidName))
	assert.True(t, errors.Is(report.Err(), ErrWrite))
	assert.Len(t, report.Files(), 14)
}

func TestRunFatal(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		called := false
		inspector := load.InspectorFunc(func(context.Context, load.Filter) ([]*load.Table, error) {
			called = true
			return nil, nil
		})
		cfg := testConfig("/out", kind.Entity)
		report, err := New(cfg, inspector, &recorder{}).WithLogger(discard).Run(context.Background())
		require.Error(t, err)
		assert.Nil(t, report)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
		assert.False(t, called)
	})

	t.Run("introspection failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		inspector := load.InspectorFunc(func(context.Context, load.Filter) ([]*load.Table, error) {
			return nil, cause
		})
		_, err := New(testConfig("/out", kind.Entity, "sys_user"), inspector, &recorder{}).WithLogger(discard).Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIntrospection))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := &recorder{}
		report, err := New(testConfig("/out", kind.Entity, "sys_user"), catalog(), r).WithLogger(discard).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Empty(t, report.Files())
		assert.Empty(t, r.jobs)
	})
}

func TestRunFilter(t *testing.T) {
	var got load.Filter
	inspector := load.InspectorFunc(func(_ context.Context, f load.Filter) ([]*load.Table, error) {
		got = f
		return nil, nil
	})
	cfg := testConfig("/out", kind.StateEntity, "sys_order")
	_, err := New(cfg, inspector, &recorder{}).WithLogger(discard).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"sys_order"}, got.Include)
	assert.Equal(t, []string{"sys_"}, got.Prefixes)
	assert.Equal(t, []string{"id", "created_by", "create_time", "updated_by", "update_time", "state"}, got.CommonColumns)
}

func TestRunConfigIsCopied(t *testing.T) {
	cfg := testConfig("/out", kind.Entity, "sys_user")
	g := New(cfg, catalog(), &recorder{}).WithLogger(discard)
	cfg.TableInclude[0] = "sys_dept"
	cfg.ProjectName = ""

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, "sys_user", report.Tables[0].Table)
}

func TestRunOpenDir(t *testing.T) {
	cfg := testConfig("/out", kind.Entity, "sys_user")
	cfg.OpenDir = true

	var opened string
	_, err := New(cfg, catalog(), &recorder{}).
		WithLogger(discard).
		WithOpener(func(_ context.Context, dir string) error {
			opened = dir
			return errors.New("no file manager")
		}).
		Run(context.Background())
	require.NoError(t, err, "opener failures are only logged")
	assert.Equal(t, "/out/demo", opened)

	cfg.OpenDir = false
	opened = ""
	_, err = New(cfg, catalog(), &recorder{}).
		WithLogger(discard).
		WithOpener(func(_ context.Context, dir string) error {
			opened = dir
			return nil
		}).
		Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestRunWritesFiles(t *testing.T) {
	out := t.TempDir()
	w, err := NewTemplateWriter()
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	report, err := New(testConfig(out, kind.Entity, "sys_user", "sys_dept"), catalog(), w).
		WithLogger(discard).
		WithClock(clock).
		Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Len(t, report.Files(), 20)
	assert.Equal(t, 20, w.Metrics().FilesGenerated)

	src := filepath.Join(out, "demo", "src", "main", "kotlin", "com", "zeta", "system")
	for _, f := range report.Files() {
		assert.FileExists(t, filepath.FromSlash(f))
	}
	assert.NoDirExists(t, filepath.Join(src, "user"), "custom files do not create an entity folder")
	assert.FileExists(t, filepath.Join(src, "model", "dto", "user", "UserSaveDTO.kt"))
	assert.FileExists(t, filepath.Join(out, "demo", "src", "main", "resources", "mapper", "system", "UserMapper.xml"))

	read := func(parts ...string) string {
		data, err := os.ReadFile(filepath.Join(append([]string{src}, parts...)...))
		require.NoError(t, err)
		return string(data)
	}

	entity := read("model", "entity", "User.kt")
	assert.Contains(t, entity, "package com.zeta.system.model.entity")
	assert.Contains(t, entity, "import org.zetaframework.base.entity.Entity")
	assert.Contains(t, entity, "import java.time.LocalDate")
	assert.Contains(t, entity, "class User : Entity<Long>() {")
	assert.Contains(t, entity, "@TableName(value = \"sys_user\")")
	assert.Contains(t, entity, "var username: String? = null")
	assert.Contains(t, entity, "var enabled: Boolean? = null")
	assert.Contains(t, entity, "@TableLogic")
	assert.Contains(t, entity, "@date 2024-03-01 09:30:00")
	assert.NotContains(t, entity, "createTime")

	controller := read("controller", "UserController.kt")
	assert.Contains(t, controller, `@PreAuth(replace = "sys:user")`)
	assert.Contains(t, controller, `@RequestMapping("/api/system/user")`)
	assert.Contains(t, controller, "import com.zeta.system.model.dto.user.UserSaveDTO")
	assert.Contains(t, controller, "@Api(tags = [\"用户\"])")

	assert.Contains(t, read("dao", "UserMapper.kt"), "@Repository")
	assert.Contains(t, read("model", "param", "UserQueryParam.kt"), "data class UserQueryParam(")
	// parent_id is a plain field of an audited entity.
	assert.Contains(t, read("model", "dto", "dept", "DeptSaveDTO.kt"), "var parentId: Long? = null,")
}

func TestRunTreeEntityFiles(t *testing.T) {
	out := t.TempDir()
	w, err := NewTemplateWriter()
	require.NoError(t, err)
	cfg := testConfig(out, kind.TreeEntity, "sys_dept")
	cfg.EnableRepository = false

	report, err := New(cfg, catalog(), w).WithLogger(discard).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.Err())

	src := filepath.Join(out, "demo", "src", "main", "kotlin", "com", "zeta", "system")
	entity, err := os.ReadFile(filepath.Join(src, "model", "entity", "Dept.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(entity), "class Dept : TreeEntity<Dept, Long>() {")
	assert.NotContains(t, string(entity), "var parentId")

	save, err := os.ReadFile(filepath.Join(src, "model", "dto", "dept", "DeptSaveDTO.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(save), "var name: String? = null,")
	assert.Contains(t, string(save), "var parentId: Long? = null,")
	assert.Contains(t, string(save), "var sort: Int? = null,")

	mapper, err := os.ReadFile(filepath.Join(src, "dao", "DeptMapper.kt"))
	require.NoError(t, err)
	assert.NotContains(t, string(mapper), "@Repository")
}
