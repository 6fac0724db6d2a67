package gen

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zetaframework/zeta-generator/compiler/load"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

// standardOutputs are rendered into the directories of the path set.
var standardOutputs = [...]OutputKind{Controller, Service, ServiceImpl, Mapper, Entity, MapperXML}

// Generator runs the generation of one configuration.
type Generator struct {
	cfg       *Config
	inspector load.Inspector
	renderer  Renderer
	logger    *slog.Logger
	workers   int
	opener    func(context.Context, string) error
	now       func() time.Time
}

// New creates a generator for a copy of the configuration.
func New(cfg *Config, inspector load.Inspector, renderer Renderer) *Generator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		cfg:       cfg.Clone(),
		inspector: inspector,
		renderer:  renderer,
		logger:    slog.Default(),
		workers:   workers,
		opener:    OpenDir,
		now:       time.Now,
	}
}

// WithLogger sets the logger of the generator.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.logger = l
	}
	return g
}

// WithWorkers sets the number of tables generated in parallel.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithOpener sets the function opening the project directory. A nil
// opener disables opening regardless of the configuration.
func (g *Generator) WithOpener(open func(context.Context, string) error) *Generator {
	g.opener = open
	return g
}

// WithClock sets the clock used for the file header date.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	if now != nil {
		g.now = now
	}
	return g
}

// TableResult is the outcome of one table.
type TableResult struct {
	Table  string
	Entity string
	// Files lists the written files in render order.
	Files []string
	Err   error
}

// Report is the outcome of a run.
type Report struct {
	RunID string
	// Tables are ordered as introspected.
	Tables []*TableResult
	// Unmatched lists the include entries that matched no table.
	Unmatched []string
}

// Failed returns the results of the failed tables.
func (r *Report) Failed() []*TableResult {
	var failed []*TableResult
	for _, t := range r.Tables {
		if t != nil && t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}

// Err returns the failures of all tables joined, or nil.
func (r *Report) Err() error {
	var errs []error
	for _, t := range r.Failed() {
		errs = append(errs, t.Err)
	}
	return errors.Join(errs...)
}

// Files returns every written file.
func (r *Report) Files() []string {
	var files []string
	for _, t := range r.Tables {
		if t != nil {
			files = append(files, t.Files...)
		}
	}
	return files
}

// Run generates the files of every included table. A table failure is
// recorded in the report and does not stop the other tables; the returned
// error is set only for invalid configuration, introspection failure or
// context cancellation.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	cfg := g.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := kind.Lookup(cfg.SuperEntity)
	if err != nil {
		return nil, NewConfigError("SuperEntity", cfg.SuperEntity, err.Error())
	}
	report := &Report{RunID: uuid.NewString()}
	log := g.logger.With("run", report.RunID)
	layout := KotlinLayout(cfg)

	filter := load.Filter{
		Include:       cfg.TableInclude,
		Prefixes:      cfg.TablePrefix,
		CommonColumns: base.Columns,
	}
	tables, err := g.inspector.Tables(ctx, filter)
	if err != nil {
		return nil, NewGenerationError(PhaseIntrospect, "", "", "read table metadata", err)
	}
	report.Unmatched = filter.Unmatched(tables)
	for _, name := range report.Unmatched {
		log.Warn("included table not found", "table", name)
	}

	log.Info("generation started", "tables", len(tables), "project", layout.ProjectPath(), "kind", cfg.SuperEntity)
	start := g.now()
	globals := NewGlobals(cfg, base, start)
	report.Tables = make([]*TableResult, len(tables))

	// Table failures never cancel the other tables.
	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i, t := range tables {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			report.Tables[i] = g.table(ctx, log, globals, base, layout, t)
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	log.Info("generation finished",
		"files", len(report.Files()),
		"failed", len(report.Failed()),
		"duration", time.Since(start),
	)
	if cfg.OpenDir && g.opener != nil {
		if err := g.opener(ctx, layout.ProjectPath()); err != nil {
			log.Warn("cannot open output directory", "dir", layout.ProjectPath(), "error", err)
		}
	}
	return report, nil
}

// table renders every output of one table and stops at its first failure.
func (g *Generator) table(ctx context.Context, log *slog.Logger, globals *Globals, base kind.Base, layout Layout, t *load.Table) *TableResult {
	res := &TableResult{Table: t.Name, Entity: t.EntityName}
	jobs, err := Plan(g.cfg.SuperEntity, base, globals, layout, t)
	if err != nil {
		res.Err = err
		log.Error("skipping table", "table", t.Name, "error", err)
		return res
	}
	for _, job := range jobs {
		if err := g.renderer.Render(ctx, job); err != nil {
			res.Err = err
			log.Error("table generation failed", "table", t.Name, "file", job.Path, "error", err)
			return res
		}
		res.Files = append(res.Files, job.Path)
	}
	log.Info("table generated", "table", t.Name, "entity", t.EntityName, "files", len(res.Files))
	return res
}

// Plan derives the names, paths and binding of a table and returns the
// render jobs of its files: the standard outputs followed by the custom files.
func Plan(k kind.Kind, base kind.Base, globals *Globals, layout Layout, t *load.Table) ([]*Job, error) {
	names, err := DeriveNames(layout.PackageName, layout.ModuleName, t.EntityName, t.Name)
	if err != nil {
		return nil, err
	}
	paths := layout.Resolve(names)
	b := BuildBinding(globals, k, base, t, names, paths)
	jobs := make([]*Job, 0, len(standardOutputs)+len(b.CustomFiles))
	for _, o := range standardOutputs {
		jobs = append(jobs, &Job{
			Table:    t.Name,
			Kind:     o,
			Template: TemplateName(o),
			Path:     path.Join(paths[o], FileName(o, names.EntityName)),
			Binding:  b,
		})
	}
	for _, f := range b.CustomFiles {
		jobs = append(jobs, &Job{
			Table:    t.Name,
			Kind:     f.Kind,
			Template: f.Template,
			Path:     ResolveCustom(paths[Other], names.LowerCamelEntityName, f.Path),
			Binding:  b,
		})
	}
	return jobs, nil
}
