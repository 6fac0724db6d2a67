package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zetaframework/zeta-generator/compiler/gen"
	"github.com/zetaframework/zeta-generator/compiler/load"
	"github.com/zetaframework/zeta-generator/dialect/sql"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

// DefaultConfigFile is read when no config file is given and it exists.
const DefaultConfigFile = "zetagen.yaml"

// generateFlags are the command line overrides of the config file.
type generateFlags struct {
	config      string
	output      string
	project     string
	module      string
	pkg         string
	author      string
	tables      []string
	prefixes    []string
	superEntity string
	repository  bool
	open        bool
	dialect     string
	dsn         string
	user        string
	password    string
	workers     int
	templates   string
	logLevel    string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file (default "+DefaultConfigFile+" when present)")
	fs.StringVarP(&f.output, "output", "o", "", "output root directory")
	fs.StringVarP(&f.project, "project", "p", "", "project name")
	fs.StringVarP(&f.module, "module", "m", "", "module name")
	fs.StringVar(&f.pkg, "package", "", "base package, e.g. com.zeta")
	fs.StringVar(&f.author, "author", "", "author of the generated files")
	fs.StringSliceVarP(&f.tables, "table", "t", nil, "table to generate (repeatable, globs allowed)")
	fs.StringSliceVar(&f.prefixes, "prefix", nil, "table prefix to strip (repeatable)")
	fs.StringVar(&f.superEntity, "super-entity", "", "base entity kind: NONE, ENTITY, TREE_ENTITY or STATE_ENTITY")
	fs.BoolVar(&f.repository, "repository", true, "annotate mappers with @Repository")
	fs.BoolVar(&f.open, "open", false, "open the project directory when done")
	fs.StringVar(&f.dialect, "dialect", "", "database dialect: mysql, postgres or sqlite")
	fs.StringVar(&f.dsn, "dsn", "", "database connection string (JDBC URLs accepted)")
	fs.StringVar(&f.user, "user", "", "database user")
	fs.StringVar(&f.password, "password", "", "database password")
	fs.IntVarP(&f.workers, "workers", "w", 0, "tables generated in parallel (0 = number of CPUs)")
	fs.StringVar(&f.templates, "templates", "", "directory of templates overriding the embedded ones")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

// resolve loads the config file and applies the flags set on the command line.
func (f *generateFlags) resolve(cmd *cobra.Command) (*gen.Config, error) {
	cfg := gen.DefaultConfig()
	path := f.config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		loaded, err := gen.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	var opts []gen.Option
	if changed("output") {
		opts = append(opts, gen.WithOutputDir(f.output))
	}
	if changed("project") {
		opts = append(opts, gen.WithProject(f.project))
	}
	if changed("module") {
		opts = append(opts, gen.WithModule(f.module))
	}
	if changed("package") {
		opts = append(opts, gen.WithPackage(f.pkg))
	}
	if changed("author") {
		opts = append(opts, gen.WithAuthor(f.author))
	}
	if changed("table") {
		cfg.TableInclude = nil
		opts = append(opts, gen.WithTables(f.tables...))
	}
	if changed("prefix") {
		cfg.TablePrefix = nil
		opts = append(opts, gen.WithTablePrefix(f.prefixes...))
	}
	if changed("super-entity") {
		k, err := kind.Parse(f.superEntity)
		if err != nil {
			return nil, gen.NewConfigError("SuperEntity", f.superEntity, err.Error())
		}
		opts = append(opts, gen.WithSuperEntity(k))
	}
	if changed("repository") {
		opts = append(opts, gen.WithRepository(f.repository))
	}
	// Opening a file manager is opt-in on the command line.
	if changed("open") || path == "" {
		opts = append(opts, gen.WithOpenDir(f.open))
	}
	if changed("workers") {
		opts = append(opts, gen.WithWorkers(f.workers))
	}
	db := cfg.DB
	if changed("dialect") {
		db.Dialect = f.dialect
	}
	if changed("dsn") {
		db.URL = f.dsn
	}
	if changed("user") {
		db.Username = f.user
	}
	if changed("password") {
		db.Password = f.password
	}
	opts = append(opts, gen.WithDatabase(db))
	if err := cfg.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the sources of the configured tables",
		Long: `Generate reads the metadata of the configured tables and writes the
controller, service, mapper, entity, DTO and query parameter sources of each.

Values from the config file are overridden by the flags given on the command line.`,
		Example: `  zetagen generate -c zetagen.yaml
  zetagen generate --dialect mysql --dsn "jdbc:mysql://127.0.0.1:3306/zeta" --user root \
      --project zeta-kotlin --module system --package com.zeta -t sys_user -t sys_dept --prefix sys_`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			report, err := Generate(cmd.Context(), cfg, logger, flags.templates)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if failed := report.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d tables failed", len(failed), len(report.Tables))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// Generate runs one generation of the configuration against its database.
func Generate(ctx context.Context, cfg *gen.Config, logger *slog.Logger, templates string) (*gen.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DB.Dialect == "" {
		return nil, gen.NewConfigError("DB.Dialect", nil, "database dialect cannot be empty")
	}
	dsn, err := sql.DSN(cfg.DB.Dialect, cfg.DB.URL, cfg.DB.Username, cfg.DB.Password)
	if err != nil {
		return nil, gen.NewConfigError("DB.URL", nil, err.Error())
	}
	drv, err := sql.Open(cfg.DB.Dialect, dsn, sql.WithSlowQueryLog(logger))
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	if err := drv.Ping(ctx); err != nil {
		return nil, gen.NewGenerationError(gen.PhaseIntrospect, "", "", "connect to database", err)
	}
	inspector, err := load.NewInspector(drv)
	if err != nil {
		return nil, err
	}

	var writer *gen.TemplateWriter
	if templates != "" {
		writer, err = gen.NewTemplateWriter(os.DirFS(templates))
	} else {
		writer, err = gen.NewTemplateWriter()
	}
	if err != nil {
		return nil, err
	}

	report, err := gen.New(cfg, inspector, writer).WithLogger(logger).Run(ctx)
	logger.Debug("catalog queries", "stats", drv.Usage().String())
	return report, err
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// printReport writes the colored summary of a run.
func printReport(w io.Writer, report *gen.Report) {
	ok := color.New(color.FgGreen).Sprint("✓")
	fail := color.New(color.FgRed).Sprint("✗")
	skip := color.New(color.FgYellow).Sprint("!")

	fmt.Fprintf(w, "Run %s\n", report.RunID)
	for _, res := range report.Tables {
		if res == nil {
			continue
		}
		if res.Err != nil {
			fmt.Fprintf(w, "  %s %-24s %s\n", fail, res.Table, color.New(color.FgRed).Sprint(res.Err))
			continue
		}
		fmt.Fprintf(w, "  %s %-24s %s (%d files)\n", ok, res.Table, res.Entity, len(res.Files))
	}
	for _, name := range report.Unmatched {
		fmt.Fprintf(w, "  %s %-24s %s\n", skip, name, color.New(color.FgYellow).Sprint("no such table"))
	}
	failed := len(report.Failed())
	summary := fmt.Sprintf("%d tables, %d files, %d failed", len(report.Tables), len(report.Files()), failed)
	if failed > 0 {
		fmt.Fprintln(w, color.New(color.FgRed, color.Bold).Sprint(summary))
		return
	}
	fmt.Fprintln(w, color.New(color.FgGreen, color.Bold).Sprint(summary))
}
