package gen

import (
	"errors"
	"strings"

	"github.com/zetaframework/zeta-generator/dialect"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

// Option configures code generation.
type Option func(*Config) error

// WithProject sets the project directory name.
func WithProject(name string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(name) == "" {
			return NewConfigError("ProjectName", nil, "project name cannot be empty")
		}
		c.ProjectName = name
		return nil
	}
}

// WithModule sets the module name, the last package segment of the generated code.
func WithModule(name string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(name) == "" {
			return NewConfigError("ModuleName", nil, "module name cannot be empty")
		}
		c.ModuleName = name
		return nil
	}
}

// WithPackage sets the base package.
// For example: "com.zeta".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(pkg) == "" {
			return NewConfigError("PackageName", nil, "package cannot be empty")
		}
		if strings.Contains(pkg, "..") || strings.HasPrefix(pkg, ".") || strings.HasSuffix(pkg, ".") {
			return NewConfigError("PackageName", pkg, "package contains an empty segment")
		}
		c.PackageName = pkg
		return nil
	}
}

// WithOutputDir sets the output root directory.
// Trailing path separators are trimmed.
func WithOutputDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("OutputDir", nil, "output directory cannot be empty")
		}
		c.OutputDir = trimSeparators(dir)
		return nil
	}
}

// WithAuthor sets the author written to generated files.
// A blank author keeps the current one.
func WithAuthor(author string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(author) != "" {
			c.Author = author
		}
		return nil
	}
}

// WithTables adds tables (or glob patterns) to generate.
func WithTables(tables ...string) Option {
	return func(c *Config) error {
		for _, t := range tables {
			if strings.TrimSpace(t) == "" {
				return NewConfigError("TableInclude", nil, "table name cannot be empty")
			}
		}
		c.TableInclude = append(c.TableInclude, tables...)
		return nil
	}
}

// WithTablePrefix adds prefixes stripped from table names.
// Blank prefixes are ignored.
func WithTablePrefix(prefixes ...string) Option {
	return func(c *Config) error {
		for _, p := range prefixes {
			if strings.TrimSpace(p) != "" {
				c.TablePrefix = append(c.TablePrefix, p)
			}
		}
		return nil
	}
}

// WithSuperEntity sets the base entity kind.
func WithSuperEntity(k kind.Kind) Option {
	return func(c *Config) error {
		if !k.Valid() {
			return NewConfigError("SuperEntity", k, "unsupported entity kind")
		}
		c.SuperEntity = k
		return nil
	}
}

// WithRepository toggles the repository annotation on mappers.
func WithRepository(enabled bool) Option {
	return func(c *Config) error {
		c.EnableRepository = enabled
		return nil
	}
}

// WithOpenDir toggles opening the project directory after the run.
func WithOpenDir(enabled bool) Option {
	return func(c *Config) error {
		c.OpenDir = enabled
		return nil
	}
}

// WithWorkers bounds the number of tables generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithDatabase sets the connection parameters handed to the introspector.
// Supported dialects: "mysql", "postgres", "sqlite" and their aliases.
func WithDatabase(db Database) Option {
	return func(c *Config) error {
		if db.Dialect != "" {
			d, err := dialect.Normalize(db.Dialect)
			if err != nil {
				return NewConfigError("DB.Dialect", db.Dialect, "unsupported dialect; use mysql, postgres, or sqlite")
			}
			db.Dialect = d
		}
		c.DB = db
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
