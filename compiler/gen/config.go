package gen

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zetaframework/zeta-generator/schema/kind"
)

// DefaultAuthor is the author written to generated files when none is configured.
const DefaultAuthor = "AutoGenerator"

// Config is the configuration of one generation run.
// The generator works on a copy, changes after New are not observed.
type Config struct {
	// OutputDir is the root directory the project is generated into.
	OutputDir string `yaml:"outputDir"`
	// ProjectName is the project directory under OutputDir.
	ProjectName string `yaml:"projectName"`
	// ModuleName is the last package segment of the generated code.
	ModuleName string `yaml:"moduleName"`
	// PackageName is the base package, for example "com.zeta".
	PackageName string `yaml:"packageName"`
	Author      string `yaml:"author,omitempty"`
	// TableInclude lists the tables to generate. Glob patterns are allowed.
	TableInclude []string `yaml:"tableInclude"`
	// TablePrefix lists the prefixes stripped from table names.
	TablePrefix []string `yaml:"tablePrefix,omitempty"`
	// SuperEntity is the base entity kind of the generated entities.
	SuperEntity kind.Kind `yaml:"superEntity"`
	// EnableRepository adds the repository annotation to the mappers.
	EnableRepository bool `yaml:"enableRepository"`
	// OpenDir opens the project directory when the run completes.
	OpenDir bool `yaml:"openDir"`
	// Workers bounds the tables generated in parallel. Zero means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`
	// DB is passed to the introspector unexamined.
	DB Database `yaml:"db"`
}

// Database holds the connection parameters of the introspected database.
type Database struct {
	Dialect  string `yaml:"dialect"`
	URL      string `yaml:"url"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DefaultConfig returns a configuration with the default values set.
func DefaultConfig() *Config {
	return &Config{
		Author:           DefaultAuthor,
		SuperEntity:      kind.Entity,
		EnableRepository: true,
		OpenDir:          true,
	}
}

// NewConfig returns a default configuration with the options applied.
// All option errors are returned joined.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Build returns a configuration for the given project, module and tables.
// A blank author keeps the default and a blank prefix strips nothing.
func Build(project, module, author, prefix string, include []string) *Config {
	c := DefaultConfig()
	c.ProjectName = project
	c.ModuleName = module
	if strings.TrimSpace(author) != "" {
		c.Author = author
	}
	if strings.TrimSpace(prefix) != "" {
		c.TablePrefix = []string{prefix}
	}
	if len(include) > 0 {
		c.TableInclude = slices.Clone(include)
	}
	return c
}

// LoadConfig reads a YAML configuration file. Values missing from the
// file keep their defaults. A db value that is exactly a ${VAR} reference
// is read from the environment, any other value is kept as written.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.DB.URL = envRef(c.DB.URL)
	c.DB.Username = envRef(c.DB.Username)
	c.DB.Password = envRef(c.DB.Password)
	c.OutputDir = trimSeparators(c.OutputDir)
	return c, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the values required before any table is processed.
// All problems are returned joined, each one a ConfigError.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ProjectName) == "" {
		errs = append(errs, NewConfigError("ProjectName", nil, "project name cannot be empty"))
	}
	if strings.TrimSpace(c.PackageName) == "" {
		errs = append(errs, NewConfigError("PackageName", nil, "package name cannot be empty"))
	}
	if strings.TrimSpace(c.ModuleName) == "" {
		errs = append(errs, NewConfigError("ModuleName", nil, "module name cannot be empty"))
	}
	if len(c.TableInclude) == 0 {
		errs = append(errs, NewConfigError("TableInclude", nil, "at least one table must be included"))
	}
	if !c.SuperEntity.Valid() {
		errs = append(errs, NewConfigError("SuperEntity", c.SuperEntity, "unsupported entity kind"))
	}
	if c.Workers < 0 {
		errs = append(errs, NewConfigError("Workers", c.Workers, "workers cannot be negative"))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cc := *c
	cc.TableInclude = slices.Clone(c.TableInclude)
	cc.TablePrefix = slices.Clone(c.TablePrefix)
	return &cc
}

// envRef resolves a value of the form ${NAME}. Credentials often carry
// a literal '$', so partial references are not expanded.
func envRef(v string) string {
	name, ok := strings.CutPrefix(v, "${")
	if !ok {
		return v
	}
	name, ok = strings.CutSuffix(name, "}")
	if !ok || !isEnvName(name) {
		return v
	}
	return os.Getenv(name)
}

func isEnvName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func trimSeparators(dir string) string {
	trimmed := strings.TrimRight(dir, `/\`)
	if trimmed == "" {
		return dir
	}
	return trimmed
}
