package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfiguration indicates a missing or invalid configuration value.
	// It is fatal for a run and raised before any table is processed.
	ErrInvalidConfiguration = errors.New("zetagen: invalid configuration")
	// ErrInvalidName indicates a degenerate derived identifier. It fails one table only.
	ErrInvalidName = errors.New("zetagen: invalid name")
	// ErrTemplateRender indicates a template execution failure.
	ErrTemplateRender = errors.New("zetagen: template render failed")
	// ErrWrite indicates a failure writing a generated file.
	ErrWrite = errors.New("zetagen: write failed")
	// ErrIntrospection indicates the table metadata could not be read.
	ErrIntrospection = errors.New("zetagen: introspection failed")
)

// Generation phases reported by GenerationError.
const (
	PhaseIntrospect = "introspect"
	PhaseRender     = "render"
	PhaseWrite      = "write"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("zetagen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("zetagen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// NameError represents a name that could not be derived for a table.
type NameError struct {
	Table   string
	Name    string
	Message string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	var b strings.Builder
	b.WriteString("zetagen: invalid name")
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Table != "" {
		b.WriteString(" for table ")
		b.WriteString(e.Table)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for NameError.
func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NewNameError creates a new NameError.
func NewNameError(table, name, message string) *NameError {
	return &NameError{
		Table:   table,
		Name:    name,
		Message: message,
	}
}

// GenerationError represents a failure while producing a table's files.
type GenerationError struct {
	Phase   string // introspect, render or write
	Table   string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("zetagen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Table != "" {
		b.WriteString(" for table ")
		b.WriteString(e.Table)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error of the phase.
func (e *GenerationError) Is(target error) bool {
	switch e.Phase {
	case PhaseRender:
		return target == ErrTemplateRender
	case PhaseWrite:
		return target == ErrWrite
	case PhaseIntrospect:
		return target == ErrIntrospection
	}
	return false
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, table, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		Table:   table,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsNameError reports whether the error is a NameError.
func IsNameError(err error) bool {
	var nameErr *NameError
	return errors.As(err, &nameErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
