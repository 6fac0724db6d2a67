package gen

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"
	"time"
)

// Job is a single file to render.
type Job struct {
	Table    string
	Kind     OutputKind
	Template string
	// Path is the slash separated file location.
	Path    string
	Binding *Binding
}

// Renderer renders and writes the file of a job, overwriting existing content.
type Renderer interface {
	Render(context.Context, *Job) error
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(context.Context, *Job) error

// Render calls f(ctx, job).
func (f RenderFunc) Render(ctx context.Context, job *Job) error {
	return f(ctx, job)
}

// TemplateWriter renders jobs with text templates and writes them to disk.
// It is safe for concurrent use.
type TemplateWriter struct {
	tmpl *template.Template

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	TemplateTime   int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewTemplateWriter creates a writer over the embedded templates and the
// optional overrides.
func NewTemplateWriter(overrides ...fs.FS) (*TemplateWriter, error) {
	tmpl, err := ParseTemplates(overrides...)
	if err != nil {
		return nil, err
	}
	return &TemplateWriter{
		tmpl:    tmpl,
		metrics: &WriterMetrics{},
	}, nil
}

// Metrics returns a snapshot of the generation metrics.
func (w *TemplateWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// Render implements Renderer.
func (w *TemplateWriter) Render(ctx context.Context, job *Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// 1. Execute template
	start := time.Now()
	var buf bytes.Buffer
	if err := w.tmpl.ExecuteTemplate(&buf, job.Template, job.Binding.Vars()); err != nil {
		return NewGenerationError(PhaseRender, job.Table, job.Path, fmt.Sprintf("execute template %q", job.Template), err)
	}
	rendered := time.Now()

	// 2. Ensure directory exists
	fullPath := filepath.FromSlash(job.Path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError(PhaseWrite, job.Table, job.Path, "create directory", err)
	}

	// 3. Write file
	if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
		return NewGenerationError(PhaseWrite, job.Table, job.Path, "write file", err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(buf.Len())
	w.metrics.TemplateTime += rendered.Sub(start).Nanoseconds()
	w.metrics.WriteTime += time.Since(rendered).Nanoseconds()
	w.mu.Unlock()

	return nil
}
