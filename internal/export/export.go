package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
)

// Exporter produces the PDF of one language. Implementations never panic on
// failure: the error and the final state are reported in the Result.
type Exporter interface {
	Export(ctx context.Context, lang content.Lang) Result
}

// Result is the outcome of one export run.
type Result struct {
	Lang     content.Lang
	PDFPath  string
	TexPath  string
	State    State
	History  []State
	Duration time.Duration
	Err      error
}

// OK reports whether the PDF was written.
func (r Result) OK() bool {
	return r.State == Done && r.Err == nil
}

// PDFName is the file name of the generated PDF of lang.
func PDFName(lang content.Lang) string {
	return fmt.Sprintf("cv-%s.pdf", lang)
}

// PDFPath is where the PDF of lang is written inside outDir.
func PDFPath(outDir string, lang content.Lang) string {
	return filepath.Join(outDir, PDFName(lang))
}

// TexPath is where the LaTeX source of lang is written inside texDir.
func TexPath(texDir string, lang content.Lang) string {
	return filepath.Join(texDir, fmt.Sprintf("cv-%s.tex", lang))
}

// finish stamps the machine's final state onto r.
func finish(r *Result, m *Machine, started time.Time) Result {
	r.State = m.State()
	r.History = m.History()
	r.Duration = time.Since(started)
	return *r
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// copyFileAtomic copies src to dst through writeFileAtomic.
func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	return writeFileAtomic(dst, data)
}
