package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
)

// CompilationTimeout is the maximum time to wait for one LaTeX compilation.
const CompilationTimeout = 2 * time.Minute

// Compiler runs an external LaTeX compiler.
type Compiler struct {
	// Binary is the executable name or path: tectonic (default) or pdflatex.
	Binary  string
	Timeout time.Duration
}

// NewCompiler returns a compiler for binary with the default timeout.
func NewCompiler(binary string) *Compiler {
	if binary == "" {
		binary = "tectonic"
	}
	return &Compiler{Binary: binary, Timeout: CompilationTimeout}
}

// Check fails with ErrCompilerNotFound when the binary cannot be found.
func (c *Compiler) Check() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return fmt.Errorf("%w: %s not in PATH, install tectonic or a TeX distribution: %v", ErrCompilerNotFound, c.Binary, err)
	}
	return nil
}

// args builds the command line for texPath writing into outDir.
func (c *Compiler) args(texPath, outDir string) []string {
	switch filepath.Base(c.Binary) {
	case "tectonic":
		return []string{"--keep-logs", "--outdir", outDir, texPath}
	default:
		// pdflatex, xelatex and lualatex share their flags
		return []string{"-interaction=nonstopmode", "-halt-on-error", "-output-directory", outDir, texPath}
	}
}

// Compile compiles texPath into outDir and returns the PDF path.
// The source file is never removed, whatever the outcome.
func (c *Compiler) Compile(ctx context.Context, lang content.Lang, texPath, outDir string) (string, error) {
	if err := c.Check(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &CompilationError{
			Lang:    lang,
			TexPath: texPath,
			Message: fmt.Sprintf("failed to create output directory: %s", outDir),
			Cause:   err,
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = CompilationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// the compiler runs inside the source directory, so it gets absolute paths
	absTex, err := filepath.Abs(texPath)
	if err != nil {
		return "", &CompilationError{Lang: lang, TexPath: texPath, Message: "failed to resolve source path", Cause: err}
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", &CompilationError{Lang: lang, TexPath: texPath, Message: "failed to resolve output directory", Cause: err}
	}

	cmd := exec.CommandContext(ctx, c.Binary, c.args(absTex, absOut)...)
	cmd.Dir = filepath.Dir(absTex)

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	log.Printf("[COMPILE] %s %s", c.Binary, texPath)
	runErr := cmd.Run()
	logOutput := output.String()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &CompilationError{
			Lang:    lang,
			TexPath: texPath,
			Message: "compiler did not finish",
			Log:     logOutput,
			Cause:   &TimeoutError{Op: c.Binary, After: timeout},
		}
	}

	pdfPath := filepath.Join(absOut, strings.TrimSuffix(filepath.Base(texPath), ".tex")+".pdf")
	if runErr != nil {
		return "", &CompilationError{
			Lang:    lang,
			TexPath: texPath,
			Message: "compiler exited with an error",
			Log:     logOutput,
			Cause:   runErr,
		}
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &CompilationError{
			Lang:    lang,
			TexPath: texPath,
			Message: "PDF was not generated",
			Log:     logOutput,
			Cause:   err,
		}
	}

	return pdfPath, nil
}
