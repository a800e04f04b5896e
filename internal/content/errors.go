package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Amorizz/portfolio/internal/schemas"
)

// ErrNotFound is returned (wrapped) when no content file exists for a language or its fallback.
var ErrNotFound = errors.New("content not found")

// LoadError reports a failure to read or decode a content file.
type LoadError struct {
	Lang  Lang
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s content from %s: %v", e.Lang, e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError reports every structural problem found in a content file.
type ValidationError struct {
	Lang   Lang
	Path   string
	Fields []schemas.FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid %s content in %s:\n", e.Lang, e.Path))
	for i, f := range e.Fields {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, f.Field, f.Message))
	}
	return sb.String()
}
