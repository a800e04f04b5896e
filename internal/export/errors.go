// Package export turns a rendered CV into a PDF, either by compiling the LaTeX
// source or by printing the site's print route in a headless browser.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
)

var (
	// ErrTimeout is matched (errors.Is) by every timeout raised by this package.
	ErrTimeout = errors.New("export timed out")
	// ErrCompilerNotFound means the LaTeX compiler binary is not in PATH. It is fatal for every language.
	ErrCompilerNotFound = errors.New("latex compiler not found")
	// ErrIllegalTransition is returned by Machine for a transition the export lifecycle does not allow.
	ErrIllegalTransition = errors.New("illegal export state transition")
)

// TimeoutError reports a bounded wait that ran out.
type TimeoutError struct {
	Op    string
	After time.Duration
	Cause error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: timed out after %s: %v", e.Op, e.After, e.Cause)
	}
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.After)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// Is makes every TimeoutError match ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// CompilationError represents a LaTeX compilation failure. TexPath is kept on disk.
type CompilationError struct {
	Lang    content.Lang
	TexPath string
	Message string
	Log     string
	Cause   error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error (%s): %s: %v", e.Lang, e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error (%s): %s", e.Lang, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// CaptureError is a failure of the browser path, tagged with the state it happened in.
type CaptureError struct {
	Lang  content.Lang
	Stage State
	Cause error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("browser capture failed (%s, %s): %v", e.Lang, e.Stage, e.Cause)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}
