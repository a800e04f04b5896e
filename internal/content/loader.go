package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Amorizz/portfolio/internal/schemas"
	schemafiles "github.com/Amorizz/portfolio/schemas"
)

// Content file names inside data/{lang}/.
const (
	ResumeFile   = "cv.json"
	SiteFile     = "site.json"
	ProjectsFile = "projects.json"
)

// Loaded wraps a decoded document with the language that was actually served.
// Lang differs from the requested language when the default-language fallback was used.
type Loaded[T any] struct {
	Value T
	Lang  Lang
	Path  string
}

// FellBack reports whether the document came from the default language instead of the requested one.
func (l Loaded[T]) FellBack(requested Lang) bool {
	return l.Lang != requested
}

// Loader reads content documents from DataDir/{lang}/.
// Documents are read fresh on every call.
type Loader struct {
	DataDir string
}

// NewLoader creates a loader rooted at dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{DataDir: dataDir}
}

// Path returns the path of a content file for a language.
func (l *Loader) Path(lang Lang, file string) string {
	return filepath.Join(l.DataDir, string(lang), file)
}

// LoadResume loads and validates the CV document for lang, falling back to the default language.
func (l *Loader) LoadResume(lang Lang) (Loaded[ResumeDocument], error) {
	return loadWithFallback(l, lang, ResumeFile, schemafiles.CV, func(d *ResumeDocument) []schemas.FieldError {
		return d.Check()
	})
}

// LoadSite loads and validates the site content for lang, falling back to the default language.
func (l *Loader) LoadSite(lang Lang) (Loaded[Site], error) {
	return loadWithFallback(l, lang, SiteFile, schemafiles.Site, func(s *Site) []schemas.FieldError {
		return s.Check()
	})
}

// LoadProjects loads and validates the showcase projects for lang, falling back to the default language.
func (l *Loader) LoadProjects(lang Lang) (Loaded[[]ShowcaseProject], error) {
	return loadWithFallback(l, lang, ProjectsFile, schemafiles.Projects, func(p *[]ShowcaseProject) []schemas.FieldError {
		return CheckShowcase(*p)
	})
}

func loadWithFallback[T any](l *Loader, lang Lang, file, schemaName string, check func(*T) []schemas.FieldError) (Loaded[T], error) {
	if !lang.Valid() {
		return Loaded[T]{}, &UnsupportedLangError{Code: string(lang)}
	}

	path := l.Path(lang, file)
	value, err := loadFile(lang, path, schemaName, check)
	if err == nil {
		return Loaded[T]{Value: value, Lang: lang, Path: path}, nil
	}

	// Only a missing or unreadable file falls back; malformed content is an authoring bug.
	var verr *ValidationError
	if errors.As(err, &verr) || lang == DefaultLang {
		return Loaded[T]{}, err
	}

	log.Printf("[content] %s unavailable (%v), falling back to %s", path, err, DefaultLang)

	fallbackPath := l.Path(DefaultLang, file)
	value, ferr := loadFile(DefaultLang, fallbackPath, schemaName, check)
	if ferr != nil {
		return Loaded[T]{}, ferr
	}
	return Loaded[T]{Value: value, Lang: DefaultLang, Path: fallbackPath}, nil
}

func loadFile[T any](lang Lang, path, schemaName string, check func(*T) []schemas.FieldError) (T, error) {
	var value T

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return value, &LoadError{Lang: lang, Path: path, Cause: fmt.Errorf("%w: %v", ErrNotFound, err)}
		}
		return value, &LoadError{Lang: lang, Path: path, Cause: err}
	}

	if err := schemas.Validate(schemaName, data); err != nil {
		var serr *schemas.ValidationError
		if errors.As(err, &serr) {
			return value, &ValidationError{Lang: lang, Path: path, Fields: serr.Errors}
		}
		return value, &LoadError{Lang: lang, Path: path, Cause: err}
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, &LoadError{Lang: lang, Path: path, Cause: fmt.Errorf("failed to decode JSON: %w", err)}
	}

	if fields := check(&value); len(fields) > 0 {
		return value, &ValidationError{Lang: lang, Path: path, Fields: fields}
	}

	return value, nil
}
