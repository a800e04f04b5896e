package content

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Amorizz/portfolio/internal/schemas"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct validator with the content-specific tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
			_, ok := ParseDate(fl.Field().String())
			return ok
		})
	})
	return validate
}

// ParseDate parses a calendar date written as YYYY-MM-DD, YYYY-MM or an RFC 3339 timestamp.
// Only the calendar part is kept: no timezone conversion happens.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 10 && (strings.Contains(s, "T") || strings.Contains(s, " ")) {
		s = s[:10]
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Check validates a decoded resume: struct tags first, then the ongoing-entry invariant.
// It returns nil or the list of offending fields.
func (d *ResumeDocument) Check() []schemas.FieldError {
	fields := structErrors(d)

	for i, e := range d.Experience {
		if msg := ongoingMismatch(e.Current, e.EndDate); msg != "" {
			fields = append(fields, schemas.FieldError{Field: fmt.Sprintf("experience.%d.current", i), Message: msg})
		}
	}
	for i, e := range d.Education {
		if msg := ongoingMismatch(e.Current, e.EndDate); msg != "" && e.Current {
			// A finished degree may omit its end date; an ongoing one must not carry one.
			fields = append(fields, schemas.FieldError{Field: fmt.Sprintf("education.%d.current", i), Message: msg})
		}
	}
	for i, p := range d.Projects {
		if msg := ongoingMismatch(p.Current, p.EndDate); msg != "" {
			fields = append(fields, schemas.FieldError{Field: fmt.Sprintf("projects.%d.current", i), Message: msg})
		}
	}

	return fields
}

// Check validates decoded site content against its struct tags.
func (s *Site) Check() []schemas.FieldError {
	return structErrors(s)
}

// CheckShowcase validates decoded showcase projects and rejects duplicate slugs.
func CheckShowcase(projects []ShowcaseProject) []schemas.FieldError {
	var fields []schemas.FieldError
	seen := make(map[string]int, len(projects))
	for i := range projects {
		for _, f := range structErrors(&projects[i]) {
			f.Field = fmt.Sprintf("%d.%s", i, f.Field)
			fields = append(fields, f)
		}
		if prev, dup := seen[projects[i].ID]; dup {
			fields = append(fields, schemas.FieldError{
				Field:   fmt.Sprintf("%d.id", i),
				Message: fmt.Sprintf("duplicate id %q (also at index %d)", projects[i].ID, prev),
			})
		}
		seen[projects[i].ID] = i
	}
	return fields
}

func ongoingMismatch(current bool, end *string) string {
	ongoing := end == nil || strings.TrimSpace(*end) == ""
	switch {
	case current && !ongoing:
		return "entry is marked current but has an end date"
	case !current && ongoing:
		return "entry has no end date but is not marked current"
	}
	return ""
}

func structErrors(v any) []schemas.FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []schemas.FieldError{{Field: "(root)", Message: err.Error()}}
	}

	fields := make([]schemas.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, schemas.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return fields
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
