package rendering

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/format"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Dimensions are the fixed page measurements, in millimetres, of the LaTeX layout.
// They reproduce the on-screen 34%/66% split of a 210mm wide page.
type Dimensions struct {
	Sidebar   string
	Main      string
	SidePad   string
	MainPad   string
	SideInner string
	MainInner string
	MainLeft  string
	FooterTop string
}

// A4Dimensions is the layout used for every generated CV.
var A4Dimensions = Dimensions{
	Sidebar:   "71.4",
	Main:      "138.6",
	SidePad:   "6",
	MainPad:   "7",
	SideInner: "59.4",
	MainInner: "124.6",
	MainLeft:  "78.4",
	FooterTop: "289",
}

var babelLanguages = map[content.Lang]string{
	content.English: "english",
	content.French:  "french",
}

// latexData is the view handed to the LaTeX template.
type latexData struct {
	*CVView
	Babel string
	Dim   Dimensions
}

// LaTeXOptions controls the typesetting-source renderer.
type LaTeXOptions struct {
	// AvatarPath is a local image file included as the sidebar photo. Empty omits the photo.
	AvatarPath string
	// ProjectPriority overrides format.DefaultProjectPriority.
	ProjectPriority map[string]int
}

// RenderLaTeX renders the CV of doc in lang as a LaTeX source document.
// Every interpolated value is escaped exactly once, inside the template.
func RenderLaTeX(doc *content.ResumeDocument, lang content.Lang, opts LaTeXOptions) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "no resume document to render"}
	}

	if err := checkGraphicPath(texPath(opts.AvatarPath)); err != nil {
		return "", err
	}

	tmpl, err := parseLaTeXTemplate()
	if err != nil {
		return "", err
	}

	view := BuildCVView(doc, lang, Options{
		PrintMode:       true,
		Avatar:          texPath(opts.AvatarPath),
		ProjectPriority: opts.ProjectPriority,
	})
	view.Footer = view.Labels.AvailabilityLaTeX

	data := latexData{
		CVView: view,
		Babel:  babelLanguages[lang],
		Dim:    A4Dimensions,
	}
	if data.Babel == "" {
		data.Babel = babelLanguages[content.DefaultLang]
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute LaTeX template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseLaTeXTemplate parses the embedded LaTeX template with << >> delimiters,
// since braces are everywhere in LaTeX.
func parseLaTeXTemplate() (*template.Template, error) {
	src, err := templateFiles.ReadFile("templates/cv.tex.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "LaTeX template not embedded", Cause: err}
	}

	tmpl, err := template.New("cv.tex").Delims("<<", ">>").Funcs(template.FuncMap{
		"escape":     format.EscapeLaTeX,
		"href":       format.EscapeURL,
		"emph":       latexEmphasis,
		"skillnames": latexSkillNames,
		"graphic":    latexGraphic,
	}).Parse(string(src))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse LaTeX template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// latexEmphasis renders keyword segments, bolding the matches.
func latexEmphasis(segments []format.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Bold {
			b.WriteString(`\textbf{`)
			b.WriteString(format.EscapeLaTeX(s.Text))
			b.WriteString(`}`)
			continue
		}
		b.WriteString(format.EscapeLaTeX(s.Text))
	}
	return b.String()
}

// latexSkillNames renders a comma separated skill list, with the level in parentheses when shown.
func latexSkillNames(skills []SkillItem) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		name := format.EscapeLaTeX(s.Name)
		if s.Level != "" {
			name += " (" + format.EscapeLaTeX(s.Level) + ")"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// unsafeGraphicChars are acted on by TeX before \detokenize sees them.
const unsafeGraphicChars = "%#\\{}^"

// checkGraphicPath refuses image paths that cannot be passed to \includegraphics safely.
func checkGraphicPath(p string) error {
	if p == "" {
		return nil
	}
	if i := strings.IndexAny(p, unsafeGraphicChars); i >= 0 {
		return &RenderError{Message: fmt.Sprintf("avatar path %q contains %q, which LaTeX cannot take in a file name", p, p[i])}
	}
	for _, r := range p {
		if r < ' ' {
			return &RenderError{Message: fmt.Sprintf("avatar path %q contains a control character", p)}
		}
	}
	return nil
}

// latexGraphic is the \includegraphics argument for an image path: the path
// is passed verbatim through \detokenize, so spaces, underscores and the
// other reserved characters are taken literally.
func latexGraphic(p string) (string, error) {
	if err := checkGraphicPath(p); err != nil {
		return "", err
	}
	return `\detokenize{` + p + `}`, nil
}
