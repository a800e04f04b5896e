package rendering

import (
	"bytes"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/format"
	"github.com/Amorizz/portfolio/internal/store"
)

// Page names accepted by HTMLRenderer.RenderPage.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageProjects = "projects"
	PageProject  = "project"
	PageContact  = "contact"
	PageCV       = "cv.page"
	PageLogin    = "login"
	PageAdmin    = "admin"
	PageNotFound = "notfound"
)

var pageNames = []string{
	PageHome, PageAbout, PageProjects, PageProject, PageContact,
	PageCV, PageLogin, PageAdmin, PageNotFound,
}

// Page is the data every site page is rendered with. Body is page specific.
type Page struct {
	Lang   content.Lang
	Labels *format.Labels
	Title  string
	// Path is the current path, used by the navigation and the language switcher.
	Path string
	Body any
}

// NewPage returns a Page for lang with its labels resolved.
func NewPage(lang content.Lang, path, title string, body any) Page {
	return Page{Lang: lang, Labels: format.For(lang), Title: title, Path: path, Body: body}
}

// HomeBody feeds the home page.
type HomeBody struct {
	Profile  content.Profile
	Socials  []content.SocialLink
	Skills   []content.SiteSkill
	Featured []content.ShowcaseProject
	Certs    []CertRow
	Quote    *content.VisionQuote
}

// AboutBody feeds the about page.
type AboutBody struct {
	Profile  content.Profile
	Cards    []content.AboutCard
	Timeline []content.TimelineEntry
	Skills   []content.SiteSkill
	Quotes   []content.VisionQuote
}

// ProjectsBody feeds the projects listing.
type ProjectsBody struct {
	Projects []content.ShowcaseProject
}

// ProjectBody feeds a project detail page.
type ProjectBody struct {
	Project content.ShowcaseProject
}

// ContactForm is the submitted contact form, echoed back on validation errors.
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=320"`
	Subject string `form:"subject" validate:"required,max=300"`
	Message string `form:"message" validate:"required,min=10,max=5000"`
}

// ContactBody feeds the contact page.
type ContactBody struct {
	Email  string
	Form   ContactForm
	Errors map[string]string
	Sent   bool
}

// LoginBody feeds the admin login page.
type LoginBody struct {
	Error string
}

// AdminBody feeds the admin dashboard.
type AdminBody struct {
	store.VisitStats
	Messages []store.Message
}

// HTMLRenderer renders the site pages and the on-screen and print CV.
// Each page is its own template set sharing the layout and CV partials.
type HTMLRenderer struct {
	pages map[string]*template.Template
	print *template.Template
}

var htmlFuncs = template.FuncMap{
	"year":       func() int { return time.Now().Year() },
	"icon":       contactIcon,
	"entry":      newEntryContext,
	"paragraphs": paragraphs,
}

// NewHTMLRenderer parses every embedded page template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	r := &HTMLRenderer{pages: make(map[string]*template.Template, len(pageNames))}

	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(htmlFuncs).ParseFS(templateFiles,
			"templates/layout.html.tmpl",
			"templates/cv.html.tmpl",
			"templates/"+name+".html.tmpl",
		)
		if err != nil {
			return nil, &TemplateError{Name: name, Message: "failed to parse page template", Cause: err}
		}
		r.pages[name] = tmpl
	}

	printTmpl, err := template.New("cv-print").Funcs(htmlFuncs).ParseFS(templateFiles, "templates/cv.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Name: "cv-print", Message: "failed to parse print template", Cause: err}
	}
	r.print = printTmpl

	return r, nil
}

// RenderPage writes the named page wrapped in the site layout.
// Output is buffered so a failing template never leaves a half written response.
func (r *HTMLRenderer) RenderPage(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return &TemplateError{Name: name, Message: "unknown page"}
	}
	if page.Labels == nil {
		page.Labels = format.For(page.Lang)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return &TemplateError{Name: name, Message: "failed to execute page template", Cause: err}
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderCV writes the CV of doc in lang. In print mode the output is a bare
// A4 document meant for PDF capture; otherwise it is the CV page of the site.
func (r *HTMLRenderer) RenderCV(w io.Writer, doc *content.ResumeDocument, lang content.Lang, opts Options) error {
	if doc == nil {
		return &RenderError{Message: "no resume document to render"}
	}
	view := BuildCVView(doc, lang, opts)

	if !opts.PrintMode {
		return r.RenderPage(w, PageCV, NewPage(lang, "/cv", view.FullName, view))
	}

	var buf bytes.Buffer
	if err := r.print.ExecuteTemplate(&buf, "cv-print", view); err != nil {
		return &TemplateError{Name: "cv-print", Message: "failed to execute print template", Cause: err}
	}
	_, err := buf.WriteTo(w)
	return err
}

// entryContext tells the shared entry partial which section it renders.
type entryContext struct {
	Row       EntryRow
	Project   bool
	Education bool
}

func newEntryContext(row EntryRow, section string) entryContext {
	return entryContext{Row: row, Project: section == "project", Education: section == "education"}
}

var contactIcons = map[string]string{
	"email":    "✉",
	"phone":    "☎",
	"location": "⌖",
	"website":  "⌂",
	"linkedin": "in",
	"github":   "gh",
}

func contactIcon(kind string) string {
	return contactIcons[kind]
}

// paragraphs splits text on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
