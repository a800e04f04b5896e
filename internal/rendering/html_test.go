package rendering

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/store"
)

func renderCV(t *testing.T, doc *content.ResumeDocument, lang content.Lang, opts Options) *goquery.Document {
	t.Helper()
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderCV(&buf, doc, lang, opts))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return page
}

func TestRenderCV_FrenchCurrentExperience(t *testing.T) {
	page := renderCV(t, testResume(), content.French, Options{})

	dates := page.Find("#cv-experience .dates").First().Text()
	assert.Equal(t, "Juin 2023 – Présent", dates)
	assert.Equal(t, "Expérience", page.Find("#cv-experience h2").Text())
}

func TestRenderCV_CertificationsWithoutStatusHaveNoBadge(t *testing.T) {
	page := renderCV(t, testResume(), content.English, Options{})

	certs := page.Find("#cv-certifications .cv-cert")
	assert.Equal(t, 2, certs.Length())
	assert.Equal(t, 0, certs.Find(".status").Length())
	assert.Equal(t, "Cisco", certs.First().Find(".issuer").Text())
}

func TestRenderCV_CertificationStatusLocalized(t *testing.T) {
	doc := testResume()
	doc.Certifications[0].Status = content.StatusInProgress

	page := renderCV(t, doc, content.French, Options{})
	assert.Equal(t, " | En cours", page.Find("#cv-certifications .status").Text())
}

func TestRenderCV_EmptyListsRenderEmptySections(t *testing.T) {
	page := renderCV(t, emptyResume(), content.English, Options{})

	for _, id := range []string{"#cv-experience", "#cv-education", "#cv-projects", "#cv-certifications", "#cv-interests", "#cv-skills"} {
		section := page.Find(id)
		assert.Equal(t, 1, section.Length(), id)
		assert.Equal(t, 0, section.Find(".cv-entry, .cv-cert, .cv-interest, .cv-skill").Length(), id)
	}
}

func TestRenderCV_ProjectsSortedByPriority(t *testing.T) {
	page := renderCV(t, testResume(), content.English, Options{})

	headings := page.Find("#cv-projects h3").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	require.Len(t, headings, 2)
	assert.Equal(t, "Archive Server", headings[0])
	assert.Equal(t, "Tiny Habits | Lead", headings[1])
}

func TestRenderCV_KeywordEmphasis(t *testing.T) {
	page := renderCV(t, testResume(), content.English, Options{})

	bold := page.Find("#cv-experience .desc strong").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Contains(t, bold, "TCP")
	assert.Equal(t, "Built a TCP server in Go.", page.Find("#cv-experience .desc").First().Text())
}

func TestRenderCV_SkillLevelOnlyForBase(t *testing.T) {
	page := renderCV(t, testResume(), content.English, Options{})

	levels := page.Find("#cv-skills .level")
	require.Equal(t, 1, levels.Length())
	assert.Equal(t, " (Base)", levels.Text())
}

func TestRenderCV_ScreenModeOffersDownload(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	page := renderCV(t, testResume(), content.French, Options{PDFURL: "/cv/fr.pdf", Now: now})

	link := page.Find("#cv-download")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	name, _ := link.Attr("download")
	assert.Equal(t, "/cv/fr.pdf", href)
	assert.Equal(t, "CV_Amaury_Dufrenot_2026.pdf", name)
	assert.Equal(t, 1, page.Find("nav.nav").Length())
}

func TestRenderCV_PrintModeHidesChrome(t *testing.T) {
	page := renderCV(t, testResume(), content.English, Options{PrintMode: true, PDFURL: "/cv/en.pdf"})

	assert.Equal(t, 0, page.Find("#cv-download").Length())
	assert.Equal(t, 0, page.Find("nav").Length())
	assert.True(t, page.Find("#cv-content").HasClass("print"))
}

func TestRenderCV_EscapesHTML(t *testing.T) {
	doc := testResume()
	doc.ProfessionalSummary = "<script>alert(1)</script>"

	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.RenderCV(&buf, doc, content.English, Options{PrintMode: true}))
	assert.NotContains(t, buf.String(), "<script>alert(1)")
}

func TestRenderCV_NilDocument(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	assert.Error(t, r.RenderCV(&bytes.Buffer{}, nil, content.English, Options{}))
}

func TestRenderPage_UnknownPage(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	err = r.RenderPage(&bytes.Buffer{}, "nope", NewPage(content.English, "/", "", nil))
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, "nope", tmplErr.Name)
}

func TestRenderPage_LanguageSwitcher(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageNotFound, NewPage(content.French, "/about", "404", nil)))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	href, _ := page.Find("#language-switch").Attr("href")
	assert.Equal(t, "/about?lang=en", href)
	assert.Equal(t, "fr", page.Find("html").AttrOr("lang", ""))
	assert.Contains(t, page.Find("main").Text(), "Page introuvable.")
}

func TestRenderPage_ProjectParagraphs(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	body := ProjectBody{Project: content.ShowcaseProject{
		ID:                  "archive-server",
		Title:               "Archive Server",
		DetailedDescription: "First paragraph.\n\nSecond paragraph.",
		GitHubURL:           "https://github.com/jane/archive",
	}}
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageProject, NewPage(content.English, "/projects/archive-server", "Archive Server", body)))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	article := page.Find("#project-archive-server")
	assert.Equal(t, 2, article.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.HasSuffix(s.Text(), "paragraph.")
	}).Length())
	assert.Equal(t, "View source code", article.Find("a.button").Text())
}

func TestRenderPage_ContactErrorsEchoForm(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	body := ContactBody{
		Email:  "jane@example.com",
		Form:   ContactForm{Name: "Bob", Message: "short"},
		Errors: map[string]string{"message": "too short"},
	}
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageContact, NewPage(content.English, "/contact", "Contact", body)))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Bob", page.Find("#name").AttrOr("value", ""))
	assert.Equal(t, "too short", page.Find(".error").Text())
}

func TestRenderPage_Admin(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	body := AdminBody{
		VisitStats: store.VisitStats{Days: 30, TotalVisits: 3, UniqueVisitors: 2, TopPaths: []store.PathCount{{Path: "/", Count: 3}}},
		Messages: []store.Message{{
			Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello there!",
			CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageAdmin, NewPage(content.English, "/admin", "Admin", body)))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Find("#messages tr").Length())
	assert.Contains(t, page.Find("#messages").Text(), "2026-01-02 15:04")
	assert.Contains(t, page.Text(), "3 visits, 2 unique visitors over 30 days")
}
