package server

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/export"
	"github.com/Amorizz/portfolio/internal/format"
	"github.com/Amorizz/portfolio/internal/rendering"
	"github.com/Amorizz/portfolio/internal/server/middleware"
)

const htmlContentType = "text/html; charset=utf-8"

// render writes a site page in the request language.
func (s *Server) render(c *gin.Context, status int, name, title string, body any) {
	page := rendering.NewPage(middleware.Lang(c), c.Request.URL.Path, title, body)

	c.Header("Content-Type", htmlContentType)
	c.Status(status)
	// RenderPage writes nothing on failure, so the error page can still be sent.
	if err := s.renderer.RenderPage(c.Writer, name, page); err != nil {
		s.fail(c, err)
	}
}

// fail answers with the status matching err. Missing pages get the 404 page.
func (s *Server) fail(c *gin.Context, err error) {
	status := HTTPStatus(err)
	if status == http.StatusNotFound {
		s.handleNotFound(c)
		return
	}
	log.Printf("[server] request_id=%s %s %s failed: %v",
		middleware.RequestID(c), c.Request.Method, c.Request.URL.Path, err)
	c.String(status, http.StatusText(status))
}

func (s *Server) handleNotFound(c *gin.Context) {
	page := rendering.NewPage(middleware.Lang(c), c.Request.URL.Path, "404", nil)
	c.Header("Content-Type", htmlContentType)
	c.Status(http.StatusNotFound)
	if err := s.renderer.RenderPage(c.Writer, rendering.PageNotFound, page); err != nil {
		log.Printf("[server] failed to render the not found page: %v", err)
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
	}
}

func (s *Server) handleHome(c *gin.Context) {
	lang := middleware.Lang(c)

	site, err := s.loader.LoadSite(lang)
	if err != nil {
		s.fail(c, err)
		return
	}
	projects, err := s.loader.LoadProjects(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	body := rendering.HomeBody{
		Profile:  site.Value.Profile,
		Socials:  site.Value.EnabledSocialLinks(),
		Skills:   site.Value.EnabledSkills(),
		Featured: content.FeaturedShowcase(projects.Value),
	}
	if quotes := site.Value.EnabledQuotes(); len(quotes) > 0 {
		// one quote per day
		q := quotes[s.now().YearDay()%len(quotes)]
		body.Quote = &q
	}

	// certifications live in the CV; the home page still renders without them
	if resume, err := s.loader.LoadResume(lang); err == nil {
		body.Certs = rendering.BuildCVView(&resume.Value, lang, rendering.Options{Now: s.now()}).Certs
	} else {
		log.Printf("[server] home page without certifications: %v", err)
	}

	s.render(c, http.StatusOK, rendering.PageHome, "", body)
}

func (s *Server) handleAbout(c *gin.Context) {
	lang := middleware.Lang(c)

	site, err := s.loader.LoadSite(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.render(c, http.StatusOK, rendering.PageAbout, format.For(lang).NavAbout, rendering.AboutBody{
		Profile:  site.Value.Profile,
		Cards:    site.Value.EnabledAboutCards(),
		Timeline: site.Value.EnabledTimeline(),
		Skills:   site.Value.EnabledSkills(),
		Quotes:   site.Value.EnabledQuotes(),
	})
}

func (s *Server) handleProjects(c *gin.Context) {
	lang := middleware.Lang(c)

	projects, err := s.loader.LoadProjects(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.render(c, http.StatusOK, rendering.PageProjects, format.For(lang).ProjectsTitle, rendering.ProjectsBody{
		Projects: content.SortShowcase(projects.Value),
	})
}

func (s *Server) handleProject(c *gin.Context) {
	lang := middleware.Lang(c)

	projects, err := s.loader.LoadProjects(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	project, ok := content.FindShowcase(projects.Value, c.Param("slug"))
	if !ok {
		s.fail(c, &ErrPageNotFound{Path: c.Request.URL.Path})
		return
	}

	s.render(c, http.StatusOK, rendering.PageProject, project.Title, rendering.ProjectBody{Project: project})
}

func (s *Server) handleCV(c *gin.Context) {
	lang := middleware.Lang(c)

	resume, err := s.loader.LoadResume(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Type", htmlContentType)
	c.Status(http.StatusOK)
	err = s.renderer.RenderCV(c.Writer, &resume.Value, lang, rendering.Options{
		PDFURL: "/cv/" + string(lang) + ".pdf",
		Avatar: s.avatarURL,
		Now:    s.now(),
	})
	if err != nil {
		s.fail(c, err)
	}
}

// handleCVPrint serves the bare A4 CV captured by the browser export.
// The language comes from the path, never from the visitor's preference.
func (s *Server) handleCVPrint(c *gin.Context) {
	lang, err := content.ParseLang(c.Param("lang"))
	if err != nil {
		s.fail(c, err)
		return
	}

	resume, err := s.loader.LoadResume(lang)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Type", htmlContentType)
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	err = s.renderer.RenderCV(c.Writer, &resume.Value, lang, rendering.Options{
		PrintMode: true,
		Avatar:    s.avatarURL,
		Now:       s.now(),
	})
	if err != nil {
		s.fail(c, err)
	}
}

// handleCVDownload serves a generated PDF, /cv/{lang}.pdf, under its download name.
func (s *Server) handleCVDownload(c *gin.Context) {
	code, ok := strings.CutSuffix(c.Param("file"), ".pdf")
	if !ok {
		s.handleNotFound(c)
		return
	}
	lang, err := content.ParseLang(code)
	if err != nil {
		s.fail(c, err)
		return
	}

	path := export.PDFPath(s.outDir, lang)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[server] %s has not been generated", path)
			s.handleNotFound(c)
			return
		}
		s.fail(c, err)
		return
	}

	c.FileAttachment(path, format.PDFFilename(lang, s.now().Year()))
}
