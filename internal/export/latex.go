package export

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/rendering"
)

// LaTeXExporter is the compiler path: render the LaTeX source, keep it in
// TexDir, compile it there, and copy the PDF into OutDir.
type LaTeXExporter struct {
	Loader   *content.Loader
	Compiler *Compiler
	TexDir   string
	OutDir   string
	// Avatar is an optional photo file for the sidebar.
	Avatar string
	// MaxPages logs a warning when the PDF is longer. Zero disables the check.
	MaxPages int
}

func (e *LaTeXExporter) Export(ctx context.Context, lang content.Lang) Result {
	started := time.Now()
	m := NewMachine()
	res := Result{Lang: lang, TexPath: TexPath(e.TexDir, lang)}

	if err := m.To(Rendering); err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}

	loaded, err := e.Loader.LoadResume(lang)
	if err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}
	if loaded.FellBack(lang) {
		log.Printf("[EXPORT] no %s resume, using %s content", lang, loaded.Lang)
	}

	opts := rendering.LaTeXOptions{}
	if e.Avatar != "" {
		// the compiler runs inside TexDir, so relative paths would break
		if abs, err := filepath.Abs(e.Avatar); err == nil {
			opts.AvatarPath = abs
		}
	}

	source, err := rendering.RenderLaTeX(&loaded.Value, lang, opts)
	if err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}
	if err := writeFileAtomic(res.TexPath, []byte(source)); err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}
	log.Printf("[EXPORT] wrote %s", res.TexPath)

	if err := m.To(Capturing); err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}

	builtPDF, err := e.Compiler.Compile(ctx, lang, res.TexPath, e.TexDir)
	if err != nil {
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}

	res.PDFPath = PDFPath(e.OutDir, lang)
	if err := copyFileAtomic(builtPDF, res.PDFPath); err != nil {
		res.PDFPath = ""
		res.Err = m.Fail(err)
		return finish(&res, m, started)
	}

	if e.MaxPages > 0 {
		if pages, err := CountPDFPages(res.PDFPath); err != nil {
			log.Printf("[EXPORT] skipping page count for %s: %v", res.PDFPath, err)
		} else if pages > e.MaxPages {
			log.Printf("[EXPORT] warning: %s has %d pages (expected at most %d)", res.PDFPath, pages, e.MaxPages)
		}
	}

	if err := m.To(Done); err != nil {
		res.Err = m.Fail(err)
	}
	return finish(&res, m, started)
}
