package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Amorizz/portfolio/internal/content"
)

const (
	// ContentTimeout bounds the wait for ContentSelector once the page is open.
	ContentTimeout = 20 * time.Second
	// SettleDelay lets fonts and images finish before printing.
	SettleDelay = 1200 * time.Millisecond

	// A4 in inches
	a4Width  = 8.27
	a4Height = 11.69
)

// Capturer prints a URL to PDF. loaded is called once the page is rendered
// and settled, right before printing starts.
type Capturer interface {
	Capture(ctx context.Context, url string, loaded func()) ([]byte, error)
}

// ChromeCapturer drives a headless Chrome through chromedp.
type ChromeCapturer struct {
	// ExecPath overrides the Chrome binary (CHROME_PATH).
	ExecPath       string
	ContentTimeout time.Duration
	Settle         time.Duration
}

// NewChromeCapturer returns a capturer with the default waits.
func NewChromeCapturer(execPath string) *ChromeCapturer {
	return &ChromeCapturer{ExecPath: execPath, ContentTimeout: ContentTimeout, Settle: SettleDelay}
}

func (c *ChromeCapturer) Capture(ctx context.Context, url string, loaded func()) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	log.Printf("[BROWSER] opening %s", url)

	contentTimeout := c.ContentTimeout
	if contentTimeout <= 0 {
		contentTimeout = ContentTimeout
	}

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, contentTimeout)
			defer cancel()
			err := chromedp.WaitVisible(ContentSelector, chromedp.ByQuery).Do(waitCtx)
			if errors.Is(err, context.DeadlineExceeded) {
				return &TimeoutError{Op: "waiting for " + ContentSelector, After: contentTimeout, Cause: err}
			}
			return err
		}),
		chromedp.Sleep(c.Settle),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	if loaded != nil {
		loaded()
	}

	var pdf []byte
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(a4Width).
			WithPaperHeight(a4Height).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPageRanges("1").
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("print to PDF failed: %w", err)
	}

	log.Printf("[BROWSER] captured %d bytes from %s", len(pdf), url)
	return pdf, nil
}

// BrowserExporter is the browser path: serve the site's print route on a
// local listener, wait for it, and print it to PDF.
type BrowserExporter struct {
	// Handler serves the site. When nil, BaseURL must point at a running site.
	Handler http.Handler
	BaseURL string

	OutDir   string
	Capturer Capturer

	PollInterval time.Duration
	ReadyTimeout time.Duration
}

// PrintPath is the print-mode route of lang.
func PrintPath(lang content.Lang) string {
	return "/cv-print/" + string(lang)
}

func (e *BrowserExporter) Export(ctx context.Context, lang content.Lang) Result {
	started := time.Now()
	m := NewMachine()
	res := Result{Lang: lang}

	fail := func(err error) Result {
		res.Err = m.Fail(&CaptureError{Lang: lang, Stage: m.State(), Cause: err})
		return finish(&res, m, started)
	}

	if err := m.To(ServerStarting); err != nil {
		return fail(err)
	}
	base, stop, err := e.startServer()
	if err != nil {
		return fail(err)
	}
	defer stop()

	if err := m.To(WaitingForReady); err != nil {
		return fail(err)
	}
	url := base + PrintPath(lang)
	if err := WaitForReady(ctx, url, e.PollInterval, e.ReadyTimeout); err != nil {
		return fail(err)
	}

	if err := m.To(Rendering); err != nil {
		return fail(err)
	}
	pdf, err := e.Capturer.Capture(ctx, url, func() {
		_ = m.To(Capturing)
	})
	if err != nil {
		return fail(err)
	}
	if m.State() == Rendering {
		if err := m.To(Capturing); err != nil {
			return fail(err)
		}
	}

	if len(pdf) == 0 {
		return fail(errors.New("empty PDF"))
	}
	path := PDFPath(e.OutDir, lang)
	if err := writeFileAtomic(path, pdf); err != nil {
		return fail(err)
	}
	res.PDFPath = path

	if err := m.To(Done); err != nil {
		return fail(err)
	}
	return finish(&res, m, started)
}

// startServer serves Handler on a random loopback port.
func (e *BrowserExporter) startServer() (string, func(), error) {
	if e.Handler == nil {
		if e.BaseURL == "" {
			return "", nil, errors.New("no handler and no base url to capture from")
		}
		return strings.TrimSuffix(e.BaseURL, "/"), func() {}, nil
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{Handler: e.Handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[EXPORT] render server error: %v", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[EXPORT] render server shutdown: %v", err)
		}
	}
	return "http://" + ln.Addr().String(), stop, nil
}
