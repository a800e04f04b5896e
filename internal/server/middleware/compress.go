package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliWriter compresses the body written through it.
type brotliWriter struct {
	gin.ResponseWriter
	bw      *brotli.Writer
	written bool
}

func (w *brotliWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func (w *brotliWriter) Write(p []byte) (int, error) {
	w.Header().Del("Content-Length")
	w.written = true
	return w.bw.Write(p)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) Flush() {
	_ = w.bw.Flush()
	w.ResponseWriter.Flush()
}

// Brotli compresses responses for clients that accept "br".
// PDFs are already compressed and are passed through.
func Brotli(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead ||
			strings.HasSuffix(c.Request.URL.Path, ".pdf") ||
			!acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "br")
		c.Header("Vary", "Accept-Encoding")

		w := &brotliWriter{ResponseWriter: c.Writer}
		w.bw = brotli.NewWriterLevel(w.ResponseWriter, level)
		c.Writer = w
		defer func() {
			// An empty body stays empty: no brotli stream for 204, 304, or redirects.
			if w.written {
				_ = w.bw.Close()
			}
		}()

		c.Next()
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
