package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amorizz/portfolio/internal/store"
)

// VisitRecorder stores page views.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, v store.Visit) error
}

// untrackedPrefixes are never counted as visits.
var untrackedPrefixes = []string{"/static/", "/admin", "/favicon", "/cv-print/", "/health", "/robots.txt"}

const recordTimeout = 5 * time.Second

// Visitors records successful GET page views with an anonymised IP.
// Clients sending "DNT: 1" are not tracked. Recording happens in the background.
func Visitors(rec VisitRecorder, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if rec == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return
			}
		}

		visit := store.Visit{
			HashedIP:  HashIP(c.ClientIP(), salt),
			Path:      path,
			Lang:      string(Lang(c)),
			UserAgent: c.Request.UserAgent(),
			At:        time.Now().UTC(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := rec.RecordVisit(ctx, visit); err != nil {
				log.Printf("[server] failed to record visit: %v", err)
			}
		}()
	}
}

// HashIP returns the first 16 hex characters of sha256(ip + salt).
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}
