// Package server serves the portfolio site: the pages, the CV and its print
// route, the PDF downloads, the contact form, and the admin dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Amorizz/portfolio/internal/config"
	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/format"
	"github.com/Amorizz/portfolio/internal/prefs"
	"github.com/Amorizz/portfolio/internal/rendering"
	"github.com/Amorizz/portfolio/internal/server/middleware"
	"github.com/Amorizz/portfolio/internal/server/ratelimit"
	"github.com/Amorizz/portfolio/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	loader      *content.Loader
	renderer    *rendering.HTMLRenderer
	store       store.Store
	prefs       prefs.Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	validate    *validator.Validate
	outDir      string
	staticDir   string
	ipSalt      string
	avatarURL   string
	now         func() time.Time
}

// Config holds server configuration. Only Content is required: without Store
// the contact form and analytics are off, without JWT and Password the admin
// routes are not mounted.
type Config struct {
	Port       int
	Content    *content.Loader
	Store      store.Store
	Prefs      prefs.Store
	JWT        *config.JWTConfig
	Password   *config.PasswordConfig
	RateLimit  *ratelimit.Config
	OutDir     string
	StaticDir  string
	IPHashSalt string
	// AvatarURL is the photo shown on the CV page.
	AvatarURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Content == nil {
		return nil, errors.New("server: a content loader is required")
	}

	renderer, err := rendering.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		loader:      cfg.Content,
		renderer:    renderer,
		store:       cfg.Store,
		prefs:       cfg.Prefs,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		passwords:   cfg.Password,
		validate:    validator.New(),
		outDir:      cfg.OutDir,
		staticDir:   cfg.StaticDir,
		ipSalt:      cfg.IPHashSalt,
		avatarURL:   cfg.AvatarURL,
		now:         time.Now,
	}
	if cfg.JWT != nil && cfg.Password != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	s.engine = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	var visits middleware.VisitRecorder
	if s.store != nil {
		visits = s.store
	}

	r.Use(
		gin.Recovery(),
		middleware.RequestLog(),
		middleware.Brotli(brotli.DefaultCompression),
		middleware.Language(s.prefs),
		middleware.Visitors(visits, s.ipSalt),
		s.withRateLimit(),
	)

	if s.staticDir != "" {
		if info, err := os.Stat(s.staticDir); err == nil && info.IsDir() {
			r.Static("/static", s.staticDir)
		}
	}

	r.GET("/health", s.handleHealth)

	r.GET("/", s.handleHome)
	r.GET("/about", s.handleAbout)
	r.GET("/projects", s.handleProjects)
	r.GET("/projects/:slug", s.handleProject)
	r.GET("/cv", s.handleCV)
	r.GET("/cv/:file", s.handleCVDownload)
	r.GET("/cv-print/:lang", s.handleCVPrint)
	r.GET("/contact", s.handleContactForm)
	r.POST("/contact", s.handleContactSubmit)

	if s.jwtService != nil {
		r.GET("/admin/login", s.handleLoginForm)
		r.POST("/admin/login", s.handleLogin)
		r.POST("/admin/logout", s.handleLogout)

		admin := r.Group("/admin")
		admin.Use(middleware.RequireAdmin(s.jwtService.AsTokenValidator(), config.AdminCookieName, "/admin/login"))
		admin.GET("", s.handleDashboard)
	}

	r.NoRoute(s.handleNotFound)

	return r
}

// Handler exposes the router, for in-process serving such as the browser export.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[server] stopped")
	return nil
}

// Close stops the rate limiter. The store and preference backends belong to the caller.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withRateLimit limits the form posts per client IP.
func (s *Server) withRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, info := s.rateLimiter.Allow(c.ClientIP(), c.Request.Method, c.Request.URL.Path)

		if info.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if allowed {
			c.Next()
			return
		}

		retry := int(info.RetryAfter.Seconds()) + 1
		c.Header("Retry-After", strconv.Itoa(retry))
		log.Printf("[rate-limit] %s %s blocked for %s: limit=%d retry_after=%ds",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(), info.Limit, retry)

		c.String(http.StatusTooManyRequests, format.For(middleware.Lang(c)).TooManyRequests)
		c.Abort()
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
