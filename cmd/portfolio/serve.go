package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amorizz/portfolio/internal/config"
	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/prefs"
	"github.com/Amorizz/portfolio/internal/server"
	"github.com/Amorizz/portfolio/internal/server/ratelimit"
	"github.com/Amorizz/portfolio/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio site",
	Long: `Start the HTTP server for the bilingual site, the CV pages and downloads,
the contact form, and the admin dashboard (when JWT_SECRET and ADMIN_PASSWORD_HASH are set).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config: 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if n, err := db.PurgeVisits(ctx, time.Now().Add(-store.VisitRetention)); err != nil {
		log.Printf("[server] failed to purge old visits: %v", err)
	} else if n > 0 {
		log.Printf("[server] purged %d visits older than %s", n, store.VisitRetention)
	}

	preferences := prefs.NewRedis(cfg.RedisURL, prefs.DefaultTTL)
	defer preferences.Close()

	srvCfg := server.Config{
		Port:       cfg.Port,
		Content:    content.NewLoader(cfg.DataDir),
		Store:      db,
		Prefs:      preferences,
		RateLimit:  ratelimit.ForSite(cfg.ContactPerHour, cfg.LoginPerMinute),
		OutDir:     cfg.OutDir,
		StaticDir:  cfg.StaticDir,
		IPHashSalt: cfg.IPHashSalt,
		AvatarURL:  staticURL(cfg.StaticDir, cfg.Avatar),
	}

	jwtCfg, jwtErr := config.NewJWTConfig()
	pwCfg, pwErr := config.NewPasswordConfig()
	if jwtErr == nil && pwErr == nil {
		srvCfg.JWT = jwtCfg
		srvCfg.Password = pwCfg
	} else {
		log.Printf("[server] admin dashboard disabled: %v", firstErr(jwtErr, pwErr))
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// staticURL maps a file inside staticDir to its /static URL. Files elsewhere
// are not served, so they yield no URL.
func staticURL(staticDir, file string) string {
	if staticDir == "" || file == "" {
		return ""
	}
	rel, err := filepath.Rel(staticDir, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return "/static/" + filepath.ToSlash(rel)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
