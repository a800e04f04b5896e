package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Amorizz/portfolio/internal/config"
	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/export"
	"github.com/Amorizz/portfolio/internal/observability"
	"github.com/Amorizz/portfolio/internal/server"
)

const (
	modeLaTeX   = "latex"
	modeBrowser = "browser"
)

var generateCmd = &cobra.Command{
	Use:   "generate [lang]",
	Short: "Generate the CV PDFs",
	Long: `Generate the CV PDF of one language, or of every language when none is given.

In latex mode the CV is rendered to LaTeX and compiled with tectonic or pdflatex;
the .tex sources and compiler logs are kept in --tex-dir. In browser mode the
site's print route is served locally and printed by headless Chrome.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateMode     string
	generateDataDir  string
	generateOutDir   string
	generateTexDir   string
	generateCompiler string
	generateAvatar   string
	generateChrome   string
	generateParallel int
	generateMaxPages int
	generatePublish  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", modeLaTeX, "Export path: latex or browser")
	generateCmd.Flags().StringVar(&generateDataDir, "data-dir", "", "Content directory (default from config: data)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out-dir", "o", "", "Directory for the PDFs (default from config: public/cv)")
	generateCmd.Flags().StringVar(&generateTexDir, "tex-dir", "", "Directory for .tex sources and logs (default from config: cv-output)")
	generateCmd.Flags().StringVar(&generateCompiler, "compiler", "", "LaTeX compiler: tectonic, pdflatex, xelatex or lualatex")
	generateCmd.Flags().StringVar(&generateAvatar, "avatar", "", "Photo file for the CV sidebar (latex mode)")
	generateCmd.Flags().StringVar(&generateChrome, "chrome", "", "Chrome executable (browser mode)")
	generateCmd.Flags().IntVarP(&generateParallel, "parallel", "p", 0, "Maximum concurrent exports (0 = one per language)")
	generateCmd.Flags().IntVar(&generateMaxPages, "max-pages", 1, "Warn when a PDF has more pages (0 disables the check)")
	generateCmd.Flags().BoolVar(&generatePublish, "publish", false, "Upload the PDFs over SFTP when every export succeeded")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	langs, err := parseLangs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)

	exporter, closeExporter, err := newExporter(cfg, generateMode)
	if err != nil {
		return err
	}
	defer closeExporter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := &export.Batch{Exporter: exporter, Parallelism: generateParallel}
	results := batch.Run(ctx, langs)
	closeExporter()

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintExportResults(results)

	if failed := export.FailedResults(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d exports failed", len(failed), len(results))
	}

	if generatePublish {
		return publishPDFs(ctx, cfg, langs, out)
	}
	return nil
}

// applyGenerateFlags overrides cfg with the flags that were set.
func applyGenerateFlags(cfg *config.Config) {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{generateDataDir, &cfg.DataDir},
		{generateOutDir, &cfg.OutDir},
		{generateTexDir, &cfg.TexDir},
		{generateCompiler, &cfg.LaTeXCompiler},
		{generateAvatar, &cfg.Avatar},
		{generateChrome, &cfg.ChromePath},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
}

// newExporter builds the exporter of mode and the function releasing it, which
// is safe to call more than once. A missing LaTeX compiler is reported here,
// once, instead of failing every language.
func newExporter(cfg *config.Config, mode string) (export.Exporter, func(), error) {
	loader := content.NewLoader(cfg.DataDir)

	switch mode {
	case modeLaTeX:
		compiler := export.NewCompiler(cfg.LaTeXCompiler)
		if err := compiler.Check(); err != nil {
			return nil, nil, err
		}
		return &export.LaTeXExporter{
			Loader:   loader,
			Compiler: compiler,
			TexDir:   cfg.TexDir,
			OutDir:   cfg.OutDir,
			Avatar:   cfg.Avatar,
			MaxPages: generateMaxPages,
		}, func() {}, nil

	case modeBrowser:
		srv, err := server.New(server.Config{
			Content:   loader,
			OutDir:    cfg.OutDir,
			StaticDir: cfg.StaticDir,
			AvatarURL: staticURL(cfg.StaticDir, cfg.Avatar),
		})
		if err != nil {
			return nil, nil, err
		}
		return &export.BrowserExporter{
			Handler:      srv.Handler(),
			OutDir:       cfg.OutDir,
			Capturer:     export.NewChromeCapturer(cfg.ChromePath),
			PollInterval: export.PollInterval,
			ReadyTimeout: export.ReadyTimeout,
		}, srv.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown mode %q (expected %s or %s)", mode, modeLaTeX, modeBrowser)
}
