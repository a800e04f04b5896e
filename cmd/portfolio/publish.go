package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Amorizz/portfolio/internal/config"
	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/export"
	"github.com/Amorizz/portfolio/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish [lang]",
	Short: "Upload the generated CV PDFs over SFTP",
	Long:  "Upload public/cv/cv-{lang}.pdf to the SFTP host configured with SFTP_HOST, SFTP_USER and SFTP_PASSWORD or SFTP_KEY_PATH.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPublish,
}

var publishOutDir string

func init() {
	publishCmd.Flags().StringVarP(&publishOutDir, "out-dir", "o", "", "Directory holding the PDFs (default from config: public/cv)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	langs, err := parseLangs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if publishOutDir != "" {
		cfg.OutDir = publishOutDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return publishPDFs(ctx, cfg, langs, cmd.OutOrStdout())
}

// publishPDFs uploads the PDF of every language in one SFTP session.
func publishPDFs(ctx context.Context, cfg *config.Config, langs []content.Lang, out io.Writer) error {
	files, err := pdfFiles(cfg.OutDir, langs)
	if err != nil {
		return err
	}

	uploader, err := publish.NewUploader(cfg.SFTP)
	if err != nil {
		return err
	}
	if err := uploader.Upload(ctx, files); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	for _, f := range files {
		fmt.Fprintf(out, "✓ published %s\n", f.RemoteName)
	}
	return nil
}

// pdfFiles lists the PDFs to upload, failing before any connection when one is missing.
func pdfFiles(outDir string, langs []content.Lang) ([]publish.File, error) {
	files := make([]publish.File, 0, len(langs))
	for _, lang := range langs {
		path := export.PDFPath(outDir, lang)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("no %s PDF at %s, run `portfolio generate %s` first", lang, path, lang)
		}
		files = append(files, publish.File{LocalPath: path, RemoteName: export.PDFName(lang)})
	}
	return files, nil
}
