package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Amorizz/portfolio/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate [lang]",
	Short: "Validate the content files",
	Long:  "Check cv.json, site.json and projects.json of every language against their schemas and invariants, and report every structural error.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

var validateDataDir string

func init() {
	validateCmd.Flags().StringVar(&validateDataDir, "data-dir", "", "Content directory (default from config: data)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	langs, err := parseLangs(args)
	if err != nil {
		return err
	}

	dataDir := validateDataDir
	if dataDir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dataDir = cfg.DataDir
	}

	if problems := validateContent(content.NewLoader(dataDir), langs, cmd.OutOrStdout()); problems > 0 {
		return fmt.Errorf("%d content file(s) are invalid", problems)
	}
	return nil
}

// validateContent loads every content file of langs and prints one line per file.
// It returns the number of invalid files. A missing translation is reported but
// does not count, since the site falls back to the default language.
func validateContent(loader *content.Loader, langs []content.Lang, out io.Writer) int {
	problems := 0
	for _, lang := range langs {
		checks := []struct {
			file string
			load func() (content.Lang, error)
		}{
			{content.ResumeFile, func() (content.Lang, error) {
				l, err := loader.LoadResume(lang)
				return l.Lang, err
			}},
			{content.SiteFile, func() (content.Lang, error) {
				l, err := loader.LoadSite(lang)
				return l.Lang, err
			}},
			{content.ProjectsFile, func() (content.Lang, error) {
				l, err := loader.LoadProjects(lang)
				return l.Lang, err
			}},
		}

		for _, c := range checks {
			path := loader.Path(lang, c.file)
			served, err := c.load()
			switch {
			case err != nil:
				problems++
				var verr *content.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(out, "✗ %s", verr.Error())
				} else {
					fmt.Fprintf(out, "✗ %s: %v\n", path, err)
				}
			case served != lang:
				fmt.Fprintf(out, "! %s: missing, %s content is served instead\n", path, served)
			default:
				fmt.Fprintf(out, "✓ %s\n", path)
			}
		}
	}
	return problems
}
