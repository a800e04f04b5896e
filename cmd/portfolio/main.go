// Package main provides the portfolio command: the site server and the CV tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Amorizz/portfolio/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Bilingual portfolio site and CV generator",
	Long:          "Serves the portfolio site and generates the English and French CV as PDF, either through LaTeX or by printing the site in a headless browser.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (overrides the environment)")
}

// loadConfig reads the environment and the optional --config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
