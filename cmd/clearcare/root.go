package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Harshitha061298/Clearcare-Project/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "clearcare",
	Short: "Hospital price-transparency MRF extractor",
	Long:  "Normalizes hospital price-transparency files (JSON, tall CSV, wide CSV) into one canonical schema plus a per-run audit devlog.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.CampusID, "campus-id", "", "Campus ID as per the hospital registry")
	pf.StringVar(&cfg.RegistryPath, "registry", "Hospital Registry.xlsx", "Path to the hospital registry workbook")
	pf.StringVar(&cfg.ConfigPath, "config", "utils/config.yaml", "Path to the extract config YAML")
	pf.StringVar(&cfg.BaseDir, "base-dir", ".", "Base directory of the project data tree")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
