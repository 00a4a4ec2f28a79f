package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Harshitha061298/Clearcare-Project/internal/exitcode"
	"github.com/Harshitha061298/Clearcare-Project/internal/extract"
	"github.com/Harshitha061298/Clearcare-Project/internal/logging"
)

var inspectFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Sniff a CSV source's format without extracting (no writes)",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to a raw CSV source (required)")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	res, err := extract.SniffCSV(inspectFile)
	if err != nil {
		log.Error().Err(err).Msg("inspect failed")
		os.Exit(exitcode.ReadError)
	}

	fmt.Println("=== clearcare inspect ===")
	fmt.Printf("File:          %s\n", inspectFile)
	fmt.Printf("Format:        %s\n", res.Format)
	fmt.Printf("Version:       %s\n", res.Version)
	fmt.Printf("Last updated:  %s\n", res.LastUpdated)
	fmt.Printf("Body columns:  %d\n", res.Columns)
	fmt.Printf("Payer columns: %d\n", res.PayerCols)
	return nil
}
