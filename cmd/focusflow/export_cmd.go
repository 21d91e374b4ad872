package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/export"
	"github.com/sadopc/focusflow/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export focus check history to CSV or JSON",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
	exportLimit  int
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: focusflow-history-<date>.<format>)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 1000, "maximum number of entries, newest first")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q: use csv or json", exportFormat)
	}

	path := exportOut
	if path == "" {
		path = fmt.Sprintf("focusflow-history-%s.%s", time.Now().Format("2006-01-02"), exportFormat)
	}

	return withStore(func(s store.Store) error {
		entries, err := s.History(exportLimit)
		if err != nil {
			return err
		}

		if exportFormat == "csv" {
			err = export.ToCSV(entries, path)
		} else {
			err = export.ToJSON(entries, path)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d entries to %s\n", len(entries), path)
		return nil
	})
}
