// Command processor converts fuel station sales report workbooks into CSV
// files without running the HTTP server. It discovers .xlsx/.xls files in
// the input directory, normalizes their rows and writes a combined export,
// per-day files and a station summary to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"fuelpos/internal/dataprocessing"
	"fuelpos/internal/exporter"
	"fuelpos/internal/validation"
	"fuelpos/pkg/contracts/domain"
)

// decodeWorkers bounds how many workbooks are parsed concurrently.
const decodeWorkers = 4

func main() {
	inDir := flag.String("in", "data", "input directory containing report workbooks")
	outDir := flag.String("out", "data/exports", "output directory for CSV files")
	daily := flag.Bool("daily", false, "also write one CSV per day")
	summary := flag.Bool("summary", false, "also write a per-station summary CSV")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*inDir, *outDir, *daily, *summary, logger); err != nil {
		logger.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(inDir, outDir string, daily, summary bool, logger *slog.Logger) error {
	validator := validation.NewFileValidator(logger)

	if err := validator.ValidateInputDirectory(inDir, "*.xls*"); err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	workbooks, err := validator.DiscoverWorkbooks(inDir)
	if err != nil {
		return fmt.Errorf("discover workbooks: %w", err)
	}
	if len(workbooks) == 0 {
		return fmt.Errorf("no report workbooks found in %s", inDir)
	}

	logger.Info("Processing report workbooks",
		slog.Int("count", len(workbooks)),
		slog.String("input", inDir),
		slog.String("output", outDir))

	perFile := make([][]domain.Transaction, len(workbooks))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(decodeWorkers)
	for i, path := range workbooks {
		g.Go(func() error {
			fileRecords, err := processWorkbook(path)
			if err != nil {
				logger.Warn("Skipping workbook",
					slog.String("file", filepath.Base(path)),
					slog.String("error", err.Error()))
				return nil
			}
			logger.Info("Workbook processed",
				slog.String("file", filepath.Base(path)),
				slog.Int("transactions", len(fileRecords)))
			perFile[i] = fileRecords
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var records []domain.Transaction
	for _, fileRecords := range perFile {
		records = append(records, fileRecords...)
	}

	if len(records) == 0 {
		return fmt.Errorf("no transactions extracted from %d workbooks", len(workbooks))
	}

	exp := exporter.NewTransactionExporter(outDir)

	combined := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405"))
	path, err := exp.ExportTransactions(records, combined)
	if err != nil {
		return fmt.Errorf("export transactions: %w", err)
	}
	logger.Info("Combined export written", slog.String("path", path))

	if daily {
		if err := exp.ExportDailyFiles(records); err != nil {
			return fmt.Errorf("export daily files: %w", err)
		}
		logger.Info("Daily exports written", slog.String("dir", outDir))
	}

	if summary {
		summaries := exp.GenerateStationSummaries(records)
		if err := exp.ExportStationSummary(summaries, "station_summary.csv"); err != nil {
			return fmt.Errorf("export station summary: %w", err)
		}
		logger.Info("Station summary written", slog.Int("stations", len(summaries)))
	}

	stats := dataprocessing.Summarize(records)
	logger.Info("Processing complete",
		slog.Int("transactions", stats.TotalTransactions),
		slog.Float64("total_amount", stats.TotalAmount),
		slog.Float64("total_quantity", stats.TotalQuantity))

	return nil
}

// processWorkbook decodes one workbook file into transaction records.
func processWorkbook(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, err := dataprocessing.DecodeWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	records, err := dataprocessing.BuildRecords(grid)
	if err != nil {
		return nil, fmt.Errorf("build records: %w", err)
	}
	return records, nil
}
