// Package exporter provides CSV export functionality for normalized
// fuel-station transactions.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM so Excel renders Vietnamese text correctly.
//
// TransactionExporter: Writes full transaction exports, per-day files,
// and per-station summary reports.
//
// Example usage:
//
//	exp := exporter.NewTransactionExporter("data/exports")
//
//	// Export all records to one file
//	path, err := exp.ExportTransactions(records, "transactions.csv")
//
//	// Per-station aggregates
//	summaries := exp.GenerateStationSummaries(records)
//	err = exp.ExportStationSummary(summaries, "station_summary.csv")
package exporter
