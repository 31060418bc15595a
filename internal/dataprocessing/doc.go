// Package dataprocessing normalizes fuel-station point-of-sale spreadsheet
// exports into canonical transaction records and derives statistics from them.
//
// # Architecture
//
// The package is organized as a one-way pipeline:
//
//	Workbook → Grid → BuildRecords → []Transaction → FilterByRange → Summarize
//
// 1. Grid decoding: DecodeWorkbook reads the first worksheet into a raw
// cell grid, preserving the number/string distinction of each cell.
//
// 2. Record building: BuildRecords locates the header row (exports prepend
// title and blank rows of unpredictable count), maps each recognized
// Vietnamese column label to a canonical field key, and coerces cells
// per field: dates, numbers, or trimmed text.
//
// 3. Derivation: ComposeDateTime merges a record's date with its optional
// time-of-day string, FilterByRange selects records inside an inclusive
// bound, and Summarize / GroupByPeriod compute aggregate statistics.
//
// # Error Handling
//
// Only structural failures are fatal: a grid with fewer than two rows or
// no detectable header yields a *ParseError. Per-cell failures degrade
// locally (nil date, zero number) so one malformed cell never discards an
// otherwise-good record.
//
// All functions except DecodeWorkbook are pure and synchronous; record
// slices are treated as immutable snapshots by callers.
package dataprocessing
