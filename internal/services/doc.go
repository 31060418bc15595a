// Package services implements the business logic layer of the fuel-station
// reporting server. It provides a clean separation between HTTP handlers
// and data processing, ensuring that business rules are centralized and
// testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//	4. Error sentinels shared with transport for consistent mapping
//
// # Available Services
//
// The package provides these core services:
//
//	- DatasetService: ingests point-of-sale workbooks and answers
//	  transaction and statistics queries over the normalized records
//	- EntryService: validates and persists hand-keyed manual entries
//	- HealthService: provides system health checks and statistics
//
// # Error Handling
//
// Services return sentinel errors that handlers transform into RFC 7807
// problem responses:
//
//	- errors.ErrNoDataset when a query runs before any upload
//	- errors.ErrEmptyDataset when a workbook yields no records
//	- errors.ErrInvalidPeriod / ErrInvalidTimeRange for bad query input
//	- ErrEntryNotFound for missing manual entries
package services
