package config

import "time"

// Application constants for the fuel station transaction system
const (
	// Application Info
	AppName    = "FuelPOS"
	AppVersion = "1.0.0"

	// Upload Limits
	DefaultMaxUploadSize = 10 << 20 // 10 MiB
	MaxSheetRows         = 100_000

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	UploadTimeout       = 2 * time.Minute
	StatisticsTimeout   = 30 * time.Second
	DefaultQueryTimeout = 15 * time.Second

	// File Paths (relative to working directory)
	DefaultDataDir   = "data"
	DefaultLogsDir   = "logs"
	DefaultExportDir = "data/exports"

	// Snapshot Settings
	SnapshotFileName = "dataset.json"
	EntriesFileName  = "entries.json"
)
