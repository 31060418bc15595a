// Package config provides centralized configuration management for the
// fuel station transaction system. It handles loading configuration from
// multiple sources, validation, and provides a type-safe API for
// accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FUELPOS_* for namespacing:
//
//	FUELPOS_SERVER_PORT=8080
//	FUELPOS_LOGGING_LEVEL=info
//	FUELPOS_UPLOAD_MAX_FILE_SIZE=10485760
//	FUELPOS_PATHS_DATA_DIR=data
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Values are within acceptable ranges
//	- Upload limits and extension allowlists are non-empty
//	- Data and log directories exist or can be created
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
