package services

import (
	"context"
	"log/slog"

	"fuelpos/internal/infrastructure"
)

// Helper functions for dataset service logging using the centralized
// infrastructure logger.

// logIngestError logs an error in dataset ingestion operations
func logIngestError(ctx context.Context, action, message string, attrs ...slog.Attr) {
	logger := infrastructure.LoggerWithContext(ctx)

	// Add standard attributes
	allAttrs := []slog.Attr{
		slog.String("component", "dataset_service"),
		slog.String("action", action),
	}

	allAttrs = append(allAttrs, attrs...)

	logger.LogAttrs(ctx, slog.LevelError, message, allAttrs...)
}
