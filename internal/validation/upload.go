package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apierrors "fuelpos/internal/errors"
)

// UploadValidator enforces the upload policy for spreadsheet reports:
// allowed extensions and the maximum file size.
type UploadValidator struct {
	maxSize     int64
	allowedExts map[string]struct{}
	logger      *slog.Logger
}

// NewUploadValidator creates an upload validator. Extensions are matched
// case-insensitively and must include the leading dot.
func NewUploadValidator(maxSize int64, allowedExts []string, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	exts := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	return &UploadValidator{
		maxSize:     maxSize,
		allowedExts: exts,
		logger:      logger,
	}
}

// ValidateUpload checks an incoming upload against the policy before any
// bytes are parsed. Returned errors wrap the shared ingestion sentinels so
// transport can map them to problem responses.
func (v *UploadValidator) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := v.allowedExts[ext]; !ok {
		v.logger.Warn("Upload rejected, unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return fmt.Errorf("%w: %s", apierrors.ErrUnsupportedFileType, ext)
	}

	if v.maxSize > 0 && size > v.maxSize {
		v.logger.Warn("Upload rejected, file too large",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSize))
		return fmt.Errorf("%w: %d bytes (limit %d)", apierrors.ErrFileTooLarge, size, v.maxSize)
	}

	return nil
}

// MaxSize returns the configured size cap in bytes.
func (v *UploadValidator) MaxSize() int64 {
	return v.maxSize
}
