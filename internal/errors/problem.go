package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Dataset ingestion errors (sentinel errors shared by services and transport)
var (
	ErrNoDataset           = errors.New("no dataset loaded")
	ErrEmptyDataset        = errors.New("dataset contains no transactions")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidPeriod       = errors.New("invalid grouping period")
	ErrInvalidTimeRange    = errors.New("invalid time range")
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// MapDatasetError maps dataset ingestion errors to HTTP problem details
func MapDatasetError(err error, traceID string) render.Renderer {
	instance := fmt.Sprintf("/api/dataset#trace-%s", traceID)

	switch {
	case errors.Is(err, ErrNoDataset):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeDatasetNotFound,
			"No Dataset Loaded",
			"No spreadsheet has been uploaded yet. Upload a report before querying.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "DATASET_NOT_FOUND")

	case errors.Is(err, ErrEmptyDataset):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeDatasetEmpty,
			"Empty Dataset",
			"The uploaded spreadsheet produced no transaction records.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "DATASET_EMPTY")

	case errors.Is(err, ErrUnsupportedFileType):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeUploadRejected,
			"Unsupported File Type",
			"Only .xlsx and .xls report files are accepted.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNSUPPORTED_FILE_TYPE")

	case errors.Is(err, ErrFileTooLarge):
		return NewProblemDetails(
			http.StatusRequestEntityTooLarge,
			TypePayloadTooLarge,
			"File Too Large",
			"The uploaded file exceeds the maximum allowed size.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "FILE_TOO_LARGE")

	case errors.Is(err, ErrInvalidPeriod):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Invalid Period",
			"Period must be one of: hour, day, week, month.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INVALID_PERIOD")

	case errors.Is(err, ErrInvalidTimeRange):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Invalid Time Range",
			"Range bounds must be valid timestamps with start not after end.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INVALID_TIME_RANGE")

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INTERNAL_ERROR")
	}
}
