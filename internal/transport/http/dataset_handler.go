package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "fuelpos/internal/errors"
	"fuelpos/internal/infrastructure"
	custommw "fuelpos/internal/middleware"
	"fuelpos/pkg/contracts/domain"
)

// timeParamLayouts are accepted formats for the from/to query parameters.
var timeParamLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// DatasetHandler handles dataset HTTP requests with RFC 7807 compliance
type DatasetHandler struct {
	service       DatasetServiceInterface
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
	params        *custommw.QueryParamValidator
	maxUploadSize int64
}

// NewDatasetHandler creates a new dataset handler with RFC 7807 error handling
func NewDatasetHandler(service DatasetServiceInterface, maxUploadSize int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:       service,
		logger:        logger.With(slog.String("component", "dataset_handler")),
		errorHandler:  errorHandler,
		params:        custommw.NewQueryParamValidator(logger, errorHandler),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the dataset routes with proper Chi patterns
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/", h.Info)
	r.Delete("/", h.Clear)

	r.Get("/transactions", h.GetTransactions)
	r.Get("/statistics", h.GetStatistics)
	r.Get("/export", h.Export)

	return r
}

// Upload handles POST /api/dataset with a multipart "file" field
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	start := time.Now()

	if h.maxUploadSize > 0 {
		// Generous envelope on top of the file size limit for the
		// multipart framing; the service enforces the exact cap.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(r.Context(), "upload without file field",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A spreadsheet file is required in the 'file' form field"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "uploading dataset",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	result, err := h.service.Upload(r.Context(), header.Filename, header.Size, file)
	rows := 0
	if result != nil {
		rows = result.Transactions
	}
	custommw.RecordUploadOutcome(r.Context(), header.Filename, header.Size, rows, time.Since(start), err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("filename", header.Filename),
		)
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Info handles GET /api/dataset
func (h *DatasetHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// Clear handles DELETE /api/dataset
func (h *DatasetHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// GetTransactions handles GET /api/dataset/transactions?from=&to=&limit=
func (h *DatasetHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	start := time.Now()

	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	limit, ok := h.params.ValidateInt(w, r, "limit", 1, 1_000_000, 0)
	if !ok {
		return
	}

	transactions, err := h.service.Transactions(r.Context(), from, to)
	custommw.RecordQueryOutcome(r.Context(), "transactions", time.Since(start), err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "transactions query failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.respondError(w, r, err)
		return
	}

	if limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   transactions,
		"count":  len(transactions),
	})
}

// GetStatistics handles GET /api/dataset/statistics?from=&to=&period=
func (h *DatasetHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	start := time.Now()

	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	periodValue, ok := h.params.ValidateEnum(w, r, "period",
		[]string{string(domain.PeriodHour), string(domain.PeriodDay), string(domain.PeriodWeek), string(domain.PeriodMonth)}, "")
	if !ok {
		return
	}
	period := domain.Period(periodValue)

	stats, err := h.service.Statistics(r.Context(), from, to, period)
	custommw.RecordQueryOutcome(r.Context(), "statistics", time.Since(start), err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "statistics query failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("period", string(period)),
		)
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// Export handles GET /api/dataset/export?from=&to=
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	path, err := h.service.ExportCSV(r.Context(), from, to)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"path": path,
		},
	})
}

// parseRange reads optional from/to query parameters. On a malformed value
// it writes the error response and returns ok=false.
func (h *DatasetHandler) parseRange(w http.ResponseWriter, r *http.Request) (from, to *time.Time, ok bool) {
	from, err := parseTimeParam(r.URL.Query().Get("from"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("from", fmt.Sprintf("Invalid timestamp: %v", err)))
		return nil, nil, false
	}

	to, err = parseTimeParam(r.URL.Query().Get("to"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("to", fmt.Sprintf("Invalid timestamp: %v", err)))
		return nil, nil, false
	}

	return from, to, true
}

// parseTimeParam parses an optional timestamp query value. An empty value
// means the bound is open.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range timeParamLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("value %q is not a recognized timestamp", value)
}

// respondError maps service errors to HTTP responses. Structured API
// errors go through the shared error handler; dataset sentinels become
// RFC 7807 problem documents.
func (h *DatasetHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	switch {
	case errors.Is(err, apierrors.ErrNoDataset),
		errors.Is(err, apierrors.ErrEmptyDataset),
		errors.Is(err, apierrors.ErrUnsupportedFileType),
		errors.Is(err, apierrors.ErrFileTooLarge),
		errors.Is(err, apierrors.ErrInvalidPeriod),
		errors.Is(err, apierrors.ErrInvalidTimeRange):
		traceID := infrastructure.GetTraceID(r.Context())
		render.Render(w, r, apierrors.MapDatasetError(err, traceID))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
