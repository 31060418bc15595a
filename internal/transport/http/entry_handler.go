package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "fuelpos/internal/errors"
	"fuelpos/internal/services"
	"fuelpos/pkg/contracts/domain"
)

// EntryHandler handles manual fuel-sale entry requests
type EntryHandler struct {
	service      EntryServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewEntryHandler creates a new manual entry handler
func NewEntryHandler(service EntryServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *EntryHandler {
	return &EntryHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "entry_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the manual entry routes
func (h *EntryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var entry domain.ManualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.WarnContext(r.Context(), "invalid entry payload",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Request body must be a valid JSON entry"))
		return
	}

	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		h.logger.WarnContext(r.Context(), "entry rejected",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
		)
		h.respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "entry created",
		slog.String("request_id", reqID),
		slog.Int("entry_id", created.ID),
		slog.String("pump", created.Pump),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

// List handles GET /api/entries
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.service.List(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   entries,
		"count":  len(entries),
	})
}

// Delete handles DELETE /api/entries/{id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Entry id must be an integer"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.WarnContext(r.Context(), "entry delete failed",
			slog.String("request_id", reqID),
			slog.Int("entry_id", id),
			slog.String("error", err.Error()),
		)
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// respondError maps entry service errors to HTTP responses.
func (h *EntryHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apierrors.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors(fields))
		return
	}

	if errors.Is(err, services.ErrEntryNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("Entry"))
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

// validationMessage renders a human readable message for a failed field.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Must be greater than " + fe.Param()
	default:
		return "Failed validation rule: " + fe.Tag()
	}
}
