package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode error response",
			"error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", errs.FriendlyMessage("", e.Message))

	case *errs.AlreadyExistsError:
		log.Warn("resource already exists", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", errs.FriendlyMessage("", e.Message))

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", errs.FriendlyMessage("", e.Message))

	case *errs.DatabaseError:
		log.Error("database error", "operation", e.Operation, "error", e.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", errs.Friendly(""))

	case *errs.ExternalServiceError:
		level := slog.LevelError
		if e.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", e.Service,
			"status", e.Status,
			"transient", e.Transient,
			"error", e.Message)

		status := http.StatusBadGateway
		if e.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, "service_unavailable", errs.Friendly("UNAVAILABLE"))

	default:
		log.Error("unexpected error", "error", err, "type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", errs.Friendly(""))
	}
}
