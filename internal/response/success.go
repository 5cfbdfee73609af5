package response

import (
	"encoding/json"
	"net/http"

	"github.com/opina-app/opina-backend/pkg/logger"
)

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(SuccessEnvelope{Success: true, Data: data}); err != nil {
		// Headers are gone; logging is all that's left.
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}
