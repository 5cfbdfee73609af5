package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/middleware"
	"github.com/opina-app/opina-backend/internal/response"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type ForumService interface {
	History(ctx context.Context, uid string) ([]dto.ForumMessage, error)
	Send(ctx context.Context, uid, name, text string) error
	Subscribe(ctx context.Context, uid string, fn func([]dto.ForumMessage) error) error
}

type forumHandlers struct {
	ResponseHandler response.ResponseHandler
	ForumSvc        ForumService
	upgrader        websocket.Upgrader
}

func NewForumHandlers(deps *Deps) *forumHandlers {
	return &forumHandlers{
		ResponseHandler: deps.ResponseHandler,
		ForumSvc:        deps.ForumSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *forumHandlers) ForumRoutes(mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Get("/messages", h.History)
	r.With(mw.RequireFullAccount).Post("/messages", h.Send)
	r.Get("/ws", h.Stream)
	return r
}

func (h *forumHandlers) History(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.ForumSvc.History(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, msgs)
}

// Send appends one message. A blank text is accepted and silently dropped;
// the client treats it the same as a successful send.
func (h *forumHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var body dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El mensaje no es válido."))
		return
	}

	ctx := r.Context()
	if err := h.ForumSvc.Send(ctx, middleware.UID(ctx), middleware.Name(ctx), body.Text); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusAccepted, nil)
}

// Stream upgrades to a WebSocket and pushes the complete, rebuilt message
// list as one JSON frame per snapshot. The socket is read only to detect the
// client going away; sends use POST /messages.
func (h *forumHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("forum websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	err = h.ForumSvc.Subscribe(ctx, middleware.UID(ctx), func(msgs []dto.ForumMessage) error {
		return conn.WriteJSON(msgs)
	})
	// A listener failure leaves the client with whatever it already has; it
	// reconnects on its own schedule.
	if err != nil && ctx.Err() == nil {
		log.Warn("forum stream ended", "error", err)
	}
}
