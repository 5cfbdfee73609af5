package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/middleware"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/internal/response"
)

type UserService interface {
	CreateProfile(ctx context.Context, uid, email string, req dto.CreateUserRequest) error
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes(mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()
	r.With(mw.RequireFullAccount).Post("/", h.Create)
	r.Get("/me", h.Me)
	r.With(mw.RequireFullAccount).Put("/me", h.Update)
	return r
}

func (h *userHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El perfil no es válido."))
		return
	}
	if body.Name == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El nombre es obligatorio."))
		return
	}

	ctx := r.Context()
	if err := h.UserSvc.CreateProfile(ctx, middleware.UID(ctx), middleware.Email(ctx), body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, nil)
}

func (h *userHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserSvc.GetProfile(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func (h *userHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("El perfil no es válido."))
		return
	}

	user, err := h.UserSvc.UpdateProfile(r.Context(), middleware.UID(r.Context()), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
