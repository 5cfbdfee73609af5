package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/opina-app/opina-backend/internal/handlers"
	"github.com/opina-app/opina-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	mw := middleware.NewMiddleware(deps.Firebase)
	lmw := middleware.NewLoggerMiddleware(deps.Log)

	r.Use(chimiddleware.RequestID)
	r.Use(lmw.LoggerMiddleware)
	r.Use(mw.FirebaseAuth)

	svh := handlers.NewSurveyHandlers(deps)
	sth := handlers.NewStatsHandlers(deps)
	fh := handlers.NewForumHandlers(deps)
	ush := handlers.NewUserHandlers(deps)

	r.Mount("/surveys", svh.SurveyRoutes())
	r.Mount("/stats", sth.StatsRoutes())
	r.Mount("/forum", fh.ForumRoutes(mw))
	r.Mount("/users", ush.UserRoutes(mw))
	return r
}
