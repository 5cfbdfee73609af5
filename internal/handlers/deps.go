package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/opina-app/opina-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	SurveySvc       SurveyService
	ReportSvc       ReportService
	ExportSvc       ExportService
	StatsClient     StatsClient
	ForumSvc        ForumService
	UserSvc         UserService
}
