package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/opina-app/opina-backend/internal/bootstrap"
	statsclient "github.com/opina-app/opina-backend/internal/client/stats"
	"github.com/opina-app/opina-backend/internal/config"
	"github.com/opina-app/opina-backend/internal/handlers"
	"github.com/opina-app/opina-backend/internal/response"
	"github.com/opina-app/opina-backend/internal/router"
	"github.com/opina-app/opina-backend/internal/services"
	"github.com/opina-app/opina-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	sstore := store.NewSurveyStore(bs.Firestore)
	mstore := store.NewMessageStore(bs.Firestore)
	ustore := store.NewUserStore(bs.Firestore)

	// clients
	statsClient := statsclient.NewAdapter(cfg.StatsBaseURL)

	// services
	sserv := services.NewSurveyService(sstore)
	rserv := services.NewReportService(nil, sstore, cfg.ReportMaxTokens)
	if bs.VertexAdapter != nil {
		rserv = services.NewReportService(bs.VertexAdapter, sstore, cfg.ReportMaxTokens)
	}
	eserv := services.NewExportService()
	fserv := services.NewForumService(mstore)
	userv := services.NewUserService(ustore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.SurveySvc = sserv
	deps.ReportSvc = rserv
	deps.ExportSvc = eserv
	deps.StatsClient = statsClient
	deps.ForumSvc = fserv
	deps.UserSvc = userv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":8080", r)
	exitOnError("server start failed", err, bs.Log)
}
