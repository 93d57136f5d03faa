package main

import (
	"fmt"
	"net/http"

	"github.com/agritrack/attendance-backend-go/internal/config"
	appHTTP "github.com/agritrack/attendance-backend-go/internal/handler/http"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/agritrack/attendance-backend-go/internal/pkg/jwt"
	"github.com/agritrack/attendance-backend-go/internal/pkg/oauth"
	"github.com/agritrack/attendance-backend-go/internal/repository/postgresql"
	"github.com/agritrack/attendance-backend-go/internal/service/attendance"
	authService "github.com/agritrack/attendance-backend-go/internal/service/auth"
	eventService "github.com/agritrack/attendance-backend-go/internal/service/event"
	reportService "github.com/agritrack/attendance-backend-go/internal/service/report"
	siteService "github.com/agritrack/attendance-backend-go/internal/service/site"
	workerService "github.com/agritrack/attendance-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	zone := cfg.Attendance.Location()

	orgRepo := postgresql.NewOrganizationRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	eventRepo := postgresql.NewClockEventRepository(db, zone)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	reconciler := attendance.NewReconciler(zone)
	classifier := attendance.NewClassifier(zone, cfg.Attendance.DefaultCheckinStart)

	authSvc := authService.NewAuthService(db, userRepo, orgRepo, JWTService, GoogleService)
	siteSvc := siteService.NewSiteService(db, siteRepo)
	workerSvc := workerService.NewWorkerService(db, workerRepo, siteRepo)
	eventSvc := eventService.NewEventService(eventRepo, workerRepo, siteRepo)
	reportSvc := reportService.NewReportService(eventRepo, workerRepo, siteRepo, orgRepo, reconciler, classifier, zone)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	siteHandler := appHTTP.NewSiteHandler(siteSvc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	eventHandler := appHTTP.NewEventHandler(eventSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, JWTService, authHandler, siteHandler, workerHandler, eventHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
