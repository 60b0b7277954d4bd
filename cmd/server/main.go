package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Litjoaco/inacap/config"
	authadapter "github.com/Litjoaco/inacap/internal/adapters/auth"
	"github.com/Litjoaco/inacap/internal/adapters/export"
	"github.com/Litjoaco/inacap/internal/adapters/qr"
	delivery "github.com/Litjoaco/inacap/internal/delivery/http"
	"github.com/Litjoaco/inacap/internal/delivery/http/controllers"
	"github.com/Litjoaco/inacap/internal/delivery/http/middleware"
	"github.com/Litjoaco/inacap/internal/metrics"
	"github.com/Litjoaco/inacap/internal/repository/postgres"
	"github.com/Litjoaco/inacap/internal/services"
)

// @title INACAP Community API
// @version 1.0
// @description Event attendance and community directory API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	metrics.Register()

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	surveyRepo := postgres.NewSurveyRepository(db)
	supportRepo := postgres.NewSupportRepository(db)
	drawRepo := postgres.NewDrawRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	hasher := authadapter.NewBcryptHasher(10)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	qrGen := qr.NewPNGGenerator(cfg.BaseURL, cfg.QRDir)
	exporter := export.NewExcelExporter()

	authService := services.NewAuthService(userRepo, sessionRepo, hasher, issuer, cfg.SessionExpiry)
	userService := services.NewUserService(userRepo, sessionRepo, hasher, qrGen)
	eventService := services.NewEventService(eventRepo, rosterRepo)
	attendanceService := services.NewAttendanceService(rosterRepo, userRepo, eventRepo)
	surveyService := services.NewSurveyService(surveyRepo, eventRepo, rosterRepo)
	supportService := services.NewSupportService(supportRepo)
	drawService := services.NewDrawService(drawRepo, eventRepo, rosterRepo, userRepo)
	statsService := services.NewStatsService(statsRepo, eventRepo, rosterRepo, surveyRepo, exporter)

	auth := middleware.RequireAuth(verifier, authService, logger)
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:       controllers.NewAuthController(logger, authService),
		User:       controllers.NewUserController(logger, userService),
		Event:      controllers.NewEventController(logger, eventService),
		Attendance: controllers.NewAttendanceController(logger, attendanceService),
		Survey:     controllers.NewSurveyController(logger, surveyService),
		Support:    controllers.NewSupportController(logger, supportService),
		Draw:       controllers.NewDrawController(logger, drawService),
		Stats:      controllers.NewStatsController(logger, statsService),
	}, auth)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
