package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"veridia/internal/app"
	"veridia/internal/config"
	"veridia/internal/database"
	apphttp "veridia/internal/http"
	"veridia/internal/http/handlers"
	"veridia/internal/http/metrics"
	httpmw "veridia/internal/http/middleware"
	"veridia/internal/http/response"
	"veridia/internal/integration/mailrelay"
	"veridia/internal/notify"
	"veridia/internal/observability"
	"veridia/internal/repository/postgres"
	"veridia/internal/security"
	"veridia/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
		ConnectWait:     cfg.DBConnectWait,
	})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	positionRepo := postgres.NewPositionRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	reportingRepo := postgres.NewReportingRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	mailClient := mailrelay.NewClient(cfg.MailRelayURL, cfg.MailRelayKey, &http.Client{Timeout: 5 * time.Second})
	dispatcher := notify.NewMailDispatcher(mailClient, userRepo, cfg.MailFrom)

	resumeStore, err := storage.NewFilesystemStore(cfg.UploadDir, cfg.PublicBaseURL+"/media/resumes")
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	authService := app.NewAuthService(userRepo, activityRepo, jwtProvider, dispatcher, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := app.NewUserService(userRepo)
	departmentService := app.NewDepartmentService(departmentRepo, positionRepo, activityRepo)
	positionService := app.NewPositionService(positionRepo, departmentRepo, activityRepo)
	applicationService := app.NewApplicationService(applicationRepo, userRepo, dispatcher, logger)
	reportingService := app.NewReportingService(reportingRepo, applicationRepo, activityRepo, positionRepo, userRepo)

	var rateLimiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	authHandler := handlers.NewAuthHandler(authService, rateLimiter, cfg.LoginRateLimit, cfg.LoginRateWindow)
	userHandler := handlers.NewUserHandler(userService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	positionHandler := handlers.NewPositionHandler(positionService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, resumeStore, rateLimiter, cfg.SubmitRateLimit, cfg.SubmitRateWin)
	dashboardHandler := handlers.NewDashboardHandler(reportingService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		DepartmentHandler:  departmentHandler,
		PositionHandler:    positionHandler,
		ApplicationHandler: applicationHandler,
		DashboardHandler:   dashboardHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
		MediaDir:           cfg.UploadDir,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
