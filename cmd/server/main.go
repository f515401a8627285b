package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lendcore.backend/internal/config"
	"lendcore.backend/internal/infrastructure/email"
	"lendcore.backend/internal/infrastructure/repositories"
	"lendcore.backend/internal/interfaces/http/handlers"
	"lendcore.backend/internal/interfaces/http/middleware"
	"lendcore.backend/internal/usecases"
	"lendcore.backend/pkg/jwt"
	"lendcore.backend/pkg/logger"
	"lendcore.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newOTPStore = redis.NewOTPStore
	getStdDB    = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}
	logger.Info(context.Background(), "connected to postgres")

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.ResetExpiry,
	)

	otpStore, err := newOTPStore(cfg.Auth.OTPTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize otp store: %w", err)
	}

	mailer := email.NewLogMailer(cfg.Mail.From)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	supportRepo := repositories.NewSupportRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpStore, mailer, jwtService, cfg.Auth.BcryptCost, cfg.Auth.FrontendURL)
	userUsecase := usecases.NewUserUsecase(userRepo, roleRepo, cfg.Auth.BcryptCost)
	loanUsecase := usecases.NewLoanUsecase(loanRepo, userRepo)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, loanRepo, uow)
	roleUsecase := usecases.NewRoleUsecase(roleRepo, userRepo)
	if err := roleUsecase.EnsureBuiltins(context.Background()); err != nil {
		return fmt.Errorf("failed to seed built-in roles: %w", err)
	}
	supportUsecase := usecases.NewSupportUsecase(supportRepo, uow, mailer)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase, cfg.Upload.Dir, cfg.Upload.BaseURL)
	userHandler := handlers.NewUserHandler(userUsecase)
	loanHandler := handlers.NewLoanHandler(loanUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	adminHandler := handlers.NewAdminHandler(userUsecase, loanUsecase)
	roleHandler := handlers.NewRoleHandler(roleUsecase)
	supportHandler := handlers.NewSupportHandler(supportUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		userHandler:    userHandler,
		loanHandler:    loanHandler,
		paymentHandler: paymentHandler,
		adminHandler:   adminHandler,
		roleHandler:    roleHandler,
		supportHandler: supportHandler,
		authMiddleware: authMiddleware,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.RequestTimeout,
		WriteTimeout:      cfg.Server.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info(context.Background(), "shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
