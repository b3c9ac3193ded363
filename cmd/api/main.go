package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/catalog"
	"github.com/nisantasi/storefront/internal/config"
	"github.com/nisantasi/storefront/internal/database"
	"github.com/nisantasi/storefront/internal/handlers"
	middlewareCustom "github.com/nisantasi/storefront/internal/middleware"
	"github.com/nisantasi/storefront/internal/repositories"
	"github.com/nisantasi/storefront/internal/routes"
	"github.com/nisantasi/storefront/internal/services"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Mongo, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	cartRepo := repositories.NewCartRepository(db)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		indexCancel()
		logger.Error("failed to create indexes", slog.Any("error", err))
		os.Exit(1)
	}
	indexCancel()

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	mailer, err := services.NewAWSSESMailer(
		cfg.Email.AWSRegion,
		cfg.Email.FromAddress,
		cfg.Email.BrandName,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize mailer", slog.Any("error", err))
		os.Exit(1)
	}

	productCatalog := catalog.New()

	verificationService := services.NewVerificationService(
		userRepo,
		mailer,
		logger,
		cfg.Verification.CodeExpiry,
		cfg.Verification.ResendCooldown,
	)
	authService := services.NewAuthService(userRepo, tokenManager, verificationService, logger)
	userService := services.NewUserService(userRepo, logger)
	settingsService := services.NewSettingsService(settingsRepo, logger)
	cartService := services.NewCartService(cartRepo, productCatalog, logger)
	favoriteService := services.NewFavoriteService(userRepo, productCatalog, logger)

	authHandler := handlers.NewAuthHandler(authService, verificationService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productCatalog)
	cartHandler := handlers.NewCartHandler(cartService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger, &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(
		router,
		authHandler,
		userHandler,
		productHandler,
		cartHandler,
		favoriteHandler,
		settingsHandler,
		tokenManager,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
