package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmdirect/internal/api"
	"farmdirect/internal/app/service"
	"farmdirect/internal/app/session"
	"farmdirect/internal/common/security"
	"farmdirect/internal/domain/repository"
	"farmdirect/internal/platform/cache"
	"farmdirect/internal/platform/config"
	"farmdirect/internal/platform/database"
	"farmdirect/internal/platform/notify"

	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Info().Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	log.Info().Msg("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	cfg := config.AppConfig

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	farmerRepo := repository.NewPgFarmerRepository(database.DB)
	productRepo := repository.NewPgProductRepository(database.DB)
	membershipRepo := repository.NewPgMembershipRepository(database.DB)

	// 6. Session Manager
	sessionManager := session.NewManager(
		session.NewRedisTokenStore(cache.RDB),
		time.Duration(cfg.SessionRefreshWindowSeconds)*time.Second,
		cfg.RefreshTokenTTL,
	)
	defer sessionManager.Close()

	// Session events feed the audit log.
	go func() {
		for ev := range sessionManager.Subscribe() {
			e := log.Info().Str("event", string(ev.Type))
			if ev.Session != nil {
				e = e.Str("user_id", ev.Session.UserID)
			}
			e.Msg("session event")
		}
	}()

	// 7. Initialize Services
	authService := service.NewAuthService(
		userRepo,
		sessionManager,
		service.NewRedisSignupLimiter(cache.RDB, cfg.SignupRateLimitTTL),
		service.NewRedisOTPStore(cache.RDB),
		notify.LogSMSSender{},
		notify.LogMailer{},
		service.NewRedisConfirmationStore(cache.RDB),
		nil, // external identity provider not configured
		cfg.PhoneCountryCode,
		cfg.OTPCodeTTL,
	)
	farmerService := service.NewFarmerService(farmerRepo)
	productService := service.NewProductService(productRepo, farmerService, cfg.ValidityMinDays, cfg.ValidityMaxDays)
	membershipService := service.NewMembershipService(membershipRepo, farmerRepo)
	registrationService := service.NewRegistrationService(
		authService,
		sessionManager,
		farmerService,
		productService,
		cfg.SessionPollAttempts,
		time.Duration(cfg.SessionPollDelayMs)*time.Millisecond,
		cfg.ProfileInsertRetries,
		time.Duration(cfg.ProfileInsertDelayMs)*time.Millisecond,
	)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, registrationService, farmerService, productService, membershipService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Could not start server")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
