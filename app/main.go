package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bbois1999/gun-event/config"
	"github.com/bbois1999/gun-event/delivery"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/provider"
	"github.com/bbois1999/gun-event/repository"
	"github.com/bbois1999/gun-event/service"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	utils.InitLogger()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR not set")
	}
	redisClient, err := config.InitRedis(redisAddr, os.Getenv("REDIS_PASSWORD"), getEnvInt("REDIS_DB", 0))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET not set")
	}
	if len(sessionSecret) < 32 {
		log.Fatal().Msg("SESSION_SECRET must be at least 32 characters. Generate one with: openssl rand -base64 32")
	}

	smsVerifier := provider.NewTwilioVerifier(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
	)
	emailSender := provider.NewResendMailer(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM"),
	)
	uploader := provider.NewUploader(
		os.Getenv("UPLOAD_ENDPOINT"),
		os.Getenv("UPLOAD_TOKEN"),
	)

	legacyPhoneLookup := legacyPhoneLookupEnabled()

	// Repositories
	userRepo := repository.NewUserRepository(db, legacyPhoneLookup)
	pendingRepo := repository.NewPendingRedisRepository(redisClient)
	postRepo := repository.NewPostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, pendingRepo, smsVerifier, emailSender, sessionSecret)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, socialRepo)
	eventService := service.NewEventService(eventRepo)
	socialService := service.NewSocialService(socialRepo, notificationRepo, postRepo, userRepo)

	middleware.InitRateLimiter(redisClient)

	app := gin.Default()
	config.InitMiddleware(app)

	sessions := authService.SessionManager()
	delivery.NewAuthHandler(app, authService)
	delivery.NewUserHandler(app, userService, postService, socialService, sessions)
	delivery.NewPostHandler(app, postService, sessions)
	delivery.NewEventHandler(app, eventService, sessions)
	delivery.NewSocialHandler(app, socialService, sessions)
	delivery.NewUploadHandler(app, uploader, sessions)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// legacyPhoneLookupEnabled reports whether the alternate-format phone lookup
// is active. On unless explicitly disabled; turning it off is for after the
// stored numbers have been migrated to the canonical format.
func legacyPhoneLookupEnabled() bool {
	return os.Getenv("AUTH_LEGACY_PHONE_LOOKUP") != "false"
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
