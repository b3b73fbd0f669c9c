package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/cv-portfolio/adapters/http"
	"github.com/khoahotran/cv-portfolio/adapters/media_storage"
	"github.com/khoahotran/cv-portfolio/adapters/persistence"
	avatarUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/avatar"
	authUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/auth"
	documentUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/document"
	profileUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/profile"
	"github.com/khoahotran/cv-portfolio/internal/config"
	"github.com/khoahotran/cv-portfolio/pkg/auth"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
	"github.com/khoahotran/cv-portfolio/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start CV Portfolio API Server...", zap.String("env", cfg.App.Env))

	shutdownTracing, err := tracing.NewTracerProvider(ctx, cfg, appLogger, "cv-portfolio-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	masterOwnerID := uuid.Nil
	if cfg.App.MasterOwnerID != "" {
		masterOwnerID, err = uuid.Parse(cfg.App.MasterOwnerID)
		if err != nil {
			appLogger.Fatal("Invalid master owner id", err)
		}
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	draftRepo := persistence.NewPostgresDraftRepo(dbPool, appLogger)
	documentRepo := persistence.NewPostgresDocumentRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	tokenRevoker := persistence.NewRedisTokenRevoker(redisClient)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(tokenRevoker, appLogger)
	meUseCase := authUC.NewGetMeUseCase(userRepo)
	seedProfileUseCase := profileUC.NewSeedProfileUseCase(profileRepo, kafkaClient, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo, draftRepo, seedProfileUseCase, appLogger)
	getPublicProfileUseCase := profileUC.NewGetPublicProfileUseCase(profileRepo, masterOwnerID, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, draftRepo, kafkaClient, appLogger)
	uploadAvatarUseCase := avatarUC.NewUploadAvatarUseCase(profileRepo, uploader, kafkaClient, appLogger)
	selectAvatarUseCase := avatarUC.NewSelectAvatarUseCase(profileRepo, kafkaClient, appLogger)
	documentUseCase := documentUC.NewDocumentUseCase(documentRepo, uploader, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase, meUseCase, appLogger)
	profileHandler := httpAdapter.NewProfileHandler(
		getProfileUseCase,
		getPublicProfileUseCase,
		updateProfileUseCase,
		uploadAvatarUseCase,
		selectAvatarUseCase,
		appLogger,
	)
	documentHandler := httpAdapter.NewDocumentHandler(documentUseCase, appLogger)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	httpAdapter.NewRouter(router, httpAdapter.RouterDeps{
		JWTService:      jwtSvc,
		TokenRevoker:    tokenRevoker,
		AuthHandler:     authHandler,
		ProfileHandler:  profileHandler,
		DocumentHandler: documentHandler,
		Logger:          appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
