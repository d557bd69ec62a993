// File: cupid/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cupid/config"
	"cupid/cron"
	"cupid/database"
	identityRepoPkg "cupid/database/repository/identity"
	profileRepoPkg "cupid/database/repository/profile"
	"cupid/handlers"
	"cupid/routes"
	"cupid/services/auth"
	"cupid/services/intelligence"
	"cupid/services/media"
	"cupid/services/navigation"
	"cupid/services/profile"
	"cupid/services/tasks"
	"cupid/services/wizard"
	"cupid/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitWizardCache()

	blobStore, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories. Profile reads go through the shared Redis cache.
	profiles := profileRepoPkg.NewCachedProfileRepo(profileRepoPkg.NewMongoProfileRepo(), utils.GetCacheClient())
	identities := identityRepoPkg.NewMongoIdentityRepo()

	// services.
	navStore := navigation.NewStore()
	pipeline := media.NewPipeline(blobStore)

	authService := auth.NewDefaultAuthService(identities, profiles, navStore)
	handlers.SetAuthService(authService)

	sessionService := &profile.DefaultSessionService{
		Repo:  profiles,
		Media: pipeline,
		Nav:   navStore,
	}
	handlers.SetSessionService(sessionService)

	wizardService := &wizard.DefaultWizardService{
		Drafts:   wizard.NewRedisDraftStore(),
		Profiles: profiles,
		Media:    pipeline,
		Nav:      navStore,
		Tasks:    tasks.NewEnqueuer(),
	}
	handlers.SetWizardService(wizardService)

	// Background transcription worker for voice intros.
	if config.AppConfig.GoogleServiceAccountFile != "" {
		cron.InitTranscriptionWorker(intelligence.NewSpeechTranscriber(), profiles)
	} else {
		logger.Sugar().Warn("main: no speech credentials configured, voice intros will not be transcribed")
	}

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
