package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profilewizard/config"
	"profilewizard/cron"
	"profilewizard/database"
	locationRepo "profilewizard/database/repository/location"
	profileRepo "profilewizard/database/repository/profile"
	"profilewizard/handlers"
	"profilewizard/middleware"
	"profilewizard/routes"
	"profilewizard/services/location"
	"profilewizard/services/profile"
	"profilewizard/services/storage"
	"profilewizard/services/tasks"
	"profilewizard/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// profile store.
	var repo profileRepo.ProfileRepository
	switch config.AppConfig.StoreBackend {
	case "memory":
		logger.Warn("main: using in-memory profile store, profiles are lost on restart")
		repo = profileRepo.NewMemoryProfileRepo()
	default:
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := profileRepo.NewMongoProfileRepo(ctx, database.Database())
		cancel()
		if err != nil {
			logger.Fatal("main: failed to prepare profile collection", zap.Error(err))
		}
		repo = mongoRepo
	}

	// photo storage.
	var photos storage.PhotoStore
	uploadDir := ""
	switch config.AppConfig.StorageBackend {
	case "cloudinary":
		cld, err := storage.NewCloudinaryPhotoStore(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
			config.AppConfig.CloudinaryFolder,
		)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary storage", zap.Error(err))
		}
		photos = cld
	default:
		local, err := storage.NewLocalPhotoStore(config.AppConfig.UploadDir)
		if err != nil {
			logger.Fatal("main: failed to initialize upload dir", zap.Error(err))
		}
		photos = local
		uploadDir = local.Dir()
	}

	// services.
	var locationSvc location.LocationService = &location.DefaultLocationService{
		Repo: locationRepo.NewStaticLocationRepo(),
	}
	var enqueuer tasks.Enqueuer = tasks.NoopEnqueuer{}
	var worker *asynq.Server
	var queueClient *asynq.Client

	if config.AppConfig.RedisEnabled {
		if err := utils.InitCache(); err != nil {
			logger.Error("main: redis unavailable, continuing without cache and task queue", zap.Error(err))
		} else {
			locationSvc = location.NewCachedLocationService(
				locationSvc,
				location.NewRedisCache(utils.GetCacheClient()),
				config.AppConfig.LocationCacheTTL,
				logger,
			)
			queueClient = asynq.NewClient(cron.RedisOpt())
			enqueuer = tasks.NewAsynqEnqueuer(queueClient)
			worker = cron.StartWorker(cron.LogSubscriber{Logger: logger}, logger)
		}
	}

	profileSvc := profile.NewProfileService(repo, photos, enqueuer, logger)
	if config.AppConfig.MaxPhotoBytes > 0 {
		profileSvc.MaxPhotoBytes = config.AppConfig.MaxPhotoBytes
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	locationHandler := handlers.NewLocationHandler(locationSvc)
	profileHandler := handlers.NewProfileHandler(profileSvc)

	handlerBundle := &handlers.HandlerBundle{
		GetCountriesHandler:  locationHandler.GetCountriesHandler,
		GetStatesHandler:     locationHandler.GetStatesHandler,
		GetCitiesHandler:     locationHandler.GetCitiesHandler,
		CreateProfileHandler: profileHandler.CreateProfileHandler,
		UploadPhotoHandler:   profileHandler.UploadPhotoHandler,
		HealthHandler:        handlers.HealthHandler,
		UploadDir:            uploadDir,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if client := utils.GetCacheClient(); client != nil {
		_ = client.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Error("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
