package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/openlingua/academy-api/api/swagger"
	"github.com/openlingua/academy-api/internal/handler"
	"github.com/openlingua/academy-api/internal/middleware"
	"github.com/openlingua/academy-api/internal/repository"
	"github.com/openlingua/academy-api/internal/service"
	"github.com/openlingua/academy-api/pkg/cache"
	"github.com/openlingua/academy-api/pkg/config"
	"github.com/openlingua/academy-api/pkg/database"
	"github.com/openlingua/academy-api/pkg/export"
	"github.com/openlingua/academy-api/pkg/logger"
	corsmiddleware "github.com/openlingua/academy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/openlingua/academy-api/pkg/middleware/requestid"
)

// @title OpenLingua Academy API
// @version 1.0.0
// @description Teacher availability and class booking service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()

	teacherRepo := repository.NewTeacherRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, cfg.Availability.CacheEnabled && redisClient != nil)
	teacherSvc := service.NewTeacherService(teacherRepo, nil, logr)
	availabilitySvc := service.NewAvailabilityService(scheduleRepo, bookingRepo, teacherRepo, cacheSvc, metricsSvc, cfg.Availability, nil, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, teacherRepo, availabilitySvc, nil, logr)
	bookingSvc := service.NewBookingService(bookingRepo, availabilitySvc, availabilitySvc, nil, logr)
	exportSvc := service.NewExportService(availabilitySvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		teachers := api.Group("/teachers")
		{
			teachers.GET("", teacherHandler.List)
			teachers.POST("", teacherHandler.Create)
			teachers.GET("/:id", teacherHandler.Get)
			teachers.PUT("/:id", teacherHandler.Update)
			teachers.DELETE("/:id", teacherHandler.Deactivate)

			teachers.GET("/:id/schedule", scheduleHandler.Get)
			teachers.PUT("/:id/schedule", scheduleHandler.Upsert)

			teachers.GET("/:id/availability/slots", availabilityHandler.Slots)
			teachers.GET("/:id/availability/week", availabilityHandler.Week)
			if cfg.Exports.Enabled {
				teachers.GET("/:id/availability/week/export", exportHandler.Week)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingHandler.List)
			bookings.POST("", bookingHandler.Create)
			bookings.POST("/validate", availabilityHandler.Validate)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.PUT("/:id/reschedule", bookingHandler.Reschedule)
			bookings.DELETE("/:id", bookingHandler.Cancel)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
