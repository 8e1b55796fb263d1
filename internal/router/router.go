package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlist-api/internal/cache"
	"watchlist-api/internal/handler"
	"watchlist-api/internal/metrics"
	"watchlist-api/internal/middleware"
	"watchlist-api/internal/repository"
	"watchlist-api/internal/service"
)

// Config holds everything the router needs to wire the application
type Config struct {
	DB                 *gorm.DB
	Redis              *redis.Client
	Logger             *zap.Logger
	BasePath           string
	Metrics            *metrics.Metrics
	CacheTTL           time.Duration
	CORSAllowedOrigins string
}

// Setup builds the gin engine with all routes and middleware registered
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.CORSAllowedOrigins != "" {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	listRepo := repository.NewListRepository(cfg.DB)
	videoRepo := repository.NewVideoRepository(cfg.DB)
	tagRepo := repository.NewTagRepository(cfg.DB)
	fieldRepo := repository.NewFieldRepository(cfg.DB)
	schemaRepo := repository.NewSchemaRepository(cfg.DB)
	valueRepo := repository.NewValueRepository(cfg.DB)
	analyticsRepo := repository.NewAnalyticsRepository(cfg.DB)
	txManager := repository.NewTxManager(cfg.DB)

	// Services
	analyticsCache := cache.NewAnalyticsCache(cfg.Redis, cfg.CacheTTL, cfg.Logger)
	listService := service.NewListService(listRepo, videoRepo, tagRepo, fieldRepo, schemaRepo, valueRepo, txManager, cfg.Logger)
	fieldService := service.NewFieldService(fieldRepo, schemaRepo, valueRepo, videoRepo, listRepo, txManager, cfg.Logger)
	schemaService := service.NewSchemaService(schemaRepo, fieldRepo, tagRepo, videoRepo, listRepo, txManager)
	importService := service.NewImportService(listRepo, videoRepo, fieldRepo, schemaRepo, valueRepo, txManager, cfg.Logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, schemaRepo, listRepo, analyticsCache)

	// Handlers
	listHandler := handler.NewListHandler(listService)
	fieldHandler := handler.NewFieldHandler(fieldService, cfg.Metrics)
	schemaHandler := handler.NewSchemaHandler(schemaService)
	importHandler := handler.NewImportHandler(importService, cfg.Metrics)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Operational endpoints at the root, outside the base path
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Lists
		api.POST("/lists", listHandler.CreateList)
		api.GET("/lists", listHandler.ListsByOwner)
		api.GET("/lists/:listId", listHandler.GetList)
		api.DELETE("/lists/:listId", listHandler.DeleteList)

		// Videos
		api.POST("/lists/:listId/videos", listHandler.AddVideo)
		api.GET("/lists/:listId/videos", listHandler.ListVideos)
		api.GET("/videos/:videoId", listHandler.GetVideo)
		api.DELETE("/videos/:videoId", listHandler.DeleteVideo)

		// Tags
		api.POST("/lists/:listId/tags", listHandler.CreateTag)
		api.GET("/lists/:listId/tags", listHandler.ListTags)
		api.DELETE("/tags/:tagId", listHandler.DeleteTag)
		api.PUT("/videos/:videoId/tags/:tagId", listHandler.TagVideo)
		api.DELETE("/videos/:videoId/tags/:tagId", listHandler.UntagVideo)

		// Fields
		api.POST("/lists/:listId/fields", fieldHandler.CreateField)
		api.GET("/lists/:listId/fields", fieldHandler.ListFields)
		api.GET("/fields/:fieldId", fieldHandler.GetField)
		api.PATCH("/fields/:fieldId", fieldHandler.UpdateField)
		api.DELETE("/fields/:fieldId", fieldHandler.DeleteField)

		// Values
		api.PUT("/videos/:videoId/values/:fieldId", fieldHandler.SetValue)
		api.DELETE("/videos/:videoId/values/:fieldId", fieldHandler.ClearValue)
		api.GET("/videos/:videoId/values", fieldHandler.ListValues)

		// Schemas
		api.POST("/lists/:listId/schemas", schemaHandler.CreateSchema)
		api.GET("/lists/:listId/schemas", schemaHandler.ListSchemas)
		api.GET("/schemas/:schemaId", schemaHandler.GetSchema)
		api.PATCH("/schemas/:schemaId", schemaHandler.UpdateSchema)
		api.DELETE("/schemas/:schemaId", schemaHandler.DeleteSchema)
		api.POST("/schemas/:schemaId/fields", schemaHandler.AddField)
		api.DELETE("/schemas/:schemaId/fields/:fieldId", schemaHandler.RemoveField)
		api.PUT("/tags/:tagId/schema", schemaHandler.BindTag)
		api.DELETE("/tags/:tagId/schema", schemaHandler.UnbindTag)
		api.GET("/videos/:videoId/effective-fields", schemaHandler.EffectiveFields)

		// Import
		api.POST("/lists/:listId/import", importHandler.Import)

		// Analytics
		api.GET("/lists/:listId/analytics/most-used-fields", analyticsHandler.MostUsedFields)
		api.GET("/lists/:listId/analytics/unused-schemas", analyticsHandler.UnusedSchemas)
		api.GET("/lists/:listId/analytics/field-coverage", analyticsHandler.FieldCoverage)
		api.GET("/lists/:listId/analytics/schema-effectiveness", analyticsHandler.SchemaEffectiveness)
	}

	return r
}
