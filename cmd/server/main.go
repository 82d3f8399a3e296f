package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agro-service/internal/config"
	"agro-service/internal/database"
	"agro-service/internal/handlers"
	"agro-service/internal/middleware"
	"agro-service/internal/repository"
	"agro-service/internal/routes"
	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appcache "agro-service/internal/cache"
)

func main() {
	// Cargar configuración
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Logger estructurado
	logger, err := newLogger(cfg.Logging.Level, cfg.Server.GinMode)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()

	// PostgreSQL
	postgresDB, err := database.NewPostgresDB(
		cfg.Database.URL,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		logger,
	)
	if err != nil {
		logger.Fatal("❌ Error conectando a PostgreSQL", zap.Error(err))
	}
	defer postgresDB.Close()

	// Redis es opcional: sin Redis el caché funciona solo en L1
	var redisClient *redis.Client
	redisDB, err := database.NewRedisDB(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("⚠️ Redis no disponible, caché solo en memoria", zap.Error(err))
	} else {
		redisClient = redisDB.Client
		defer redisDB.Close()
	}

	// Repositories
	produccionRepo, err := repository.NewProduccionRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("❌ Error inicializando repositorio de producciones", zap.Error(err))
	}

	cicloRepo, err := repository.NewCicloRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("❌ Error inicializando repositorio de ciclos", zap.Error(err))
	}

	cultivoRepo := repository.NewCultivoRepository(postgresDB.DB)
	insumoRepo := repository.NewInsumoRepository(postgresDB.DB)
	sensorRepo := repository.NewSensorRepository(postgresDB.DB)
	usuarioRepo := repository.NewUsuarioRepository(postgresDB.DB)

	// Caché multi-nivel de producciones
	produccionCache := appcache.NewProduccionCache(redisClient, cfg.Cache.MaxL1Size, cfg.Cache.TTL, logger)

	// Services
	produccionService := services.NewProduccionService(
		produccionRepo,
		cicloRepo,
		cultivoRepo,
		insumoRepo,
		sensorRepo,
		usuarioRepo,
		produccionCache,
		logger,
	)
	cicloService := services.NewCicloService(cicloRepo, cultivoRepo, logger)
	catalogoService := services.NewCatalogoService(cultivoRepo, insumoRepo, sensorRepo, usuarioRepo, logger)
	reporteService := services.NewReporteService(produccionRepo, cicloRepo, logger)
	monitoringService := services.NewMonitoringService(logger, postgresDB.DB, produccionCache)

	// Handlers
	produccionHandler := handlers.NewProduccionHandler(produccionService, logger)
	cicloHandler := handlers.NewCicloHandler(cicloService, logger)
	catalogoHandler := handlers.NewCatalogoHandler(catalogoService, logger)
	reporteHandler := handlers.NewReporteHandler(reporteService, logger)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService, logger)

	healthChecker := middleware.NewHealthChecker(postgresDB, redisDB, logger)

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(monitoringHandler.RecordRequestMiddleware())

	routes.SetupRoutes(router, produccionHandler, cicloHandler, catalogoHandler, reporteHandler, monitoringHandler, healthChecker)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		middleware.ServerInfo(cfg.Server.Port, logger)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ Error iniciando servidor", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Apagando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("❌ Error en shutdown", zap.Error(err))
	}

	logger.Info("✅ Servidor detenido correctamente")
}

func newLogger(level, ginMode string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if ginMode == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}
