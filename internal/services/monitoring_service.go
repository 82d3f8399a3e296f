package services

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"

	"agro-service/internal/cache"
	"agro-service/internal/models"

	"go.uber.org/zap"
)

type MonitoringService interface {
	GetMetrics(ctx context.Context) *models.MonitoringResponse
	RecordRequest(data models.RequestData)
	GetCacheStats() models.CacheMetrics
	GetDatabaseStats() models.DatabaseMetrics
	GetSystemStats() models.SystemMetrics
}

type monitoringService struct {
	logger          *zap.Logger
	dbPool          *sql.DB
	produccionCache *cache.ProduccionCache

	// Métricas de requests
	requestsMutex sync.RWMutex
	requests      map[string]*models.EndpointMetrics
	slowRequests  []models.SlowRequest
	errors        []models.RequestError

	totalRequests int64

	startTime time.Time
}

func NewMonitoringService(
	logger *zap.Logger,
	dbPool *sql.DB,
	produccionCache *cache.ProduccionCache,
) MonitoringService {
	return &monitoringService{
		logger:          logger,
		dbPool:          dbPool,
		produccionCache: produccionCache,
		requests:        make(map[string]*models.EndpointMetrics),
		startTime:       time.Now(),
	}
}

func (s *monitoringService) RecordRequest(data models.RequestData) {
	s.requestsMutex.Lock()
	defer s.requestsMutex.Unlock()

	endpointKey := fmt.Sprintf("%s %s", data.Method, data.Endpoint)

	metrics, exists := s.requests[endpointKey]
	if !exists {
		metrics = &models.EndpointMetrics{}
		s.requests[endpointKey] = metrics
	}

	metrics.Count++
	durationMs := data.Duration.Milliseconds()
	metrics.TotalTime += durationMs
	metrics.AvgTime = float64(metrics.TotalTime) / float64(metrics.Count)

	s.totalRequests++

	// Registrar request lento (> 1000ms)
	if durationMs > 1000 {
		s.slowRequests = append(s.slowRequests, models.SlowRequest{
			Endpoint:  endpointKey,
			Duration:  durationMs,
			Timestamp: data.Timestamp,
		})

		// Mantener solo los últimos 100 requests lentos
		if len(s.slowRequests) > 100 {
			s.slowRequests = s.slowRequests[1:]
		}
	}

	if data.StatusCode >= 400 {
		s.errors = append(s.errors, models.RequestError{
			Endpoint:   endpointKey,
			StatusCode: data.StatusCode,
			Timestamp:  data.Timestamp,
		})

		// Mantener solo los últimos 100 errores
		if len(s.errors) > 100 {
			s.errors = s.errors[1:]
		}
	}
}

func (s *monitoringService) GetMetrics(ctx context.Context) *models.MonitoringResponse {
	s.requestsMutex.RLock()
	defer s.requestsMutex.RUnlock()

	return &models.MonitoringResponse{
		Requests:  s.calculateRequestMetrics(),
		Cache:     s.GetCacheStats(),
		Database:  s.GetDatabaseStats(),
		System:    s.GetSystemStats(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0",
	}
}

func (s *monitoringService) calculateRequestMetrics() models.RequestMetrics {
	// Convertir map de punteros a map de valores
	byEndpoint := make(map[string]models.EndpointMetrics)
	for key, metrics := range s.requests {
		byEndpoint[key] = *metrics
	}

	return models.RequestMetrics{
		Total:        int(s.totalRequests),
		ByEndpoint:   byEndpoint,
		SlowRequests: s.slowRequests,
		Errors:       s.errors,
	}
}

func (s *monitoringService) GetCacheStats() models.CacheMetrics {
	if s.produccionCache == nil {
		return models.CacheMetrics{}
	}
	return s.produccionCache.Stats()
}

func (s *monitoringService) GetDatabaseStats() models.DatabaseMetrics {
	stats := s.dbPool.Stats()

	return models.DatabaseMetrics{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
	}
}

func (s *monitoringService) GetSystemStats() models.SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return models.SystemMetrics{
		Goroutines:   runtime.NumGoroutine(),
		MemAllocMB:   float64(m.Alloc) / 1024 / 1024,
		NumGC:        m.NumGC,
		UptimeSecond: time.Since(s.startTime).Seconds(),
	}
}
