package models

import "time"

// MonitoringResponse respuesta completa del sistema de monitoring
type MonitoringResponse struct {
	Requests  RequestMetrics  `json:"requests"`
	Cache     CacheMetrics    `json:"cache"`
	Database  DatabaseMetrics `json:"database"`
	System    SystemMetrics   `json:"system"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version"`
}

// RequestMetrics métricas de requests
type RequestMetrics struct {
	Total        int                        `json:"total"`
	ByEndpoint   map[string]EndpointMetrics `json:"by_endpoint"`
	SlowRequests []SlowRequest              `json:"slow_requests"`
	Errors       []RequestError             `json:"errors"`
}

// EndpointMetrics métricas por endpoint
type EndpointMetrics struct {
	Count     int     `json:"count"`
	AvgTime   float64 `json:"avg_time"`
	TotalTime int64   `json:"total_time"`
}

// SlowRequest request lento (> 1000ms)
type SlowRequest struct {
	Endpoint  string    `json:"endpoint"`
	Duration  int64     `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestError error de request
type RequestError struct {
	Endpoint   string    `json:"endpoint"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// RequestData datos de un request para registrar métricas
type RequestData struct {
	Method     string
	Endpoint   string
	StatusCode int
	Duration   time.Duration
	Timestamp  time.Time
}

// CacheMetrics métricas del caché de producciones
type CacheMetrics struct {
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	TotalRequests int64   `json:"total_requests"`
	HitRate       float64 `json:"hit_rate"`
	TotalKeys     int     `json:"total_keys"`
}

// DatabaseMetrics métricas del pool de conexiones
type DatabaseMetrics struct {
	MaxOpenConnections int `json:"max_open_connections"`
	OpenConnections    int `json:"open_connections"`
	InUse              int `json:"in_use"`
	Idle               int `json:"idle"`
}

// SystemMetrics métricas del runtime
type SystemMetrics struct {
	Goroutines   int     `json:"goroutines"`
	MemAllocMB   float64 `json:"mem_alloc_mb"`
	NumGC        uint32  `json:"num_gc"`
	UptimeSecond float64 `json:"uptime_seconds"`
}
