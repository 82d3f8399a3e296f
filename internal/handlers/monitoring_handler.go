package handlers

import (
	"context"
	"net/http"
	"time"

	"agro-service/internal/models"
	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type MonitoringHandler struct {
	monitoringService services.MonitoringService
	logger            *zap.Logger
}

func NewMonitoringHandler(monitoringService services.MonitoringService, logger *zap.Logger) *MonitoringHandler {
	return &MonitoringHandler{
		monitoringService: monitoringService,
		logger:            logger,
	}
}

// GetMetrics maneja la petición HTTP para obtener métricas
func (h *MonitoringHandler) GetMetrics(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_metrics"))

	metrics := h.monitoringService.GetMetrics(c.Request.Context())

	logger.Info("Métricas obtenidas exitosamente",
		zap.Int("total_requests", metrics.Requests.Total))

	c.JSON(http.StatusOK, metrics)
}

// WebSocketUpgrader configuración para WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Permitir todas las conexiones para desarrollo
	},
}

// WebSocketMetrics maneja la conexión WebSocket para métricas en tiempo real
func (h *MonitoringHandler) WebSocketMetrics(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "websocket_metrics"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error actualizando a WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("Conexión WebSocket establecida")

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Enviar métricas cada 10 segundos
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics := h.monitoringService.GetMetrics(context.Background())

			if err := conn.WriteJSON(metrics); err != nil {
				logger.Error("Error enviando métricas por WebSocket", zap.Error(err))
				return
			}

		case <-c.Request.Context().Done():
			logger.Info("Conexión WebSocket cerrada por contexto")
			return
		}
	}
}

// RecordRequestMiddleware middleware para registrar requests
func (h *MonitoringHandler) RecordRequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)

		path := c.Request.URL.Path
		if h.shouldSkipMonitoring(path) {
			return
		}

		h.monitoringService.RecordRequest(models.RequestData{
			Endpoint:   path,
			Method:     c.Request.Method,
			Duration:   duration,
			StatusCode: c.Writer.Status(),
			Timestamp:  time.Now(),
		})
	}
}

// shouldSkipMonitoring determina si un endpoint debe ser excluido del monitoring
func (h *MonitoringHandler) shouldSkipMonitoring(path string) bool {
	excludedPaths := []string{
		"/api/monitoring/metrics",
		"/api/monitoring/ws",
		"/health",
		"/",
	}

	for _, excludedPath := range excludedPaths {
		if path == excludedPath {
			return true
		}
	}

	return false
}
