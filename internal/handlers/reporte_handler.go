package handlers

import (
	"net/http"
	"strconv"
	"time"

	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReporteHandler maneja las consultas de agregación e informes
type ReporteHandler struct {
	reporteService services.ReporteService
	logger         *zap.Logger
}

// NewReporteHandler crea una nueva instancia del handler
func NewReporteHandler(reporteService services.ReporteService, logger *zap.Logger) *ReporteHandler {
	return &ReporteHandler{
		reporteService: reporteService,
		logger:         logger,
	}
}

// GetProduccionesPorRango lista las producciones activas cuya fecha de inicio
// cae dentro del rango consultado (ambos extremos inclusive)
func (h *ReporteHandler) GetProduccionesPorRango(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_producciones_por_rango"))

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	producciones, err := h.reporteService.GetPorRango(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo producciones por rango")
		return
	}

	logger.Info("Producciones por rango obtenidas",
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("total", len(producciones)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(producciones),
		"data":    emptyIfNil(producciones),
	})
}

// GetResumenMensual entrega la inversión y el conteo de producciones por mes
// de un año
func (h *ReporteHandler) GetResumenMensual(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_resumen_mensual"))

	anio := time.Now().Year()
	if anioStr := c.Query("anio"); anioStr != "" {
		parsed, err := strconv.Atoi(anioStr)
		if err != nil {
			logger.Error("Error parsing anio", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "❌ Año inválido",
				"error":   "El año debe ser un número válido",
			})
			return
		}
		anio = parsed
	}

	resumen, err := h.reporteService.ResumenMensual(c.Request.Context(), anio)
	if err != nil {
		respondError(c, logger, err, "Error generando resumen mensual")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resumen,
	})
}

// GetResumenDashboard entrega los indicadores generales del sistema
func (h *ReporteHandler) GetResumenDashboard(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_resumen_dashboard"))

	resumen, err := h.reporteService.ResumenDashboard(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error generando resumen del dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resumen,
	})
}
