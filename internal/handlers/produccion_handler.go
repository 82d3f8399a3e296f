package handlers

import (
	"net/http"
	"strconv"
	"time"

	"agro-service/internal/models"
	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ProduccionHandler maneja las peticiones HTTP relacionadas con producciones
type ProduccionHandler struct {
	produccionService services.ProduccionService
	validator         *validator.Validate
	logger            *zap.Logger
}

// NewProduccionHandler crea una nueva instancia del handler
func NewProduccionHandler(produccionService services.ProduccionService, logger *zap.Logger) *ProduccionHandler {
	return &ProduccionHandler{
		produccionService: produccionService,
		validator:         validator.New(),
		logger:            logger,
	}
}

// CrearProduccion crea una producción con sus sensores e insumos asociados
func (h *ProduccionHandler) CrearProduccion(c *gin.Context) {
	start := time.Now()
	logger := h.logger.With(zap.String("handler", "crear_produccion"))

	var req models.CrearProduccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return
	}

	produccion, err := h.produccionService.CrearProduccion(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando producción")
		return
	}

	logger.Info("✅ Producción creada",
		zap.Int("id_produccion", produccion.ID),
		zap.Float64("inversion", produccion.Inversion),
		zap.Float64("meta", produccion.Meta),
		zap.Duration("latency", time.Since(start)))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Producción creada correctamente",
		"data":    produccion,
	})
}

// GetProducciones lista todas las producciones
func (h *ProduccionHandler) GetProducciones(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_producciones"))

	producciones, err := h.produccionService.GetProducciones(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo producciones")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(producciones),
		"data":    emptyIfNil(producciones),
	})
}

// GetProduccion obtiene una producción por su ID
func (h *ProduccionHandler) GetProduccion(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_produccion"))

	id, ok := parseIDParam(c, logger, "producción")
	if !ok {
		return
	}

	produccion, err := h.produccionService.GetProduccion(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo producción")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    produccion,
	})
}

// GetProduccionesByCiclo lista las producciones de un ciclo de cultivo
func (h *ProduccionHandler) GetProduccionesByCiclo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_producciones_by_ciclo"))

	cicloID, ok := parseIntParam(c, logger, "cicloId", "ciclo")
	if !ok {
		return
	}

	producciones, err := h.produccionService.GetProduccionesByCiclo(c.Request.Context(), cicloID)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo producciones del ciclo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(producciones),
		"data":    emptyIfNil(producciones),
	})
}

// ActualizarProduccion actualiza una producción y recalcula inversión y meta
func (h *ProduccionHandler) ActualizarProduccion(c *gin.Context) {
	start := time.Now()
	logger := h.logger.With(zap.String("handler", "actualizar_produccion"))

	id, ok := parseIDParam(c, logger, "producción")
	if !ok {
		return
	}

	var req models.ActualizarProduccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return
	}

	produccion, err := h.produccionService.ActualizarProduccion(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando producción")
		return
	}

	logger.Info("✅ Producción actualizada",
		zap.Int("id_produccion", id),
		zap.Float64("inversion", produccion.Inversion),
		zap.Duration("latency", time.Since(start)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Producción actualizada correctamente",
		"data":    produccion,
	})
}

// CambiarEstado activa o desactiva una producción
func (h *ProduccionHandler) CambiarEstado(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_produccion"))

	id, ok := parseIDParam(c, logger, "producción")
	if !ok {
		return
	}

	var req models.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return
	}

	if err := h.produccionService.CambiarEstado(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado de la producción")
		return
	}

	logger.Info("✅ Estado de producción actualizado",
		zap.Int("id_produccion", id),
		zap.String("estado", req.Estado))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarProduccion elimina una producción con sus asociaciones y su
// historial de uso de insumos
func (h *ProduccionHandler) EliminarProduccion(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_produccion"))

	id, ok := parseIDParam(c, logger, "producción")
	if !ok {
		return
	}

	if err := h.produccionService.EliminarProduccion(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando producción")
		return
	}

	logger.Info("✅ Producción eliminada", zap.Int("id_produccion", id))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Producción eliminada correctamente",
	})
}

// RegistrarUsoInsumo registra un consumo de insumo en el historial de la
// producción
func (h *ProduccionHandler) RegistrarUsoInsumo(c *gin.Context) {
	start := time.Now()
	logger := h.logger.With(zap.String("handler", "registrar_uso_insumo"))

	var req models.RegistrarUsoInsumoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	// En la variante anidada el ID de la URL manda sobre el del body
	if idParam := c.Param("id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			logger.Error("Error parsing produccion ID", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "❌ ID de producción inválido",
				"error":   "El ID debe ser un número válido",
			})
			return
		}
		req.IDProduccion = id
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return
	}

	uso, err := h.produccionService.RegistrarUsoInsumo(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error registrando uso de insumo")
		return
	}

	logger.Info("✅ Uso de insumo registrado",
		zap.Int("id_produccion", req.IDProduccion),
		zap.Int("id_insumo", req.IDInsumo),
		zap.Float64("valor_total", uso.ValorTotal),
		zap.Duration("latency", time.Since(start)))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Uso de insumo registrado correctamente",
		"data":    uso,
	})
}

// GetUsoInsumos lista el historial de uso de insumos de una producción con el
// total invertido acumulado
func (h *ProduccionHandler) GetUsoInsumos(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_uso_insumos"))

	id, ok := parseIDParam(c, logger, "producción")
	if !ok {
		return
	}

	usos, total, err := h.produccionService.GetUsoInsumos(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo historial de uso de insumos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(usos),
		"data":    gin.H{
			"id_produccion":   id,
			"usos":            emptyIfNil(usos),
			"total_invertido": total,
		},
	})
}
