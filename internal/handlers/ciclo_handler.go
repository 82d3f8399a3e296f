package handlers

import (
	"net/http"

	"agro-service/internal/models"
	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CicloHandler maneja las peticiones HTTP de ciclos de cultivo
type CicloHandler struct {
	cicloService services.CicloService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewCicloHandler crea una nueva instancia del handler
func NewCicloHandler(cicloService services.CicloService, logger *zap.Logger) *CicloHandler {
	return &CicloHandler{
		cicloService: cicloService,
		validator:    validator.New(),
		logger:       logger,
	}
}

// CrearCiclo crea un ciclo de cultivo en estado planificado
func (h *CicloHandler) CrearCiclo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "crear_ciclo"))

	var req models.CrearCicloRequest
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

	ciclo, err := h.cicloService.CrearCiclo(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando ciclo de cultivo")
		return
	}

	logger.Info("✅ Ciclo de cultivo creado",
		zap.Int("id_ciclo", ciclo.ID),
		zap.Int("id_cultivo", ciclo.IDCultivo))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Ciclo de cultivo creado correctamente",
		"data":    ciclo,
	})
}

// GetCiclos lista todos los ciclos de cultivo
func (h *CicloHandler) GetCiclos(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_ciclos"))

	ciclos, err := h.cicloService.GetCiclos(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo ciclos de cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(ciclos),
		"data":    emptyIfNil(ciclos),
	})
}

// GetCiclo obtiene un ciclo de cultivo por su ID
func (h *CicloHandler) GetCiclo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_ciclo"))

	id, ok := parseIDParam(c, logger, "ciclo")
	if !ok {
		return
	}

	ciclo, err := h.cicloService.GetCiclo(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo ciclo de cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ciclo,
	})
}

// GetCiclosByCultivo lista los ciclos de un cultivo
func (h *CicloHandler) GetCiclosByCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_ciclos_by_cultivo"))

	cultivoID, ok := parseIntParam(c, logger, "cultivoId", "cultivo")
	if !ok {
		return
	}

	ciclos, err := h.cicloService.GetCiclosByCultivo(c.Request.Context(), cultivoID)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo ciclos del cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(ciclos),
		"data":    emptyIfNil(ciclos),
	})
}

// ActualizarCiclo actualiza los datos de un ciclo (el estado se cambia por
// el endpoint de estado)
func (h *CicloHandler) ActualizarCiclo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "actualizar_ciclo"))

	id, ok := parseIDParam(c, logger, "ciclo")
	if !ok {
		return
	}

	var req models.ActualizarCicloRequest
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

	ciclo, err := h.cicloService.ActualizarCiclo(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando ciclo de cultivo")
		return
	}

	logger.Info("✅ Ciclo de cultivo actualizado", zap.Int("id_ciclo", id))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Ciclo de cultivo actualizado correctamente",
		"data":    ciclo,
	})
}

// CambiarEstado aplica una transición del ciclo de vida
func (h *CicloHandler) CambiarEstado(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_ciclo"))

	id, ok := parseIDParam(c, logger, "ciclo")
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

	if err := h.cicloService.CambiarEstado(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado del ciclo")
		return
	}

	logger.Info("✅ Estado de ciclo actualizado",
		zap.Int("id_ciclo", id),
		zap.String("estado", req.Estado))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarCiclo elimina un ciclo de cultivo
func (h *CicloHandler) EliminarCiclo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_ciclo"))

	id, ok := parseIDParam(c, logger, "ciclo")
	if !ok {
		return
	}

	if err := h.cicloService.EliminarCiclo(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando ciclo de cultivo")
		return
	}

	logger.Info("✅ Ciclo de cultivo eliminado", zap.Int("id_ciclo", id))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Ciclo de cultivo eliminado correctamente",
	})
}
