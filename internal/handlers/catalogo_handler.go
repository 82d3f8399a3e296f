package handlers

import (
	"net/http"

	"agro-service/internal/models"
	"agro-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CatalogoHandler maneja el CRUD de cultivos, insumos, sensores y usuarios
type CatalogoHandler struct {
	catalogoService services.CatalogoService
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewCatalogoHandler crea una nueva instancia del handler
func NewCatalogoHandler(catalogoService services.CatalogoService, logger *zap.Logger) *CatalogoHandler {
	return &CatalogoHandler{
		catalogoService: catalogoService,
		validator:       validator.New(),
		logger:          logger,
	}
}

func (h *CatalogoHandler) bindAndValidate(c *gin.Context, logger *zap.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error("Validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return false
	}

	return true
}

// ===== Cultivos =====

// CrearCultivo crea un cultivo
func (h *CatalogoHandler) CrearCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "crear_cultivo"))

	var req models.CrearCultivoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	cultivo, err := h.catalogoService.CrearCultivo(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando cultivo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Cultivo creado correctamente",
		"data":    cultivo,
	})
}

// GetCultivos lista todos los cultivos
func (h *CatalogoHandler) GetCultivos(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_cultivos"))

	cultivos, err := h.catalogoService.GetCultivos(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo cultivos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(cultivos),
		"data":    emptyIfNil(cultivos),
	})
}

// GetCultivo obtiene un cultivo por su ID
func (h *CatalogoHandler) GetCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_cultivo"))

	id, ok := parseIDParam(c, logger, "cultivo")
	if !ok {
		return
	}

	cultivo, err := h.catalogoService.GetCultivo(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cultivo,
	})
}

// ActualizarCultivo actualiza un cultivo
func (h *CatalogoHandler) ActualizarCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "actualizar_cultivo"))

	id, ok := parseIDParam(c, logger, "cultivo")
	if !ok {
		return
	}

	var req models.CrearCultivoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	cultivo, err := h.catalogoService.ActualizarCultivo(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Cultivo actualizado correctamente",
		"data":    cultivo,
	})
}

// CambiarEstadoCultivo activa o desactiva un cultivo
func (h *CatalogoHandler) CambiarEstadoCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_cultivo"))

	id, ok := parseIDParam(c, logger, "cultivo")
	if !ok {
		return
	}

	var req models.CambiarEstadoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	if err := h.catalogoService.CambiarEstadoCultivo(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado del cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarCultivo elimina un cultivo
func (h *CatalogoHandler) EliminarCultivo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_cultivo"))

	id, ok := parseIDParam(c, logger, "cultivo")
	if !ok {
		return
	}

	if err := h.catalogoService.EliminarCultivo(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando cultivo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Cultivo eliminado correctamente",
	})
}

// ===== Insumos =====

// CrearInsumo crea un insumo con su valor total derivado
func (h *CatalogoHandler) CrearInsumo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "crear_insumo"))

	var req models.CrearInsumoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	insumo, err := h.catalogoService.CrearInsumo(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando insumo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Insumo creado correctamente",
		"data":    insumo,
	})
}

// GetInsumos lista todos los insumos
func (h *CatalogoHandler) GetInsumos(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_insumos"))

	insumos, err := h.catalogoService.GetInsumos(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo insumos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(insumos),
		"data":    emptyIfNil(insumos),
	})
}

// GetInsumo obtiene un insumo por su ID
func (h *CatalogoHandler) GetInsumo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_insumo"))

	id, ok := parseIDParam(c, logger, "insumo")
	if !ok {
		return
	}

	insumo, err := h.catalogoService.GetInsumo(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo insumo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    insumo,
	})
}

// ActualizarInsumo actualiza un insumo y recalcula su valor total
func (h *CatalogoHandler) ActualizarInsumo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "actualizar_insumo"))

	id, ok := parseIDParam(c, logger, "insumo")
	if !ok {
		return
	}

	var req models.CrearInsumoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	insumo, err := h.catalogoService.ActualizarInsumo(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando insumo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Insumo actualizado correctamente",
		"data":    insumo,
	})
}

// CambiarEstadoInsumo activa o desactiva un insumo
func (h *CatalogoHandler) CambiarEstadoInsumo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_insumo"))

	id, ok := parseIDParam(c, logger, "insumo")
	if !ok {
		return
	}

	var req models.CambiarEstadoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	if err := h.catalogoService.CambiarEstadoInsumo(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado del insumo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarInsumo elimina un insumo
func (h *CatalogoHandler) EliminarInsumo(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_insumo"))

	id, ok := parseIDParam(c, logger, "insumo")
	if !ok {
		return
	}

	if err := h.catalogoService.EliminarInsumo(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando insumo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Insumo eliminado correctamente",
	})
}

// ===== Sensores =====

// CrearSensor crea un sensor
func (h *CatalogoHandler) CrearSensor(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "crear_sensor"))

	var req models.CrearSensorRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	sensor, err := h.catalogoService.CrearSensor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando sensor")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Sensor creado correctamente",
		"data":    sensor,
	})
}

// GetSensores lista todos los sensores
func (h *CatalogoHandler) GetSensores(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_sensores"))

	sensores, err := h.catalogoService.GetSensores(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo sensores")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(sensores),
		"data":    emptyIfNil(sensores),
	})
}

// GetSensor obtiene un sensor por su ID
func (h *CatalogoHandler) GetSensor(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_sensor"))

	id, ok := parseIDParam(c, logger, "sensor")
	if !ok {
		return
	}

	sensor, err := h.catalogoService.GetSensor(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo sensor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sensor,
	})
}

// ActualizarSensor actualiza un sensor
func (h *CatalogoHandler) ActualizarSensor(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "actualizar_sensor"))

	id, ok := parseIDParam(c, logger, "sensor")
	if !ok {
		return
	}

	var req models.CrearSensorRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	sensor, err := h.catalogoService.ActualizarSensor(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando sensor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Sensor actualizado correctamente",
		"data":    sensor,
	})
}

// CambiarEstadoSensor activa o desactiva un sensor
func (h *CatalogoHandler) CambiarEstadoSensor(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_sensor"))

	id, ok := parseIDParam(c, logger, "sensor")
	if !ok {
		return
	}

	var req models.CambiarEstadoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	if err := h.catalogoService.CambiarEstadoSensor(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado del sensor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarSensor elimina un sensor
func (h *CatalogoHandler) EliminarSensor(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_sensor"))

	id, ok := parseIDParam(c, logger, "sensor")
	if !ok {
		return
	}

	if err := h.catalogoService.EliminarSensor(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando sensor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Sensor eliminado correctamente",
	})
}

// ===== Usuarios =====

// CrearUsuario registra un usuario responsable
func (h *CatalogoHandler) CrearUsuario(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "crear_usuario"))

	var req models.CrearUsuarioRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	usuario, err := h.catalogoService.CrearUsuario(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err, "Error creando usuario")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "✅ Usuario creado correctamente",
		"data":    usuario,
	})
}

// GetUsuarios lista todos los usuarios
func (h *CatalogoHandler) GetUsuarios(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_usuarios"))

	usuarios, err := h.catalogoService.GetUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Error obteniendo usuarios")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(usuarios),
		"data":    emptyIfNil(usuarios),
	})
}

// GetUsuario obtiene un usuario por su ID
func (h *CatalogoHandler) GetUsuario(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_usuario"))

	id, ok := parseIDParam(c, logger, "usuario")
	if !ok {
		return
	}

	usuario, err := h.catalogoService.GetUsuario(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Error obteniendo usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    usuario,
	})
}

// ActualizarUsuario actualiza los datos de un usuario
func (h *CatalogoHandler) ActualizarUsuario(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "actualizar_usuario"))

	id, ok := parseIDParam(c, logger, "usuario")
	if !ok {
		return
	}

	var req models.CrearUsuarioRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	usuario, err := h.catalogoService.ActualizarUsuario(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, logger, err, "Error actualizando usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Usuario actualizado correctamente",
		"data":    usuario,
	})
}

// CambiarEstadoUsuario activa o desactiva un usuario
func (h *CatalogoHandler) CambiarEstadoUsuario(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cambiar_estado_usuario"))

	id, ok := parseIDParam(c, logger, "usuario")
	if !ok {
		return
	}

	var req models.CambiarEstadoRequest
	if !h.bindAndValidate(c, logger, &req) {
		return
	}

	if err := h.catalogoService.CambiarEstadoUsuario(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, logger, err, "Error cambiando estado del usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado actualizado correctamente",
	})
}

// EliminarUsuario elimina un usuario
func (h *CatalogoHandler) EliminarUsuario(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "eliminar_usuario"))

	id, ok := parseIDParam(c, logger, "usuario")
	if !ok {
		return
	}

	if err := h.catalogoService.EliminarUsuario(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Error eliminando usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Usuario eliminado correctamente",
	})
}
