package handlers

import (
	"net/http"
	"strconv"

	"agro-service/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseIDParam lee el path param "id" y responde 400 si no es numérico
func parseIDParam(c *gin.Context, logger *zap.Logger, entidad string) (int, bool) {
	return parseIntParam(c, logger, "id", entidad)
}

// parseIntParam lee un path param numérico y responde 400 si no lo es
func parseIntParam(c *gin.Context, logger *zap.Logger, nombre, entidad string) (int, bool) {
	id, err := strconv.Atoi(c.Param(nombre))
	if err != nil {
		logger.Error("Error parsing "+entidad+" ID", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ ID de " + entidad + " inválido",
			"error":   "El ID debe ser un número válido",
		})
		return 0, false
	}
	return id, true
}

// emptyIfNil garantiza que las listas serialicen como [] y nunca como null
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// respondError traduce un error de servicio al envelope HTTP estándar.
// El status sale de la taxonomía de errores: validación 400, no encontrado 404,
// resto 500.
func respondError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	status := apperrors.HTTPStatus(err)

	if status >= 500 {
		logger.Error("❌ "+msg, zap.Error(err))
	} else {
		logger.Warn("⚠️ "+msg, zap.Error(err))
	}

	body := gin.H{
		"success": false,
		"message": "❌ " + msg,
		"error":   err.Error(),
	}
	if campos := apperrors.CamposDe(err); len(campos) > 0 {
		body["campos"] = campos
	}

	c.JSON(status, body)
}
