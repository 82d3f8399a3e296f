package routes

import (
	"agro-service/internal/handlers"
	"agro-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(
	router *gin.Engine,
	produccionHandler *handlers.ProduccionHandler,
	cicloHandler *handlers.CicloHandler,
	catalogoHandler *handlers.CatalogoHandler,
	reporteHandler *handlers.ReporteHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthChecker *middleware.HealthChecker,
) {
	api := router.Group("/api")
	{
		// Producciones
		producciones := api.Group("/producciones")
		{
			producciones.POST("", produccionHandler.CrearProduccion)
			producciones.GET("", produccionHandler.GetProducciones)

			// Consultas especiales antes de las rutas con :id
			producciones.GET("/rango", reporteHandler.GetProduccionesPorRango)
			producciones.POST("/uso-insumo", produccionHandler.RegistrarUsoInsumo)
			producciones.GET("/ciclo/:cicloId", produccionHandler.GetProduccionesByCiclo)

			producciones.GET("/:id", produccionHandler.GetProduccion)
			producciones.PUT("/:id", produccionHandler.ActualizarProduccion)
			producciones.PATCH("/:id/estado", produccionHandler.CambiarEstado)
			producciones.DELETE("/:id", produccionHandler.EliminarProduccion)

			// Historial de uso de insumos
			producciones.POST("/:id/uso-insumo", produccionHandler.RegistrarUsoInsumo)
			producciones.GET("/:id/uso-insumo", produccionHandler.GetUsoInsumos)
		}

		// Ciclos de cultivo
		ciclos := api.Group("/ciclos-cultivo")
		{
			ciclos.POST("", cicloHandler.CrearCiclo)
			ciclos.GET("", cicloHandler.GetCiclos)
			ciclos.GET("/cultivo/:cultivoId", cicloHandler.GetCiclosByCultivo)
			ciclos.GET("/:id", cicloHandler.GetCiclo)
			ciclos.PUT("/:id", cicloHandler.ActualizarCiclo)
			ciclos.PATCH("/:id/estado", cicloHandler.CambiarEstado)
			ciclos.DELETE("/:id", cicloHandler.EliminarCiclo)
		}

		// Cultivos
		cultivos := api.Group("/cultivos")
		{
			cultivos.POST("", catalogoHandler.CrearCultivo)
			cultivos.GET("", catalogoHandler.GetCultivos)
			cultivos.GET("/:id", catalogoHandler.GetCultivo)
			cultivos.PUT("/:id", catalogoHandler.ActualizarCultivo)
			cultivos.PATCH("/:id/estado", catalogoHandler.CambiarEstadoCultivo)
			cultivos.DELETE("/:id", catalogoHandler.EliminarCultivo)
		}

		// Insumos
		insumos := api.Group("/insumos")
		{
			insumos.POST("", catalogoHandler.CrearInsumo)
			insumos.GET("", catalogoHandler.GetInsumos)
			insumos.GET("/:id", catalogoHandler.GetInsumo)
			insumos.PUT("/:id", catalogoHandler.ActualizarInsumo)
			insumos.PATCH("/:id/estado", catalogoHandler.CambiarEstadoInsumo)
			insumos.DELETE("/:id", catalogoHandler.EliminarInsumo)
		}

		// Sensores
		sensores := api.Group("/sensores")
		{
			sensores.POST("", catalogoHandler.CrearSensor)
			sensores.GET("", catalogoHandler.GetSensores)
			sensores.GET("/:id", catalogoHandler.GetSensor)
			sensores.PUT("/:id", catalogoHandler.ActualizarSensor)
			sensores.PATCH("/:id/estado", catalogoHandler.CambiarEstadoSensor)
			sensores.DELETE("/:id", catalogoHandler.EliminarSensor)
		}

		// Usuarios
		usuarios := api.Group("/usuarios")
		{
			usuarios.POST("", catalogoHandler.CrearUsuario)
			usuarios.GET("", catalogoHandler.GetUsuarios)
			usuarios.GET("/:id", catalogoHandler.GetUsuario)
			usuarios.PUT("/:id", catalogoHandler.ActualizarUsuario)
			usuarios.PATCH("/:id/estado", catalogoHandler.CambiarEstadoUsuario)
			usuarios.DELETE("/:id", catalogoHandler.EliminarUsuario)
		}

		// Reportes
		reportes := api.Group("/reportes")
		{
			reportes.GET("/resumen-mensual", reporteHandler.GetResumenMensual)
			reportes.GET("/dashboard", reporteHandler.GetResumenDashboard)
		}

		// Monitoring
		monitoring := api.Group("/monitoring")
		{
			monitoring.GET("/metrics", monitoringHandler.GetMetrics)
			monitoring.GET("/ws", monitoringHandler.WebSocketMetrics)
		}
	}

	// Health check en raíz
	router.GET("/health", healthChecker.HealthCheck)

	// API info en raíz
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Agro Service API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"health": "/health",
				"api":    "/api",
				"producciones": gin.H{
					"crear":      "POST /api/producciones",
					"listar":     "GET /api/producciones",
					"rango":      "GET /api/producciones/rango?startDate=&endDate=",
					"por_ciclo":  "GET /api/producciones/ciclo/:cicloId",
					"uso_insumo": "POST /api/producciones/:id/uso-insumo",
					"historial":  "GET /api/producciones/:id/uso-insumo",
				},
				"ciclos_cultivo": "GET /api/ciclos-cultivo",
				"reportes": gin.H{
					"resumen_mensual": "GET /api/reportes/resumen-mensual?anio=",
					"dashboard":       "GET /api/reportes/dashboard",
				},
			},
		})
	})
}
