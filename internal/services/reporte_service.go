package services

import (
	"context"
	"time"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"
	"agro-service/internal/repository"

	"go.uber.org/zap"
)

// ReporteService define la interfaz de rollups de solo lectura para
// tableros y reportes
type ReporteService interface {
	GetPorRango(ctx context.Context, fechaDesde, fechaHasta string) ([]*models.Produccion, error)
	ResumenMensual(ctx context.Context, anio int) (*models.ResumenMensual, error)
	ResumenDashboard(ctx context.Context) (*models.ResumenDashboard, error)
}

var nombresMeses = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// reporteService implementa ReporteService
type reporteService struct {
	producciones repository.ProduccionRepository
	ciclos       repository.CicloRepository
	logger       *zap.Logger
}

// NewReporteService crea una nueva instancia del servicio
func NewReporteService(producciones repository.ProduccionRepository, ciclos repository.CicloRepository, logger *zap.Logger) ReporteService {
	return &reporteService{
		producciones: producciones,
		ciclos:       ciclos,
		logger:       logger,
	}
}

// GetPorRango obtiene producciones activas con fecha de inicio dentro del
// rango inclusivo. Ambos extremos son obligatorios.
func (s *reporteService) GetPorRango(ctx context.Context, fechaDesde, fechaHasta string) ([]*models.Produccion, error) {
	logger := s.logger.With(
		zap.String("operation", "get_por_rango"),
		zap.String("fecha_desde", fechaDesde),
		zap.String("fecha_hasta", fechaHasta),
	)

	var campos []string
	if fechaDesde == "" {
		campos = append(campos, "startDate")
	}
	if fechaHasta == "" {
		campos = append(campos, "endDate")
	}
	if len(campos) > 0 {
		return nil, apperrors.Validation("se requieren las fechas de inicio y fin", campos...)
	}

	desde, err := time.Parse("2006-01-02", fechaDesde)
	if err != nil {
		return nil, apperrors.Validation("fecha de inicio inválida", "startDate")
	}

	hasta, err := time.Parse("2006-01-02", fechaHasta)
	if err != nil {
		return nil, apperrors.Validation("fecha de fin inválida", "endDate")
	}

	if desde.After(hasta) {
		return nil, apperrors.Validation("la fecha de inicio no puede ser posterior a la de fin", "startDate", "endDate")
	}

	producciones, err := s.producciones.GetByDateRange(ctx, desde, hasta)
	if err != nil {
		logger.Error("❌ Error obteniendo producciones por rango", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	logger.Info("Producciones por rango obtenidas", zap.Int("total", len(producciones)))
	return producciones, nil
}

// ResumenMensual agrupa las producciones del año en doce cubetas fijas por
// mes calendario de la fecha de inicio. Cuenta todas las producciones
// iniciadas en el año, activas o no. Los meses sin producciones reportan
// cero, nunca se omiten.
func (s *reporteService) ResumenMensual(ctx context.Context, anio int) (*models.ResumenMensual, error) {
	logger := s.logger.With(
		zap.String("operation", "resumen_mensual"),
		zap.Int("anio", anio),
	)

	if anio <= 0 {
		return nil, apperrors.Validation("año inválido", "anio")
	}

	producciones, err := s.producciones.GetByAnio(ctx, anio)
	if err != nil {
		logger.Error("❌ Error obteniendo producciones del año", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	resumen := &models.ResumenMensual{
		Anio:  anio,
		Meses: make([]models.ResumenMes, 12),
	}
	for i := range resumen.Meses {
		resumen.Meses[i] = models.ResumenMes{Mes: i + 1, Nombre: nombresMeses[i]}
	}

	for _, p := range producciones {
		mes := int(p.FechaInicio.Month()) - 1
		resumen.Meses[mes].Producciones++
		resumen.Meses[mes].Inversion += p.Inversion
		resumen.TotalProducciones++
		resumen.TotalInversion += p.Inversion
	}

	logger.Info("Resumen mensual generado", zap.Int("total_producciones", resumen.TotalProducciones))
	return resumen, nil
}

// ResumenDashboard totales para el tablero: producciones activas, inversión
// acumulada y ciclos por estado
func (s *reporteService) ResumenDashboard(ctx context.Context) (*models.ResumenDashboard, error) {
	producciones, err := s.producciones.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	ciclos, err := s.ciclos.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	resumen := &models.ResumenDashboard{
		CiclosPorEstado: map[string]int{
			models.CicloPlanificado: 0,
			models.CicloEnProgreso:  0,
			models.CicloCompletado:  0,
			models.CicloCancelado:   0,
		},
	}

	for _, p := range producciones {
		if p.Estado == models.ProduccionActiva {
			resumen.ProduccionesActivas++
			resumen.InversionTotal += p.Inversion
		}
	}

	for _, c := range ciclos {
		resumen.CiclosPorEstado[c.Estado]++
	}

	return resumen, nil
}
