package services

import (
	"context"
	"fmt"
	"time"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"
	"agro-service/internal/repository"

	"go.uber.org/zap"
)

// CicloService define la interfaz para los ciclos de cultivo y su máquina
// de estados
type CicloService interface {
	CrearCiclo(ctx context.Context, req *models.CrearCicloRequest) (*models.CicloCultivo, error)
	ActualizarCiclo(ctx context.Context, id int, req *models.ActualizarCicloRequest) (*models.CicloCultivo, error)
	CambiarEstado(ctx context.Context, id int, estado string) error
	EliminarCiclo(ctx context.Context, id int) error

	GetCiclos(ctx context.Context) ([]*models.CicloCultivo, error)
	GetCiclo(ctx context.Context, id int) (*models.CicloCultivo, error)
	GetCiclosByCultivo(ctx context.Context, cultivoID int) ([]*models.CicloCultivo, error)
}

// transicionesCiclo define las transiciones permitidas de la máquina de
// estados: planificado → en_progreso → completado, con cancelado alcanzable
// desde planificado o en_progreso. Los estados finales no tienen salida.
var transicionesCiclo = map[string][]string{
	models.CicloPlanificado: {models.CicloEnProgreso, models.CicloCancelado},
	models.CicloEnProgreso:  {models.CicloCompletado, models.CicloCancelado},
	models.CicloCompletado:  {},
	models.CicloCancelado:   {},
}

// cicloService implementa CicloService
type cicloService struct {
	repo     repository.CicloRepository
	cultivos repository.CultivoRepository
	logger   *zap.Logger
}

// NewCicloService crea una nueva instancia del servicio
func NewCicloService(repo repository.CicloRepository, cultivos repository.CultivoRepository, logger *zap.Logger) CicloService {
	return &cicloService{
		repo:     repo,
		cultivos: cultivos,
		logger:   logger,
	}
}

// CrearCiclo valida y crea un ciclo de cultivo en estado planificado
func (s *cicloService) CrearCiclo(ctx context.Context, req *models.CrearCicloRequest) (*models.CicloCultivo, error) {
	logger := s.logger.With(
		zap.String("operation", "crear_ciclo"),
		zap.String("nombre", req.Nombre),
		zap.Int("id_cultivo", req.IDCultivo),
	)

	fechaInicial, fechaFinal, err := s.validarCiclo(ctx, req.IDCultivo, req.FechaInicial, req.FechaFinal)
	if err != nil {
		logger.Error("❌ Validación de ciclo fallida", zap.Error(err))
		return nil, err
	}

	ciclo := &models.CicloCultivo{
		IDCultivo:           req.IDCultivo,
		Nombre:              req.Nombre,
		Descripcion:         req.Descripcion,
		FechaInicial:        fechaInicial,
		FechaFinal:          fechaFinal,
		Estado:              models.CicloPlanificado,
		RendimientoEstimado: req.RendimientoEstimado,
		Novedades:           req.Novedades,
	}

	if err := s.repo.Create(ctx, ciclo); err != nil {
		logger.Error("❌ Error creando ciclo", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	logger.Info("✅ Ciclo de cultivo creado", zap.Int("id_ciclo", ciclo.ID))
	return ciclo, nil
}

// ActualizarCiclo valida y actualiza un ciclo. El estado no se toca aquí:
// las transiciones pasan por CambiarEstado.
func (s *cicloService) ActualizarCiclo(ctx context.Context, id int, req *models.ActualizarCicloRequest) (*models.CicloCultivo, error) {
	logger := s.logger.With(
		zap.String("operation", "actualizar_ciclo"),
		zap.Int("id_ciclo", id),
	)

	ciclo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if ciclo == nil {
		return nil, apperrors.NotFound("ciclo de cultivo", id)
	}

	fechaInicial, fechaFinal, err := s.validarCiclo(ctx, req.IDCultivo, req.FechaInicial, req.FechaFinal)
	if err != nil {
		logger.Error("❌ Validación de ciclo fallida", zap.Error(err))
		return nil, err
	}

	var fechaFinalReal *time.Time
	if req.FechaFinalReal != nil && *req.FechaFinalReal != "" {
		parsed, err := time.Parse("2006-01-02", *req.FechaFinalReal)
		if err != nil {
			return nil, apperrors.Validation("fecha final real inválida", "fecha_final_real")
		}
		fechaFinalReal = &parsed
	}

	ciclo.IDCultivo = req.IDCultivo
	ciclo.Nombre = req.Nombre
	ciclo.Descripcion = req.Descripcion
	ciclo.FechaInicial = fechaInicial
	ciclo.FechaFinal = fechaFinal
	ciclo.FechaFinalReal = fechaFinalReal
	ciclo.RendimientoEstimado = req.RendimientoEstimado
	ciclo.RendimientoReal = req.RendimientoReal
	ciclo.Novedades = req.Novedades

	updated, err := s.repo.Update(ctx, ciclo)
	if err != nil {
		logger.Error("❌ Error actualizando ciclo", zap.Error(err))
		return nil, apperrors.Store(err)
	}
	if !updated {
		return nil, apperrors.NotFound("ciclo de cultivo", id)
	}

	logger.Info("✅ Ciclo de cultivo actualizado")
	return ciclo, nil
}

// validarCiclo verifica la referencia al cultivo y el orden de fechas
func (s *cicloService) validarCiclo(ctx context.Context, idCultivo int, fechaInicialStr, fechaFinalStr string) (time.Time, time.Time, error) {
	var zero time.Time
	var campos []string

	cultivo, err := s.cultivos.GetByID(ctx, idCultivo)
	if err != nil {
		return zero, zero, apperrors.Store(err)
	}
	if cultivo == nil {
		campos = append(campos, "id_cultivo")
	}

	fechaInicial, err := time.Parse("2006-01-02", fechaInicialStr)
	if err != nil {
		campos = append(campos, "fecha_inicial")
	}

	fechaFinal, err := time.Parse("2006-01-02", fechaFinalStr)
	if err != nil {
		campos = append(campos, "fecha_final")
	}

	// Invariante: fecha inicial ≤ fecha final, nunca se persiste al revés
	if !fechaInicial.IsZero() && !fechaFinal.IsZero() && fechaInicial.After(fechaFinal) {
		campos = append(campos, "fecha_inicial", "fecha_final")
	}

	if len(campos) > 0 {
		return zero, zero, apperrors.Validation("datos de ciclo inválidos", campos...)
	}

	return fechaInicial, fechaFinal, nil
}

// CambiarEstado aplica una transición de la máquina de estados del ciclo.
// Las transiciones son monótonas: no hay retorno desde estados posteriores.
func (s *cicloService) CambiarEstado(ctx context.Context, id int, estado string) error {
	logger := s.logger.With(
		zap.String("operation", "cambiar_estado_ciclo"),
		zap.Int("id_ciclo", id),
		zap.String("estado", estado),
	)

	if !models.EsEstadoCicloValido(estado) {
		return apperrors.Validation(
			fmt.Sprintf("estado %q no definido para ciclos de cultivo", estado), "estado")
	}

	ciclo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if ciclo == nil {
		return apperrors.NotFound("ciclo de cultivo", id)
	}

	if !transicionPermitida(ciclo.Estado, estado) {
		return apperrors.Validation(
			fmt.Sprintf("transición de %q a %q no permitida", ciclo.Estado, estado), "estado")
	}

	updated, err := s.repo.UpdateEstado(ctx, id, estado)
	if err != nil {
		logger.Error("❌ Error actualizando estado del ciclo", zap.Error(err))
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("ciclo de cultivo", id)
	}

	logger.Info("✅ Estado del ciclo actualizado", zap.String("desde", ciclo.Estado))
	return nil
}

func transicionPermitida(desde, hacia string) bool {
	for _, permitido := range transicionesCiclo[desde] {
		if permitido == hacia {
			return true
		}
	}
	return false
}

// EliminarCiclo elimina un ciclo por acción explícita del usuario
func (s *cicloService) EliminarCiclo(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("ciclo de cultivo", id)
	}
	return nil
}

// GetCiclos obtiene todos los ciclos
func (s *cicloService) GetCiclos(ctx context.Context) ([]*models.CicloCultivo, error) {
	ciclos, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return ciclos, nil
}

// GetCiclo obtiene un ciclo por id
func (s *cicloService) GetCiclo(ctx context.Context, id int) (*models.CicloCultivo, error) {
	ciclo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if ciclo == nil {
		return nil, apperrors.NotFound("ciclo de cultivo", id)
	}
	return ciclo, nil
}

// GetCiclosByCultivo obtiene los ciclos de un cultivo
func (s *cicloService) GetCiclosByCultivo(ctx context.Context, cultivoID int) ([]*models.CicloCultivo, error) {
	ciclos, err := s.repo.GetByCultivo(ctx, cultivoID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return ciclos, nil
}
