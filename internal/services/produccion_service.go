package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agro-service/internal/apperrors"
	"agro-service/internal/cache"
	"agro-service/internal/models"
	"agro-service/internal/repository"

	"go.uber.org/zap"
)

// ProduccionService define la interfaz para el ciclo de vida de producciones
// y su ledger de consumo de insumos
type ProduccionService interface {
	// Ciclo de vida
	CrearProduccion(ctx context.Context, req *models.CrearProduccionRequest) (*models.Produccion, error)
	ActualizarProduccion(ctx context.Context, id int, req *models.ActualizarProduccionRequest) (*models.Produccion, error)
	EliminarProduccion(ctx context.Context, id int) error
	CambiarEstado(ctx context.Context, id int, estado string) error

	// Consultas
	GetProducciones(ctx context.Context) ([]*models.Produccion, error)
	GetProduccion(ctx context.Context, id int) (*models.Produccion, error)
	GetProduccionesByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error)

	// Ledger uso_insumo
	RegistrarUsoInsumo(ctx context.Context, req *models.RegistrarUsoInsumoRequest) (*models.UsoInsumo, error)
	GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, float64, error)
}

// produccionService implementa ProduccionService
type produccionService struct {
	repo     repository.ProduccionRepository
	ciclos   repository.CicloRepository
	cultivos repository.CultivoRepository
	insumos  repository.InsumoRepository
	sensores repository.SensorRepository
	usuarios repository.UsuarioRepository
	cache    *cache.ProduccionCache
	logger   *zap.Logger

	// Serializa la ruta de escritura por producción: cambios de asociaciones
	// y appends al ledger no se intercalan para un mismo id.
	locksMutex sync.Mutex
	locks      map[int]*sync.Mutex
}

// NewProduccionService crea una nueva instancia del servicio
func NewProduccionService(
	repo repository.ProduccionRepository,
	ciclos repository.CicloRepository,
	cultivos repository.CultivoRepository,
	insumos repository.InsumoRepository,
	sensores repository.SensorRepository,
	usuarios repository.UsuarioRepository,
	produccionCache *cache.ProduccionCache,
	logger *zap.Logger,
) ProduccionService {
	return &produccionService{
		repo:     repo,
		ciclos:   ciclos,
		cultivos: cultivos,
		insumos:  insumos,
		sensores: sensores,
		usuarios: usuarios,
		cache:    produccionCache,
		logger:   logger,
		locks:    make(map[int]*sync.Mutex),
	}
}

// lockProduccion obtiene el mutex de escritura de una producción
func (s *produccionService) lockProduccion(id int) *sync.Mutex {
	s.locksMutex.Lock()
	defer s.locksMutex.Unlock()

	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

// CrearProduccion valida y crea una producción con sus asociaciones.
// Toda la validación ocurre antes de cualquier escritura.
func (s *produccionService) CrearProduccion(ctx context.Context, req *models.CrearProduccionRequest) (*models.Produccion, error) {
	logger := s.logger.With(
		zap.String("operation", "crear_produccion"),
		zap.String("nombre", req.Nombre),
		zap.Int("id_ciclo", req.IDCiclo),
	)

	logger.Info("Iniciando creación de producción")

	fechaInicio, fechaFin, insumosSel, err := s.validarProduccion(ctx, req.Nombre, req.IDResponsable,
		req.IDCultivo, req.IDCiclo, req.Sensores, req.Insumos, req.FechaInicio, req.FechaFin)
	if err != nil {
		logger.Error("❌ Validación de producción fallida", zap.Error(err))
		return nil, err
	}

	inversion := calcularInversion(insumosSel)

	produccion := &models.Produccion{
		Nombre:        req.Nombre,
		IDResponsable: req.IDResponsable,
		IDCultivo:     req.IDCultivo,
		IDCiclo:       req.IDCiclo,
		Inversion:     inversion,
		Meta:          inversion * models.MultiplicadorMeta,
		FechaInicio:   fechaInicio,
		FechaFin:      fechaFin,
		Estado:        models.ProduccionActiva,
		Sensores:      req.Sensores,
		Insumos:       req.Insumos,
	}

	if err := s.repo.Create(ctx, produccion); err != nil {
		logger.Error("❌ Error creando producción", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	logger.Info("✅ Producción creada",
		zap.Int("id_produccion", produccion.ID),
		zap.Float64("inversion", produccion.Inversion),
		zap.Float64("meta", produccion.Meta))

	return produccion, nil
}

// ActualizarProduccion valida y actualiza una producción, recalculando
// inversión y meta a partir del nuevo conjunto de insumos
func (s *produccionService) ActualizarProduccion(ctx context.Context, id int, req *models.ActualizarProduccionRequest) (*models.Produccion, error) {
	logger := s.logger.With(
		zap.String("operation", "actualizar_produccion"),
		zap.Int("id_produccion", id),
	)

	mu := s.lockProduccion(id)
	mu.Lock()
	defer mu.Unlock()

	actual, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if actual == nil {
		return nil, apperrors.NotFound("producción", id)
	}

	fechaInicio, fechaFin, insumosSel, err := s.validarProduccion(ctx, req.Nombre, req.IDResponsable,
		req.IDCultivo, req.IDCiclo, req.Sensores, req.Insumos, req.FechaInicio, req.FechaFin)
	if err != nil {
		logger.Error("❌ Validación de producción fallida", zap.Error(err))
		return nil, err
	}

	inversion := calcularInversion(insumosSel)

	actual.Nombre = req.Nombre
	actual.IDResponsable = req.IDResponsable
	actual.IDCultivo = req.IDCultivo
	actual.IDCiclo = req.IDCiclo
	actual.Inversion = inversion
	actual.Meta = inversion * models.MultiplicadorMeta
	actual.FechaInicio = fechaInicio
	actual.FechaFin = fechaFin
	actual.Sensores = req.Sensores
	actual.Insumos = req.Insumos

	if err := s.repo.Update(ctx, actual); err != nil {
		logger.Error("❌ Error actualizando producción", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	s.invalidar(ctx, id)

	logger.Info("✅ Producción actualizada",
		zap.Float64("inversion", actual.Inversion),
		zap.Float64("meta", actual.Meta))

	return actual, nil
}

// validarProduccion aplica todas las validaciones cruzadas y resuelve las
// referencias. Retorna las fechas parseadas y los insumos asociados para el
// cálculo de inversión.
func (s *produccionService) validarProduccion(ctx context.Context, nombre string, idResponsable, idCultivo, idCiclo int,
	sensores, insumos []int, fechaInicioStr string, fechaFinStr *string) (time.Time, *time.Time, []*models.Insumo, error) {

	var zero time.Time

	// Tope de sensores: el cuarto se rechaza, nunca se trunca
	if len(sensores) > models.MaxSensoresPorProduccion {
		return zero, nil, nil, apperrors.ResourceLimit(
			fmt.Sprintf("no se pueden asignar más de %d sensores a una producción", models.MaxSensoresPorProduccion))
	}

	if campo := buscarDuplicado(sensores); campo != 0 {
		return zero, nil, nil, apperrors.Validation(
			fmt.Sprintf("el sensor %d ya está seleccionado", campo), "sensores")
	}
	if campo := buscarDuplicado(insumos); campo != 0 {
		return zero, nil, nil, apperrors.Validation(
			fmt.Sprintf("el insumo %d ya está seleccionado", campo), "insumos")
	}

	var campos []string

	if n := len(nombre); n < 3 || n > 100 {
		campos = append(campos, "nombre")
	}
	if len(sensores) == 0 {
		campos = append(campos, "sensores")
	}
	if len(insumos) == 0 {
		campos = append(campos, "insumos")
	}

	usuario, err := s.usuarios.GetByID(ctx, idResponsable)
	if err != nil {
		return zero, nil, nil, apperrors.Store(err)
	}
	if usuario == nil {
		campos = append(campos, "id_responsable")
	}

	cultivo, err := s.cultivos.GetByID(ctx, idCultivo)
	if err != nil {
		return zero, nil, nil, apperrors.Store(err)
	}
	if cultivo == nil {
		campos = append(campos, "id_cultivo")
	}

	ciclo, err := s.ciclos.GetByID(ctx, idCiclo)
	if err != nil {
		return zero, nil, nil, apperrors.Store(err)
	}
	if ciclo == nil {
		campos = append(campos, "id_ciclo_cultivo")
	} else if cultivo != nil && ciclo.IDCultivo != idCultivo {
		// El ciclo debe pertenecer al cultivo indicado
		campos = append(campos, "id_ciclo_cultivo")
	}

	for _, idSensor := range sensores {
		sensor, err := s.sensores.GetByID(ctx, idSensor)
		if err != nil {
			return zero, nil, nil, apperrors.Store(err)
		}
		if sensor == nil {
			campos = append(campos, fmt.Sprintf("sensores[%d]", idSensor))
		}
	}

	insumosSel := make([]*models.Insumo, 0, len(insumos))
	for _, idInsumo := range insumos {
		insumo, err := s.insumos.GetByID(ctx, idInsumo)
		if err != nil {
			return zero, nil, nil, apperrors.Store(err)
		}
		if insumo == nil {
			campos = append(campos, fmt.Sprintf("insumos[%d]", idInsumo))
			continue
		}
		insumosSel = append(insumosSel, insumo)
	}

	fechaInicio, err := time.Parse("2006-01-02", fechaInicioStr)
	if err != nil {
		campos = append(campos, "fecha_inicio")
	}

	var fechaFin *time.Time
	if fechaFinStr != nil && *fechaFinStr != "" {
		parsed, err := time.Parse("2006-01-02", *fechaFinStr)
		if err != nil {
			campos = append(campos, "fecha_fin")
		} else if !fechaInicio.IsZero() && fechaInicio.After(parsed) {
			campos = append(campos, "fecha_inicio", "fecha_fin")
		} else {
			fechaFin = &parsed
		}
	}

	if len(campos) > 0 {
		return zero, nil, nil, apperrors.Validation("datos de producción inválidos", campos...)
	}

	return fechaInicio, fechaFin, insumosSel, nil
}

// calcularInversion suma cantidad × valor unitario de los insumos asociados.
// La meta se deriva con el multiplicador fijo.
func calcularInversion(insumos []*models.Insumo) float64 {
	total := 0.0
	for _, insumo := range insumos {
		total += insumo.Cantidad * insumo.ValorUnitario
	}
	return total
}

// buscarDuplicado retorna el primer id repetido, o 0 si no hay duplicados
func buscarDuplicado(ids []int) int {
	vistos := make(map[int]bool, len(ids))
	for _, id := range ids {
		if vistos[id] {
			return id
		}
		vistos[id] = true
	}
	return 0
}

// GetProducciones obtiene todas las producciones
func (s *produccionService) GetProducciones(ctx context.Context) ([]*models.Produccion, error) {
	producciones, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return producciones, nil
}

// GetProduccion obtiene una producción, primero del caché
func (s *produccionService) GetProduccion(ctx context.Context, id int) (*models.Produccion, error) {
	if s.cache != nil {
		if produccion := s.cache.Get(ctx, id); produccion != nil {
			return produccion, nil
		}
	}

	produccion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if produccion == nil {
		return nil, apperrors.NotFound("producción", id)
	}

	if s.cache != nil {
		s.cache.Set(ctx, produccion)
	}

	return produccion, nil
}

// GetProduccionesByCiclo obtiene las producciones de un ciclo
func (s *produccionService) GetProduccionesByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error) {
	producciones, err := s.repo.GetByCiclo(ctx, cicloID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return producciones, nil
}

// EliminarProduccion elimina la producción con sus asociaciones y su ledger
func (s *produccionService) EliminarProduccion(ctx context.Context, id int) error {
	logger := s.logger.With(
		zap.String("operation", "eliminar_produccion"),
		zap.Int("id_produccion", id),
	)

	mu := s.lockProduccion(id)
	mu.Lock()
	defer mu.Unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.Error("❌ Error eliminando producción", zap.Error(err))
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("producción", id)
	}

	s.invalidar(ctx, id)

	logger.Info("✅ Producción eliminada")
	return nil
}

// CambiarEstado alterna la producción entre activo e inactivo.
// No toca el ledger ni las asociaciones.
func (s *produccionService) CambiarEstado(ctx context.Context, id int, estado string) error {
	logger := s.logger.With(
		zap.String("operation", "cambiar_estado_produccion"),
		zap.Int("id_produccion", id),
		zap.String("estado", estado),
	)

	if estado != models.ProduccionActiva && estado != models.ProduccionInactiva {
		return apperrors.Validation(`el estado debe ser "activo" o "inactivo"`, "estado")
	}

	mu := s.lockProduccion(id)
	mu.Lock()
	defer mu.Unlock()

	updated, err := s.repo.UpdateEstado(ctx, id, estado)
	if err != nil {
		logger.Error("❌ Error actualizando estado", zap.Error(err))
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("producción", id)
	}

	s.invalidar(ctx, id)

	logger.Info("✅ Estado de producción actualizado")
	return nil
}

// RegistrarUsoInsumo agrega una entrada al ledger de la producción.
// El valor de línea se congela al momento del registro.
func (s *produccionService) RegistrarUsoInsumo(ctx context.Context, req *models.RegistrarUsoInsumoRequest) (*models.UsoInsumo, error) {
	logger := s.logger.With(
		zap.String("operation", "registrar_uso_insumo"),
		zap.Int("id_produccion", req.IDProduccion),
		zap.Int("id_insumo", req.IDInsumo),
	)

	if req.Cantidad < 0 {
		return nil, apperrors.NegativeValue("cantidad")
	}
	if req.ValorUnitario < 0 {
		return nil, apperrors.NegativeValue("valor_unitario")
	}

	mu := s.lockProduccion(req.IDProduccion)
	mu.Lock()
	defer mu.Unlock()

	produccion, err := s.repo.GetByID(ctx, req.IDProduccion)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if produccion == nil {
		return nil, apperrors.NotFound("producción", req.IDProduccion)
	}

	insumo, err := s.insumos.GetByID(ctx, req.IDInsumo)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if insumo == nil {
		return nil, apperrors.NotFound("insumo", req.IDInsumo)
	}

	responsable, err := s.usuarios.GetByID(ctx, req.IDResponsable)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if responsable == nil {
		return nil, apperrors.NotFound("usuario", req.IDResponsable)
	}

	fechaUso := time.Now()
	if req.FechaUso != nil && *req.FechaUso != "" {
		parsed, err := time.Parse("2006-01-02", *req.FechaUso)
		if err != nil {
			return nil, apperrors.Validation("fecha de uso inválida", "fecha_uso")
		}
		fechaUso = parsed
	}

	uso := &models.UsoInsumo{
		IDProduccion:  req.IDProduccion,
		IDInsumo:      req.IDInsumo,
		Cantidad:      req.Cantidad,
		ValorUnitario: req.ValorUnitario,
		ValorTotal:    req.Cantidad * req.ValorUnitario,
		FechaUso:      fechaUso,
		IDResponsable: req.IDResponsable,
		Observaciones: req.Observaciones,
	}

	if err := s.repo.CreateUsoInsumo(ctx, uso); err != nil {
		logger.Error("❌ Error registrando uso de insumo", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	s.invalidar(ctx, req.IDProduccion)

	logger.Info("✅ Uso de insumo registrado",
		zap.Float64("cantidad", uso.Cantidad),
		zap.Float64("valor_total", uso.ValorTotal))

	return uso, nil
}

// GetUsoInsumos obtiene el ledger de una producción junto con el total
// invertido. El total del ledger es la cifra canónica para reportes
// financieros, independiente del campo inversion de la producción.
func (s *produccionService) GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, float64, error) {
	produccion, err := s.repo.GetByID(ctx, produccionID)
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}
	if produccion == nil {
		return nil, 0, apperrors.NotFound("producción", produccionID)
	}

	usos, err := s.repo.GetUsoInsumos(ctx, produccionID)
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}

	total, err := s.repo.GetTotalUsoInsumos(ctx, produccionID)
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}

	return usos, total, nil
}

func (s *produccionService) invalidar(ctx context.Context, id int) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}
