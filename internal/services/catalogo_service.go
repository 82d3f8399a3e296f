package services

import (
	"context"
	"time"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"
	"agro-service/internal/repository"

	"go.uber.org/zap"
)

// CatalogoService agrupa el CRUD uniforme de cultivos, insumos, sensores y
// usuarios. Sin invariantes cruzadas: validación de campos y delegación al
// repository.
type CatalogoService interface {
	// Cultivos
	CrearCultivo(ctx context.Context, req *models.CrearCultivoRequest) (*models.Cultivo, error)
	GetCultivos(ctx context.Context) ([]*models.Cultivo, error)
	GetCultivo(ctx context.Context, id int) (*models.Cultivo, error)
	ActualizarCultivo(ctx context.Context, id int, req *models.CrearCultivoRequest) (*models.Cultivo, error)
	CambiarEstadoCultivo(ctx context.Context, id int, estado string) error
	EliminarCultivo(ctx context.Context, id int) error

	// Insumos
	CrearInsumo(ctx context.Context, req *models.CrearInsumoRequest) (*models.Insumo, error)
	GetInsumos(ctx context.Context) ([]*models.Insumo, error)
	GetInsumo(ctx context.Context, id int) (*models.Insumo, error)
	ActualizarInsumo(ctx context.Context, id int, req *models.CrearInsumoRequest) (*models.Insumo, error)
	CambiarEstadoInsumo(ctx context.Context, id int, estado string) error
	EliminarInsumo(ctx context.Context, id int) error

	// Sensores
	CrearSensor(ctx context.Context, req *models.CrearSensorRequest) (*models.Sensor, error)
	GetSensores(ctx context.Context) ([]*models.Sensor, error)
	GetSensor(ctx context.Context, id int) (*models.Sensor, error)
	ActualizarSensor(ctx context.Context, id int, req *models.CrearSensorRequest) (*models.Sensor, error)
	CambiarEstadoSensor(ctx context.Context, id int, estado string) error
	EliminarSensor(ctx context.Context, id int) error

	// Usuarios
	CrearUsuario(ctx context.Context, req *models.CrearUsuarioRequest) (*models.Usuario, error)
	GetUsuarios(ctx context.Context) ([]*models.Usuario, error)
	GetUsuario(ctx context.Context, id int) (*models.Usuario, error)
	ActualizarUsuario(ctx context.Context, id int, req *models.CrearUsuarioRequest) (*models.Usuario, error)
	CambiarEstadoUsuario(ctx context.Context, id int, estado string) error
	EliminarUsuario(ctx context.Context, id int) error
}

// catalogoService implementa CatalogoService
type catalogoService struct {
	cultivos repository.CultivoRepository
	insumos  repository.InsumoRepository
	sensores repository.SensorRepository
	usuarios repository.UsuarioRepository
	logger   *zap.Logger
}

// NewCatalogoService crea una nueva instancia del servicio
func NewCatalogoService(
	cultivos repository.CultivoRepository,
	insumos repository.InsumoRepository,
	sensores repository.SensorRepository,
	usuarios repository.UsuarioRepository,
	logger *zap.Logger,
) CatalogoService {
	return &catalogoService{
		cultivos: cultivos,
		insumos:  insumos,
		sensores: sensores,
		usuarios: usuarios,
		logger:   logger,
	}
}

func validarEstadoEntidad(estado string) error {
	if estado != "activo" && estado != "inactivo" {
		return apperrors.Validation(`el estado debe ser "activo" o "inactivo"`, "estado")
	}
	return nil
}

// ===== Cultivos =====

func (s *catalogoService) CrearCultivo(ctx context.Context, req *models.CrearCultivoRequest) (*models.Cultivo, error) {
	fechaSiembra, err := time.Parse("2006-01-02", req.FechaSiembra)
	if err != nil {
		return nil, apperrors.Validation("fecha de siembra inválida", "fecha_siembra")
	}

	cultivo := &models.Cultivo{
		Nombre:       req.Nombre,
		Tipo:         req.Tipo,
		Area:         req.Area,
		FechaSiembra: fechaSiembra,
		Descripcion:  req.Descripcion,
		Estado:       "activo",
	}

	if err := s.cultivos.Create(ctx, cultivo); err != nil {
		return nil, apperrors.Store(err)
	}

	s.logger.Info("✅ Cultivo creado", zap.Int("id_cultivo", cultivo.ID), zap.String("nombre", cultivo.Nombre))
	return cultivo, nil
}

func (s *catalogoService) GetCultivos(ctx context.Context) ([]*models.Cultivo, error) {
	cultivos, err := s.cultivos.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return cultivos, nil
}

func (s *catalogoService) GetCultivo(ctx context.Context, id int) (*models.Cultivo, error) {
	cultivo, err := s.cultivos.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if cultivo == nil {
		return nil, apperrors.NotFound("cultivo", id)
	}
	return cultivo, nil
}

func (s *catalogoService) ActualizarCultivo(ctx context.Context, id int, req *models.CrearCultivoRequest) (*models.Cultivo, error) {
	fechaSiembra, err := time.Parse("2006-01-02", req.FechaSiembra)
	if err != nil {
		return nil, apperrors.Validation("fecha de siembra inválida", "fecha_siembra")
	}

	cultivo, err := s.GetCultivo(ctx, id)
	if err != nil {
		return nil, err
	}

	cultivo.Nombre = req.Nombre
	cultivo.Tipo = req.Tipo
	cultivo.Area = req.Area
	cultivo.FechaSiembra = fechaSiembra
	cultivo.Descripcion = req.Descripcion

	updated, err := s.cultivos.Update(ctx, cultivo)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if !updated {
		return nil, apperrors.NotFound("cultivo", id)
	}

	return cultivo, nil
}

func (s *catalogoService) CambiarEstadoCultivo(ctx context.Context, id int, estado string) error {
	if err := validarEstadoEntidad(estado); err != nil {
		return err
	}

	updated, err := s.cultivos.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("cultivo", id)
	}
	return nil
}

func (s *catalogoService) EliminarCultivo(ctx context.Context, id int) error {
	deleted, err := s.cultivos.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("cultivo", id)
	}
	return nil
}

// ===== Insumos =====

func (s *catalogoService) CrearInsumo(ctx context.Context, req *models.CrearInsumoRequest) (*models.Insumo, error) {
	insumo := &models.Insumo{
		Nombre:        req.Nombre,
		Tipo:          req.Tipo,
		UnidadMedida:  req.UnidadMedida,
		Cantidad:      req.Cantidad,
		ValorUnitario: req.ValorUnitario,
		// El valor total siempre se deriva en el servidor
		ValorTotal:  req.Cantidad * req.ValorUnitario,
		Descripcion: req.Descripcion,
		Estado:      "activo",
	}

	if err := s.insumos.Create(ctx, insumo); err != nil {
		return nil, apperrors.Store(err)
	}

	s.logger.Info("✅ Insumo creado", zap.Int("id_insumo", insumo.ID), zap.String("nombre", insumo.Nombre))
	return insumo, nil
}

func (s *catalogoService) GetInsumos(ctx context.Context) ([]*models.Insumo, error) {
	insumos, err := s.insumos.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return insumos, nil
}

func (s *catalogoService) GetInsumo(ctx context.Context, id int) (*models.Insumo, error) {
	insumo, err := s.insumos.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if insumo == nil {
		return nil, apperrors.NotFound("insumo", id)
	}
	return insumo, nil
}

func (s *catalogoService) ActualizarInsumo(ctx context.Context, id int, req *models.CrearInsumoRequest) (*models.Insumo, error) {
	insumo, err := s.GetInsumo(ctx, id)
	if err != nil {
		return nil, err
	}

	insumo.Nombre = req.Nombre
	insumo.Tipo = req.Tipo
	insumo.UnidadMedida = req.UnidadMedida
	insumo.Cantidad = req.Cantidad
	insumo.ValorUnitario = req.ValorUnitario
	insumo.ValorTotal = req.Cantidad * req.ValorUnitario
	insumo.Descripcion = req.Descripcion

	updated, err := s.insumos.Update(ctx, insumo)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if !updated {
		return nil, apperrors.NotFound("insumo", id)
	}

	return insumo, nil
}

func (s *catalogoService) CambiarEstadoInsumo(ctx context.Context, id int, estado string) error {
	if err := validarEstadoEntidad(estado); err != nil {
		return err
	}

	updated, err := s.insumos.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("insumo", id)
	}
	return nil
}

func (s *catalogoService) EliminarInsumo(ctx context.Context, id int) error {
	deleted, err := s.insumos.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("insumo", id)
	}
	return nil
}

// ===== Sensores =====

func (s *catalogoService) CrearSensor(ctx context.Context, req *models.CrearSensorRequest) (*models.Sensor, error) {
	sensor := &models.Sensor{
		Nombre:        req.Nombre,
		Tipo:          req.Tipo,
		UnidadMedida:  req.UnidadMedida,
		TiempoEscaneo: req.TiempoEscaneo,
		Descripcion:   req.Descripcion,
		Estado:        "activo",
	}

	if err := s.sensores.Create(ctx, sensor); err != nil {
		return nil, apperrors.Store(err)
	}

	s.logger.Info("✅ Sensor creado", zap.Int("id_sensor", sensor.ID), zap.String("nombre", sensor.Nombre))
	return sensor, nil
}

func (s *catalogoService) GetSensores(ctx context.Context) ([]*models.Sensor, error) {
	sensores, err := s.sensores.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return sensores, nil
}

func (s *catalogoService) GetSensor(ctx context.Context, id int) (*models.Sensor, error) {
	sensor, err := s.sensores.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if sensor == nil {
		return nil, apperrors.NotFound("sensor", id)
	}
	return sensor, nil
}

func (s *catalogoService) ActualizarSensor(ctx context.Context, id int, req *models.CrearSensorRequest) (*models.Sensor, error) {
	sensor, err := s.GetSensor(ctx, id)
	if err != nil {
		return nil, err
	}

	sensor.Nombre = req.Nombre
	sensor.Tipo = req.Tipo
	sensor.UnidadMedida = req.UnidadMedida
	sensor.TiempoEscaneo = req.TiempoEscaneo
	sensor.Descripcion = req.Descripcion

	updated, err := s.sensores.Update(ctx, sensor)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if !updated {
		return nil, apperrors.NotFound("sensor", id)
	}

	return sensor, nil
}

func (s *catalogoService) CambiarEstadoSensor(ctx context.Context, id int, estado string) error {
	if err := validarEstadoEntidad(estado); err != nil {
		return err
	}

	updated, err := s.sensores.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("sensor", id)
	}
	return nil
}

func (s *catalogoService) EliminarSensor(ctx context.Context, id int) error {
	deleted, err := s.sensores.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("sensor", id)
	}
	return nil
}

// ===== Usuarios =====

func (s *catalogoService) CrearUsuario(ctx context.Context, req *models.CrearUsuarioRequest) (*models.Usuario, error) {
	usuario := &models.Usuario{
		Nombre: req.Nombre,
		Email:  req.Email,
		Rol:    req.Rol,
		Estado: "activo",
	}

	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, apperrors.Store(err)
	}

	return usuario, nil
}

func (s *catalogoService) GetUsuarios(ctx context.Context) ([]*models.Usuario, error) {
	usuarios, err := s.usuarios.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return usuarios, nil
}

func (s *catalogoService) GetUsuario(ctx context.Context, id int) (*models.Usuario, error) {
	usuario, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if usuario == nil {
		return nil, apperrors.NotFound("usuario", id)
	}
	return usuario, nil
}

func (s *catalogoService) ActualizarUsuario(ctx context.Context, id int, req *models.CrearUsuarioRequest) (*models.Usuario, error) {
	usuario, err := s.GetUsuario(ctx, id)
	if err != nil {
		return nil, err
	}

	usuario.Nombre = req.Nombre
	usuario.Email = req.Email
	usuario.Rol = req.Rol

	updated, err := s.usuarios.Update(ctx, usuario)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if !updated {
		return nil, apperrors.NotFound("usuario", id)
	}

	return usuario, nil
}

func (s *catalogoService) CambiarEstadoUsuario(ctx context.Context, id int, estado string) error {
	if err := validarEstadoEntidad(estado); err != nil {
		return err
	}

	updated, err := s.usuarios.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Store(err)
	}
	if !updated {
		return apperrors.NotFound("usuario", id)
	}
	return nil
}

func (s *catalogoService) EliminarUsuario(ctx context.Context, id int) error {
	deleted, err := s.usuarios.Delete(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.NotFound("usuario", id)
	}
	return nil
}
