package repository

import (
	"context"
	"database/sql"
	"fmt"

	"agro-service/internal/models"
)

// CultivoRepository interface para operaciones de cultivos
type CultivoRepository interface {
	Create(ctx context.Context, cultivo *models.Cultivo) error
	GetByID(ctx context.Context, id int) (*models.Cultivo, error)
	GetAll(ctx context.Context) ([]*models.Cultivo, error)
	Update(ctx context.Context, cultivo *models.Cultivo) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// InsumoRepository interface para operaciones de insumos
type InsumoRepository interface {
	Create(ctx context.Context, insumo *models.Insumo) error
	GetByID(ctx context.Context, id int) (*models.Insumo, error)
	GetAll(ctx context.Context) ([]*models.Insumo, error)
	Update(ctx context.Context, insumo *models.Insumo) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// SensorRepository interface para operaciones de sensores
type SensorRepository interface {
	Create(ctx context.Context, sensor *models.Sensor) error
	GetByID(ctx context.Context, id int) (*models.Sensor, error)
	GetAll(ctx context.Context) ([]*models.Sensor, error)
	Update(ctx context.Context, sensor *models.Sensor) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// UsuarioRepository interface para operaciones de usuarios
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id int) (*models.Usuario, error)
	GetAll(ctx context.Context) ([]*models.Usuario, error)
	Update(ctx context.Context, usuario *models.Usuario) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ===== Cultivos =====

type cultivoRepository struct {
	db *sql.DB
}

// NewCultivoRepository crea una nueva instancia del repository
func NewCultivoRepository(db *sql.DB) CultivoRepository {
	return &cultivoRepository{db: db}
}

func (r *cultivoRepository) Create(ctx context.Context, cultivo *models.Cultivo) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cultivos (nombre, tipo, area, fecha_siembra, descripcion, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_cultivo, created_at, updated_at
	`, cultivo.Nombre, cultivo.Tipo, cultivo.Area, cultivo.FechaSiembra,
		cultivo.Descripcion, cultivo.Estado,
	).Scan(&cultivo.ID, &cultivo.CreatedAt, &cultivo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create cultivo: %w", err)
	}

	return nil
}

func (r *cultivoRepository) GetByID(ctx context.Context, id int) (*models.Cultivo, error) {
	var cultivo models.Cultivo
	err := r.db.QueryRowContext(ctx, `
		SELECT id_cultivo, nombre, tipo, area, fecha_siembra, descripcion, estado,
			   created_at, updated_at
		FROM cultivos WHERE id_cultivo = $1
	`, id).Scan(
		&cultivo.ID, &cultivo.Nombre, &cultivo.Tipo, &cultivo.Area, &cultivo.FechaSiembra,
		&cultivo.Descripcion, &cultivo.Estado, &cultivo.CreatedAt, &cultivo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cultivo: %w", err)
	}

	return &cultivo, nil
}

func (r *cultivoRepository) GetAll(ctx context.Context) ([]*models.Cultivo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id_cultivo, nombre, tipo, area, fecha_siembra, descripcion, estado,
			   created_at, updated_at
		FROM cultivos ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get cultivos: %w", err)
	}
	defer rows.Close()

	var cultivos []*models.Cultivo
	for rows.Next() {
		var cultivo models.Cultivo
		err := rows.Scan(
			&cultivo.ID, &cultivo.Nombre, &cultivo.Tipo, &cultivo.Area, &cultivo.FechaSiembra,
			&cultivo.Descripcion, &cultivo.Estado, &cultivo.CreatedAt, &cultivo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cultivo: %w", err)
		}
		cultivos = append(cultivos, &cultivo)
	}

	return cultivos, rows.Err()
}

func (r *cultivoRepository) Update(ctx context.Context, cultivo *models.Cultivo) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE cultivos
		SET nombre = $1, tipo = $2, area = $3, fecha_siembra = $4, descripcion = $5,
			updated_at = NOW()
		WHERE id_cultivo = $6
	`, cultivo.Nombre, cultivo.Tipo, cultivo.Area, cultivo.FechaSiembra,
		cultivo.Descripcion, cultivo.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update cultivo: %w", err)
	}

	return rowsAffected(result)
}

func (r *cultivoRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cultivos SET estado = $1, updated_at = NOW() WHERE id_cultivo = $2", estado, id)
	if err != nil {
		return false, fmt.Errorf("failed to update estado: %w", err)
	}

	return rowsAffected(result)
}

func (r *cultivoRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cultivos WHERE id_cultivo = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cultivo: %w", err)
	}

	return rowsAffected(result)
}

// ===== Insumos =====

type insumoRepository struct {
	db *sql.DB
}

// NewInsumoRepository crea una nueva instancia del repository
func NewInsumoRepository(db *sql.DB) InsumoRepository {
	return &insumoRepository{db: db}
}

func (r *insumoRepository) Create(ctx context.Context, insumo *models.Insumo) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO insumos
		(nombre, tipo, unidad_medida, cantidad, valor_unitario, valor_total, descripcion, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_insumo, created_at, updated_at
	`, insumo.Nombre, insumo.Tipo, insumo.UnidadMedida, insumo.Cantidad,
		insumo.ValorUnitario, insumo.ValorTotal, insumo.Descripcion, insumo.Estado,
	).Scan(&insumo.ID, &insumo.CreatedAt, &insumo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create insumo: %w", err)
	}

	return nil
}

func (r *insumoRepository) GetByID(ctx context.Context, id int) (*models.Insumo, error) {
	var insumo models.Insumo
	err := r.db.QueryRowContext(ctx, `
		SELECT id_insumo, nombre, tipo, unidad_medida, cantidad, valor_unitario, valor_total,
			   descripcion, estado, created_at, updated_at
		FROM insumos WHERE id_insumo = $1
	`, id).Scan(
		&insumo.ID, &insumo.Nombre, &insumo.Tipo, &insumo.UnidadMedida, &insumo.Cantidad,
		&insumo.ValorUnitario, &insumo.ValorTotal, &insumo.Descripcion, &insumo.Estado,
		&insumo.CreatedAt, &insumo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insumo: %w", err)
	}

	return &insumo, nil
}

func (r *insumoRepository) GetAll(ctx context.Context) ([]*models.Insumo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id_insumo, nombre, tipo, unidad_medida, cantidad, valor_unitario, valor_total,
			   descripcion, estado, created_at, updated_at
		FROM insumos ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get insumos: %w", err)
	}
	defer rows.Close()

	var insumos []*models.Insumo
	for rows.Next() {
		var insumo models.Insumo
		err := rows.Scan(
			&insumo.ID, &insumo.Nombre, &insumo.Tipo, &insumo.UnidadMedida, &insumo.Cantidad,
			&insumo.ValorUnitario, &insumo.ValorTotal, &insumo.Descripcion, &insumo.Estado,
			&insumo.CreatedAt, &insumo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insumo: %w", err)
		}
		insumos = append(insumos, &insumo)
	}

	return insumos, rows.Err()
}

func (r *insumoRepository) Update(ctx context.Context, insumo *models.Insumo) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE insumos
		SET nombre = $1, tipo = $2, unidad_medida = $3, cantidad = $4, valor_unitario = $5,
			valor_total = $6, descripcion = $7, updated_at = NOW()
		WHERE id_insumo = $8
	`, insumo.Nombre, insumo.Tipo, insumo.UnidadMedida, insumo.Cantidad,
		insumo.ValorUnitario, insumo.ValorTotal, insumo.Descripcion, insumo.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update insumo: %w", err)
	}

	return rowsAffected(result)
}

func (r *insumoRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE insumos SET estado = $1, updated_at = NOW() WHERE id_insumo = $2", estado, id)
	if err != nil {
		return false, fmt.Errorf("failed to update estado: %w", err)
	}

	return rowsAffected(result)
}

func (r *insumoRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM insumos WHERE id_insumo = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete insumo: %w", err)
	}

	return rowsAffected(result)
}

// ===== Sensores =====

type sensorRepository struct {
	db *sql.DB
}

// NewSensorRepository crea una nueva instancia del repository
func NewSensorRepository(db *sql.DB) SensorRepository {
	return &sensorRepository{db: db}
}

func (r *sensorRepository) Create(ctx context.Context, sensor *models.Sensor) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sensores
		(nombre, tipo, unidad_medida, tiempo_escaneo, descripcion, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_sensor, created_at, updated_at
	`, sensor.Nombre, sensor.Tipo, sensor.UnidadMedida, sensor.TiempoEscaneo,
		sensor.Descripcion, sensor.Estado,
	).Scan(&sensor.ID, &sensor.CreatedAt, &sensor.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sensor: %w", err)
	}

	return nil
}

func (r *sensorRepository) GetByID(ctx context.Context, id int) (*models.Sensor, error) {
	var sensor models.Sensor
	err := r.db.QueryRowContext(ctx, `
		SELECT id_sensor, nombre, tipo, unidad_medida, tiempo_escaneo, descripcion, estado,
			   created_at, updated_at
		FROM sensores WHERE id_sensor = $1
	`, id).Scan(
		&sensor.ID, &sensor.Nombre, &sensor.Tipo, &sensor.UnidadMedida, &sensor.TiempoEscaneo,
		&sensor.Descripcion, &sensor.Estado, &sensor.CreatedAt, &sensor.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sensor: %w", err)
	}

	return &sensor, nil
}

func (r *sensorRepository) GetAll(ctx context.Context) ([]*models.Sensor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id_sensor, nombre, tipo, unidad_medida, tiempo_escaneo, descripcion, estado,
			   created_at, updated_at
		FROM sensores ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sensores: %w", err)
	}
	defer rows.Close()

	var sensores []*models.Sensor
	for rows.Next() {
		var sensor models.Sensor
		err := rows.Scan(
			&sensor.ID, &sensor.Nombre, &sensor.Tipo, &sensor.UnidadMedida, &sensor.TiempoEscaneo,
			&sensor.Descripcion, &sensor.Estado, &sensor.CreatedAt, &sensor.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor: %w", err)
		}
		sensores = append(sensores, &sensor)
	}

	return sensores, rows.Err()
}

func (r *sensorRepository) Update(ctx context.Context, sensor *models.Sensor) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE sensores
		SET nombre = $1, tipo = $2, unidad_medida = $3, tiempo_escaneo = $4, descripcion = $5,
			updated_at = NOW()
		WHERE id_sensor = $6
	`, sensor.Nombre, sensor.Tipo, sensor.UnidadMedida, sensor.TiempoEscaneo,
		sensor.Descripcion, sensor.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update sensor: %w", err)
	}

	return rowsAffected(result)
}

func (r *sensorRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sensores SET estado = $1, updated_at = NOW() WHERE id_sensor = $2", estado, id)
	if err != nil {
		return false, fmt.Errorf("failed to update estado: %w", err)
	}

	return rowsAffected(result)
}

func (r *sensorRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sensores WHERE id_sensor = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sensor: %w", err)
	}

	return rowsAffected(result)
}

// ===== Usuarios =====

type usuarioRepository struct {
	db *sql.DB
}

// NewUsuarioRepository crea una nueva instancia del repository
func NewUsuarioRepository(db *sql.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (nombre, email, rol, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, usuario.Nombre, usuario.Email, usuario.Rol, usuario.Estado,
	).Scan(&usuario.ID, &usuario.CreatedAt, &usuario.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	return nil
}

func (r *usuarioRepository) GetByID(ctx context.Context, id int) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, email, rol, estado, created_at, updated_at
		FROM usuarios WHERE id = $1
	`, id).Scan(
		&usuario.ID, &usuario.Nombre, &usuario.Email, &usuario.Rol, &usuario.Estado,
		&usuario.CreatedAt, &usuario.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}

	return &usuario, nil
}

func (r *usuarioRepository) GetAll(ctx context.Context) ([]*models.Usuario, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nombre, email, rol, estado, created_at, updated_at
		FROM usuarios ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []*models.Usuario
	for rows.Next() {
		var usuario models.Usuario
		err := rows.Scan(
			&usuario.ID, &usuario.Nombre, &usuario.Email, &usuario.Rol, &usuario.Estado,
			&usuario.CreatedAt, &usuario.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usuario: %w", err)
		}
		usuarios = append(usuarios, &usuario)
	}

	return usuarios, rows.Err()
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE usuarios
		SET nombre = $1, email = $2, rol = $3, estado = $4, updated_at = NOW()
		WHERE id = $5
	`, usuario.Nombre, usuario.Email, usuario.Rol, usuario.Estado, usuario.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update usuario: %w", err)
	}

	return rowsAffected(result)
}

func (r *usuarioRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE usuarios SET estado = $1, updated_at = NOW() WHERE id = $2", estado, id)
	if err != nil {
		return false, fmt.Errorf("failed to update estado: %w", err)
	}

	return rowsAffected(result)
}

func (r *usuarioRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM usuarios WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete usuario: %w", err)
	}

	return rowsAffected(result)
}

func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
