package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agro-service/internal/models"
)

// ProduccionRepository define la interfaz para operaciones de producciones
type ProduccionRepository interface {
	// Operaciones básicas
	Create(ctx context.Context, produccion *models.Produccion) error
	GetByID(ctx context.Context, id int) (*models.Produccion, error)
	GetAll(ctx context.Context) ([]*models.Produccion, error)
	Update(ctx context.Context, produccion *models.Produccion) error
	Delete(ctx context.Context, id int) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)

	// Consultas
	GetByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error)
	GetByDateRange(ctx context.Context, desde, hasta time.Time) ([]*models.Produccion, error)
	GetByAnio(ctx context.Context, anio int) ([]*models.Produccion, error)

	// Ledger uso_insumo (solo inserción)
	CreateUsoInsumo(ctx context.Context, uso *models.UsoInsumo) error
	GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, error)
	GetTotalUsoInsumos(ctx context.Context, produccionID int) (float64, error)
}

// produccionRepository implementa ProduccionRepository
type produccionRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

// NewProduccionRepository crea una nueva instancia del repository
func NewProduccionRepository(db *sql.DB) (ProduccionRepository, error) {
	repo := &produccionRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

// prepareStatements prepara todas las consultas SQL para mejor rendimiento
func (r *produccionRepository) prepareStatements() error {
	statements := map[string]string{
		"get_produccion": `
			SELECT p.id_produccion, p.nombre, p.id_responsable, p.id_cultivo, p.id_ciclo_cultivo,
				   p.inversion, p.meta, p.fecha_inicio, p.fecha_fin, p.estado,
				   p.created_at, p.updated_at, c.nombre as nombre_ciclo
			FROM producciones p
			LEFT JOIN ciclos_cultivo c ON p.id_ciclo_cultivo = c.id_ciclo
			WHERE p.id_produccion = $1
		`,
		"get_producciones": `
			SELECT p.id_produccion, p.nombre, p.id_responsable, p.id_cultivo, p.id_ciclo_cultivo,
				   p.inversion, p.meta, p.fecha_inicio, p.fecha_fin, p.estado,
				   p.created_at, p.updated_at, c.nombre as nombre_ciclo
			FROM producciones p
			LEFT JOIN ciclos_cultivo c ON p.id_ciclo_cultivo = c.id_ciclo
			ORDER BY p.fecha_inicio DESC
		`,
		"get_producciones_by_ciclo": `
			SELECT p.id_produccion, p.nombre, p.id_responsable, p.id_cultivo, p.id_ciclo_cultivo,
				   p.inversion, p.meta, p.fecha_inicio, p.fecha_fin, p.estado,
				   p.created_at, p.updated_at, c.nombre as nombre_ciclo
			FROM producciones p
			LEFT JOIN ciclos_cultivo c ON p.id_ciclo_cultivo = c.id_ciclo
			WHERE p.id_ciclo_cultivo = $1
			ORDER BY p.fecha_inicio DESC
		`,
		"get_producciones_by_rango": `
			SELECT p.id_produccion, p.nombre, p.id_responsable, p.id_cultivo, p.id_ciclo_cultivo,
				   p.inversion, p.meta, p.fecha_inicio, p.fecha_fin, p.estado,
				   p.created_at, p.updated_at, c.nombre as nombre_ciclo
			FROM producciones p
			LEFT JOIN ciclos_cultivo c ON p.id_ciclo_cultivo = c.id_ciclo
			WHERE p.fecha_inicio BETWEEN $1 AND $2
			  AND p.estado = 'activo'
			ORDER BY p.fecha_inicio DESC
		`,
		"get_producciones_by_anio": `
			SELECT p.id_produccion, p.nombre, p.id_responsable, p.id_cultivo, p.id_ciclo_cultivo,
				   p.inversion, p.meta, p.fecha_inicio, p.fecha_fin, p.estado,
				   p.created_at, p.updated_at, c.nombre as nombre_ciclo
			FROM producciones p
			LEFT JOIN ciclos_cultivo c ON p.id_ciclo_cultivo = c.id_ciclo
			WHERE EXTRACT(YEAR FROM p.fecha_inicio) = $1
			ORDER BY p.fecha_inicio
		`,
		"update_estado": `
			UPDATE producciones SET estado = $1, updated_at = NOW()
			WHERE id_produccion = $2
		`,
		"get_sensores": `
			SELECT id_sensor FROM produccion_sensor
			WHERE id_produccion = $1
			ORDER BY posicion
		`,
		"get_insumos": `
			SELECT id_insumo FROM produccion_insumo
			WHERE id_produccion = $1
			ORDER BY posicion
		`,
		"create_uso_insumo": `
			INSERT INTO uso_insumo
			(id_produccion, id_insumo, cantidad, valor_unitario, valor_total,
			 fecha_uso, id_responsable, observaciones)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`,
		"get_uso_insumos": `
			SELECT ui.id, ui.id_produccion, ui.id_insumo, ui.cantidad, ui.valor_unitario,
				   ui.valor_total, ui.fecha_uso, ui.id_responsable, ui.observaciones,
				   ui.created_at, i.nombre as nombre_insumo, u.nombre as nombre_responsable
			FROM uso_insumo ui
			JOIN insumos i ON ui.id_insumo = i.id_insumo
			JOIN usuarios u ON ui.id_responsable = u.id
			WHERE ui.id_produccion = $1
			ORDER BY ui.fecha_uso DESC
		`,
		"get_total_uso_insumos": `
			SELECT COALESCE(SUM(valor_total), 0)
			FROM uso_insumo
			WHERE id_produccion = $1
		`,
	}

	for name, query := range statements {
		stmt, err := r.db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare %s: %w", name, err)
		}
		r.stmts[name] = stmt
	}

	return nil
}

// Create inserta la producción y sus asociaciones en una transacción
func (r *produccionRepository) Create(ctx context.Context, produccion *models.Produccion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO producciones
		(nombre, id_responsable, id_cultivo, id_ciclo_cultivo, inversion, meta,
		 fecha_inicio, fecha_fin, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_produccion, created_at, updated_at
	`, produccion.Nombre, produccion.IDResponsable, produccion.IDCultivo, produccion.IDCiclo,
		produccion.Inversion, produccion.Meta, produccion.FechaInicio, produccion.FechaFin,
		produccion.Estado,
	).Scan(&produccion.ID, &produccion.CreatedAt, &produccion.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create produccion: %w", err)
	}

	if err := r.insertAsociaciones(ctx, tx, produccion); err != nil {
		return err
	}

	return tx.Commit()
}

// Update actualiza la producción y reemplaza sus asociaciones en una transacción
func (r *produccionRepository) Update(ctx context.Context, produccion *models.Produccion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE producciones
		SET nombre = $1, id_responsable = $2, id_cultivo = $3, id_ciclo_cultivo = $4,
			inversion = $5, meta = $6, fecha_inicio = $7, fecha_fin = $8, updated_at = NOW()
		WHERE id_produccion = $9
	`, produccion.Nombre, produccion.IDResponsable, produccion.IDCultivo, produccion.IDCiclo,
		produccion.Inversion, produccion.Meta, produccion.FechaInicio, produccion.FechaFin,
		produccion.ID)
	if err != nil {
		return fmt.Errorf("failed to update produccion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no produccion found with id %d", produccion.ID)
	}

	for _, table := range []string{"produccion_sensor", "produccion_insumo"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id_produccion = $1", table), produccion.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := r.insertAsociaciones(ctx, tx, produccion); err != nil {
		return err
	}

	return tx.Commit()
}

// insertAsociaciones inserta sensores e insumos conservando el orden de selección
func (r *produccionRepository) insertAsociaciones(ctx context.Context, tx *sql.Tx, produccion *models.Produccion) error {
	for pos, idSensor := range produccion.Sensores {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO produccion_sensor (id_produccion, id_sensor, posicion)
			VALUES ($1, $2, $3)
		`, produccion.ID, idSensor, pos)
		if err != nil {
			return fmt.Errorf("failed to associate sensor %d: %w", idSensor, err)
		}
	}

	for pos, idInsumo := range produccion.Insumos {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO produccion_insumo (id_produccion, id_insumo, posicion)
			VALUES ($1, $2, $3)
		`, produccion.ID, idInsumo, pos)
		if err != nil {
			return fmt.Errorf("failed to associate insumo %d: %w", idInsumo, err)
		}
	}

	return nil
}

// GetByID obtiene una producción con sus asociaciones
func (r *produccionRepository) GetByID(ctx context.Context, id int) (*models.Produccion, error) {
	var p models.Produccion
	err := r.stmts["get_produccion"].QueryRowContext(ctx, id).Scan(
		&p.ID, &p.Nombre, &p.IDResponsable, &p.IDCultivo, &p.IDCiclo,
		&p.Inversion, &p.Meta, &p.FechaInicio, &p.FechaFin, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt, &p.NombreCiclo,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get produccion: %w", err)
	}

	if p.Sensores, err = r.scanAsociaciones(ctx, "get_sensores", id); err != nil {
		return nil, err
	}
	if p.Insumos, err = r.scanAsociaciones(ctx, "get_insumos", id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *produccionRepository) scanAsociaciones(ctx context.Context, stmt string, produccionID int) ([]int, error) {
	rows, err := r.stmts[stmt].QueryContext(ctx, produccionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get asociaciones: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan asociacion: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetAll obtiene todas las producciones con el nombre del ciclo
func (r *produccionRepository) GetAll(ctx context.Context) ([]*models.Produccion, error) {
	return r.queryProducciones(ctx, "get_producciones")
}

// GetByCiclo obtiene las producciones de un ciclo
func (r *produccionRepository) GetByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error) {
	return r.queryProducciones(ctx, "get_producciones_by_ciclo", cicloID)
}

// GetByDateRange obtiene producciones activas con fecha_inicio en [desde, hasta]
func (r *produccionRepository) GetByDateRange(ctx context.Context, desde, hasta time.Time) ([]*models.Produccion, error) {
	return r.queryProducciones(ctx, "get_producciones_by_rango", desde, hasta)
}

// GetByAnio obtiene todas las producciones iniciadas en el año, sin importar
// su estado
func (r *produccionRepository) GetByAnio(ctx context.Context, anio int) ([]*models.Produccion, error) {
	return r.queryProducciones(ctx, "get_producciones_by_anio", anio)
}

func (r *produccionRepository) queryProducciones(ctx context.Context, stmt string, args ...interface{}) ([]*models.Produccion, error) {
	rows, err := r.stmts[stmt].QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get producciones: %w", err)
	}
	defer rows.Close()

	var producciones []*models.Produccion
	for rows.Next() {
		var p models.Produccion
		err := rows.Scan(
			&p.ID, &p.Nombre, &p.IDResponsable, &p.IDCultivo, &p.IDCiclo,
			&p.Inversion, &p.Meta, &p.FechaInicio, &p.FechaFin, &p.Estado,
			&p.CreatedAt, &p.UpdatedAt, &p.NombreCiclo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan produccion: %w", err)
		}
		producciones = append(producciones, &p)
	}

	return producciones, rows.Err()
}

// Delete elimina la producción junto con las asociaciones y el ledger que posee
func (r *produccionRepository) Delete(ctx context.Context, id int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"uso_insumo", "produccion_sensor", "produccion_insumo"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id_produccion = $1", table), id); err != nil {
			return false, fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM producciones WHERE id_produccion = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete produccion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	return true, tx.Commit()
}

// UpdateEstado actualiza solo el estado de la producción
func (r *produccionRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	result, err := r.stmts["update_estado"].ExecContext(ctx, estado, id)
	if err != nil {
		return false, fmt.Errorf("failed to update estado: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// CreateUsoInsumo agrega una entrada al ledger. Nunca modifica entradas previas.
func (r *produccionRepository) CreateUsoInsumo(ctx context.Context, uso *models.UsoInsumo) error {
	err := r.stmts["create_uso_insumo"].QueryRowContext(ctx,
		uso.IDProduccion, uso.IDInsumo, uso.Cantidad, uso.ValorUnitario, uso.ValorTotal,
		uso.FechaUso, uso.IDResponsable, uso.Observaciones,
	).Scan(&uso.ID, &uso.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create uso_insumo: %w", err)
	}

	return nil
}

// GetUsoInsumos obtiene el ledger completo de una producción
func (r *produccionRepository) GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, error) {
	rows, err := r.stmts["get_uso_insumos"].QueryContext(ctx, produccionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get uso_insumos: %w", err)
	}
	defer rows.Close()

	var usos []*models.UsoInsumo
	for rows.Next() {
		var uso models.UsoInsumo
		err := rows.Scan(
			&uso.ID, &uso.IDProduccion, &uso.IDInsumo, &uso.Cantidad, &uso.ValorUnitario,
			&uso.ValorTotal, &uso.FechaUso, &uso.IDResponsable, &uso.Observaciones,
			&uso.CreatedAt, &uso.NombreInsumo, &uso.NombreResponsable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan uso_insumo: %w", err)
		}
		usos = append(usos, &uso)
	}

	return usos, rows.Err()
}

// GetTotalUsoInsumos suma los valores de línea del ledger de una producción
func (r *produccionRepository) GetTotalUsoInsumos(ctx context.Context, produccionID int) (float64, error) {
	var total float64
	err := r.stmts["get_total_uso_insumos"].QueryRowContext(ctx, produccionID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total uso_insumos: %w", err)
	}

	return total, nil
}
