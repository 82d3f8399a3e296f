package repository

import (
	"context"
	"database/sql"
	"fmt"

	"agro-service/internal/models"
)

// CicloRepository define la interfaz para operaciones de ciclos de cultivo
type CicloRepository interface {
	Create(ctx context.Context, ciclo *models.CicloCultivo) error
	GetByID(ctx context.Context, id int) (*models.CicloCultivo, error)
	GetAll(ctx context.Context) ([]*models.CicloCultivo, error)
	GetByCultivo(ctx context.Context, cultivoID int) ([]*models.CicloCultivo, error)
	Update(ctx context.Context, ciclo *models.CicloCultivo) (bool, error)
	UpdateEstado(ctx context.Context, id int, estado string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// cicloRepository implementa CicloRepository
type cicloRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

// NewCicloRepository crea una nueva instancia del repository
func NewCicloRepository(db *sql.DB) (CicloRepository, error) {
	repo := &cicloRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

func (r *cicloRepository) prepareStatements() error {
	statements := map[string]string{
		"create_ciclo": `
			INSERT INTO ciclos_cultivo
			(id_cultivo, nombre, descripcion, fecha_inicial, fecha_final, fecha_final_real,
			 estado, rendimiento_estimado, rendimiento_real, novedades)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id_ciclo, created_at, updated_at
		`,
		"get_ciclo": `
			SELECT cc.id_ciclo, cc.id_cultivo, cc.nombre, cc.descripcion, cc.fecha_inicial,
				   cc.fecha_final, cc.fecha_final_real, cc.estado, cc.rendimiento_estimado,
				   cc.rendimiento_real, cc.novedades, cc.created_at, cc.updated_at,
				   c.nombre as nombre_cultivo
			FROM ciclos_cultivo cc
			JOIN cultivos c ON cc.id_cultivo = c.id_cultivo
			WHERE cc.id_ciclo = $1
		`,
		"get_ciclos": `
			SELECT cc.id_ciclo, cc.id_cultivo, cc.nombre, cc.descripcion, cc.fecha_inicial,
				   cc.fecha_final, cc.fecha_final_real, cc.estado, cc.rendimiento_estimado,
				   cc.rendimiento_real, cc.novedades, cc.created_at, cc.updated_at,
				   c.nombre as nombre_cultivo
			FROM ciclos_cultivo cc
			JOIN cultivos c ON cc.id_cultivo = c.id_cultivo
			ORDER BY cc.fecha_inicial DESC
		`,
		"get_ciclos_by_cultivo": `
			SELECT cc.id_ciclo, cc.id_cultivo, cc.nombre, cc.descripcion, cc.fecha_inicial,
				   cc.fecha_final, cc.fecha_final_real, cc.estado, cc.rendimiento_estimado,
				   cc.rendimiento_real, cc.novedades, cc.created_at, cc.updated_at,
				   c.nombre as nombre_cultivo
			FROM ciclos_cultivo cc
			JOIN cultivos c ON cc.id_cultivo = c.id_cultivo
			WHERE cc.id_cultivo = $1
			ORDER BY cc.fecha_inicial DESC
		`,
		"update_ciclo": `
			UPDATE ciclos_cultivo
			SET id_cultivo = $1, nombre = $2, descripcion = $3, fecha_inicial = $4,
				fecha_final = $5, fecha_final_real = $6, rendimiento_estimado = $7,
				rendimiento_real = $8, novedades = $9, updated_at = NOW()
			WHERE id_ciclo = $10
		`,
		"update_estado": `
			UPDATE ciclos_cultivo SET estado = $1, updated_at = NOW()
			WHERE id_ciclo = $2
		`,
		"delete_ciclo": `
			DELETE FROM ciclos_cultivo WHERE id_ciclo = $1
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

// Create inserta un nuevo ciclo de cultivo
func (r *cicloRepository) Create(ctx context.Context, ciclo *models.CicloCultivo) error {
	err := r.stmts["create_ciclo"].QueryRowContext(ctx,
		ciclo.IDCultivo, ciclo.Nombre, ciclo.Descripcion, ciclo.FechaInicial, ciclo.FechaFinal,
		ciclo.FechaFinalReal, ciclo.Estado, ciclo.RendimientoEstimado, ciclo.RendimientoReal,
		ciclo.Novedades,
	).Scan(&ciclo.ID, &ciclo.CreatedAt, &ciclo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create ciclo: %w", err)
	}

	return nil
}

// GetByID obtiene un ciclo por id
func (r *cicloRepository) GetByID(ctx context.Context, id int) (*models.CicloCultivo, error) {
	var ciclo models.CicloCultivo
	err := r.stmts["get_ciclo"].QueryRowContext(ctx, id).Scan(
		&ciclo.ID, &ciclo.IDCultivo, &ciclo.Nombre, &ciclo.Descripcion, &ciclo.FechaInicial,
		&ciclo.FechaFinal, &ciclo.FechaFinalReal, &ciclo.Estado, &ciclo.RendimientoEstimado,
		&ciclo.RendimientoReal, &ciclo.Novedades, &ciclo.CreatedAt, &ciclo.UpdatedAt,
		&ciclo.NombreCultivo,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ciclo: %w", err)
	}

	return &ciclo, nil
}

// GetAll obtiene todos los ciclos con el nombre del cultivo
func (r *cicloRepository) GetAll(ctx context.Context) ([]*models.CicloCultivo, error) {
	return r.queryCiclos(ctx, "get_ciclos")
}

// GetByCultivo obtiene los ciclos de un cultivo
func (r *cicloRepository) GetByCultivo(ctx context.Context, cultivoID int) ([]*models.CicloCultivo, error) {
	return r.queryCiclos(ctx, "get_ciclos_by_cultivo", cultivoID)
}

func (r *cicloRepository) queryCiclos(ctx context.Context, stmt string, args ...interface{}) ([]*models.CicloCultivo, error) {
	rows, err := r.stmts[stmt].QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get ciclos: %w", err)
	}
	defer rows.Close()

	var ciclos []*models.CicloCultivo
	for rows.Next() {
		var ciclo models.CicloCultivo
		err := rows.Scan(
			&ciclo.ID, &ciclo.IDCultivo, &ciclo.Nombre, &ciclo.Descripcion, &ciclo.FechaInicial,
			&ciclo.FechaFinal, &ciclo.FechaFinalReal, &ciclo.Estado, &ciclo.RendimientoEstimado,
			&ciclo.RendimientoReal, &ciclo.Novedades, &ciclo.CreatedAt, &ciclo.UpdatedAt,
			&ciclo.NombreCultivo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ciclo: %w", err)
		}
		ciclos = append(ciclos, &ciclo)
	}

	return ciclos, rows.Err()
}

// Update actualiza un ciclo (el estado se cambia solo vía UpdateEstado)
func (r *cicloRepository) Update(ctx context.Context, ciclo *models.CicloCultivo) (bool, error) {
	result, err := r.stmts["update_ciclo"].ExecContext(ctx,
		ciclo.IDCultivo, ciclo.Nombre, ciclo.Descripcion, ciclo.FechaInicial, ciclo.FechaFinal,
		ciclo.FechaFinalReal, ciclo.RendimientoEstimado, ciclo.RendimientoReal,
		ciclo.Novedades, ciclo.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update ciclo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// UpdateEstado actualiza solo el estado del ciclo
func (r *cicloRepository) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
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

// Delete elimina un ciclo
func (r *cicloRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.stmts["delete_ciclo"].ExecContext(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete ciclo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
