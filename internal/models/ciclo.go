package models

import (
	"time"
)

// Estados válidos de un ciclo de cultivo
const (
	CicloPlanificado = "planificado"
	CicloEnProgreso  = "en_progreso"
	CicloCompletado  = "completado"
	CicloCancelado   = "cancelado"
)

// CicloCultivo representa la tabla ciclos_cultivo
type CicloCultivo struct {
	ID                  int        `json:"id_ciclo" db:"id_ciclo"`
	IDCultivo           int        `json:"id_cultivo" db:"id_cultivo"`
	Nombre              string     `json:"nombre" db:"nombre"`
	Descripcion         *string    `json:"descripcion" db:"descripcion"`
	FechaInicial        time.Time  `json:"fecha_inicial" db:"fecha_inicial"`
	FechaFinal          time.Time  `json:"fecha_final" db:"fecha_final"`
	FechaFinalReal      *time.Time `json:"fecha_final_real" db:"fecha_final_real"`
	Estado              string     `json:"estado" db:"estado"`
	RendimientoEstimado *float64   `json:"rendimiento_estimado" db:"rendimiento_estimado"`
	RendimientoReal     *float64   `json:"rendimiento_real" db:"rendimiento_real"`
	Novedades           string     `json:"novedades" db:"novedades"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`

	// Datos del join con cultivos (solo lectura)
	NombreCultivo string `json:"nombre_cultivo,omitempty" db:"nombre_cultivo"`
}

// EsEstadoCicloValido indica si el estado pertenece al conjunto definido
func EsEstadoCicloValido(estado string) bool {
	switch estado {
	case CicloPlanificado, CicloEnProgreso, CicloCompletado, CicloCancelado:
		return true
	}
	return false
}
