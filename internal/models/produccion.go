package models

import (
	"time"
)

// Estados válidos de una producción
const (
	ProduccionActiva   = "activo"
	ProduccionInactiva = "inactivo"
)

// MaxSensoresPorProduccion es el tope de sensores asignables a una producción
const MaxSensoresPorProduccion = 3

// MultiplicadorMeta es el factor fijo meta = inversión × 1.5
const MultiplicadorMeta = 1.5

// Produccion representa la tabla producciones
type Produccion struct {
	ID            int        `json:"id_produccion" db:"id_produccion"`
	Nombre        string     `json:"nombre" db:"nombre"`
	IDResponsable int        `json:"id_responsable" db:"id_responsable"`
	IDCultivo     int        `json:"id_cultivo" db:"id_cultivo"`
	IDCiclo       int        `json:"id_ciclo_cultivo" db:"id_ciclo_cultivo"`
	Inversion     float64    `json:"inversion" db:"inversion"`
	Meta          float64    `json:"meta" db:"meta"`
	FechaInicio   time.Time  `json:"fecha_inicio" db:"fecha_inicio"`
	FechaFin      *time.Time `json:"fecha_fin" db:"fecha_fin"`
	Estado        string     `json:"estado" db:"estado"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	// Asociaciones en orden de inserción
	Sensores []int `json:"sensores"`
	Insumos  []int `json:"insumos"`

	// Datos del join con ciclos_cultivo (solo lectura)
	NombreCiclo *string `json:"nombre_ciclo,omitempty" db:"nombre_ciclo"`
}

// UsoInsumo representa una entrada del ledger uso_insumo.
// Las entradas son de solo inserción: nunca se actualizan ni se borran,
// y conservan el valor unitario vigente al momento del registro.
type UsoInsumo struct {
	ID            int       `json:"id" db:"id"`
	IDProduccion  int       `json:"id_produccion" db:"id_produccion"`
	IDInsumo      int       `json:"id_insumo" db:"id_insumo"`
	Cantidad      float64   `json:"cantidad" db:"cantidad"`
	ValorUnitario float64   `json:"valor_unitario" db:"valor_unitario"`
	ValorTotal    float64   `json:"valor_total" db:"valor_total"`
	FechaUso      time.Time `json:"fecha_uso" db:"fecha_uso"`
	IDResponsable int       `json:"id_responsable" db:"id_responsable"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Datos del join (solo lectura)
	NombreInsumo      string `json:"nombre_insumo,omitempty" db:"nombre_insumo"`
	NombreResponsable string `json:"nombre_responsable,omitempty" db:"nombre_responsable"`
}
