package models

import (
	"time"
)

// Insumo representa un insumo consumible (fertilizante, semilla, herramienta)
type Insumo struct {
	ID            int       `json:"id_insumo" db:"id_insumo"`
	Nombre        string    `json:"nombre" db:"nombre"`
	Tipo          string    `json:"tipo" db:"tipo"`
	UnidadMedida  string    `json:"unidad_medida" db:"unidad_medida"`
	Cantidad      float64   `json:"cantidad" db:"cantidad"`
	ValorUnitario float64   `json:"valor_unitario" db:"valor_unitario"`
	ValorTotal    float64   `json:"valor_total" db:"valor_total"`
	Descripcion   *string   `json:"descripcion" db:"descripcion"`
	Estado        string    `json:"estado" db:"estado"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Sensor representa un sensor asignable a producciones
type Sensor struct {
	ID            int       `json:"id_sensor" db:"id_sensor"`
	Nombre        string    `json:"nombre" db:"nombre"`
	Tipo          string    `json:"tipo" db:"tipo"`
	UnidadMedida  string    `json:"unidad_medida" db:"unidad_medida"`
	TiempoEscaneo int       `json:"tiempo_escaneo" db:"tiempo_escaneo"`
	Descripcion   *string   `json:"descripcion" db:"descripcion"`
	Estado        string    `json:"estado" db:"estado"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
