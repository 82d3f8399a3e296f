package models

import (
	"time"
)

// Cultivo representa un cultivo registrado en el sistema
type Cultivo struct {
	ID           int       `json:"id_cultivo" db:"id_cultivo"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Tipo         string    `json:"tipo" db:"tipo"`
	Area         float64   `json:"area" db:"area"`
	FechaSiembra time.Time `json:"fecha_siembra" db:"fecha_siembra"`
	Descripcion  *string   `json:"descripcion" db:"descripcion"`
	Estado       string    `json:"estado" db:"estado"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Usuario representa un usuario responsable de producciones o registros de uso
type Usuario struct {
	ID        int       `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	Email     string    `json:"email" db:"email"`
	Rol       string    `json:"rol" db:"rol"`
	Estado    string    `json:"estado" db:"estado"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
