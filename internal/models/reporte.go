package models

// ResumenMes agrega producciones e inversión de un mes calendario.
// Los doce meses se reportan siempre, con ceros si no hubo producciones.
type ResumenMes struct {
	Mes          int     `json:"mes"`
	Nombre       string  `json:"nombre"`
	Producciones int     `json:"producciones"`
	Inversion    float64 `json:"inversion"`
}

// ResumenMensual rollup anual en doce cubetas fijas (enero a diciembre)
type ResumenMensual struct {
	Anio              int          `json:"anio"`
	Meses             []ResumenMes `json:"meses"`
	TotalProducciones int          `json:"total_producciones"`
	TotalInversion    float64      `json:"total_inversion"`
}

// ResumenDashboard totales para el tablero principal
type ResumenDashboard struct {
	ProduccionesActivas int            `json:"producciones_activas"`
	InversionTotal      float64        `json:"inversion_total"`
	CiclosPorEstado     map[string]int `json:"ciclos_por_estado"`
}
