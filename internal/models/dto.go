package models

// ===== REQUEST DTOs =====

// CrearProduccionRequest DTO para crear una producción
type CrearProduccionRequest struct {
	Nombre        string  `json:"nombre" validate:"required,min=3,max=100"`
	IDResponsable int     `json:"id_responsable" validate:"required,gt=0"`
	IDCultivo     int     `json:"id_cultivo" validate:"required,gt=0"`
	IDCiclo       int     `json:"id_ciclo_cultivo" validate:"required,gt=0"`
	Sensores      []int   `json:"sensores" validate:"required,min=1"`
	Insumos       []int   `json:"insumos" validate:"required,min=1"`
	FechaInicio   string  `json:"fecha_inicio" validate:"required"`
	FechaFin      *string `json:"fecha_fin"`
}

// ActualizarProduccionRequest DTO para actualizar una producción
type ActualizarProduccionRequest struct {
	Nombre        string  `json:"nombre" validate:"required,min=3,max=100"`
	IDResponsable int     `json:"id_responsable" validate:"required,gt=0"`
	IDCultivo     int     `json:"id_cultivo" validate:"required,gt=0"`
	IDCiclo       int     `json:"id_ciclo_cultivo" validate:"required,gt=0"`
	Sensores      []int   `json:"sensores" validate:"required,min=1"`
	Insumos       []int   `json:"insumos" validate:"required,min=1"`
	FechaInicio   string  `json:"fecha_inicio" validate:"required"`
	FechaFin      *string `json:"fecha_fin"`
}

// RegistrarUsoInsumoRequest DTO para registrar consumo de insumo en el ledger
type RegistrarUsoInsumoRequest struct {
	IDProduccion  int     `json:"id_produccion" validate:"required,gt=0"`
	IDInsumo      int     `json:"id_insumo" validate:"required,gt=0"`
	Cantidad      float64 `json:"cantidad"`
	ValorUnitario float64 `json:"valor_unitario"`
	FechaUso      *string `json:"fecha_uso"`
	IDResponsable int     `json:"id_responsable" validate:"required,gt=0"`
	Observaciones string  `json:"observaciones"`
}

// CambiarEstadoRequest DTO para el PATCH de estado
type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// CrearCicloRequest DTO para crear un ciclo de cultivo
type CrearCicloRequest struct {
	IDCultivo           int      `json:"id_cultivo" validate:"required,gt=0"`
	Nombre              string   `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion         *string  `json:"descripcion"`
	FechaInicial        string   `json:"fecha_inicial" validate:"required"`
	FechaFinal          string   `json:"fecha_final" validate:"required"`
	RendimientoEstimado *float64 `json:"rendimiento_estimado"`
	Novedades           string   `json:"novedades"`
}

// ActualizarCicloRequest DTO para actualizar un ciclo de cultivo
type ActualizarCicloRequest struct {
	IDCultivo           int      `json:"id_cultivo" validate:"required,gt=0"`
	Nombre              string   `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion         *string  `json:"descripcion"`
	FechaInicial        string   `json:"fecha_inicial" validate:"required"`
	FechaFinal          string   `json:"fecha_final" validate:"required"`
	FechaFinalReal      *string  `json:"fecha_final_real"`
	RendimientoEstimado *float64 `json:"rendimiento_estimado"`
	RendimientoReal     *float64 `json:"rendimiento_real"`
	Novedades           string   `json:"novedades"`
}

// CrearCultivoRequest DTO para crear un cultivo
type CrearCultivoRequest struct {
	Nombre       string  `json:"nombre" validate:"required"`
	Tipo         string  `json:"tipo" validate:"required"`
	Area         float64 `json:"area" validate:"gte=0"`
	FechaSiembra string  `json:"fecha_siembra" validate:"required"`
	Descripcion  *string `json:"descripcion"`
}

// CrearInsumoRequest DTO para crear un insumo
type CrearInsumoRequest struct {
	Nombre        string  `json:"nombre" validate:"required"`
	Tipo          string  `json:"tipo" validate:"required"`
	UnidadMedida  string  `json:"unidad_medida" validate:"required"`
	Cantidad      float64 `json:"cantidad" validate:"gte=0"`
	ValorUnitario float64 `json:"valor_unitario" validate:"gte=0"`
	Descripcion   *string `json:"descripcion"`
}

// CrearSensorRequest DTO para crear un sensor
type CrearSensorRequest struct {
	Nombre        string  `json:"nombre" validate:"required"`
	Tipo          string  `json:"tipo" validate:"required"`
	UnidadMedida  string  `json:"unidad_medida" validate:"required"`
	TiempoEscaneo int     `json:"tiempo_escaneo" validate:"required,gt=0"`
	Descripcion   *string `json:"descripcion"`
}

// CrearUsuarioRequest DTO para crear un usuario
type CrearUsuarioRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Rol    string `json:"rol" validate:"required"`
}
