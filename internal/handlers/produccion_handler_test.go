package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProduccionService responde con valores fijos para probar el mapeo HTTP
type fakeProduccionService struct {
	produccion *models.Produccion
	usos       []*models.UsoInsumo
	total      float64
	err        error
}

func (f *fakeProduccionService) CrearProduccion(ctx context.Context, req *models.CrearProduccionRequest) (*models.Produccion, error) {
	return f.produccion, f.err
}

func (f *fakeProduccionService) ActualizarProduccion(ctx context.Context, id int, req *models.ActualizarProduccionRequest) (*models.Produccion, error) {
	return f.produccion, f.err
}

func (f *fakeProduccionService) EliminarProduccion(ctx context.Context, id int) error {
	return f.err
}

func (f *fakeProduccionService) CambiarEstado(ctx context.Context, id int, estado string) error {
	return f.err
}

func (f *fakeProduccionService) GetProducciones(ctx context.Context) ([]*models.Produccion, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.produccion == nil {
		return nil, nil
	}
	return []*models.Produccion{f.produccion}, nil
}

func (f *fakeProduccionService) GetProduccion(ctx context.Context, id int) (*models.Produccion, error) {
	return f.produccion, f.err
}

func (f *fakeProduccionService) GetProduccionesByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Produccion{f.produccion}, nil
}

func (f *fakeProduccionService) RegistrarUsoInsumo(ctx context.Context, req *models.RegistrarUsoInsumoRequest) (*models.UsoInsumo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UsoInsumo{
		IDProduccion:  req.IDProduccion,
		IDInsumo:      req.IDInsumo,
		Cantidad:      req.Cantidad,
		ValorUnitario: req.ValorUnitario,
		ValorTotal:    req.Cantidad * req.ValorUnitario,
	}, nil
}

func (f *fakeProduccionService) GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, float64, error) {
	return f.usos, f.total, f.err
}

func setupRouter(svc *fakeProduccionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProduccionHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/api/producciones", handler.CrearProduccion)
	router.GET("/api/producciones", handler.GetProducciones)
	router.GET("/api/producciones/:id", handler.GetProduccion)
	router.PATCH("/api/producciones/:id/estado", handler.CambiarEstado)
	router.POST("/api/producciones/uso-insumo", handler.RegistrarUsoInsumo)
	router.POST("/api/producciones/:id/uso-insumo", handler.RegistrarUsoInsumo)
	router.GET("/api/producciones/:id/uso-insumo", handler.GetUsoInsumos)
	return router
}

func bodyProduccionValida() []byte {
	body, _ := json.Marshal(gin.H{
		"nombre":           "Producción maíz lote norte",
		"id_responsable":   1,
		"id_cultivo":       1,
		"id_ciclo_cultivo": 1,
		"sensores":         []int{1, 2},
		"insumos":          []int{1},
		"fecha_inicio":     "2026-03-01",
	})
	return body
}

func TestCrearProduccionResponde201(t *testing.T) {
	svc := &fakeProduccionService{
		produccion: &models.Produccion{ID: 1, Nombre: "Producción maíz lote norte", Inversion: 615, Meta: 922.5},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/producciones", bytes.NewReader(bodyProduccionValida()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotNil(t, resp["data"])
}

func TestCrearProduccionBodyInvalidoResponde400(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/producciones", bytes.NewReader([]byte(`{"nombre": 42`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrearProduccionSinInsumosResponde400(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	body, _ := json.Marshal(gin.H{
		"nombre":           "Producción sin insumos",
		"id_responsable":   1,
		"id_cultivo":       1,
		"id_ciclo_cultivo": 1,
		"sensores":         []int{1},
		"insumos":          []int{},
		"fecha_inicio":     "2026-03-01",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/producciones", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErroresDeServicioSeMapeanAlStatus(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
	}{
		{"validación", apperrors.Validation("datos inválidos", "nombre"), http.StatusBadRequest},
		{"límite de sensores", apperrors.ResourceLimit("tope de sensores"), http.StatusBadRequest},
		{"no encontrada", apperrors.NotFound("producción", 9), http.StatusNotFound},
		{"persistencia", apperrors.Store(assert.AnError), http.StatusInternalServerError},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			router := setupRouter(&fakeProduccionService{err: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/producciones", bytes.NewReader(bodyProduccionValida()))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestGetProduccionesIncluyeCount(t *testing.T) {
	svc := &fakeProduccionService{
		produccion: &models.Produccion{ID: 1, Nombre: "Producción maíz lote norte"},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/producciones", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])
}

func TestGetProduccionesVaciasSerializaListaVacia(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/producciones", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// data debe ser [] y no null cuando no hay producciones
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestGetProduccionIDNoNumericoResponde400(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/producciones/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrarUsoInsumoUsaIDDeLaRuta(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	body, _ := json.Marshal(gin.H{
		"id_produccion":  999,
		"id_insumo":      1,
		"cantidad":       2.5,
		"valor_unitario": 10.0,
		"id_responsable": 1,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/producciones/7/uso-insumo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.UsoInsumo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Data.IDProduccion)
	assert.InDelta(t, 25.0, resp.Data.ValorTotal, 0.001)
}

func TestRegistrarUsoInsumoRutaPlanaUsaIDDelBody(t *testing.T) {
	router := setupRouter(&fakeProduccionService{})

	body, _ := json.Marshal(gin.H{
		"id_produccion":  7,
		"id_insumo":      1,
		"cantidad":       2.5,
		"valor_unitario": 10.0,
		"id_responsable": 1,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/producciones/uso-insumo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.UsoInsumo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Data.IDProduccion)
}

func TestGetUsoInsumosIncluyeTotal(t *testing.T) {
	svc := &fakeProduccionService{
		usos: []*models.UsoInsumo{
			{ID: 1, IDProduccion: 7, ValorTotal: 62.0},
			{ID: 2, IDProduccion: 7, ValorTotal: 32.0},
		},
		total: 94.0,
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/producciones/7/uso-insumo", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
		Data  struct {
			TotalInvertido float64 `json:"total_invertido"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.InDelta(t, 94.0, resp.Data.TotalInvertido, 0.001)
}
