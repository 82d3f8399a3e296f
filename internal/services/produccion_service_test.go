package services

import (
	"context"
	"testing"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProduccionService() (ProduccionService, *fakeProduccionRepo, *fakeInsumoRepo) {
	produccionRepo := newFakeProduccionRepo()

	cicloRepo := newFakeCicloRepo()
	cicloRepo.ciclos[1] = &models.CicloCultivo{ID: 1, IDCultivo: 1, Nombre: "Ciclo maíz 2026", Estado: models.CicloEnProgreso}

	cultivoRepo := newFakeCultivoRepo(&models.Cultivo{ID: 1, Nombre: "Maíz", Estado: "activo"})

	insumoRepo := newFakeInsumoRepo(
		&models.Insumo{ID: 1, Nombre: "Fertilizante NPK", Cantidad: 25, ValorUnitario: 15.50, Estado: "activo"},
		&models.Insumo{ID: 2, Nombre: "Semilla certificada", Cantidad: 10, ValorUnitario: 22.75, Estado: "activo"},
		&models.Insumo{ID: 3, Nombre: "Herbicida", Cantidad: 5, ValorUnitario: 8.00, Estado: "activo"},
	)

	sensorRepo := newFakeSensorRepo(
		&models.Sensor{ID: 1, Nombre: "Humedad suelo", Estado: "activo"},
		&models.Sensor{ID: 2, Nombre: "Temperatura", Estado: "activo"},
		&models.Sensor{ID: 3, Nombre: "pH", Estado: "activo"},
		&models.Sensor{ID: 4, Nombre: "Luminosidad", Estado: "activo"},
	)

	usuarioRepo := newFakeUsuarioRepo(&models.Usuario{ID: 1, Nombre: "Ana", Estado: "activo"})

	svc := NewProduccionService(produccionRepo, cicloRepo, cultivoRepo, insumoRepo, sensorRepo, usuarioRepo, nil, zap.NewNop())
	return svc, produccionRepo, insumoRepo
}

func requestValido() *models.CrearProduccionRequest {
	return &models.CrearProduccionRequest{
		Nombre:        "Producción maíz lote norte",
		IDResponsable: 1,
		IDCultivo:     1,
		IDCiclo:       1,
		Sensores:      []int{1, 2},
		Insumos:       []int{1, 2},
		FechaInicio:   "2026-03-01",
	}
}

func TestCrearProduccionCalculaInversionYMeta(t *testing.T) {
	svc, _, _ := setupProduccionService()

	produccion, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	// 25 × 15.50 + 10 × 22.75 = 615.00
	assert.InDelta(t, 615.00, produccion.Inversion, 0.001)
	assert.InDelta(t, 922.50, produccion.Meta, 0.001)
	assert.Equal(t, models.ProduccionActiva, produccion.Estado)
	assert.NotZero(t, produccion.ID)
}

func TestCrearProduccionRechazaCuartoSensor(t *testing.T) {
	svc, repo, _ := setupProduccionService()

	req := requestValido()
	req.Sensores = []int{1, 2, 3, 4}

	_, err := svc.CrearProduccion(context.Background(), req)
	require.Error(t, err)

	kind, ok := apperrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindResourceLimit, kind)

	// Nada se persiste: el conjunto no se trunca a tres
	assert.Empty(t, repo.producciones)
}

func TestCrearProduccionPermiteTresSensores(t *testing.T) {
	svc, _, _ := setupProduccionService()

	req := requestValido()
	req.Sensores = []int{1, 2, 3}

	produccion, err := svc.CrearProduccion(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, produccion.Sensores, 3)
}

func TestCrearProduccionRequiereInsumos(t *testing.T) {
	svc, _, _ := setupProduccionService()

	req := requestValido()
	req.Insumos = nil

	_, err := svc.CrearProduccion(context.Background(), req)
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)
	assert.Contains(t, apperrors.CamposDe(err), "insumos")
}

func TestCrearProduccionRechazaSensorDuplicado(t *testing.T) {
	svc, _, _ := setupProduccionService()

	req := requestValido()
	req.Sensores = []int{1, 1}

	_, err := svc.CrearProduccion(context.Background(), req)
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)
}

func TestCrearProduccionRechazaFechasDesordenadas(t *testing.T) {
	svc, _, _ := setupProduccionService()

	fin := "2026-01-15"
	req := requestValido()
	req.FechaInicio = "2026-03-01"
	req.FechaFin = &fin

	_, err := svc.CrearProduccion(context.Background(), req)
	require.Error(t, err)

	campos := apperrors.CamposDe(err)
	assert.Contains(t, campos, "fecha_inicio")
	assert.Contains(t, campos, "fecha_fin")
}

func TestCrearProduccionReferenciasInvalidas(t *testing.T) {
	svc, repo, _ := setupProduccionService()

	req := requestValido()
	req.IDCiclo = 99
	req.Insumos = []int{1, 77}

	_, err := svc.CrearProduccion(context.Background(), req)
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)

	campos := apperrors.CamposDe(err)
	assert.Contains(t, campos, "id_ciclo_cultivo")
	assert.Contains(t, campos, "insumos[77]")

	assert.Empty(t, repo.producciones)
}

func TestActualizarProduccionRecalculaInversion(t *testing.T) {
	svc, _, _ := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	// Quitar el insumo 2 y agregar el 3: 25×15.50 + 5×8.00 = 427.50
	req := &models.ActualizarProduccionRequest{
		Nombre:        creada.Nombre,
		IDResponsable: 1,
		IDCultivo:     1,
		IDCiclo:       1,
		Sensores:      []int{1},
		Insumos:       []int{1, 3},
		FechaInicio:   "2026-03-01",
	}

	actualizada, err := svc.ActualizarProduccion(context.Background(), creada.ID, req)
	require.NoError(t, err)

	assert.InDelta(t, 427.50, actualizada.Inversion, 0.001)
	assert.InDelta(t, 641.25, actualizada.Meta, 0.001)
}

func TestRegistrarUsoInsumoAcumulaLedger(t *testing.T) {
	svc, _, insumoRepo := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	_, err = svc.RegistrarUsoInsumo(context.Background(), &models.RegistrarUsoInsumoRequest{
		IDProduccion:  creada.ID,
		IDInsumo:      1,
		Cantidad:      4,
		ValorUnitario: 15.50,
		IDResponsable: 1,
	})
	require.NoError(t, err)

	// El precio del catálogo cambia después del primer registro: las líneas
	// ya asentadas no se recalculan
	insumoRepo.insumos[1].ValorUnitario = 99.99

	uso2, err := svc.RegistrarUsoInsumo(context.Background(), &models.RegistrarUsoInsumoRequest{
		IDProduccion:  creada.ID,
		IDInsumo:      1,
		Cantidad:      2,
		ValorUnitario: 16.00,
		IDResponsable: 1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 32.00, uso2.ValorTotal, 0.001)

	usos, total, err := svc.GetUsoInsumos(context.Background(), creada.ID)
	require.NoError(t, err)
	assert.Len(t, usos, 2)

	// 4×15.50 + 2×16.00 = 94.00
	assert.InDelta(t, 94.00, total, 0.001)
}

func TestRegistrarUsoInsumoRechazaNegativos(t *testing.T) {
	svc, repo, _ := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	casos := []struct {
		nombre   string
		cantidad float64
		valor    float64
		campo    string
	}{
		{"cantidad negativa", -1, 10, "cantidad"},
		{"valor unitario negativo", 1, -10, "valor_unitario"},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := svc.RegistrarUsoInsumo(context.Background(), &models.RegistrarUsoInsumoRequest{
				IDProduccion:  creada.ID,
				IDInsumo:      1,
				Cantidad:      tc.cantidad,
				ValorUnitario: tc.valor,
				IDResponsable: 1,
			})
			require.Error(t, err)

			kind, _ := apperrors.KindOf(err)
			assert.Equal(t, apperrors.KindNegativeValue, kind)
			assert.Contains(t, apperrors.CamposDe(err), tc.campo)
		})
	}

	// El ledger queda intacto
	assert.Empty(t, repo.usos)
}

func TestRegistrarUsoInsumoProduccionInexistente(t *testing.T) {
	svc, _, _ := setupProduccionService()

	_, err := svc.RegistrarUsoInsumo(context.Background(), &models.RegistrarUsoInsumoRequest{
		IDProduccion:  42,
		IDInsumo:      1,
		Cantidad:      1,
		ValorUnitario: 1,
		IDResponsable: 1,
	})
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindNotFound, kind)
}

func TestCambiarEstadoProduccionIdempotente(t *testing.T) {
	svc, repo, _ := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	require.NoError(t, svc.CambiarEstado(context.Background(), creada.ID, models.ProduccionInactiva))
	require.NoError(t, svc.CambiarEstado(context.Background(), creada.ID, models.ProduccionInactiva))

	assert.Equal(t, models.ProduccionInactiva, repo.producciones[creada.ID].Estado)
}

func TestCambiarEstadoProduccionInvalido(t *testing.T) {
	svc, _, _ := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	err = svc.CambiarEstado(context.Background(), creada.ID, "pausado")
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)
}

func TestGetProduccionNoEncontrada(t *testing.T) {
	svc, _, _ := setupProduccionService()

	_, err := svc.GetProduccion(context.Background(), 999)
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindNotFound, kind)
}

func TestEliminarProduccionBorraLedger(t *testing.T) {
	svc, repo, _ := setupProduccionService()

	creada, err := svc.CrearProduccion(context.Background(), requestValido())
	require.NoError(t, err)

	_, err = svc.RegistrarUsoInsumo(context.Background(), &models.RegistrarUsoInsumoRequest{
		IDProduccion:  creada.ID,
		IDInsumo:      1,
		Cantidad:      1,
		ValorUnitario: 10,
		IDResponsable: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.EliminarProduccion(context.Background(), creada.ID))

	assert.Empty(t, repo.producciones)
	assert.Empty(t, repo.usos)
}
