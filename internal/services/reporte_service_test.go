package services

import (
	"context"
	"testing"
	"time"

	"agro-service/internal/apperrors"
	"agro-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fecha(valor string) time.Time {
	t, _ := time.Parse("2006-01-02", valor)
	return t
}

func setupReporteService() (ReporteService, *fakeProduccionRepo, *fakeCicloRepo) {
	produccionRepo := newFakeProduccionRepo()
	cicloRepo := newFakeCicloRepo()
	svc := NewReporteService(produccionRepo, cicloRepo, zap.NewNop())
	return svc, produccionRepo, cicloRepo
}

func sembrarProduccion(repo *fakeProduccionRepo, inicio string, inversion float64, estado string) {
	repo.producciones[repo.nextID] = &models.Produccion{
		ID:          repo.nextID,
		Nombre:      "Producción " + inicio,
		FechaInicio: fecha(inicio),
		Inversion:   inversion,
		Estado:      estado,
	}
	repo.nextID++
}

func TestResumenMensualDoceCubetas(t *testing.T) {
	svc, repo, _ := setupReporteService()

	sembrarProduccion(repo, "2026-02-10", 100, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-02-20", 50, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-02-25", 25, models.ProduccionInactiva)
	sembrarProduccion(repo, "2026-09-01", 200, models.ProduccionActiva)

	resumen, err := svc.ResumenMensual(context.Background(), 2026)
	require.NoError(t, err)

	// Siempre doce meses, incluso los vacíos
	require.Len(t, resumen.Meses, 12)
	assert.Equal(t, "enero", resumen.Meses[0].Nombre)
	assert.Equal(t, "diciembre", resumen.Meses[11].Nombre)

	// Las producciones inactivas también cuentan en el año que iniciaron
	assert.Equal(t, 3, resumen.Meses[1].Producciones)
	assert.InDelta(t, 175, resumen.Meses[1].Inversion, 0.001)

	assert.Equal(t, 1, resumen.Meses[8].Producciones)
	assert.InDelta(t, 200, resumen.Meses[8].Inversion, 0.001)

	assert.Equal(t, 0, resumen.Meses[0].Producciones)
	assert.InDelta(t, 0, resumen.Meses[0].Inversion, 0.001)

	// Los totales cierran contra las cubetas
	assert.Equal(t, 4, resumen.TotalProducciones)
	assert.InDelta(t, 375, resumen.TotalInversion, 0.001)

	sumaMeses := 0.0
	for _, mes := range resumen.Meses {
		sumaMeses += mes.Inversion
	}
	assert.InDelta(t, resumen.TotalInversion, sumaMeses, 0.001)
}

func TestGetPorRangoRequiereAmbosExtremos(t *testing.T) {
	svc, _, _ := setupReporteService()

	casos := []struct {
		nombre string
		desde  string
		hasta  string
		campo  string
	}{
		{"falta inicio", "", "2026-12-31", "startDate"},
		{"falta fin", "2026-01-01", "", "endDate"},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := svc.GetPorRango(context.Background(), tc.desde, tc.hasta)
			require.Error(t, err)

			kind, _ := apperrors.KindOf(err)
			assert.Equal(t, apperrors.KindValidation, kind)
			assert.Contains(t, apperrors.CamposDe(err), tc.campo)
		})
	}
}

func TestGetPorRangoInclusivo(t *testing.T) {
	svc, repo, _ := setupReporteService()

	sembrarProduccion(repo, "2026-03-01", 10, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-03-31", 20, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-04-01", 30, models.ProduccionActiva)

	producciones, err := svc.GetPorRango(context.Background(), "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	// Ambos extremos entran, el día siguiente no
	assert.Len(t, producciones, 2)
}

func TestGetPorRangoExcluyeInactivas(t *testing.T) {
	svc, repo, _ := setupReporteService()

	sembrarProduccion(repo, "2026-05-10", 10, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-05-11", 20, models.ProduccionInactiva)

	producciones, err := svc.GetPorRango(context.Background(), "2026-05-01", "2026-05-31")
	require.NoError(t, err)
	assert.Len(t, producciones, 1)
}

func TestGetPorRangoVacioEsExito(t *testing.T) {
	svc, _, _ := setupReporteService()

	producciones, err := svc.GetPorRango(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Empty(t, producciones)
}

func TestGetPorRangoFechasInvertidas(t *testing.T) {
	svc, _, _ := setupReporteService()

	_, err := svc.GetPorRango(context.Background(), "2026-12-31", "2026-01-01")
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)
}

func TestResumenDashboard(t *testing.T) {
	svc, repo, cicloRepo := setupReporteService()

	sembrarProduccion(repo, "2026-01-10", 100, models.ProduccionActiva)
	sembrarProduccion(repo, "2026-02-10", 50, models.ProduccionInactiva)

	cicloRepo.ciclos[1] = &models.CicloCultivo{ID: 1, Estado: models.CicloEnProgreso}
	cicloRepo.ciclos[2] = &models.CicloCultivo{ID: 2, Estado: models.CicloEnProgreso}
	cicloRepo.ciclos[3] = &models.CicloCultivo{ID: 3, Estado: models.CicloCompletado}

	resumen, err := svc.ResumenDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resumen.ProduccionesActivas)
	assert.InDelta(t, 100, resumen.InversionTotal, 0.001)

	assert.Equal(t, 2, resumen.CiclosPorEstado[models.CicloEnProgreso])
	assert.Equal(t, 1, resumen.CiclosPorEstado[models.CicloCompletado])
	// Los estados sin ciclos aparecen en cero
	assert.Equal(t, 0, resumen.CiclosPorEstado[models.CicloPlanificado])
	assert.Equal(t, 0, resumen.CiclosPorEstado[models.CicloCancelado])
}
