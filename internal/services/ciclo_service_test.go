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

func setupCicloService() (CicloService, *fakeCicloRepo) {
	cicloRepo := newFakeCicloRepo()
	cultivoRepo := newFakeCultivoRepo(&models.Cultivo{ID: 1, Nombre: "Café", Estado: "activo"})
	svc := NewCicloService(cicloRepo, cultivoRepo, zap.NewNop())
	return svc, cicloRepo
}

func crearCicloValido(t *testing.T, svc CicloService) *models.CicloCultivo {
	t.Helper()
	ciclo, err := svc.CrearCiclo(context.Background(), &models.CrearCicloRequest{
		IDCultivo:    1,
		Nombre:       "Ciclo café primer semestre",
		FechaInicial: "2026-01-15",
		FechaFinal:   "2026-06-30",
	})
	require.NoError(t, err)
	return ciclo
}

func TestCrearCicloArrancaPlanificado(t *testing.T) {
	svc, _ := setupCicloService()

	ciclo := crearCicloValido(t, svc)
	assert.Equal(t, models.CicloPlanificado, ciclo.Estado)
}

func TestCrearCicloRechazaFechasDesordenadas(t *testing.T) {
	svc, repo := setupCicloService()

	_, err := svc.CrearCiclo(context.Background(), &models.CrearCicloRequest{
		IDCultivo:    1,
		Nombre:       "Ciclo invertido",
		FechaInicial: "2026-06-30",
		FechaFinal:   "2026-01-15",
	})
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)

	campos := apperrors.CamposDe(err)
	assert.Contains(t, campos, "fecha_inicial")
	assert.Contains(t, campos, "fecha_final")

	assert.Empty(t, repo.ciclos)
}

func TestCrearCicloCultivoInexistente(t *testing.T) {
	svc, _ := setupCicloService()

	_, err := svc.CrearCiclo(context.Background(), &models.CrearCicloRequest{
		IDCultivo:    55,
		Nombre:       "Ciclo huérfano",
		FechaInicial: "2026-01-15",
		FechaFinal:   "2026-06-30",
	})
	require.Error(t, err)
	assert.Contains(t, apperrors.CamposDe(err), "id_cultivo")
}

func TestCambiarEstadoCicloTransiciones(t *testing.T) {
	casos := []struct {
		desde     string
		hacia     string
		permitida bool
	}{
		{models.CicloPlanificado, models.CicloEnProgreso, true},
		{models.CicloPlanificado, models.CicloCancelado, true},
		{models.CicloPlanificado, models.CicloCompletado, false},
		{models.CicloEnProgreso, models.CicloCompletado, true},
		{models.CicloEnProgreso, models.CicloCancelado, true},
		{models.CicloEnProgreso, models.CicloPlanificado, false},
		{models.CicloCompletado, models.CicloEnProgreso, false},
		{models.CicloCompletado, models.CicloCancelado, false},
		{models.CicloCancelado, models.CicloPlanificado, false},
		{models.CicloCancelado, models.CicloEnProgreso, false},
	}

	for _, tc := range casos {
		t.Run(tc.desde+"_a_"+tc.hacia, func(t *testing.T) {
			svc, repo := setupCicloService()
			ciclo := crearCicloValido(t, svc)
			repo.ciclos[ciclo.ID].Estado = tc.desde

			err := svc.CambiarEstado(context.Background(), ciclo.ID, tc.hacia)
			if tc.permitida {
				require.NoError(t, err)
				assert.Equal(t, tc.hacia, repo.ciclos[ciclo.ID].Estado)
			} else {
				require.Error(t, err)
				kind, _ := apperrors.KindOf(err)
				assert.Equal(t, apperrors.KindValidation, kind)
				// El estado no cambia en transiciones rechazadas
				assert.Equal(t, tc.desde, repo.ciclos[ciclo.ID].Estado)
			}
		})
	}
}

func TestCambiarEstadoCicloDesconocido(t *testing.T) {
	svc, _ := setupCicloService()
	ciclo := crearCicloValido(t, svc)

	err := svc.CambiarEstado(context.Background(), ciclo.ID, "archivado")
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindValidation, kind)
}

func TestCambiarEstadoCicloInexistente(t *testing.T) {
	svc, _ := setupCicloService()

	err := svc.CambiarEstado(context.Background(), 404, models.CicloEnProgreso)
	require.Error(t, err)

	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindNotFound, kind)
}

func TestActualizarCicloNoTocaEstado(t *testing.T) {
	svc, repo := setupCicloService()
	ciclo := crearCicloValido(t, svc)

	require.NoError(t, svc.CambiarEstado(context.Background(), ciclo.ID, models.CicloEnProgreso))

	rendimiento := 1200.0
	actualizado, err := svc.ActualizarCiclo(context.Background(), ciclo.ID, &models.ActualizarCicloRequest{
		IDCultivo:       1,
		Nombre:          "Ciclo café primer semestre ajustado",
		FechaInicial:    "2026-01-20",
		FechaFinal:      "2026-07-15",
		RendimientoReal: &rendimiento,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CicloEnProgreso, actualizado.Estado)
	assert.Equal(t, models.CicloEnProgreso, repo.ciclos[ciclo.ID].Estado)
}
