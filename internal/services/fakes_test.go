package services

import (
	"context"
	"time"

	"agro-service/internal/models"
)

// Fakes en memoria de los repositories para probar los services sin base de
// datos real.

type fakeProduccionRepo struct {
	producciones map[int]*models.Produccion
	usos         []*models.UsoInsumo
	nextID       int
	failWith     error
}

func newFakeProduccionRepo() *fakeProduccionRepo {
	return &fakeProduccionRepo{
		producciones: make(map[int]*models.Produccion),
		nextID:       1,
	}
}

func (f *fakeProduccionRepo) Create(ctx context.Context, produccion *models.Produccion) error {
	if f.failWith != nil {
		return f.failWith
	}
	produccion.ID = f.nextID
	f.nextID++
	copia := *produccion
	f.producciones[produccion.ID] = &copia
	return nil
}

func (f *fakeProduccionRepo) GetByID(ctx context.Context, id int) (*models.Produccion, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.producciones[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (f *fakeProduccionRepo) GetAll(ctx context.Context) ([]*models.Produccion, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []*models.Produccion
	for _, p := range f.producciones {
		copia := *p
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeProduccionRepo) Update(ctx context.Context, produccion *models.Produccion) error {
	if f.failWith != nil {
		return f.failWith
	}
	copia := *produccion
	f.producciones[produccion.ID] = &copia
	return nil
}

func (f *fakeProduccionRepo) Delete(ctx context.Context, id int) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.producciones[id]; !ok {
		return false, nil
	}
	delete(f.producciones, id)
	var restantes []*models.UsoInsumo
	for _, uso := range f.usos {
		if uso.IDProduccion != id {
			restantes = append(restantes, uso)
		}
	}
	f.usos = restantes
	return true, nil
}

func (f *fakeProduccionRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	p, ok := f.producciones[id]
	if !ok {
		return false, nil
	}
	p.Estado = estado
	return true, nil
}

func (f *fakeProduccionRepo) GetByCiclo(ctx context.Context, cicloID int) ([]*models.Produccion, error) {
	var out []*models.Produccion
	for _, p := range f.producciones {
		if p.IDCiclo == cicloID {
			copia := *p
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeProduccionRepo) GetByDateRange(ctx context.Context, desde, hasta time.Time) ([]*models.Produccion, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []*models.Produccion
	for _, p := range f.producciones {
		if p.Estado != models.ProduccionActiva {
			continue
		}
		if p.FechaInicio.Before(desde) || p.FechaInicio.After(hasta) {
			continue
		}
		copia := *p
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeProduccionRepo) GetByAnio(ctx context.Context, anio int) ([]*models.Produccion, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []*models.Produccion
	for _, p := range f.producciones {
		if p.FechaInicio.Year() != anio {
			continue
		}
		copia := *p
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeProduccionRepo) CreateUsoInsumo(ctx context.Context, uso *models.UsoInsumo) error {
	if f.failWith != nil {
		return f.failWith
	}
	uso.ID = len(f.usos) + 1
	copia := *uso
	f.usos = append(f.usos, &copia)
	return nil
}

func (f *fakeProduccionRepo) GetUsoInsumos(ctx context.Context, produccionID int) ([]*models.UsoInsumo, error) {
	var out []*models.UsoInsumo
	for _, uso := range f.usos {
		if uso.IDProduccion == produccionID {
			copia := *uso
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeProduccionRepo) GetTotalUsoInsumos(ctx context.Context, produccionID int) (float64, error) {
	total := 0.0
	for _, uso := range f.usos {
		if uso.IDProduccion == produccionID {
			total += uso.ValorTotal
		}
	}
	return total, nil
}

type fakeCicloRepo struct {
	ciclos map[int]*models.CicloCultivo
	nextID int
}

func newFakeCicloRepo() *fakeCicloRepo {
	return &fakeCicloRepo{ciclos: make(map[int]*models.CicloCultivo), nextID: 1}
}

func (f *fakeCicloRepo) Create(ctx context.Context, ciclo *models.CicloCultivo) error {
	ciclo.ID = f.nextID
	f.nextID++
	copia := *ciclo
	f.ciclos[ciclo.ID] = &copia
	return nil
}

func (f *fakeCicloRepo) GetByID(ctx context.Context, id int) (*models.CicloCultivo, error) {
	c, ok := f.ciclos[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCicloRepo) GetAll(ctx context.Context) ([]*models.CicloCultivo, error) {
	var out []*models.CicloCultivo
	for _, c := range f.ciclos {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeCicloRepo) GetByCultivo(ctx context.Context, cultivoID int) ([]*models.CicloCultivo, error) {
	var out []*models.CicloCultivo
	for _, c := range f.ciclos {
		if c.IDCultivo == cultivoID {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeCicloRepo) Update(ctx context.Context, ciclo *models.CicloCultivo) (bool, error) {
	if _, ok := f.ciclos[ciclo.ID]; !ok {
		return false, nil
	}
	copia := *ciclo
	f.ciclos[ciclo.ID] = &copia
	return true, nil
}

func (f *fakeCicloRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	c, ok := f.ciclos[id]
	if !ok {
		return false, nil
	}
	c.Estado = estado
	return true, nil
}

func (f *fakeCicloRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := f.ciclos[id]; !ok {
		return false, nil
	}
	delete(f.ciclos, id)
	return true, nil
}

type fakeCultivoRepo struct {
	cultivos map[int]*models.Cultivo
}

func newFakeCultivoRepo(cultivos ...*models.Cultivo) *fakeCultivoRepo {
	f := &fakeCultivoRepo{cultivos: make(map[int]*models.Cultivo)}
	for _, c := range cultivos {
		f.cultivos[c.ID] = c
	}
	return f
}

func (f *fakeCultivoRepo) Create(ctx context.Context, cultivo *models.Cultivo) error {
	cultivo.ID = len(f.cultivos) + 1
	f.cultivos[cultivo.ID] = cultivo
	return nil
}

func (f *fakeCultivoRepo) GetByID(ctx context.Context, id int) (*models.Cultivo, error) {
	return f.cultivos[id], nil
}

func (f *fakeCultivoRepo) GetAll(ctx context.Context) ([]*models.Cultivo, error) {
	var out []*models.Cultivo
	for _, c := range f.cultivos {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCultivoRepo) Update(ctx context.Context, cultivo *models.Cultivo) (bool, error) {
	if _, ok := f.cultivos[cultivo.ID]; !ok {
		return false, nil
	}
	f.cultivos[cultivo.ID] = cultivo
	return true, nil
}

func (f *fakeCultivoRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	c, ok := f.cultivos[id]
	if !ok {
		return false, nil
	}
	c.Estado = estado
	return true, nil
}

func (f *fakeCultivoRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := f.cultivos[id]; !ok {
		return false, nil
	}
	delete(f.cultivos, id)
	return true, nil
}

type fakeInsumoRepo struct {
	insumos map[int]*models.Insumo
}

func newFakeInsumoRepo(insumos ...*models.Insumo) *fakeInsumoRepo {
	f := &fakeInsumoRepo{insumos: make(map[int]*models.Insumo)}
	for _, i := range insumos {
		f.insumos[i.ID] = i
	}
	return f
}

func (f *fakeInsumoRepo) Create(ctx context.Context, insumo *models.Insumo) error {
	insumo.ID = len(f.insumos) + 1
	f.insumos[insumo.ID] = insumo
	return nil
}

func (f *fakeInsumoRepo) GetByID(ctx context.Context, id int) (*models.Insumo, error) {
	return f.insumos[id], nil
}

func (f *fakeInsumoRepo) GetAll(ctx context.Context) ([]*models.Insumo, error) {
	var out []*models.Insumo
	for _, i := range f.insumos {
		out = append(out, i)
	}
	return out, nil
}

func (f *fakeInsumoRepo) Update(ctx context.Context, insumo *models.Insumo) (bool, error) {
	if _, ok := f.insumos[insumo.ID]; !ok {
		return false, nil
	}
	f.insumos[insumo.ID] = insumo
	return true, nil
}

func (f *fakeInsumoRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	i, ok := f.insumos[id]
	if !ok {
		return false, nil
	}
	i.Estado = estado
	return true, nil
}

func (f *fakeInsumoRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := f.insumos[id]; !ok {
		return false, nil
	}
	delete(f.insumos, id)
	return true, nil
}

type fakeSensorRepo struct {
	sensores map[int]*models.Sensor
}

func newFakeSensorRepo(sensores ...*models.Sensor) *fakeSensorRepo {
	f := &fakeSensorRepo{sensores: make(map[int]*models.Sensor)}
	for _, s := range sensores {
		f.sensores[s.ID] = s
	}
	return f
}

func (f *fakeSensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	sensor.ID = len(f.sensores) + 1
	f.sensores[sensor.ID] = sensor
	return nil
}

func (f *fakeSensorRepo) GetByID(ctx context.Context, id int) (*models.Sensor, error) {
	return f.sensores[id], nil
}

func (f *fakeSensorRepo) GetAll(ctx context.Context) ([]*models.Sensor, error) {
	var out []*models.Sensor
	for _, s := range f.sensores {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSensorRepo) Update(ctx context.Context, sensor *models.Sensor) (bool, error) {
	if _, ok := f.sensores[sensor.ID]; !ok {
		return false, nil
	}
	f.sensores[sensor.ID] = sensor
	return true, nil
}

func (f *fakeSensorRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	s, ok := f.sensores[id]
	if !ok {
		return false, nil
	}
	s.Estado = estado
	return true, nil
}

func (f *fakeSensorRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := f.sensores[id]; !ok {
		return false, nil
	}
	delete(f.sensores, id)
	return true, nil
}

type fakeUsuarioRepo struct {
	usuarios map[int]*models.Usuario
}

func newFakeUsuarioRepo(usuarios ...*models.Usuario) *fakeUsuarioRepo {
	f := &fakeUsuarioRepo{usuarios: make(map[int]*models.Usuario)}
	for _, u := range usuarios {
		f.usuarios[u.ID] = u
	}
	return f
}

func (f *fakeUsuarioRepo) Create(ctx context.Context, usuario *models.Usuario) error {
	usuario.ID = len(f.usuarios) + 1
	f.usuarios[usuario.ID] = usuario
	return nil
}

func (f *fakeUsuarioRepo) GetByID(ctx context.Context, id int) (*models.Usuario, error) {
	return f.usuarios[id], nil
}

func (f *fakeUsuarioRepo) GetAll(ctx context.Context) ([]*models.Usuario, error) {
	var out []*models.Usuario
	for _, u := range f.usuarios {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) Update(ctx context.Context, usuario *models.Usuario) (bool, error) {
	if _, ok := f.usuarios[usuario.ID]; !ok {
		return false, nil
	}
	f.usuarios[usuario.ID] = usuario
	return true, nil
}

func (f *fakeUsuarioRepo) UpdateEstado(ctx context.Context, id int, estado string) (bool, error) {
	usuario, ok := f.usuarios[id]
	if !ok {
		return false, nil
	}
	usuario.Estado = estado
	return true, nil
}

func (f *fakeUsuarioRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := f.usuarios[id]; !ok {
		return false, nil
	}
	delete(f.usuarios, id)
	return true, nil
}
