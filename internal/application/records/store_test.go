package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-panel-api/internal/application/records"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

func newStore(t *testing.T) (*records.Store, storage.Store) {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return records.New(kv, logger.Nop()), kv
}

func remote(ids ...int) []entity.Record {
	out := make([]entity.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Record{ID: id, Origin: entity.OriginRemote, Freshness: entity.FreshnessExisting})
	}
	return out
}

// Caso 1: el id se asigna como max(ids de la vista combinada)+1, aunque haya
// huecos: con {1,2,3,7} el siguiente es 8.
func TestCreate_AsignaMaxMasUno(t *testing.T) {
	s, _ := newStore(t)

	rec := s.Create(records.Fields{Name: "Ana"}, remote(1, 2, 3, 7))
	assert.Equal(t, 8, rec.ID)
	assert.Equal(t, entity.OriginLocal, rec.Origin)
	assert.Equal(t, entity.FreshnessNew, rec.Freshness)
}

// Caso 1b: vista combinada vacía → primer id 1.
func TestCreate_VistaVacia(t *testing.T) {
	s, _ := newStore(t)
	rec := s.Create(records.Fields{Name: "Ana"}, nil)
	assert.Equal(t, 1, rec.ID)
}

// Caso 2: borrar un registro no hace que su id se reuse mientras existan ids
// mayores: el máximo se calcula sobre la vista combinada al crear.
func TestCreate_NoReusaIdsBorrados(t *testing.T) {
	s, _ := newStore(t)
	rm := remote(1, 2, 3)

	a := s.Create(records.Fields{Name: "A"}, append(rm, s.List()...))
	require.Equal(t, 4, a.ID)
	b := s.Create(records.Fields{Name: "B"}, append(rm, s.List()...))
	require.Equal(t, 5, b.ID)

	require.True(t, s.Delete(a.ID))

	c := s.Create(records.Fields{Name: "C"}, append(rm, s.List()...))
	assert.Equal(t, 6, c.ID, "el hueco del 4 no se rellena")
}

// Caso 3: creación antepone (orden más-reciente-primero).
func TestCreate_MasRecientePrimero(t *testing.T) {
	s, _ := newStore(t)
	s.Create(records.Fields{Name: "Primero"}, nil)
	s.Create(records.Fields{Name: "Segundo"}, s.List())

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "Segundo", got[0].Name)
	assert.Equal(t, "Primero", got[1].Name)
}

// Caso 4: Update solo toca registros locales y hace merge superficial.
func TestUpdate_SoloLocalesYMergeSuperficial(t *testing.T) {
	s, _ := newStore(t)
	rec := s.Create(records.Fields{Name: "Ana", Email: "ana@x.com", Phone: "1"}, nil)

	ok := s.Update(rec.ID, records.Fields{Phone: "555"})
	require.True(t, ok)
	got := s.List()[0]
	assert.Equal(t, "555", got.Phone)
	assert.Equal(t, "Ana", got.Name, "campos no enviados se conservan")

	// Un id remoto jamás está en la colección local → no-op.
	assert.False(t, s.Update(999, records.Fields{Name: "Hack"}))
}

// Caso 5: Delete elimina si existe y es no-op si no; nunca afecta remotos.
func TestDelete_NoOpSiAusente(t *testing.T) {
	s, _ := newStore(t)
	rec := s.Create(records.Fields{Name: "Ana"}, remote(1, 2))

	assert.True(t, s.Delete(rec.ID))
	assert.False(t, s.Delete(rec.ID), "segundo borrado es no-op")
	assert.False(t, s.Delete(1), "id remoto no está en la colección local")
	assert.Empty(t, s.List())
}

// Caso 6: round-trip por storage reproduce la secuencia idéntica y ordenada.
func TestPersistencia_RoundTripConservaOrden(t *testing.T) {
	s, kv := newStore(t)
	s.Create(records.Fields{Name: "Uno", Email: "u@x.com"}, nil)
	s.Create(records.Fields{Name: "Dos", Email: "d@x.com"}, s.List())
	s.Create(records.Fields{Name: "Tres", Email: "t@x.com"}, s.List())

	reloaded := records.New(kv, logger.Nop())
	assert.Equal(t, s.List(), reloaded.List())
	assert.Equal(t, "Tres", reloaded.List()[0].Name)
}

// Caso 7: storage corrupto → colección vacía, sin pánico ni error.
func TestPersistencia_CorruptoArrancaVacio(t *testing.T) {
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, kv.Put(storage.KeyLocalUsers, []byte(`[{"id": "rota"`)))

	s := records.New(kv, logger.Nop())
	assert.Empty(t, s.List())

	// Y sigue siendo usable después de la recuperación.
	rec := s.Create(records.Fields{Name: "Ana"}, nil)
	assert.Equal(t, 1, rec.ID)
}
