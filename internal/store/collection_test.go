package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore es un json-server mínimo para la colección /vehiculos.
type fakeStore struct {
	vehicles []entities.Vehicle
	nextID   int
	failAll  bool
}

func (f *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")

		id := strings.TrimPrefix(r.URL.Path, "/vehiculos/")
		hasID := id != r.URL.Path && id != ""

		switch {
		case r.Method == http.MethodGet && !hasID:
			json.NewEncoder(w).Encode(f.vehicles)
		case r.Method == http.MethodGet:
			for _, v := range f.vehicles {
				if v.ID.String() == id {
					json.NewEncoder(w).Encode(v)
					return
				}
			}
			http.NotFound(w, r)
		case r.Method == http.MethodPost:
			var v entities.Vehicle
			json.NewDecoder(r.Body).Decode(&v)
			f.nextID++
			v.ID = entities.ID(strconv.Itoa(100 + f.nextID))
			f.vehicles = append(f.vehicles, v)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(v)
		case r.Method == http.MethodPut:
			var v entities.Vehicle
			json.NewDecoder(r.Body).Decode(&v)
			v.ID = entities.ID(id)
			for i := range f.vehicles {
				if f.vehicles[i].ID.String() == id {
					f.vehicles[i] = v
				}
			}
			json.NewEncoder(w).Encode(v)
		case r.Method == http.MethodDelete:
			kept := f.vehicles[:0]
			for _, v := range f.vehicles {
				if v.ID.String() != id {
					kept = append(kept, v)
				}
			}
			f.vehicles = kept
			json.NewEncoder(w).Encode(map[string]any{})
		default:
			http.Error(w, "unexpected", http.StatusMethodNotAllowed)
		}
	})
}

func newTestVehicleClient(t *testing.T, fake *fakeStore) *VehicleClient {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewVehicleClient(srv.URL, log)
}

func TestListReplacesCache(t *testing.T) {
	fake := &fakeStore{vehicles: []entities.Vehicle{
		{ID: "1", Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 10000},
		{ID: "2", Brand: "Honda", Model: "Civic", Year: 2022, Price: 20000},
	}}
	client := newTestVehicleClient(t, fake)

	vehicles, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
	assert.Len(t, client.Cached(), 2)

	fake.vehicles = fake.vehicles[:1]
	_, err = client.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, client.Cached(), 1)
}

func TestCreateAppendsServerEntity(t *testing.T) {
	fake := &fakeStore{}
	client := newTestVehicleClient(t, fake)

	_, err := client.List(context.Background())
	require.NoError(t, err)
	before := len(client.Cached())

	created, err := client.Create(context.Background(), entities.Vehicle{Brand: "Toyota", Model: "Hilux", Year: 2023, Price: 30000})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.ID.IsZero(), "el store asigna el id")

	cached := client.Cached()
	assert.Len(t, cached, before+1)
	assert.Equal(t, created.ID, cached[len(cached)-1].ID)
}

func TestUpdateReplacesCachedEntry(t *testing.T) {
	fake := &fakeStore{vehicles: []entities.Vehicle{
		{ID: "1", Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 10000},
	}}
	client := newTestVehicleClient(t, fake)
	_, err := client.List(context.Background())
	require.NoError(t, err)

	updated, err := client.Update(context.Background(), "1", entities.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2021, Price: 12000})
	require.NoError(t, err)
	assert.Equal(t, 2021, updated.Year)

	cached := client.Cached()
	require.Len(t, cached, 1)
	assert.Equal(t, 2021, cached[0].Year)
	assert.Equal(t, 12000.0, cached[0].Price)
}

func TestDeleteRemovesFromCache(t *testing.T) {
	fake := &fakeStore{vehicles: []entities.Vehicle{
		{ID: "1", Brand: "Toyota"},
		{ID: "2", Brand: "Honda"},
	}}
	client := newTestVehicleClient(t, fake)
	_, err := client.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, client.Delete(context.Background(), "1"))
	for _, v := range client.Cached() {
		assert.NotEqual(t, entities.ID("1"), v.ID)
	}
	assert.Len(t, client.Cached(), 1)
}

func TestFailureLeavesCacheAndSetsError(t *testing.T) {
	fake := &fakeStore{vehicles: []entities.Vehicle{{ID: "1", Brand: "Toyota"}}}
	client := newTestVehicleClient(t, fake)
	_, err := client.List(context.Background())
	require.NoError(t, err)

	fake.failAll = true
	_, err = client.Create(context.Background(), entities.Vehicle{Brand: "Honda"})
	require.Error(t, err)
	assert.Len(t, client.Cached(), 1, "la caché queda intacta ante un fallo")
	assert.Equal(t, "Error agregando vehículo", client.LastError())

	err = client.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Len(t, client.Cached(), 1)
	assert.Equal(t, "Error eliminando vehículo", client.LastError())
}

func TestGetByIDNotFoundReturnsNil(t *testing.T) {
	fake := &fakeStore{}
	client := newTestVehicleClient(t, fake)

	vehicle, err := client.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, vehicle)
}
