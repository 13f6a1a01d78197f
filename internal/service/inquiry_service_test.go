package service

import (
	"context"
	"testing"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInquiryService(t *testing.T, backend *fakeBackend) *InquiryService {
	t.Helper()
	log := quietLog()
	url := backend.serve(t)
	inquiries := store.NewInquiryClient(url, log)
	vehicles := store.NewVehicleClient(url, log)
	notify := NewNotifyService(NotifyConfig{}, log)
	return NewInquiryService(inquiries, vehicles, notify, log)
}

func TestInquiryCreateStampsDateAndStatus(t *testing.T) {
	backend := &fakeBackend{}
	svc := newInquiryService(t, backend)

	created, err := svc.Create(context.Background(), entities.Inquiry{
		Name:    "Ana",
		Email:   "a@a.com",
		Phone:   "1155550000",
		Message: "Quisiera más información",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.InquiryPending, created.Status)
	assert.NotEmpty(t, created.Date)
	assert.False(t, created.ID.IsZero())
}

func TestInquiryListResolvesVehicles(t *testing.T) {
	backend := &fakeBackend{
		vehicles: []entities.Vehicle{
			{ID: "10", Brand: "Toyota", Model: "Corolla", Year: 2020},
		},
		inquiries: []entities.Inquiry{
			{ID: "1", Name: "Ana", VehicleID: "10", Status: entities.InquiryPending},
			{ID: "2", Name: "Beto", Status: entities.InquiryPending},
			{ID: "3", Name: "Caro", VehicleID: "99", Status: entities.InquiryPending},
		},
	}
	svc := newInquiryService(t, backend)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Toyota Corolla (2020)", views[0].VehicleLabel)
	assert.Equal(t, "Consulta general", views[1].VehicleLabel)
	assert.Equal(t, "Vehículo ID: 99", views[2].VehicleLabel)
}

func TestInquiryListFailsWhenEitherLoadFails(t *testing.T) {
	backend := &fakeBackend{failList: map[string]bool{"consultas": true}}
	svc := newInquiryService(t, backend)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrLoadingData)
}

func TestCommitStatusChangesPartialFailure(t *testing.T) {
	backend := &fakeBackend{
		inquiries: []entities.Inquiry{
			{ID: "1", Name: "Ana", Status: entities.InquiryPending},
			{ID: "2", Name: "Beto", Status: entities.InquiryPending},
		},
		failPatch: map[string]bool{"1": true},
	}
	svc := newInquiryService(t, backend)

	pending := entities.NewPendingChanges[string]()
	pending.Set("1", entities.InquiryContacted)
	pending.Set("2", entities.InquiryContacted)

	summary, views, err := svc.CommitStatusChanges(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	_, stillPending := pending.Get("1")
	assert.True(t, stillPending)
	assert.Equal(t, 1, pending.Len())

	byID := map[entities.ID]InquiryView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, entities.InquiryPending, byID["1"].Status)
	assert.Equal(t, entities.InquiryContacted, byID["2"].Status)
}

func TestStageStatus(t *testing.T) {
	backend := &fakeBackend{}
	svc := newInquiryService(t, backend)
	inq := entities.Inquiry{ID: "1", Status: entities.InquiryPending}

	pending := entities.NewPendingChanges[string]()
	assert.ErrorIs(t, svc.StageStatus(inq, "inexistente", pending), ErrInvalidStatus)
	assert.Zero(t, pending.Len())

	require.NoError(t, svc.StageStatus(inq, entities.InquiryContacted, pending))
	assert.Equal(t, entities.InquiryContacted, pending.ValueOr("1", inq.Status))

	// volver al estado original des-stagea
	require.NoError(t, svc.StageStatus(inq, entities.InquiryPending, pending))
	assert.Zero(t, pending.Len())
}

func TestCommitStatusChangesInvalidStatusNoRequest(t *testing.T) {
	backend := &fakeBackend{inquiries: []entities.Inquiry{
		{ID: "1", Name: "Ana", Status: entities.InquiryPending},
	}}
	svc := newInquiryService(t, backend)

	pending := entities.NewPendingChanges[string]()
	pending.Set("1", "inexistente")

	summary, _, err := svc.CommitStatusChanges(context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, backend.patches)
}
