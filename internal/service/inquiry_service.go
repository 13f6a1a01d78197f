package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/sirupsen/logrus"
)

var ErrInvalidStatus = errors.New("Estado inválido")

// InquiryView es una fila de la lista de consultas con el vehículo resuelto.
type InquiryView struct {
	entities.Inquiry
	VehicleLabel string `json:"vehicleLabel"`
}

type InquiryService struct {
	inquiries *store.InquiryClient
	vehicles  *store.VehicleClient
	notify    *NotifyService
	log       *logrus.Entry
}

func NewInquiryService(inquiries *store.InquiryClient, vehicles *store.VehicleClient, notify *NotifyService, log *logrus.Logger) *InquiryService {
	return &InquiryService{
		inquiries: inquiries,
		vehicles:  vehicles,
		notify:    notify,
		log:       log.WithField("component", "inquiries"),
	}
}

// Create da de alta la consulta; el servidor estampa fecha y estado inicial.
func (s *InquiryService) Create(ctx context.Context, inquiry entities.Inquiry) (*entities.Inquiry, error) {
	inquiry.Date = time.Now().Format(time.RFC3339)
	inquiry.Status = entities.InquiryPending

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}
	s.notify.InquiryReceived(*created)
	s.log.WithField("email", created.Email).Info("consulta creada")
	return created, nil
}

// List carga consultas y vehículos en paralelo. Una consulta sin vehículo es
// una "Consulta general".
func (s *InquiryService) List(ctx context.Context) ([]InquiryView, error) {
	var (
		wg           sync.WaitGroup
		inquiries    []entities.Inquiry
		vehicles     []entities.Vehicle
		errInquiries error
		errVehicles  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		inquiries, errInquiries = s.inquiries.List(ctx)
	}()
	go func() {
		defer wg.Done()
		vehicles, errVehicles = s.vehicles.List(ctx)
	}()
	wg.Wait()

	if errInquiries != nil || errVehicles != nil {
		return nil, ErrLoadingData
	}

	views := make([]InquiryView, 0, len(inquiries))
	for _, inq := range inquiries {
		views = append(views, InquiryView{
			Inquiry:      inq,
			VehicleLabel: lookupVehicleLabel(vehicles, inq.VehicleID, "Consulta general"),
		})
	}
	return views, nil
}

// StageStatus registra un cambio de estado pendiente; volver al estado
// original des-staged la entrada.
func (s *InquiryService) StageStatus(inquiry entities.Inquiry, nuevoEstado string, pending *entities.PendingChanges[string]) error {
	if !entities.ValidInquiryStatus(nuevoEstado) {
		return ErrInvalidStatus
	}
	pending.Stage(inquiry.ID, nuevoEstado, inquiry.Status)
	return nil
}

// CommitStatusChanges confirma los cambios de estado pendientes en paralelo y
// limpia sólo los exitosos.
func (s *InquiryService) CommitStatusChanges(ctx context.Context, pending *entities.PendingChanges[string]) (entities.BatchSummary, []InquiryView, error) {
	summary := commitChanges(ctx, pending, func(ctx context.Context, change entities.Change[string]) error {
		if !entities.ValidInquiryStatus(change.Value) {
			return ErrInvalidStatus
		}
		_, err := s.inquiries.UpdateStatus(ctx, change.ID, change.Value)
		return err
	})

	s.log.WithFields(logrus.Fields{"succeeded": summary.Succeeded, "failed": summary.Failed}).
		Info("cambios de estado confirmados")

	views, err := s.List(ctx)
	if err != nil {
		return summary, nil, err
	}
	return summary, views, nil
}

func (s *InquiryService) Delete(ctx context.Context, id entities.ID) error {
	return s.inquiries.Delete(ctx, id)
}
