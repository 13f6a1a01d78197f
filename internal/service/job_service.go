package service

import (
	"context"

	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/sirupsen/logrus"
)

// ResyncService recarga periódicamente las cuatro colecciones desde el store
// para reconciliar las cachés con el estado autoritativo. Un fallo de una
// colección no frena a las demás.
type ResyncService struct {
	vehicles  *store.VehicleClient
	users     *store.UserClient
	bookings  *store.BookingClient
	inquiries *store.InquiryClient
	log       *logrus.Entry
}

func NewResyncService(vehicles *store.VehicleClient, users *store.UserClient, bookings *store.BookingClient, inquiries *store.InquiryClient, log *logrus.Logger) *ResyncService {
	return &ResyncService{
		vehicles:  vehicles,
		users:     users,
		bookings:  bookings,
		inquiries: inquiries,
		log:       log.WithField("component", "resync"),
	}
}

func (s *ResyncService) Run(ctx context.Context) {
	s.log.Info("resincronizando cachés con el store")

	if _, err := s.vehicles.List(ctx); err != nil {
		s.log.WithError(err).Warn("no se pudo resincronizar vehículos")
	}
	if _, err := s.users.List(ctx); err != nil {
		s.log.WithError(err).Warn("no se pudo resincronizar usuarios")
	}
	if _, err := s.bookings.List(ctx); err != nil {
		s.log.WithError(err).Warn("no se pudo resincronizar reservas")
	}
	if _, err := s.inquiries.List(ctx); err != nil {
		s.log.WithError(err).Warn("no se pudo resincronizar consultas")
	}
}
