package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrLoadingData = errors.New("Error cargando los datos")

// BookingView es una fila de la lista de reservas, con la info del vehículo
// ya resuelta.
type BookingView struct {
	entities.Booking
	VehicleLabel string `json:"vehicleLabel"`
	VehicleImage string `json:"vehicleImage,omitempty"`
}

type BookingService struct {
	bookings *store.BookingClient
	vehicles *store.VehicleClient
	notify   *NotifyService
	log      *logrus.Entry
}

func NewBookingService(bookings *store.BookingClient, vehicles *store.VehicleClient, notify *NotifyService, log *logrus.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		vehicles: vehicles,
		notify:   notify,
		log:      log.WithField("component", "bookings"),
	}
}

// Create da de alta la reserva con un código de confirmación generado. La
// notificación posterior es best-effort: su fallo nunca voltea la reserva.
func (s *BookingService) Create(ctx context.Context, booking entities.Booking) (*entities.Booking, error) {
	booking.Code = newBookingCode()
	if booking.Date == "" {
		booking.Date = time.Now().Format(time.RFC3339)
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	label := "Vehículo no especificado"
	if !created.VehicleID.IsZero() {
		if vehicle, err := s.vehicles.GetByID(ctx, created.VehicleID); err == nil && vehicle != nil {
			label = vehicleLabel(*vehicle)
		}
	}
	s.notify.BookingConfirmed(*created, label)

	s.log.WithFields(logrus.Fields{"code": created.Code, "email": created.Email}).Info("reserva creada")
	return created, nil
}

// List carga reservas y vehículos en paralelo y une cada reserva con la info
// de su vehículo. Se espera a ambas cargas; si cualquiera falla, falla la
// vista completa.
func (s *BookingService) List(ctx context.Context) ([]BookingView, error) {
	var (
		wg          sync.WaitGroup
		bookings    []entities.Booking
		vehicles    []entities.Vehicle
		errBookings error
		errVehicles error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, errBookings = s.bookings.List(ctx)
	}()
	go func() {
		defer wg.Done()
		vehicles, errVehicles = s.vehicles.List(ctx)
	}()
	wg.Wait()

	if errBookings != nil || errVehicles != nil {
		return nil, ErrLoadingData
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, BookingView{
			Booking:      b,
			VehicleLabel: lookupVehicleLabel(vehicles, b.VehicleID, "Vehículo no especificado"),
			VehicleImage: lookupVehicleImage(vehicles, b.VehicleID),
		})
	}
	return views, nil
}

func (s *BookingService) Delete(ctx context.Context, id entities.ID) error {
	return s.bookings.Delete(ctx, id)
}

func newBookingCode() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func vehicleLabel(v entities.Vehicle) string {
	return fmt.Sprintf("%s %s (%d)", v.Brand, v.Model, v.Year)
}

func lookupVehicleLabel(vehicles []entities.Vehicle, id entities.ID, fallback string) string {
	if id.IsZero() {
		return fallback
	}
	for _, v := range vehicles {
		if v.ID == id {
			return vehicleLabel(v)
		}
	}
	return fmt.Sprintf("Vehículo ID: %s", id)
}

func lookupVehicleImage(vehicles []entities.Vehicle, id entities.ID) string {
	for _, v := range vehicles {
		if v.ID == id && len(v.Images) > 0 {
			return v.Images[0]
		}
	}
	return ""
}
