package store

import (
	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
)

// BookingClient opera sobre la colección /reservas.
type BookingClient struct {
	*Collection[entities.Booking]
}

func NewBookingClient(baseURL string, log *logrus.Logger) *BookingClient {
	rest := newRESTClient(baseURL, log)
	return &BookingClient{
		Collection: newCollection(rest, "/reservas",
			func(b entities.Booking) entities.ID { return b.ID },
			Messages{
				Load:   "Error cargando reservas",
				Get:    "Error cargando reserva",
				Create: "Error al realizar la reserva",
				Update: "Error actualizando reserva",
				Delete: "Error al eliminar la reserva",
			}),
	}
}
