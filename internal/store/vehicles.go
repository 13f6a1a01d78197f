package store

import (
	"context"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
)

// VehicleClient opera sobre la colección /vehiculos.
type VehicleClient struct {
	*Collection[entities.Vehicle]
}

func NewVehicleClient(baseURL string, log *logrus.Logger) *VehicleClient {
	rest := newRESTClient(baseURL, log)
	return &VehicleClient{
		Collection: newCollection(rest, "/vehiculos",
			func(v entities.Vehicle) entities.ID { return v.ID },
			Messages{
				Load:   "Error cargando vehículos",
				Get:    "Error cargando vehículo",
				Create: "Error agregando vehículo",
				Update: "Error actualizando vehículo",
				Delete: "Error eliminando vehículo",
			}),
	}
}

// Update reemplaza el vehículo completo (PUT).
func (c *VehicleClient) Update(ctx context.Context, id entities.ID, v entities.Vehicle) (*entities.Vehicle, error) {
	return c.Put(ctx, id, v)
}
