package store

import (
	"context"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
)

// InquiryClient opera sobre la colección /consultas.
type InquiryClient struct {
	*Collection[entities.Inquiry]
}

func NewInquiryClient(baseURL string, log *logrus.Logger) *InquiryClient {
	rest := newRESTClient(baseURL, log)
	return &InquiryClient{
		Collection: newCollection(rest, "/consultas",
			func(i entities.Inquiry) entities.ID { return i.ID },
			Messages{
				Load:   "Error cargando consultas",
				Get:    "Error cargando consulta",
				Create: "Error al enviar la consulta",
				Update: "Error actualizando consulta",
				Delete: "Error eliminando consulta",
			}),
	}
}

// UpdateStatus cambia sólo el estado de la consulta (PATCH).
func (c *InquiryClient) UpdateStatus(ctx context.Context, id entities.ID, status string) (*entities.Inquiry, error) {
	return c.Patch(ctx, id, map[string]string{"status": status})
}
