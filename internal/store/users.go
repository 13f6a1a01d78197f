package store

import (
	"context"
	"net/url"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
)

// UserClient opera sobre la colección /usuarios.
type UserClient struct {
	*Collection[entities.User]
}

func NewUserClient(baseURL string, log *logrus.Logger) *UserClient {
	rest := newRESTClient(baseURL, log)
	return &UserClient{
		Collection: newCollection(rest, "/usuarios",
			func(u entities.User) entities.ID { return u.ID },
			Messages{
				Load:   "Error cargando usuarios",
				Get:    "Error cargando usuario",
				Create: "Error registrando usuario",
				Update: "Error actualizando usuario",
				Delete: "Error eliminando usuario",
			}),
	}
}

// GetByEmail busca un usuario por email exacto vía GET /usuarios?email=...
// Devuelve (nil, nil) cuando no hay coincidencia.
func (c *UserClient) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	params := url.Values{"email": {email}}
	users, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UpdateRole cambia sólo el rol del usuario (PATCH).
func (c *UserClient) UpdateRole(ctx context.Context, id entities.ID, rol string) (*entities.User, error) {
	return c.Patch(ctx, id, map[string]string{"rol": rol})
}
