package service

import (
	"context"
	"errors"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/session"
	"github.com/sirupsen/logrus"
)

var ErrInvalidRole = errors.New("Rol inválido")

// AdminService respalda la vista de administración de usuarios: lista, staging
// de cambios de rol, confirmación en lote y baja de usuarios.
type AdminService struct {
	auth *AuthService
	log  *logrus.Entry
}

func NewAdminService(auth *AuthService, log *logrus.Logger) *AdminService {
	return &AdminService{auth: auth, log: log.WithField("component", "admin")}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.auth.ListUsers(ctx)
}

// StageRole registra un cambio de rol pendiente. Cambiarse el rol a uno mismo
// es un no-op rechazado acá, antes de que exista request alguna.
func (s *AdminService) StageRole(actor session.Session, user entities.User, nuevoRol string, pending *entities.PendingChanges[string]) error {
	if !entities.ValidRole(nuevoRol) {
		return ErrInvalidRole
	}
	if actor.User.ID == user.ID {
		return ErrSelfRoleChange
	}
	pending.Stage(user.ID, nuevoRol, user.Role)
	return nil
}

// CommitRoleChanges confirma los cambios de rol pendientes en paralelo,
// limpia sólo los que tuvieron éxito y recarga la colección autoritativa.
func (s *AdminService) CommitRoleChanges(ctx context.Context, actor session.Session, pending *entities.PendingChanges[string]) (entities.BatchSummary, []entities.User, error) {
	summary := commitChanges(ctx, pending, func(ctx context.Context, change entities.Change[string]) error {
		if !entities.ValidRole(change.Value) {
			return ErrInvalidRole
		}
		_, err := s.auth.UpdateRole(ctx, actor, change.ID, change.Value)
		return err
	})

	s.log.WithFields(logrus.Fields{"succeeded": summary.Succeeded, "failed": summary.Failed}).
		Info("cambios de rol confirmados")

	users, err := s.auth.ListUsers(ctx)
	if err != nil {
		return summary, nil, err
	}
	return summary, users, nil
}

// DeleteUser elimina un usuario y descarta su cambio de rol pendiente si lo
// había. La auto-eliminación la rechaza el servicio de auth.
func (s *AdminService) DeleteUser(ctx context.Context, actor session.Session, id entities.ID, pending *entities.PendingChanges[string]) error {
	if err := s.auth.DeleteUser(ctx, actor, id); err != nil {
		return err
	}
	if pending != nil {
		pending.Delete(id)
	}
	return nil
}
