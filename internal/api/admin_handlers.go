package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/auth"
	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/httperr"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/gorilla/mux"
)

// AdminHandler sirve el panel de administración de usuarios.
type AdminHandler struct {
	service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListUsers responde la colección de usuarios sin exponer los hashes.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, httperr.Internal("Error cargando usuarios"))
		return
	}
	writeJSON(w, http.StatusOK, sanitizeUsers(users))
}

// CommitRoleChanges confirma en lote los cambios de rol pendientes. Los
// cambios sobre el propio usuario quedan reportados como fallidos sin que se
// envíe request alguna por ellos.
func (h *AdminHandler) CommitRoleChanges(w http.ResponseWriter, r *http.Request) {
	var req BatchChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}

	pending := entities.NewPendingChanges[string]()
	for _, change := range req.Changes {
		pending.Set(change.ID, change.Value)
	}

	actor := auth.SessionFrom(r.Context())
	summary, users, err := h.service.CommitRoleChanges(r.Context(), actor, pending)
	if err != nil {
		writeError(w, httperr.Internal("Error cargando usuarios"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":  summary,
		"usuarios": sanitizeUsers(users),
	})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	actor := auth.SessionFrom(r.Context())

	if err := h.service.DeleteUser(r.Context(), actor, id, nil); err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			writeError(w, httperr.BadRequest(err.Error()))
			return
		}
		writeError(w, httperr.Internal("Error eliminando usuario"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Usuario eliminado"})
}

func sanitizeUsers(users []entities.User) []entities.User {
	cleaned := make([]entities.User, len(users))
	for i, u := range users {
		u.Password = ""
		cleaned[i] = u
	}
	return cleaned
}
