package api

import (
	"encoding/json"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/httperr"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/gorilla/mux"
)

type InquiryHandler struct {
	service *service.InquiryService
}

func NewInquiryHandler(svc *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: svc}
}

// Create registra una consulta; es la única alta pública de la aplicación.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	created, err := h.service.Create(r.Context(), entities.Inquiry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		writeError(w, httperr.Internal("Error al enviar la consulta"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"consulta": created,
		"message":  "Consulta enviada exitosamente",
	})
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, httperr.Internal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// CommitStatusChanges confirma en lote los cambios de estado pendientes.
func (h *InquiryHandler) CommitStatusChanges(w http.ResponseWriter, r *http.Request) {
	var req BatchChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}

	pending := entities.NewPendingChanges[string]()
	for _, change := range req.Changes {
		pending.Set(change.ID, change.Value)
	}

	summary, views, err := h.service.CommitStatusChanges(r.Context(), pending)
	if err != nil {
		writeError(w, httperr.Internal("Error cargando los datos"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":   summary,
		"consultas": views,
	})
}

func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, httperr.Internal("Error eliminando consulta"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Consulta eliminada"})
}
