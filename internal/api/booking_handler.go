package api

import (
	"encoding/json"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/auth"
	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/httperr"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Create registra una reserva para el usuario logueado.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	sess := auth.SessionFrom(r.Context())
	created, err := h.service.Create(r.Context(), entities.Booking{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		VehicleID: req.VehicleID,
		UserID:    sess.User.ID,
	})
	if err != nil {
		writeError(w, httperr.Internal("Error al realizar la reserva"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"reserva": created,
		"message": "Reserva realizada exitosamente",
	})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, httperr.Internal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, httperr.Internal("Error al eliminar la reserva"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reserva eliminada"})
}
