package api

import (
	"encoding/json"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/httperr"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	catalog *service.CatalogService
}

func NewVehicleHandler(catalog *service.CatalogService) *VehicleHandler {
	return &VehicleHandler{catalog: catalog}
}

// List recarga el catálogo y responde la vista filtrada según query params.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Load(r.Context()); err != nil {
		writeError(w, httperr.Internal("Error cargando vehículos"))
		return
	}

	filters := service.VehicleFilters{
		Brand:    r.URL.Query().Get("brand"),
		Year:     r.URL.Query().Get("year"),
		MaxPrice: r.URL.Query().Get("max_price"),
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": h.catalog.Vehicles(filters),
	})
}

// Options responde las listas de opciones de filtrado derivadas del catálogo.
func (h *VehicleHandler) Options(w http.ResponseWriter, r *http.Request) {
	brands, years, prices := h.catalog.Options()
	writeJSON(w, http.StatusOK, map[string]any{
		"brands": brands,
		"years":  years,
		"prices": prices,
	})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	vehicle, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, httperr.Internal("Error cargando vehículo"))
		return
	}
	if vehicle == nil {
		writeError(w, httperr.NotFound("Vehículo no encontrado"))
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	created, err := h.catalog.Add(r.Context(), req.ToVehicle())
	if err != nil {
		writeError(w, httperr.Internal("Error agregando vehículo"))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	vehicle := req.ToVehicle()
	vehicle.ID = id
	updated, err := h.catalog.Update(r.Context(), id, vehicle)
	if err != nil {
		writeError(w, httperr.Internal("Error actualizando vehículo"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := entities.ID(mux.Vars(r)["id"])
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeError(w, httperr.Internal("Error eliminando vehículo"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehículo eliminado"})
}
