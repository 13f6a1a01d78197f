package api

import (
	"encoding/json"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/httperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err *httperr.HTTPError) {
	writeJSON(w, err.Code, err)
}

// writeFieldErrors responde los errores de validación inline, campo por campo.
func writeFieldErrors(w http.ResponseWriter, errs FieldErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Formulario inválido",
		"errores": errs,
	})
}
