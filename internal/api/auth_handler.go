package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/auth"
	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/httperr"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/Vickycabo/CAPE/internal/session"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// sessionResponse nunca expone el hash de contraseña.
type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    entities.ID `json:"id"`
		Name  string      `json:"name"`
		Email string      `json:"email"`
		Role  string      `json:"rol"`
	} `json:"user"`
	Redirect string `json:"redirect"`
}

func newSessionResponse(sess session.Session, token string) sessionResponse {
	var resp sessionResponse
	resp.Token = token
	resp.User.ID = sess.User.ID
	resp.User.Name = sess.User.Name
	resp.User.Email = sess.User.Email
	resp.User.Role = sess.User.Role
	resp.Redirect = "/catalogo"
	return resp
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	sess, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, httperr.Unauthorized(err.Error()))
			return
		}
		writeError(w, httperr.Internal("Error al intentar iniciar sesión"))
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess, token))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Request inválido"))
		return
	}
	if errs := req.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	sess, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, httperr.New(http.StatusConflict, err.Error()))
			return
		}
		writeError(w, httperr.Internal("Error al registrar el usuario"))
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(sess, token))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	h.service.Logout(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada"})
}
