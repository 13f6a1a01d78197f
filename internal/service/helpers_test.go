package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// fakeBackend emula el json-server con las colecciones usadas por los
// servicios. failPatch marca ids cuyo PATCH responde 500.
type fakeBackend struct {
	mu        sync.Mutex
	users     []entities.User
	inquiries []entities.Inquiry
	bookings  []entities.Booking
	vehicles  []entities.Vehicle

	nextID    int
	failPatch map[string]bool
	failList  map[string]bool // por colección, ej "reservas"
	patches   []string        // paths de los PATCH recibidos
}

func (f *fakeBackend) serve(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(srv.Close)
	return srv.URL
}

func (f *fakeBackend) newID() entities.ID {
	f.nextID++
	return entities.ID(strconv.Itoa(100 + f.nextID))
}

func (f *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := parts[0]
	id := ""
	if len(parts) > 1 {
		id = parts[1]
	}
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodGet && id == "" && f.failList[collection] {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodPatch {
		f.patches = append(f.patches, r.URL.Path)
		if f.failPatch[id] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
	}

	switch collection {
	case "usuarios":
		f.handleUsers(w, r, id)
	case "consultas":
		f.handleInquiries(w, r, id)
	case "reservas":
		f.handleBookings(w, r, id)
	case "vehiculos":
		f.handleVehicles(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) handleUsers(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		email := r.URL.Query().Get("email")
		matched := []entities.User{}
		for _, u := range f.users {
			if email == "" || u.Email == email {
				matched = append(matched, u)
			}
		}
		json.NewEncoder(w).Encode(matched)
	case http.MethodPost:
		var u entities.User
		json.NewDecoder(r.Body).Decode(&u)
		u.ID = f.newID()
		f.users = append(f.users, u)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(u)
	case http.MethodPatch:
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		for i := range f.users {
			if f.users[i].ID.String() == id {
				if rol, ok := body["rol"]; ok {
					f.users[i].Role = rol
				}
				json.NewEncoder(w).Encode(f.users[i])
				return
			}
		}
		http.NotFound(w, r)
	case http.MethodDelete:
		kept := f.users[:0]
		for _, u := range f.users {
			if u.ID.String() != id {
				kept = append(kept, u)
			}
		}
		f.users = kept
		json.NewEncoder(w).Encode(map[string]any{})
	}
}

func (f *fakeBackend) handleInquiries(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(f.inquiries)
	case http.MethodPost:
		var inq entities.Inquiry
		json.NewDecoder(r.Body).Decode(&inq)
		inq.ID = f.newID()
		f.inquiries = append(f.inquiries, inq)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(inq)
	case http.MethodPatch:
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		for i := range f.inquiries {
			if f.inquiries[i].ID.String() == id {
				if status, ok := body["status"]; ok {
					f.inquiries[i].Status = status
				}
				json.NewEncoder(w).Encode(f.inquiries[i])
				return
			}
		}
		http.NotFound(w, r)
	case http.MethodDelete:
		kept := f.inquiries[:0]
		for _, inq := range f.inquiries {
			if inq.ID.String() != id {
				kept = append(kept, inq)
			}
		}
		f.inquiries = kept
		json.NewEncoder(w).Encode(map[string]any{})
	}
}

func (f *fakeBackend) handleBookings(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(f.bookings)
	case http.MethodPost:
		var b entities.Booking
		json.NewDecoder(r.Body).Decode(&b)
		b.ID = f.newID()
		f.bookings = append(f.bookings, b)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(b)
	case http.MethodDelete:
		kept := f.bookings[:0]
		for _, b := range f.bookings {
			if b.ID.String() != id {
				kept = append(kept, b)
			}
		}
		f.bookings = kept
		json.NewEncoder(w).Encode(map[string]any{})
	}
}

func (f *fakeBackend) handleVehicles(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		if id == "" {
			json.NewEncoder(w).Encode(f.vehicles)
			return
		}
		for _, v := range f.vehicles {
			if v.ID.String() == id {
				json.NewEncoder(w).Encode(v)
				return
			}
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}
