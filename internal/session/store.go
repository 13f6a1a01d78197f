package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session es la foto inmutable de una sesión: a lo sumo un usuario actual.
// El valor cero representa "sin sesión" (anónimo).
type Session struct {
	ID        string        `json:"id"`
	User      entities.User `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
}

func (s Session) IsLoggedIn() bool {
	return !s.User.ID.IsZero()
}

func (s Session) IsAdmin() bool {
	return s.IsLoggedIn() && s.User.Role == entities.RoleAdmin
}

// Store guarda las sesiones vivas en memoria y las espeja a un archivo JSON.
// La rehidratación al arrancar es best-effort: un archivo ausente o corrupto
// se trata como "sin sesiones", nunca como error.
type Store struct {
	mu       sync.RWMutex
	fileMu   sync.Mutex
	sessions map[string]Session
	path     string
	log      *logrus.Entry
}

func NewStore(path string, log *logrus.Logger) *Store {
	s := &Store{
		sessions: make(map[string]Session),
		path:     path,
		log:      log.WithField("component", "session"),
	}
	s.load()
	return s
}

// Login crea una sesión nueva para el usuario y la persiste.
func (s *Store) Login(user entities.User) Session {
	sess := Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.persist()
	return sess
}

// Logout destruye la sesión indicada.
func (s *Store) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.persist()
}

// Get devuelve la foto de la sesión, o una sesión anónima si no existe.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return sess, true
}

// Refresh actualiza el usuario en todas sus sesiones vivas. Se usa cuando un
// admin edita un usuario que está logueado, para que el cambio de rol se vea
// sin re-login.
func (s *Store) Refresh(user entities.User) {
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.User.ID == user.ID {
			sess.User = user
			s.sessions[id] = sess
		}
	}
	s.mu.Unlock()
	s.persist()
}

// Drop destruye todas las sesiones del usuario (usuario eliminado).
func (s *Store) Drop(userID entities.ID) {
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.User.ID == userID {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	s.persist()
}

func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var sessions map[string]Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.log.WithError(err).Warn("archivo de sesiones corrupto, se arranca sin sesiones")
		return
	}
	// Un archivo con "null" deserializa a un mapa nil; nunca lo instalamos
	// porque el próximo Login escribiría sobre un mapa nil.
	if sessions == nil {
		return
	}
	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
}

// persist espeja el estado actual al archivo. fileMu serializa marshal+write
// entre persists concurrentes; el último en entrar escribe el mapa más
// reciente.
func (s *Store) persist() {
	if s.path == "" {
		return
	}
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	s.mu.RLock()
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		s.log.WithError(err).Warn("no se pudieron serializar las sesiones")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.WithError(err).Warn("no se pudo crear el directorio de sesiones")
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.WithError(err).Warn("no se pudieron persistir las sesiones")
	}
}
