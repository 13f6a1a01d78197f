package service

import (
	"context"
	"errors"
	"time"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/session"
	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials no distingue entre email inexistente y contraseña
	// equivocada a propósito.
	ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectos")
	ErrEmailTaken         = errors.New("Ese email ya está registrado")
	ErrSelfRoleChange     = errors.New("No puedes cambiar tu propio rol")
	ErrSelfDelete         = errors.New("No puedes eliminar tu propio usuario")
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	users     *store.UserClient
	sessions  *session.Store
	jwtSecret []byte
	log       *logrus.Entry
}

func NewAuthService(users *store.UserClient, sessions *session.Store, jwtSecret []byte, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		log:       log.WithField("component", "auth"),
	}
}

// Login busca el usuario por email y compara la contraseña contra el hash
// bcrypt almacenado. En éxito crea la sesión y devuelve el token firmado.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return session.Session{}, "", err
	}
	if user == nil {
		return session.Session{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return session.Session{}, "", ErrInvalidCredentials
	}

	sess := s.sessions.Login(*user)
	token, err := s.signToken(sess)
	if err != nil {
		return session.Session{}, "", err
	}
	s.log.WithField("email", email).Info("login exitoso")
	return sess, token, nil
}

// Register da de alta un usuario con rol "usuario" e inicia sesión
// automáticamente, como hace el alta del formulario de login.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (session.Session, string, error) {
	exists, err := s.EmailExists(ctx, email)
	if err != nil {
		return session.Session{}, "", err
	}
	if exists {
		return session.Session{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return session.Session{}, "", err
	}

	created, err := s.users.Create(ctx, entities.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     entities.RoleUser,
	})
	if err != nil {
		return session.Session{}, "", err
	}

	sess := s.sessions.Login(*created)
	token, err := s.signToken(sess)
	if err != nil {
		return session.Session{}, "", err
	}
	s.log.WithField("email", email).Info("usuario registrado")
	return sess, token, nil
}

func (s *AuthService) Logout(sessionID string) {
	s.sessions.Logout(sessionID)
}

func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.users.List(ctx)
}

// UpdateRole cambia el rol de un usuario. El cambio sobre uno mismo se
// rechaza localmente, sin enviar request. Si el usuario editado tiene
// sesiones vivas se refrescan con el nuevo rol.
func (s *AuthService) UpdateRole(ctx context.Context, actor session.Session, id entities.ID, rol string) (*entities.User, error) {
	if actor.User.ID == id {
		return nil, ErrSelfRoleChange
	}
	updated, err := s.users.UpdateRole(ctx, id, rol)
	if err != nil {
		return nil, err
	}
	s.sessions.Refresh(*updated)
	return updated, nil
}

// DeleteUser elimina un usuario. Eliminarse a uno mismo se rechaza localmente.
func (s *AuthService) DeleteUser(ctx context.Context, actor session.Session, id entities.ID) error {
	if actor.User.ID == id {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.sessions.Drop(id)
	return nil
}

// Resolve valida un token firmado y devuelve la foto de sesión asociada.
// Cualquier token inválido o vencido degrada a sesión anónima, nunca a error.
func (s *AuthService) Resolve(tokenString string) session.Session {
	if tokenString == "" {
		return session.Session{}
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return session.Session{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}
	}
	sid, _ := claims["sid"].(string)
	sess, ok := s.sessions.Get(sid)
	if !ok {
		return session.Session{}
	}
	return sess
}

func (s *AuthService) signToken(sess session.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.ID,
		"sub":   sess.User.ID.String(),
		"email": sess.User.Email,
		"rol":   sess.User.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
