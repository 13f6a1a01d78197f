package session

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestLoginLogout(t *testing.T) {
	store := NewStore("", quietLog())

	sess := store.Login(entities.User{ID: "1", Name: "Ana", Email: "a@a.com", Role: entities.RoleAdmin})
	require.NotEmpty(t, sess.ID)
	assert.True(t, sess.IsLoggedIn())
	assert.True(t, sess.IsAdmin())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "a@a.com", got.User.Email)

	store.Logout(sess.ID)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
}

func TestZeroSessionIsAnonymous(t *testing.T) {
	var sess Session
	assert.False(t, sess.IsLoggedIn())
	assert.False(t, sess.IsAdmin())
}

func TestPersistAndRehydrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	store := NewStore(path, quietLog())
	sess := store.Login(entities.User{ID: "7", Name: "Caro", Email: "c@c.com", Role: entities.RoleUser})

	reloaded := NewStore(path, quietLog())
	got, ok := reloaded.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, entities.ID("7"), got.User.ID)
	assert.False(t, got.IsAdmin())
}

func TestMalformedFileMeansNoSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o600))

	store := NewStore(path, quietLog())
	_, ok := store.Get("cualquiera")
	assert.False(t, ok)

	// y el store sigue siendo usable
	sess := store.Login(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleUser})
	_, ok = store.Get(sess.ID)
	assert.True(t, ok)
}

func TestNullFileMeansNoSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))

	store := NewStore(path, quietLog())
	_, ok := store.Get("cualquiera")
	assert.False(t, ok)

	// "null" deserializa a un mapa nil; Login no debe entrar en pánico
	sess := store.Login(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleUser})
	_, ok = store.Get(sess.ID)
	assert.True(t, ok)
}

func TestConcurrentLoginsAllPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := NewStore(path, quietLog())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Login(entities.User{ID: entities.ID(strconv.Itoa(n)), Email: "a@a.com", Role: entities.RoleUser})
		}(i)
	}
	wg.Wait()

	// el último persist en correr escribe el mapa completo
	reloaded := NewStore(path, quietLog())
	reloaded.mu.RLock()
	defer reloaded.mu.RUnlock()
	assert.Len(t, reloaded.sessions, 20)
}

func TestRefreshUpdatesLiveSessionsOfUser(t *testing.T) {
	store := NewStore("", quietLog())
	first := store.Login(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleUser})
	second := store.Login(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleUser})
	other := store.Login(entities.User{ID: "2", Email: "b@b.com", Role: entities.RoleUser})

	store.Refresh(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleAdmin})

	got, _ := store.Get(first.ID)
	assert.True(t, got.IsAdmin())
	got, _ = store.Get(second.ID)
	assert.True(t, got.IsAdmin())
	got, _ = store.Get(other.ID)
	assert.False(t, got.IsAdmin())
}

func TestDropRemovesAllSessionsOfUser(t *testing.T) {
	store := NewStore("", quietLog())
	first := store.Login(entities.User{ID: "1", Email: "a@a.com", Role: entities.RoleUser})
	other := store.Login(entities.User{ID: "2", Email: "b@b.com", Role: entities.RoleUser})

	store.Drop("1")

	_, ok := store.Get(first.ID)
	assert.False(t, ok)
	_, ok = store.Get(other.ID)
	assert.True(t, ok)
}
