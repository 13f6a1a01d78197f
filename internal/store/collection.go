package store

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/Vickycabo/CAPE/internal/entities"
)

// Messages son los mensajes de error visibles por operación de una colección.
type Messages struct {
	Load   string
	Get    string
	Create string
	Update string
	Delete string
}

// Collection envuelve las operaciones CRUD de una colección del store y
// refleja la última colección conocida en una caché en memoria. La caché sólo
// la mutan los propios métodos del cliente: List la reemplaza completa, Create
// agrega, Update reemplaza por id y Delete quita por id. Ante un fallo la
// caché queda intacta y se registra el mensaje de error correspondiente.
type Collection[T any] struct {
	rest *restClient
	path string
	idOf func(T) entities.ID
	msgs Messages

	mu      sync.RWMutex
	items   []T
	loading bool
	lastErr string
}

func newCollection[T any](rest *restClient, path string, idOf func(T) entities.ID, msgs Messages) *Collection[T] {
	return &Collection[T]{rest: rest, path: path, idOf: idOf, msgs: msgs}
}

// List recarga la colección completa desde el store y reemplaza la caché.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	var items []T
	if err := c.rest.do(ctx, http.MethodGet, c.path, nil, nil, &items); err != nil {
		c.setError(c.msgs.Load)
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	c.items = items
	c.lastErr = ""
	c.mu.Unlock()
	return c.Cached(), nil
}

// GetByID busca una entidad por id. Devuelve (nil, nil) cuando no existe.
func (c *Collection[T]) GetByID(ctx context.Context, id entities.ID) (*T, error) {
	var item T
	err := c.rest.do(ctx, http.MethodGet, c.path+"/"+id.String(), nil, nil, &item)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		c.setError(c.msgs.Get)
		return nil, err
	}
	return &item, nil
}

// Create da de alta la entidad; el store asigna el id. En éxito la respuesta
// del servidor se agrega a la caché.
func (c *Collection[T]) Create(ctx context.Context, item T) (*T, error) {
	var created T
	if err := c.rest.do(ctx, http.MethodPost, c.path, nil, item, &created); err != nil {
		c.setError(c.msgs.Create)
		return nil, err
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.lastErr = ""
	c.mu.Unlock()
	return &created, nil
}

// Put reemplaza la entidad completa y actualiza la entrada cacheada por id.
func (c *Collection[T]) Put(ctx context.Context, id entities.ID, item T) (*T, error) {
	return c.update(ctx, http.MethodPut, id, item)
}

// Patch aplica un cambio parcial y actualiza la entrada cacheada por id.
func (c *Collection[T]) Patch(ctx context.Context, id entities.ID, partial any) (*T, error) {
	return c.update(ctx, http.MethodPatch, id, partial)
}

func (c *Collection[T]) update(ctx context.Context, method string, id entities.ID, body any) (*T, error) {
	var updated T
	if err := c.rest.do(ctx, method, c.path+"/"+id.String(), nil, body, &updated); err != nil {
		c.setError(c.msgs.Update)
		return nil, err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = updated
			break
		}
	}
	c.lastErr = ""
	c.mu.Unlock()
	return &updated, nil
}

// Delete elimina la entidad y quita la entrada cacheada por id.
func (c *Collection[T]) Delete(ctx context.Context, id entities.ID) error {
	if err := c.rest.do(ctx, http.MethodDelete, c.path+"/"+id.String(), nil, nil, nil); err != nil {
		c.setError(c.msgs.Delete)
		return err
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}

// query consulta la colección con parámetros sin tocar la caché.
func (c *Collection[T]) query(ctx context.Context, params url.Values) ([]T, error) {
	var items []T
	if err := c.rest.do(ctx, http.MethodGet, c.path, params, nil, &items); err != nil {
		c.setError(c.msgs.Load)
		return nil, err
	}
	return items, nil
}

// Cached devuelve una copia de la última colección conocida.
func (c *Collection[T]) Cached() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Collection[T]) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Collection[T]) setError(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}
