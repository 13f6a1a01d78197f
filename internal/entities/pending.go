package entities

// PendingChanges acumula ediciones por id antes de confirmarlas en lote.
// Mantiene el orden en que se agregaron los cambios.
type PendingChanges[V comparable] struct {
	order  []ID
	values map[ID]V
}

func NewPendingChanges[V comparable]() *PendingChanges[V] {
	return &PendingChanges[V]{values: make(map[ID]V)}
}

// Stage registra un cambio propuesto. Si el valor propuesto vuelve a ser el
// original, la entrada pendiente se elimina en lugar de quedar staged.
func (p *PendingChanges[V]) Stage(id ID, proposed, original V) {
	if proposed == original {
		p.Delete(id)
		return
	}
	p.Set(id, proposed)
}

func (p *PendingChanges[V]) Set(id ID, value V) {
	if _, ok := p.values[id]; !ok {
		p.order = append(p.order, id)
	}
	p.values[id] = value
}

func (p *PendingChanges[V]) Get(id ID) (V, bool) {
	v, ok := p.values[id]
	return v, ok
}

func (p *PendingChanges[V]) Delete(id ID) {
	if _, ok := p.values[id]; !ok {
		return
	}
	delete(p.values, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// ValueOr devuelve el valor pendiente para el id, o el valor almacenado si
// no hay cambio staged. Es lo que muestra cada fila de las listas de edición.
func (p *PendingChanges[V]) ValueOr(id ID, stored V) V {
	if v, ok := p.values[id]; ok {
		return v
	}
	return stored
}

func (p *PendingChanges[V]) Len() int {
	return len(p.values)
}

// Entries devuelve los cambios pendientes en orden de staging.
func (p *PendingChanges[V]) Entries() []Change[V] {
	changes := make([]Change[V], 0, len(p.order))
	for _, id := range p.order {
		changes = append(changes, Change[V]{ID: id, Value: p.values[id]})
	}
	return changes
}

type Change[V any] struct {
	ID    ID
	Value V
}

// ChangeResult es el resultado de confirmar un cambio pendiente.
type ChangeResult struct {
	ID    ID     `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchSummary resume una confirmación en lote.
type BatchSummary struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []ChangeResult `json:"results"`
}
