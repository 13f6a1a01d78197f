package service

import (
	"context"
	"sync"

	"github.com/Vickycabo/CAPE/internal/entities"
)

// commitChanges confirma los cambios pendientes despachando una request por
// entrada, todas en paralelo, y espera a que terminen todas: el fallo de una
// no cancela a las demás. Devuelve el resultado por id en orden de staging y
// limpia del mapa pendiente únicamente las entradas que tuvieron éxito, para
// que las fallidas queden staged y se puedan reintentar.
func commitChanges[V comparable](ctx context.Context, pending *entities.PendingChanges[V], apply func(context.Context, entities.Change[V]) error) entities.BatchSummary {
	changes := pending.Entries()
	results := make([]entities.ChangeResult, len(changes))

	var wg sync.WaitGroup
	for i, change := range changes {
		wg.Add(1)
		go func(i int, change entities.Change[V]) {
			defer wg.Done()
			if err := apply(ctx, change); err != nil {
				results[i] = entities.ChangeResult{ID: change.ID, OK: false, Error: err.Error()}
				return
			}
			results[i] = entities.ChangeResult{ID: change.ID, OK: true}
		}(i, change)
	}
	wg.Wait()

	summary := entities.BatchSummary{Results: results}
	for _, res := range results {
		if res.OK {
			summary.Succeeded++
			pending.Delete(res.ID)
		} else {
			summary.Failed++
		}
	}
	return summary
}
