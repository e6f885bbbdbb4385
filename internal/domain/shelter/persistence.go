package shelter

import "context"

// Persistence es el puerto hacia la copia durable de ambas colecciones.
// El adaptador es dueño de la serialización; el Store solo ve slices tipadas.
//
// Load* devuelve slice vacía (sin error) cuando la clave no existe todavía.
// Los errores de Save* no abortan la mutación en memoria: el Store los registra
// y la sesión degrada a "cambios perdidos al recargar".
type Persistence interface {
	LoadDogs(ctx context.Context) ([]Dog, error)
	SaveDogs(ctx context.Context, dogs []Dog) error

	LoadAdoptions(ctx context.Context) ([]AdoptionRecord, error)
	SaveAdoptions(ctx context.Context, adoptions []AdoptionRecord) error

	// ClearAll elimina ambas colecciones (reset/testing).
	ClearAll(ctx context.Context) error
}
