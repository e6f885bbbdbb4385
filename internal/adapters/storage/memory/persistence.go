package memory

import (
	"context"
	"sync"

	"dog-adoption/internal/adapters/storage/record"
	"dog-adoption/internal/domain/shelter"
)

// Persistence es el backend en memoria: default de desarrollo y fake de tests.
// Serializa igual que los backends durables para que los tests de round-trip
// ejerciten el mismo codec.
type Persistence struct {
	mu   sync.RWMutex
	data map[string][]byte

	failNext error
}

func NewPersistence() *Persistence {
	return &Persistence{data: make(map[string][]byte)}
}

var _ shelter.Persistence = (*Persistence)(nil)

// FailNextSave hace fallar la próxima escritura con err (inyección de fallos
// para tests de degradación de durabilidad).
func (p *Persistence) FailNextSave(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = err
}

func (p *Persistence) LoadDogs(ctx context.Context) ([]shelter.Dog, error) {
	return load[shelter.Dog](p, record.DogsKey)
}

func (p *Persistence) SaveDogs(ctx context.Context, dogs []shelter.Dog) error {
	return save(p, record.DogsKey, dogs)
}

func (p *Persistence) LoadAdoptions(ctx context.Context) ([]shelter.AdoptionRecord, error) {
	return load[shelter.AdoptionRecord](p, record.AdoptionsKey)
}

func (p *Persistence) SaveAdoptions(ctx context.Context, adoptions []shelter.AdoptionRecord) error {
	return save(p, record.AdoptionsKey, adoptions)
}

func (p *Persistence) ClearAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, record.DogsKey)
	delete(p.data, record.AdoptionsKey)
	return nil
}

func load[T any](p *Persistence, key string) ([]T, error) {
	p.mu.RLock()
	payload, ok := p.data[key]
	p.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return record.Decode[T](payload)
}

func save[T any](p *Persistence, key string, items []T) error {
	payload, err := record.Encode(items)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext != nil {
		err := p.failNext
		p.failNext = nil
		return err
	}
	p.data[key] = payload
	return nil
}
