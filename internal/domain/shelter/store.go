package shelter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"dog-adoption/internal/platform/logger"
)

// Collection identifica cuál de las dos colecciones cambió en una notificación.
type Collection string

const (
	CollectionDogs      Collection = "dogs"
	CollectionAdoptions Collection = "adoptions"
)

// Change describe una mutación comprometida del Store.
type Change struct {
	Collection Collection
}

// Store es el dueño autoritativo en memoria de ambas colecciones.
//
// Toda mutación se aplica bajo un único mutex y se escribe al puerto de
// persistencia antes de soltar el lock (write-through): una lectura inmediata
// después de una mutación comprometida siempre la refleja, y las escrituras a
// una misma clave nunca se solapan ni se reordenan.
type Store struct {
	mu        sync.RWMutex
	dogs      []Dog
	adoptions []AdoptionRecord

	persist Persistence
	log     logger.Logger
	now     func() time.Time

	lastPersistErr error

	subMu sync.Mutex
	subs  []func(Change)
}

func NewStore(p Persistence, log logger.Logger) *Store {
	return &Store{
		persist: p,
		log:     log,
		now:     time.Now,
	}
}

// Subscribe registra un observador que se invoca (en la goroutine mutadora,
// fuera del lock del Store) después de cada mutación comprometida.
func (s *Store) Subscribe(fn func(Change)) {
	if fn == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	subs := make([]func(Change), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(c)
	}
}

// Load reemplaza ambas colecciones con la copia durable. Un fallo de lectura o
// de deserialización deja la colección vacía y queda en el log; nunca es fatal.
func (s *Store) Load(ctx context.Context) {
	dogs, err := s.persist.LoadDogs(ctx)
	if err != nil {
		s.log.Warn("load dogs failed, starting empty", map[string]any{"error": err.Error()})
		dogs = nil
	}
	adoptions, err := s.persist.LoadAdoptions(ctx)
	if err != nil {
		s.log.Warn("load adoptions failed, starting empty", map[string]any{"error": err.Error()})
		adoptions = nil
	}

	s.ReplaceDogs(dogs)
	s.ReplaceAdoptions(adoptions)
}

// ReplaceDogs instala la colección completa sin validar registro a registro
// (carga masiva). No re-persiste: la fuente es la copia durable.
func (s *Store) ReplaceDogs(dogs []Dog) {
	s.mu.Lock()
	s.dogs = append([]Dog(nil), dogs...)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionDogs})
}

// ReplaceAdoptions instala la colección completa; mismo contrato que ReplaceDogs.
func (s *Store) ReplaceAdoptions(adoptions []AdoptionRecord) {
	s.mu.Lock()
	s.adoptions = append([]AdoptionRecord(nil), adoptions...)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAdoptions})
}

// SeedDefaults instala el catálogo por defecto si la colección de perros quedó
// vacía tras Load (primer arranque).
func (s *Store) SeedDefaults(ctx context.Context, seed []Dog) {
	s.mu.Lock()
	if len(s.dogs) > 0 {
		s.mu.Unlock()
		return
	}
	s.dogs = append([]Dog(nil), seed...)
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionDogs})
}

// Dogs devuelve una copia instantánea de la colección de perros.
func (s *Store) Dogs() []Dog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Dog(nil), s.dogs...)
}

// Adoptions devuelve una copia instantánea de los registros de adopción.
func (s *Store) Adoptions() []AdoptionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AdoptionRecord(nil), s.adoptions...)
}

func (s *Store) DogByID(id string) (Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfDog(id); i >= 0 {
		return s.dogs[i], nil
	}
	return Dog{}, fmt.Errorf("%w: dog %s", ErrNotFound, id)
}

func (s *Store) AdoptionByID(id string) (AdoptionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfAdoption(id); i >= 0 {
		return s.adoptions[i], nil
	}
	return AdoptionRecord{}, fmt.Errorf("%w: adoption %s", ErrNotFound, id)
}

// LastPersistErr expone el fallo de persistencia más reciente (nil si la última
// escritura fue bien). Pensado para que la UI pueda mostrar un aviso de
// durabilidad degradada.
func (s *Store) LastPersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersistErr
}

// AddDog inserta un perro nuevo. El llamador entrega el ID fresco y el estado
// inicial; un ID duplicado es ErrValidation.
func (s *Store) AddDog(ctx context.Context, d Dog) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: dog id required", ErrValidation)
	}

	s.mu.Lock()
	if s.indexOfDog(d.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: dog %s already exists", ErrValidation, d.ID)
	}
	s.dogs = append(s.dogs, d)
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionDogs})
	return nil
}

// UpdateDog reemplaza el registro con el mismo ID y refresca UpdatedAt.
func (s *Store) UpdateDog(ctx context.Context, d Dog) error {
	s.mu.Lock()
	i := s.indexOfDog(d.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: dog %s", ErrNotFound, d.ID)
	}
	d.UpdatedAt = s.now()
	s.dogs[i] = d
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionDogs})
	return nil
}

// DeleteDog elimina el perro. Un ID desconocido es ErrNotFound (elegimos la
// variante estricta). Los registros de adopción que lo referencian quedan
// intactos: la referencia pasa a ser colgante y los lectores deben tolerarla.
func (s *Store) DeleteDog(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOfDog(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: dog %s", ErrNotFound, id)
	}
	s.dogs = append(s.dogs[:i], s.dogs[i+1:]...)
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionDogs})
	return nil
}

// AddAdoption inserta un registro de adopción; mismo contrato que AddDog.
func (s *Store) AddAdoption(ctx context.Context, a AdoptionRecord) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: adoption id required", ErrValidation)
	}

	s.mu.Lock()
	if s.indexOfAdoption(a.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: adoption %s already exists", ErrValidation, a.ID)
	}
	s.adoptions = append(s.adoptions, a)
	s.persistAdoptions(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAdoptions})
	return nil
}

// UpdateAdoption reemplaza el registro con el mismo ID y refresca UpdatedAt.
func (s *Store) UpdateAdoption(ctx context.Context, a AdoptionRecord) error {
	s.mu.Lock()
	i := s.indexOfAdoption(a.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: adoption %s", ErrNotFound, a.ID)
	}
	a.UpdatedAt = s.now()
	s.adoptions[i] = a
	s.persistAdoptions(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAdoptions})
	return nil
}

// indexOfDog requiere el lock tomado.
func (s *Store) indexOfDog(id string) int {
	for i := range s.dogs {
		if s.dogs[i].ID == id {
			return i
		}
	}
	return -1
}

// indexOfAdoption requiere el lock tomado.
func (s *Store) indexOfAdoption(id string) int {
	for i := range s.adoptions {
		if s.adoptions[i].ID == id {
			return i
		}
	}
	return -1
}

// persistDogs escribe la colección de perros; requiere el lock tomado.
// Un fallo no revierte la mutación: queda en el log y en lastPersistErr.
func (s *Store) persistDogs(ctx context.Context) {
	if err := s.persist.SaveDogs(ctx, append([]Dog(nil), s.dogs...)); err != nil {
		s.lastPersistErr = fmt.Errorf("%w: save dogs: %v", ErrPersistence, err)
		s.log.Warn("save dogs failed, in-memory state kept", map[string]any{"error": err.Error()})
		return
	}
	s.lastPersistErr = nil
}

// persistAdoptions escribe la colección de adopciones; requiere el lock tomado.
func (s *Store) persistAdoptions(ctx context.Context) {
	if err := s.persist.SaveAdoptions(ctx, append([]AdoptionRecord(nil), s.adoptions...)); err != nil {
		s.lastPersistErr = fmt.Errorf("%w: save adoptions: %v", ErrPersistence, err)
		s.log.Warn("save adoptions failed, in-memory state kept", map[string]any{"error": err.Error()})
		return
	}
	s.lastPersistErr = nil
}
