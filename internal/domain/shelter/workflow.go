package shelter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrialWindow es la ventana fija de prueba: 10 días exactos (240h),
// sin ajuste por calendario.
const TrialWindow = 10 * 24 * time.Hour

// StartTrial inicia el período de prueba de un perro Available.
//
// Crea el AdoptionRecord Active y pasa el perro a On Trial con la ventana
// calculada; ambas escrituras se comprometen bajo la misma toma del lock, así
// que ningún lector observa el estado intermedio. Devuelve el registro creado.
func (s *Store) StartTrial(ctx context.Context, dogID string, c Customer) (AdoptionRecord, error) {
	s.mu.Lock()
	i := s.indexOfDog(dogID)
	if i < 0 {
		s.mu.Unlock()
		return AdoptionRecord{}, fmt.Errorf("%w: dog %s", ErrNotFound, dogID)
	}
	if s.dogs[i].Status != StatusAvailable {
		s.mu.Unlock()
		return AdoptionRecord{}, ErrDogNotAvailable
	}

	now := s.now()
	start := now
	end := now.Add(TrialWindow)

	rec := AdoptionRecord{
		ID:            uuid.NewString(),
		DogID:         dogID,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		CustomerPhone: c.Phone,
		StartDate:     start,
		EndDate:       end,
		Status:        AdoptionActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.adoptions = append(s.adoptions, rec)

	d := s.dogs[i]
	d.Status = StatusOnTrial
	d.TrialStartDate = &start
	d.TrialEndDate = &end
	d.UpdatedAt = now
	s.dogs[i] = d

	s.persistAdoptions(ctx)
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAdoptions})
	s.notify(Change{Collection: CollectionDogs})
	return rec, nil
}

// CompleteTrial cierra un período de prueba con la decisión del cliente.
//
// Adopt: perro → Adopted con AdoptedBy = nombre del cliente.
// Return: perro → Available. En ambos casos se limpia la ventana de prueba.
// Registro o perro ausente es ErrNotFound (somos estrictos donde el
// comportamiento de referencia hacía un no-op silencioso).
//
// El vencimiento de EndDate no dispara nada por sí solo: no hay scheduler,
// solo esta llamada explícita transiciona el registro.
func (s *Store) CompleteTrial(ctx context.Context, adoptionID string, decision Decision) error {
	if decision != DecisionAdopt && decision != DecisionReturn {
		return fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	s.mu.Lock()
	ai := s.indexOfAdoption(adoptionID)
	if ai < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: adoption %s", ErrNotFound, adoptionID)
	}
	rec := s.adoptions[ai]

	di := s.indexOfDog(rec.DogID)
	if di < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: dog %s referenced by adoption %s", ErrNotFound, rec.DogID, adoptionID)
	}

	now := s.now()
	decided := now

	rec.Status = AdoptionCompleted
	rec.Decision = decision
	rec.DecisionDate = &decided
	rec.UpdatedAt = now
	s.adoptions[ai] = rec

	d := s.dogs[di]
	if decision == DecisionAdopt {
		d.Status = StatusAdopted
		d.AdoptedBy = rec.CustomerName
	} else {
		d.Status = StatusAvailable
		d.AdoptedBy = ""
	}
	d.TrialStartDate = nil
	d.TrialEndDate = nil
	d.UpdatedAt = now
	s.dogs[di] = d

	s.persistAdoptions(ctx)
	s.persistDogs(ctx)
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAdoptions})
	s.notify(Change{Collection: CollectionDogs})
	return nil
}
