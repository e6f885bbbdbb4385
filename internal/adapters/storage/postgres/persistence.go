package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dog-adoption/internal/adapters/storage/record"
	"dog-adoption/internal/domain/shelter"
)

// Persistence implementa el mismo contrato clave-valor que el backend sqlite,
// para despliegues donde el estado vive fuera de la máquina del proceso.
type Persistence struct {
	db *sql.DB
}

func NewPersistence(db *sql.DB) *Persistence {
	return &Persistence{db: db}
}

var _ shelter.Persistence = (*Persistence)(nil)

func (p *Persistence) LoadDogs(ctx context.Context) ([]shelter.Dog, error) {
	payload, err := p.get(ctx, record.DogsKey)
	if err != nil || payload == nil {
		return nil, err
	}
	return record.Decode[shelter.Dog](payload)
}

func (p *Persistence) SaveDogs(ctx context.Context, dogs []shelter.Dog) error {
	payload, err := record.Encode(dogs)
	if err != nil {
		return err
	}
	return p.put(ctx, record.DogsKey, payload)
}

func (p *Persistence) LoadAdoptions(ctx context.Context) ([]shelter.AdoptionRecord, error) {
	payload, err := p.get(ctx, record.AdoptionsKey)
	if err != nil || payload == nil {
		return nil, err
	}
	return record.Decode[shelter.AdoptionRecord](payload)
}

func (p *Persistence) SaveAdoptions(ctx context.Context, adoptions []shelter.AdoptionRecord) error {
	payload, err := record.Encode(adoptions)
	if err != nil {
		return err
	}
	return p.put(ctx, record.AdoptionsKey, payload)
}

func (p *Persistence) ClearAll(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM collections WHERE key IN ($1, $2)`,
		record.DogsKey, record.AdoptionsKey,
	)
	return err
}

func (p *Persistence) get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE key = $1`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, nil
}

func (p *Persistence) put(ctx context.Context, key string, payload []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO collections (key, version, payload) VALUES ($1, 1, $2)
		ON CONFLICT (key) DO UPDATE SET
			version = collections.version + 1,
			payload = EXCLUDED.payload
	`, key, payload)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
