package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver sqlite puro Go

	"dog-adoption/internal/adapters/storage/record"
	"dog-adoption/internal/domain/shelter"
)

// Open abre (o crea) la base sqlite y deja lista la tabla de colecciones.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL para lecturas concurrentes sin bloquear al escritor.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		key     TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}

	return db, nil
}

// Persistence guarda cada colección como un blob JSON versionado bajo su clave
// fija. La columna version crece monótonamente en cada escritura: una réplica
// tardía nunca puede pisar un payload más nuevo.
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
		`DELETE FROM collections WHERE key IN (?, ?)`,
		record.DogsKey, record.AdoptionsKey,
	)
	return err
}

func (p *Persistence) get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE key = ?`, key,
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
		INSERT INTO collections (key, version, payload) VALUES (?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = collections.version + 1,
			payload = excluded.payload
	`, key, payload)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Version devuelve el contador de escrituras de una clave (0 si no existe).
// Lo usan los tests para verificar la monotonía.
func (p *Persistence) Version(ctx context.Context, key string) (int64, error) {
	var v int64
	err := p.db.QueryRowContext(ctx,
		`SELECT version FROM collections WHERE key = ?`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}
