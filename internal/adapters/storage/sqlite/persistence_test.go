package sqlite

import (
	"context"
	"testing"
	"time"

	"dog-adoption/internal/adapters/storage/record"
	"dog-adoption/internal/domain/shelter"
)

func newTestPersistence(t *testing.T) *Persistence {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	// :memory: da una base distinta por conexión del pool
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return NewPersistence(db)
}

func TestPersistence_RoundTrip(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	dogs := []shelter.Dog{
		{ID: "d1", Name: "Milo", Breed: "Beagle", Age: 3, Size: shelter.SizeMedium,
			Gender: shelter.GenderMale, Status: shelter.StatusAvailable, CreatedAt: now, UpdatedAt: now},
		{ID: "d2", Name: "Luna", Breed: "German Shepherd", Age: 2, Size: shelter.SizeLarge,
			Gender: shelter.GenderFemale, Status: shelter.StatusAvailable, CreatedAt: now, UpdatedAt: now},
	}

	if err := p.SaveDogs(ctx, dogs); err != nil {
		t.Fatalf("SaveDogs error: %v", err)
	}
	got, err := p.LoadDogs(ctx)
	if err != nil {
		t.Fatalf("LoadDogs error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "d1" || got[1].ID != "d2" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got[0].Name != "Milo" || !got[0].CreatedAt.Equal(now) {
		t.Fatalf("field values not preserved: %+v", got[0])
	}
}

func TestPersistence_MissingKeyLoadsEmpty(t *testing.T) {
	p := newTestPersistence(t)

	got, err := p.LoadDogs(context.Background())
	if err != nil {
		t.Fatalf("LoadDogs error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestPersistence_VersionGrowsMonotonically(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := p.SaveDogs(ctx, []shelter.Dog{{ID: "d1"}}); err != nil {
			t.Fatalf("SaveDogs #%d error: %v", i+1, err)
		}
	}

	v, err := p.Version(ctx, record.DogsKey)
	if err != nil {
		t.Fatalf("Version error: %v", err)
	}
	if v != 3 {
		t.Fatalf("expected version 3 after 3 saves, got %d", v)
	}
}

func TestPersistence_ClearAll(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	_ = p.SaveDogs(ctx, []shelter.Dog{{ID: "d1"}})
	_ = p.SaveAdoptions(ctx, []shelter.AdoptionRecord{{ID: "a1", DogID: "d1"}})

	if err := p.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll error: %v", err)
	}

	dogs, _ := p.LoadDogs(ctx)
	adoptions, _ := p.LoadAdoptions(ctx)
	if len(dogs) != 0 || len(adoptions) != 0 {
		t.Fatalf("expected both keys removed, got %d dogs %d adoptions", len(dogs), len(adoptions))
	}
}
