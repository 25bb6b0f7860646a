// Package testutil provides shared test fixtures: generated records and
// seeded in-memory databases.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/storage"
)

// Now is a fixed clock later than every generated record.
func Now() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

// Records returns count generated records for seed.
func Records(count int, seed int64) []model.SalesRecord {
	return source.Generate(source.GeneratorConfig{Count: count, Seed: seed, Year: source.DefaultYear})
}

// SetupTestDB creates a migrated in-memory database holding records. It is
// closed when the test ends.
func SetupTestDB(t *testing.T, records []model.SalesRecord) *storage.SQLiteStorage {
	t.Helper()

	ctx := context.Background()
	store, err := storage.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	if len(records) > 0 {
		if err := store.SaveRecords(ctx, records); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}
	return store
}
