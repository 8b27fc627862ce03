package sqlite

import (
	"context"
	"testing"
)

func TestIsSerialBanned(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	banned, err := store.IsSerialBanned(ctx, "AA-BB-CC")
	if err != nil {
		t.Fatalf("check clean serial: %v", err)
	}
	if banned {
		t.Fatal("expected unknown serial to be clean")
	}

	if _, err := store.sqlDB.Exec("INSERT INTO banned_serials (serial) VALUES (?)", "AA-BB-CC"); err != nil {
		t.Fatalf("seed banned serial: %v", err)
	}

	banned, err = store.IsSerialBanned(ctx, "AA-BB-CC")
	if err != nil {
		t.Fatalf("check banned serial: %v", err)
	}
	if !banned {
		t.Fatal("expected serial to be banned")
	}
}

func TestExpMultiplier(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	value, err := store.ExpMultiplier(ctx)
	if err != nil {
		t.Fatalf("read default multiplier: %v", err)
	}
	if value != 1.0 {
		t.Fatalf("expected migration-seeded multiplier 1.0, got %v", value)
	}

	if err := store.SetExpMultiplier(ctx, 2.5); err != nil {
		t.Fatalf("set multiplier: %v", err)
	}
	value, err = store.ExpMultiplier(ctx)
	if err != nil {
		t.Fatalf("read updated multiplier: %v", err)
	}
	if value != 2.5 {
		t.Fatalf("expected multiplier 2.5, got %v", value)
	}
}
