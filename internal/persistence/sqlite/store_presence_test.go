package sqlite

import (
	"context"
	"testing"

	"github.com/magearena/server/internal/persistence"
)

func TestSetAccountOnlineIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetAccountOnline(ctx, 100); err != nil {
		t.Fatalf("set account online: %v", err)
	}
	// Duplicate login-completion signal must be a no-op success.
	if err := store.SetAccountOnline(ctx, 100); err != nil {
		t.Fatalf("repeat set account online: %v", err)
	}
	if rows := countRows(t, store, "online_accounts"); rows != 1 {
		t.Fatalf("expected exactly one presence row, got %d", rows)
	}
}

func TestSetAccountOfflineTolerant(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Deleting a row that never existed is success, not NotFound.
	if err := store.SetAccountOffline(ctx, 100); err != nil {
		t.Fatalf("offline absent account: %v", err)
	}

	if err := store.SetAccountOnline(ctx, 100); err != nil {
		t.Fatalf("set account online: %v", err)
	}
	if err := store.SetAccountOffline(ctx, 100); err != nil {
		t.Fatalf("set account offline: %v", err)
	}
	if err := store.SetAccountOffline(ctx, 100); err != nil {
		t.Fatalf("repeat set account offline: %v", err)
	}
	if rows := countRows(t, store, "online_accounts"); rows != 0 {
		t.Fatalf("expected empty presence table, got %d rows", rows)
	}
}

func TestSetCharacterOnlineUpsertsLatestLocation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := persistence.ArenaLocation{TableID: 1, ArenaID: 10, ArenaShortName: "A1"}
	second := persistence.ArenaLocation{TableID: 2, ArenaID: 20, ArenaShortName: "A2"}

	if err := store.SetCharacterOnline(ctx, 7, first); err != nil {
		t.Fatalf("set character online: %v", err)
	}
	if err := store.SetCharacterOnline(ctx, 7, second); err != nil {
		t.Fatalf("move character: %v", err)
	}

	if rows := countRows(t, store, "online_characters"); rows != 1 {
		t.Fatalf("expected exactly one presence row, got %d", rows)
	}

	var loc persistence.ArenaLocation
	err := store.sqlDB.QueryRow(
		"SELECT tableid, arenaid, arenashortname FROM online_characters WHERE charid = 7",
	).Scan(&loc.TableID, &loc.ArenaID, &loc.ArenaShortName)
	if err != nil {
		t.Fatalf("read presence row: %v", err)
	}
	if loc != second {
		t.Fatalf("expected latest location %+v, got %+v", second, loc)
	}
}

func TestSetCharacterOfflineIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	loc := persistence.ArenaLocation{TableID: 1, ArenaID: 10, ArenaShortName: "A1"}
	if err := store.SetCharacterOnline(ctx, 7, loc); err != nil {
		t.Fatalf("set character online: %v", err)
	}

	if err := store.SetCharacterOffline(ctx, 7); err != nil {
		t.Fatalf("set character offline: %v", err)
	}
	if err := store.SetCharacterOffline(ctx, 7); err != nil {
		t.Fatalf("repeat set character offline: %v", err)
	}
	if rows := countRows(t, store, "online_characters"); rows != 0 {
		t.Fatalf("expected empty presence table, got %d rows", rows)
	}
}

func TestClearAllPresence(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if err := store.SetAccountOnline(ctx, i); err != nil {
			t.Fatalf("seed account %d: %v", i, err)
		}
		loc := persistence.ArenaLocation{TableID: i, ArenaID: i * 10, ArenaShortName: "A"}
		if err := store.SetCharacterOnline(ctx, i, loc); err != nil {
			t.Fatalf("seed character %d: %v", i, err)
		}
	}

	if err := store.ClearAllPresence(ctx); err != nil {
		t.Fatalf("clear all presence: %v", err)
	}

	if rows := countRows(t, store, "online_accounts"); rows != 0 {
		t.Fatalf("expected online_accounts cleared, got %d rows", rows)
	}
	if rows := countRows(t, store, "online_characters"); rows != 0 {
		t.Fatalf("expected online_characters cleared, got %d rows", rows)
	}

	// Recovery on an already-clean store is also success.
	if err := store.ClearAllPresence(ctx); err != nil {
		t.Fatalf("clear empty presence: %v", err)
	}
}

func TestSetAllOffline(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 2; i++ {
		if err := store.SetAccountOnline(ctx, i); err != nil {
			t.Fatalf("seed account %d: %v", i, err)
		}
		loc := persistence.ArenaLocation{TableID: 1, ArenaID: 1, ArenaShortName: "A"}
		if err := store.SetCharacterOnline(ctx, i, loc); err != nil {
			t.Fatalf("seed character %d: %v", i, err)
		}
	}

	if err := store.SetAllAccountsOffline(ctx); err != nil {
		t.Fatalf("set all accounts offline: %v", err)
	}
	if err := store.SetAllCharactersOffline(ctx); err != nil {
		t.Fatalf("set all characters offline: %v", err)
	}

	if rows := countRows(t, store, "online_accounts"); rows != 0 {
		t.Fatalf("expected no online accounts, got %d", rows)
	}
	if rows := countRows(t, store, "online_characters"); rows != 0 {
		t.Fatalf("expected no online characters, got %d", rows)
	}
}
