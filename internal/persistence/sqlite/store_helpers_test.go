package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/magearena/server/internal/persistence"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.sqlite")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func countRows(t *testing.T, store *Store, table string) int64 {
	t.Helper()
	var count int64
	if err := store.sqlDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("count rows in %s: %v", table, err)
	}
	return count
}

// testCharacter builds a fully populated character so round trips exercise
// every column of the wide row.
func testCharacter(accountID int64, slot int, name string) persistence.Character {
	c := persistence.Character{
		AccountID: accountID,
		Slot:      slot,
		Name:      name,

		Agility:      12,
		Constitution: 14,
		Memory:       9,
		Reasoning:    11,
		Discipline:   13,
		Empathy:      8,
		Intuition:    10,
		Presence:     7,
		Quickness:    15,
		Strength:     16,

		SpentStat:  42,
		BonusStat:  3,
		BonusSpent: 1,

		Class:      2,
		Level:      17,
		SpellPicks: 4,
		Model:      6,
		Experience: 125000,
	}
	for i := range c.Abilities {
		c.Abilities[i] = persistence.AbilitySlot{List: i + 1, Level: (i + 1) * 2}
	}
	for i := range c.SpellKey {
		c.SpellKey[i] = 100 + i
	}
	return c
}
