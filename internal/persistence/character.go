package persistence

import "context"

// AbilitySlots is the number of ability-list positions a character carries.
const AbilitySlots = 10

// SpellKeys is the number of bindable spell hotkeys per character.
const SpellKeys = 8

// AbilitySlot pairs an ability list with the level trained in it.
type AbilitySlot struct {
	List  int
	Level int
}

// Character is the full durable character record. The row is always written
// and read as a complete unit; partial-field updates are not part of the
// contract, so the repository and schema cannot drift column by column.
type Character struct {
	CharID    int64
	AccountID int64
	Slot      int
	Name      string

	Agility      int
	Constitution int
	Memory       int
	Reasoning    int
	Discipline   int
	Empathy      int
	Intuition    int
	Presence     int
	Quickness    int
	Strength     int

	SpentStat  int
	BonusStat  int
	BonusSpent int

	Abilities [AbilitySlots]AbilitySlot

	Class      int
	Level      int
	SpellPicks int
	Model      int
	Experience int64

	SpellKey [SpellKeys]int

	// OpLevel marks operator/GM characters. Non-zero keeps a character off
	// every leaderboard.
	OpLevel int
}

// DefaultLeaderboardSize is the number of rows TopByClass returns when the
// caller passes a non-positive limit.
const DefaultLeaderboardSize = 10

// CharacterStore is the repository contract for character rows.
type CharacterStore interface {
	// FindBySlot fetches the character in a roster slot. ErrNotFound when
	// the slot is empty.
	FindBySlot(ctx context.Context, accountID int64, slot int) (Character, error)

	// FindByName fetches a character by its globally unique name.
	FindByName(ctx context.Context, name string) (Character, error)

	// FindByNameAndAccount fetches a character owned by a specific account.
	FindByNameAndAccount(ctx context.Context, name string, accountID int64) (Character, error)

	// TopByClass returns up to limit characters of a class ordered by
	// experience descending. Operator characters (oplevel != 0) never
	// appear in the results.
	TopByClass(ctx context.Context, class int, limit int) ([]Character, error)

	// SaveNew inserts a full character row and returns the assigned charid.
	// ErrDuplicateName and ErrSlotOccupied report constraint violations the
	// caller is expected to resolve.
	SaveNew(ctx context.Context, c Character) (int64, error)

	// SaveExisting rewrites the full row keyed by charid. ErrNotFound when
	// the character was never created; no row is inserted as a side effect.
	SaveExisting(ctx context.Context, c Character) error

	// DeleteBySlot removes exactly one character owned by the account.
	// ErrNotFound when nothing was deleted, so callers can detect stale
	// references.
	DeleteBySlot(ctx context.Context, accountID int64, name string) error
}
