package persistence

import "context"

// ArenaLocation records which match a character currently occupies.
type ArenaLocation struct {
	TableID        int64
	ArenaID        int64
	ArenaShortName string
}

// PresenceStore tracks online accounts and characters as rows in the durable
// store, so multiple server instances share one consistent view. Existence of
// a row means online; absence means offline.
//
// Every operation here is deliberately idempotent: duplicate login signals,
// racing cleanup paths, and repeated arena moves must never fail or leave
// duplicate rows. None of these operations return ErrNotFound.
type PresenceStore interface {
	// ClearAllPresence wipes both presence tables. Run at process start:
	// rows surviving an unclean shutdown are ghosts, and real presence is
	// rebuilt as clients reconnect.
	ClearAllPresence(ctx context.Context) error

	// SetAccountOnline marks an account online. A second call for an
	// already-online account is a no-op success.
	SetAccountOnline(ctx context.Context, accountID int64) error

	// SetAccountOffline removes the account presence row if present.
	SetAccountOffline(ctx context.Context, accountID int64) error

	// SetAllAccountsOffline removes every account presence row.
	SetAllAccountsOffline(ctx context.Context) error

	// SetCharacterOnline records a character's current location as a single
	// atomic upsert. A character moving between arenas issues repeated
	// calls and always ends with exactly one row holding the latest
	// location.
	SetCharacterOnline(ctx context.Context, charID int64, loc ArenaLocation) error

	// SetCharacterOffline removes the character presence row if present.
	SetCharacterOffline(ctx context.Context, charID int64) error

	// SetAllCharactersOffline removes every character presence row.
	SetAllCharactersOffline(ctx context.Context) error
}
