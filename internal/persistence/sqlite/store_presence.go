package sqlite

import (
	"context"
	"database/sql"

	"github.com/magearena/server/internal/persistence"
)

// Presence tracker methods. Presence rows are ephemeral process state; every
// operation is idempotent and none of them report ErrNotFound, because
// callers legitimately race their own cleanup paths.

// execPresence runs a presence statement and ignores the affected-row count.
func (s *Store) execPresence(ctx context.Context, op, query string, values map[string]any) error {
	tpl := s.template(query)
	args, err := bind(tpl, values)
	if err != nil {
		return err
	}
	return s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, tpl.SQL, args...)
		return err
	})
}

// ClearAllPresence wipes both presence tables in one transaction. Run at
// process start so "online" ghosts from an unclean shutdown never survive a
// restart; real presence is rebuilt as clients reconnect.
func (s *Store) ClearAllPresence(ctx context.Context) error {
	accounts := s.template("OnlineAccountSetAllOffline")
	characters := s.template("OnlineCharacterSetAllOffline")

	return s.withConn(ctx, "clear all presence", func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, characters.SQL); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, accounts.SQL); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

// SetAccountOnline marks an account online. Duplicate login-completion
// signals are a no-op success.
func (s *Store) SetAccountOnline(ctx context.Context, accountID int64) error {
	return s.execPresence(ctx, "set account online", "OnlineAccountSetOnline", map[string]any{
		"accountid": accountID,
	})
}

// SetAccountOffline removes the account presence row if present.
func (s *Store) SetAccountOffline(ctx context.Context, accountID int64) error {
	return s.execPresence(ctx, "set account offline", "OnlineAccountSetOffline", map[string]any{
		"accountid": accountID,
	})
}

// SetAllAccountsOffline removes every account presence row.
func (s *Store) SetAllAccountsOffline(ctx context.Context) error {
	return s.execPresence(ctx, "set all accounts offline", "OnlineAccountSetAllOffline", map[string]any{})
}

// SetCharacterOnline upserts the character's current location. A character
// moving between arenas issues repeated calls; the single-statement conflict
// clause guarantees exactly one row holding the latest location, with no
// torn mix of old and new fields.
func (s *Store) SetCharacterOnline(ctx context.Context, charID int64, loc persistence.ArenaLocation) error {
	return s.execPresence(ctx, "set character online", "OnlineCharacterSetOnline", map[string]any{
		"charid":         charID,
		"tableid":        loc.TableID,
		"arenaid":        loc.ArenaID,
		"arenashortname": loc.ArenaShortName,
	})
}

// SetCharacterOffline removes the character presence row if present.
func (s *Store) SetCharacterOffline(ctx context.Context, charID int64) error {
	return s.execPresence(ctx, "set character offline", "OnlineCharacterSetOffline", map[string]any{
		"charid": charID,
	})
}

// SetAllCharactersOffline removes every character presence row.
func (s *Store) SetAllCharactersOffline(ctx context.Context) error {
	return s.execPresence(ctx, "set all characters offline", "OnlineCharacterSetAllOffline", map[string]any{})
}
