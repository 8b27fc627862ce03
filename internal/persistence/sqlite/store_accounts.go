package sqlite

import (
	"context"
	"database/sql"
	"errors"
)

// IsSerialBanned reports whether a hardware serial is in the banned set.
func (s *Store) IsSerialBanned(ctx context.Context, serial string) (bool, error) {
	tpl := s.template("BannedSerialExists")
	args, err := bind(tpl, map[string]any{"serial": serial})
	if err != nil {
		return false, err
	}

	var banned bool
	err = s.withConn(ctx, "check banned serial", func(ctx context.Context, conn *sql.Conn) error {
		var found string
		err := conn.QueryRowContext(ctx, tpl.SQL, args...).Scan(&found)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		banned = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return banned, nil
}

// ExpMultiplier returns the current experience multiplier. The settings row
// is seeded by migration, so a missing row indicates schema damage and is
// surfaced as-is.
func (s *Store) ExpMultiplier(ctx context.Context) (float64, error) {
	tpl := s.template("ServerSettingsGetExpMultiplier")

	var value float64
	err := s.withConn(ctx, "get exp multiplier", func(ctx context.Context, conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, tpl.SQL).Scan(&value)
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// SetExpMultiplier overwrites the experience multiplier.
func (s *Store) SetExpMultiplier(ctx context.Context, value float64) error {
	tpl := s.template("ServerSettingsSetExpMultiplier")
	args, err := bind(tpl, map[string]any{"exp_multiplier": value})
	if err != nil {
		return err
	}

	return s.withConn(ctx, "set exp multiplier", func(ctx context.Context, conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, tpl.SQL, args...)
		return err
	})
}
