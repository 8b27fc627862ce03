package sqlite

import (
	"context"
	"database/sql"

	"github.com/magearena/server/internal/persistence"
)

// RecordMatch inserts one immutable match creation record and returns its
// row id. Validation happens before any store interaction; state transitions
// of an in-progress match are out of scope for this insert-only recorder.
func (s *Store) RecordMatch(ctx context.Context, m persistence.Match) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	tpl := s.template("MatchInsert")
	args, err := bind(tpl, map[string]any{
		"arenaid":              m.ArenaID,
		"tableid":              m.TableID,
		"creation_time":        m.CreationTime.UTC().UnixMilli(),
		"player_count":         m.PlayerCount,
		"highest_player_count": m.HighestPlayerCount,
		"max_players":          m.MaxPlayers,
		"current_state":        m.CurrentState,
		"end_state":            m.EndState,
		"short_name":           m.ShortName,
		"long_name":            m.LongName,
		"founder_charid":       m.FounderCharID,
		"duration":             m.Duration,
		"level_range":          m.LevelRange,
		"mode":                 m.Mode,
		"rules":                m.Rules,
	})
	if err != nil {
		return 0, err
	}

	var matchID int64
	err = s.withConn(ctx, "record match", func(ctx context.Context, conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, tpl.SQL, args...)
		if err != nil {
			return err
		}
		matchID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return matchID, nil
}
