package persistence

import (
	"context"
	"time"

	apperrors "github.com/magearena/server/internal/platform/errors"
)

// Match is the immutable creation record for one arena session. State
// transitions of an in-progress match are an extension point; this core only
// records creation.
type Match struct {
	ArenaID            int64
	TableID            int64
	CreationTime       time.Time
	PlayerCount        int
	HighestPlayerCount int
	MaxPlayers         int
	CurrentState       int
	EndState           int
	ShortName          string
	LongName           string
	FounderCharID      int64
	Duration           int
	LevelRange         int
	Mode               int
	Rules              int
}

// Validate rejects incomplete match records before any store interaction.
func (m Match) Validate() error {
	if m.ArenaID <= 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidMatch,
			"match arenaid is required",
			map[string]string{"field": "arenaid"})
	}
	if m.TableID <= 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidMatch,
			"match tableid is required",
			map[string]string{"field": "tableid"})
	}
	if m.MaxPlayers <= 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidMatch,
			"match max_players must be positive",
			map[string]string{"field": "max_players"})
	}
	return nil
}

// MatchStore records match lifecycle rows.
type MatchStore interface {
	// RecordMatch inserts one immutable creation record and returns its
	// row id. ErrInvalidMatch when required fields are missing.
	RecordMatch(ctx context.Context, m Match) (int64, error)
}
