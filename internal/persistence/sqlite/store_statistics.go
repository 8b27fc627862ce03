package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/magearena/server/internal/persistence"
	apperrors "github.com/magearena/server/internal/platform/errors"
)

// Statistics aggregator methods. Both ledgers accumulate through a single
// insert-or-increment statement; the store's conflict resolution is the only
// serialization point, so concurrent events for the same character never
// lose an increment. An application-level read-then-write would reintroduce
// the lost-update race and is deliberately absent here.

func deltaValues(charID int64, hidden bool, delta persistence.StatisticsDelta) map[string]any {
	return map[string]any{
		"charid":       charID,
		"hidden":       hidden,
		"kills":        delta.Kills,
		"deaths":       delta.Deaths,
		"raises":       delta.Raises,
		"damagedone":   delta.DamageDone,
		"damagetaken":  delta.DamageTaken,
		"healingdone":  delta.HealingDone,
		"healingtaken": delta.HealingTaken,
		"wins":         delta.Wins,
		"losses":       delta.Losses,
	}
}

func (s *Store) accumulate(ctx context.Context, op, query string, values map[string]any) error {
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

// AccumulateOverall applies one combat event to the overall ledger.
func (s *Store) AccumulateOverall(ctx context.Context, charID int64, hidden bool, delta persistence.StatisticsDelta) error {
	if err := delta.Validate(); err != nil {
		return err
	}
	return s.accumulate(ctx, "accumulate overall statistics", "StatisticsOverallAccumulate",
		deltaValues(charID, hidden, delta))
}

// AccumulateWeekly applies one combat event to the weekly ledger under the
// caller-supplied accumulation window key.
func (s *Store) AccumulateWeekly(ctx context.Context, charID int64, week string, hidden bool, delta persistence.StatisticsDelta) error {
	if err := delta.Validate(); err != nil {
		return err
	}
	if week == "" {
		return apperrors.New(apperrors.CodeInvalidDelta, "weekly statistics require a window key")
	}
	values := deltaValues(charID, hidden, delta)
	values["date"] = week
	return s.accumulate(ctx, "accumulate weekly statistics", "StatisticsWeeklyAccumulate", values)
}

func scanStatistics(row rowScanner, withWeek bool) (persistence.Statistics, error) {
	var stats persistence.Statistics
	dest := []any{&stats.CharID}
	if withWeek {
		dest = append(dest, &stats.Week)
	}
	dest = append(dest,
		&stats.Hidden,
		&stats.Kills, &stats.Deaths, &stats.Raises,
		&stats.DamageDone, &stats.DamageTaken,
		&stats.HealingDone, &stats.HealingTaken,
		&stats.Wins, &stats.Losses,
	)
	if err := row.Scan(dest...); err != nil {
		return persistence.Statistics{}, err
	}
	return stats, nil
}

func (s *Store) getStatistics(ctx context.Context, op, query string, values map[string]any, withWeek bool) (persistence.Statistics, error) {
	tpl := s.template(query)
	args, err := bind(tpl, values)
	if err != nil {
		return persistence.Statistics{}, err
	}

	var stats persistence.Statistics
	err = s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, tpl.SQL, args...)
		scanned, err := scanStatistics(row, withWeek)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			return err
		}
		stats = scanned
		return nil
	})
	if err != nil {
		return persistence.Statistics{}, err
	}
	return stats, nil
}

// OverallStatistics reads the overall ledger row for a character.
func (s *Store) OverallStatistics(ctx context.Context, charID int64) (persistence.Statistics, error) {
	return s.getStatistics(ctx, "get overall statistics", "StatisticsOverallGet",
		map[string]any{"charid": charID}, false)
}

// WeeklyStatistics reads one weekly ledger row for a character.
func (s *Store) WeeklyStatistics(ctx context.Context, charID int64, week string) (persistence.Statistics, error) {
	return s.getStatistics(ctx, "get weekly statistics", "StatisticsWeeklyGet",
		map[string]any{"charid": charID, "date": week}, true)
}

// DeleteStatistics removes a character's accumulated history from both
// ledgers. Used when the character itself is deleted; absent rows are
// success.
func (s *Store) DeleteStatistics(ctx context.Context, charID int64) error {
	overall := s.template("StatisticsOverallDelete")
	weekly := s.template("StatisticsWeeklyDelete")
	args, err := bind(overall, map[string]any{"charid": charID})
	if err != nil {
		return err
	}

	return s.withConn(ctx, "delete statistics", func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, overall.SQL, args...); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, weekly.SQL, args...); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}
