package persistence

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/magearena/server/internal/platform/errors"
)

// StatisticsDelta is the per-counter increment contributed by one combat
// event. Every field must be non-negative; counters only ever grow.
type StatisticsDelta struct {
	Kills        int64
	Deaths       int64
	Raises       int64
	DamageDone   int64
	DamageTaken  int64
	HealingDone  int64
	HealingTaken int64
	Wins         int64
	Losses       int64
}

// Validate rejects malformed deltas before any write is attempted.
func (d StatisticsDelta) Validate() error {
	counters := []struct {
		name  string
		value int64
	}{
		{"kills", d.Kills},
		{"deaths", d.Deaths},
		{"raises", d.Raises},
		{"damagedone", d.DamageDone},
		{"damagetaken", d.DamageTaken},
		{"healingdone", d.HealingDone},
		{"healingtaken", d.HealingTaken},
		{"wins", d.Wins},
		{"losses", d.Losses},
	}
	for _, c := range counters {
		if c.value < 0 {
			return apperrors.WithMetadata(
				apperrors.CodeInvalidDelta,
				fmt.Sprintf("statistics delta %s must be non-negative", c.name),
				map[string]string{"counter": c.name, "value": fmt.Sprintf("%d", c.value)},
			)
		}
	}
	return nil
}

// Statistics is an accumulated ledger row for one character. Week is empty
// for the overall ledger and holds the accumulation window key for the
// weekly one.
type Statistics struct {
	CharID int64
	Week   string
	Hidden bool

	Kills        int64
	Deaths       int64
	Raises       int64
	DamageDone   int64
	DamageTaken  int64
	HealingDone  int64
	HealingTaken int64
	Wins         int64
	Losses       int64
}

// WeekLayout is the wire form of the weekly accumulation window key.
const WeekLayout = "2006-01-02"

// WeekOf derives the accumulation window key for an event timestamp: the
// Monday of the event's ISO week, in UTC. The store itself computes no
// calendars; callers derive the key and pass it in.
func WeekOf(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday-based day index
	monday := t.AddDate(0, 0, -offset)
	return monday.Format(WeekLayout)
}

// StatisticsStore accumulates combat statistics across two independent
// ledgers with identical semantics; the weekly ledger additionally
// partitions by the caller-supplied window key.
type StatisticsStore interface {
	// AccumulateOverall applies one event to the overall ledger as a single
	// atomic insert-or-increment: absent rows are inserted with the delta
	// as initial counters, existing rows add the delta. Hidden is replaced
	// with the supplied value, never merged. Concurrent calls for the same
	// charid never lose an increment.
	AccumulateOverall(ctx context.Context, charID int64, hidden bool, delta StatisticsDelta) error

	// AccumulateWeekly is AccumulateOverall partitioned by week.
	AccumulateWeekly(ctx context.Context, charID int64, week string, hidden bool, delta StatisticsDelta) error

	// OverallStatistics reads the overall ledger row. ErrNotFound when the
	// character has never accumulated.
	OverallStatistics(ctx context.Context, charID int64) (Statistics, error)

	// WeeklyStatistics reads one weekly ledger row.
	WeeklyStatistics(ctx context.Context, charID int64, week string) (Statistics, error)

	// DeleteStatistics removes a character's history from both ledgers.
	// Absent rows are success.
	DeleteStatistics(ctx context.Context, charID int64) error
}
