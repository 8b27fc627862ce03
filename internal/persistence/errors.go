package persistence

import (
	apperrors "github.com/magearena/server/internal/platform/errors"
)

// ErrNotFound indicates a requested record is missing where presence was
// required. Presence-tracker deletes never return it; character saves and
// deletes do, so callers can detect stale references.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrStoreUnavailable indicates a transient connection or timeout failure.
// Callers retry with backoff and must not assume a timed-out write happened.
var ErrStoreUnavailable = apperrors.New(apperrors.CodeStoreUnavailable, "store unavailable")

// ErrPoolExhausted indicates the bounded wait for a free connection expired.
var ErrPoolExhausted = apperrors.New(apperrors.CodePoolExhausted, "connection pool exhausted")

// ErrDuplicateName indicates a character insert violated the global name
// uniqueness constraint. Recoverable: the caller prompts for another name.
var ErrDuplicateName = apperrors.New(apperrors.CodeDuplicateName, "character name already taken")

// ErrSlotOccupied indicates a character insert targeted an (account, slot)
// pair that already holds a character.
var ErrSlotOccupied = apperrors.New(apperrors.CodeSlotOccupied, "character slot already occupied")

// ErrInvalidDelta indicates a statistics event carried a negative counter.
// Rejected before any store interaction.
var ErrInvalidDelta = apperrors.New(apperrors.CodeInvalidDelta, "statistics delta must be non-negative")

// ErrInvalidMatch indicates a match record is missing required fields.
// Rejected before any store interaction.
var ErrInvalidMatch = apperrors.New(apperrors.CodeInvalidMatch, "match record is invalid")

// ErrUnknownQuery indicates a catalog lookup for a name that was never
// defined. This is a misconfiguration, fatal at startup or first use.
var ErrUnknownQuery = apperrors.New(apperrors.CodeUnknownQuery, "unknown query name")
