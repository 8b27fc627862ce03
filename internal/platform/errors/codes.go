// Package errors provides structured error handling for the persistence core.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Store availability errors
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodePoolExhausted    Code = "POOL_EXHAUSTED"

	// Record errors
	CodeNotFound Code = "NOT_FOUND"

	// Character constraint errors
	CodeDuplicateName Code = "CHARACTER_DUPLICATE_NAME"
	CodeSlotOccupied  Code = "CHARACTER_SLOT_OCCUPIED"

	// Input validation errors
	CodeInvalidDelta     Code = "STATISTICS_INVALID_DELTA"
	CodeInvalidMatch     Code = "MATCH_INVALID"
	CodeInvalidCharacter Code = "CHARACTER_INVALID"

	// Catalog errors
	CodeUnknownQuery Code = "UNKNOWN_QUERY"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// Unavailable - transient store failures, retryable with backoff
	case CodeStoreUnavailable,
		CodePoolExhausted:
		return codes.Unavailable

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeDuplicateName,
		CodeSlotOccupied:
		return codes.AlreadyExists

	// InvalidArgument - validation failures, bad input
	case CodeInvalidDelta,
		CodeInvalidMatch,
		CodeInvalidCharacter:
		return codes.InvalidArgument

	// Internal - catalog misconfiguration is a programming error
	case CodeUnknownQuery:
		return codes.Internal

	default:
		return codes.Internal
	}
}

// Transient reports whether callers should retry the failed operation
// with backoff instead of surfacing it.
func (c Code) Transient() bool {
	return c == CodeStoreUnavailable || c == CodePoolExhausted
}
