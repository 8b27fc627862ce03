package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeNotFound, "record not found")
	wrapped := fmt.Errorf("load character: %w", Wrap(CodeNotFound, "no such charid", errors.New("sql: no rows")))

	if !errors.Is(wrapped, sentinel) {
		t.Fatal("expected wrapped error to match sentinel by code")
	}
	if errors.Is(wrapped, New(CodeDuplicateName, "duplicate name")) {
		t.Fatal("expected mismatch for different code")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(CodeStoreUnavailable, "store unavailable", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := []struct {
		code Code
		want codes.Code
	}{
		{CodeStoreUnavailable, codes.Unavailable},
		{CodePoolExhausted, codes.Unavailable},
		{CodeNotFound, codes.NotFound},
		{CodeDuplicateName, codes.AlreadyExists},
		{CodeSlotOccupied, codes.AlreadyExists},
		{CodeInvalidDelta, codes.InvalidArgument},
		{CodeInvalidMatch, codes.InvalidArgument},
		{CodeUnknownQuery, codes.Internal},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range cases {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("code %s: expected %v, got %v", tc.code, tc.want, got)
		}
	}
}

func TestTransient(t *testing.T) {
	if !CodeStoreUnavailable.Transient() || !CodePoolExhausted.Transient() {
		t.Fatal("expected availability codes to be transient")
	}
	if CodeNotFound.Transient() {
		t.Fatal("expected not-found to be permanent")
	}
}

func TestToGRPCStatusCarriesReason(t *testing.T) {
	err := WithMetadata(CodeSlotOccupied, "slot already occupied", map[string]string{"slot": "1"})

	st, ok := status.FromError(err.ToGRPCStatus())
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", st.Code())
	}
	if st.Message() != "slot already occupied" {
		t.Fatalf("unexpected message %q", st.Message())
	}
}
