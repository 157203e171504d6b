package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrOutOfBounds", ErrOutOfBounds, ErrOutOfBounds},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrNoLegalMoves", ErrNoLegalMoves, ErrNoLegalMoves},
		{"ErrInvalidPosition", ErrInvalidPosition, ErrInvalidPosition},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrRandomBoardExhausted", ErrRandomBoardExhausted, ErrRandomBoardExhausted},
		{"ErrGameNotFound", ErrGameNotFound, ErrGameNotFound},
		{"ErrUnknownPlayer", ErrUnknownPlayer, ErrUnknownPlayer},
		{"ErrUnknownAsset", ErrUnknownAsset, ErrUnknownAsset},
		{"ErrGameOver", ErrGameOver, ErrGameOver},
		{"ErrNotYourTurn", ErrNotYourTurn, ErrNotYourTurn},
		{"ErrNothingToUndo", ErrNothingToUndo, ErrNothingToUndo},
		{"ErrTooManyGames", ErrTooManyGames, ErrTooManyGames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			if errors.Is(tt.err, ErrIllegalMove) != (tt.sentinel == ErrIllegalMove) {
				t.Errorf("%v should only match itself", tt.err)
			}
		})
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to load position: %w", ErrInvalidFEN)

	if !Is(wrapped, ErrInvalidFEN) {
		t.Errorf("Is(wrapped, ErrInvalidFEN) = false, want true")
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
		want     string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:      ErrIllegalMove,
				Alliance: "White",
				MoveText: "e2e5",
				FEN:      "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
			},
			contains: []string{"white", `"e2e5"`, "4k3/8", "illegal move"},
		},
		{
			name: "minimal context",
			err:  &MoveError{Err: ErrIllegalMove},
			want: "illegal move",
		},
		{
			name: "no underlying error",
			err:  &MoveError{MoveText: "a7a8k"},
			want: `move "a7a8k"`,
		},
		{
			name: "empty",
			err:  &MoveError{},
			want: "move error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			if tt.want != "" && msg != tt.want {
				t.Errorf("MoveError.Error() = %q, want %q", msg, tt.want)
			}
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

func TestMoveError_Unwrap(t *testing.T) {
	err := &MoveError{Err: ErrIllegalMove, MoveText: "e1g1"}

	if !errors.Is(err, ErrIllegalMove) {
		t.Error("errors.Is(MoveError, ErrIllegalMove) = false, want true")
	}
	if errors.Is(err, ErrInvalidFEN) {
		t.Error("errors.Is(MoveError, ErrInvalidFEN) = true, want false")
	}
}

func TestMoveError_As(t *testing.T) {
	wrapped := fmt.Errorf("session: %w", &MoveError{Err: ErrIllegalMove, MoveText: "e7e5", Alliance: "Black"})

	var moveErr *MoveError
	if !As(wrapped, &moveErr) {
		t.Fatal("As(wrapped, &MoveError) = false, want true")
	}
	if moveErr.MoveText != "e7e5" || moveErr.Alliance != "Black" {
		t.Errorf("unexpected MoveError fields: %+v", moveErr)
	}
}

func TestPositionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *PositionError
		want string
	}{
		{
			name: "field and square with expectation",
			err:  &PositionError{Err: ErrInvalidFEN, Field: "en passant", Square: "e3", Expected: "White pawn on e4"},
			want: "en passant e3: expected White pawn on e4: invalid FEN string",
		},
		{
			name: "expected and got",
			err:  &PositionError{Err: ErrInvalidPosition, Field: "Black king", Expected: "1", Got: "2"},
			want: "Black king: expected 1, got 2: invalid position",
		},
		{
			name: "square only with got",
			err:  &PositionError{Square: "h9", Got: "empty square"},
			want: "h9: unexpected empty square",
		},
		{
			name: "error only",
			err:  &PositionError{Err: ErrInvalidPosition},
			want: "invalid position",
		},
		{
			name: "empty",
			err:  &PositionError{},
			want: "position error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("PositionError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositionError_Unwrap(t *testing.T) {
	err := &PositionError{Err: ErrInvalidPosition, Field: "White king"}

	if !errors.Is(err, ErrInvalidPosition) {
		t.Error("errors.Is(PositionError, ErrInvalidPosition) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNoLegalMoves, "best move")

	if !errors.Is(wrapped, ErrNoLegalMoves) {
		t.Error("Wrap() should preserve the underlying error")
	}
	if !strings.Contains(wrapped.Error(), "best move") {
		t.Errorf("Wrap() message = %q, should contain context", wrapped.Error())
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrGameNotFound, "game %s", "abc")

	if !errors.Is(wrapped, ErrGameNotFound) {
		t.Error("Wrapf() should preserve the underlying error")
	}
	if wrapped.Error() != "game abc: game not found" {
		t.Errorf("Wrapf() message = %q", wrapped.Error())
	}
	if Wrapf(nil, "game %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
