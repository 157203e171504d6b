// Package errors provides sentinel errors and error types for the chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrOutOfBounds indicates a coordinate or piece outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoLegalMoves indicates a search was asked to move in a position
	// where the side to move has no legal move.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrInvalidPosition indicates a board that breaks a structural invariant,
	// such as a missing or duplicated king.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRandomBoardExhausted indicates random board generation gave up
	// after its retry budget.
	ErrRandomBoardExhausted = errors.New("random board generation exhausted its retries")

	// ErrGameNotFound indicates an unknown game session.
	ErrGameNotFound = errors.New("game not found")

	// ErrUnknownPlayer indicates a rating lookup for a name that was never added.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownAsset indicates a resource lookup with no matching asset.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrGameOver indicates a move requested after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrNotYourTurn indicates a human move on a side the engine plays.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNothingToUndo indicates an undo at the start of a game.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrTooManyGames indicates the session limit was reached.
	ErrTooManyGames = errors.New("too many games")
)

// MoveError wraps errors with move context: the side that tried to move,
// the move text and, when known, the position it was tried in.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Alliance string // Side that attempted the move
	MoveText string // The move that was rejected
	FEN      string // Position the move was tried in (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Alliance != "" {
		parts = append(parts, strings.ToLower(e.Alliance))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// PositionError represents a failure to load or build a position, with
// the field or square that was at fault.
type PositionError struct {
	Err      error  // The underlying error
	Field    string // FEN field or snapshot field name
	Square   string // Offending square (if applicable)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *PositionError) Error() string {
	var parts []string

	if e.Field != "" {
		loc := e.Field
		if e.Square != "" {
			loc += " " + e.Square
		}
		parts = append(parts, loc)
	} else if e.Square != "" {
		parts = append(parts, e.Square)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "position error"
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
// It forwards to the standard library so callers importing this package
// under its default name keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
