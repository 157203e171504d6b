// Package processing replays, validates and analyses played games.
package processing

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
)

// Termination says why a game stopped.
type Termination string

const (
	Unterminated Termination = ""
	Checkmate    Termination = "checkmate"
	Stalemate    Termination = "stalemate"
	Repetition   Termination = "threefold repetition"
	Insufficient Termination = "insufficient material"
	PlyLimit     Termination = "ply limit"
)

// Record is a game: its starting position and the moves played from it.
type Record struct {
	White string
	Black string
	Start *engine.Board
	Moves []engine.Move

	// Termination is set by whoever ended the game early (for example a
	// ply limit); checkmate, stalemate and repetition are derived.
	Termination Termination
}

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	FinalBoard *engine.Board
	Plies      int
	Captures   int
	Checks     int
	Castles    int
	EnPassant  int
	Promotions int

	HasUnderpromotion bool
	HasRepetition     bool
	Positions         []uint64 // Zobrist hashes, start position first

	Result      string
	Termination Termination
}

// RepetitionDetected returns true if a position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int
	ErrorMsg string
}

// PositionTracker counts occurrences of positions by hash.
type PositionTracker struct {
	counts map[uint64]int
}

// NewPositionTracker creates a tracker that has seen start once.
func NewPositionTracker(start *engine.Board) *PositionTracker {
	t := &PositionTracker{counts: make(map[uint64]int)}
	t.Add(start)
	return t
}

// Add records b and returns how often it has now occurred.
func (t *PositionTracker) Add(b *engine.Board) int {
	h := b.Hash()
	t.counts[h]++
	return t.counts[h]
}

// AnalyzeGame replays a record and counts its features. The moves must be
// legal in sequence; AnalyzeGame stops at the first that is not.
func AnalyzeGame(rec *Record) *GameAnalysis {
	board := rec.Start
	analysis := &GameAnalysis{Positions: []uint64{board.Hash()}}
	tracker := NewPositionTracker(board)

	for _, m := range rec.Moves {
		next, err := engine.MakeMove(board, board.MoveMaker(), m)
		if err != nil {
			break
		}
		analysis.Plies++
		switch {
		case m.Kind() == engine.EnPassantAttack:
			analysis.EnPassant++
			analysis.Captures++
		case m.IsCapture():
			analysis.Captures++
		}
		if m.IsCastle() {
			analysis.Castles++
		}
		if m.Kind() == engine.Promotion {
			analysis.Promotions++
			if m.PromotionType() != chess.Queen {
				analysis.HasUnderpromotion = true
			}
		}
		if next.CurrentPlayer().IsInCheck() {
			analysis.Checks++
		}

		board = next
		analysis.Positions = append(analysis.Positions, board.Hash())
		if tracker.Add(board) >= 3 {
			analysis.HasRepetition = true
		}
	}

	analysis.FinalBoard = board
	analysis.Result, analysis.Termination = Outcome(board, analysis.HasRepetition)
	if analysis.Termination == Unterminated && rec.Termination != Unterminated {
		analysis.Termination = rec.Termination
		if rec.Termination == PlyLimit {
			analysis.Result = "1/2-1/2"
		}
	}
	return analysis
}

// Outcome returns the result string ("1-0", "0-1", "1/2-1/2" or "*") and
// termination of a game standing at b.
func Outcome(b *engine.Board, repeated bool) (string, Termination) {
	switch engine.GameOutcome(b) {
	case engine.Checkmate:
		if b.MoveMaker() == chess.White {
			return "0-1", Checkmate
		}
		return "1-0", Checkmate
	case engine.Stalemate:
		return "1/2-1/2", Stalemate
	case engine.InsufficientMaterial:
		return "1/2-1/2", Insufficient
	}
	if repeated {
		return "1/2-1/2", Repetition
	}
	return "*", Unterminated
}

// Finished reports whether a game standing at b is over on the board.
func Finished(b *engine.Board) bool {
	return engine.GameOutcome(b) != engine.InProgress
}

// Replay plays coordinate-notation moves ("e2e4 e7e5 g1f3") from start and
// returns the moves and the final board.
func Replay(start *engine.Board, text string) ([]engine.Move, *engine.Board, error) {
	board := start
	var moves []engine.Move
	for i, field := range strings.Fields(text) {
		m, err := engine.FindMove(board, field)
		if err != nil {
			return moves, board, fmt.Errorf("ply %d: %w", i+1, err)
		}
		next, err := engine.MakeMove(board, board.MoveMaker(), m)
		if err != nil {
			return moves, board, fmt.Errorf("ply %d: %w", i+1, err)
		}
		moves = append(moves, m)
		board = next
	}
	return moves, board, nil
}

// ValidateGame checks that every move of rec is legal in sequence.
func ValidateGame(rec *Record) *ValidationResult {
	result := &ValidationResult{Valid: true}
	board := rec.Start
	for i, m := range rec.Moves {
		next, err := engine.MakeMove(board, board.MoveMaker(), m)
		if err != nil {
			result.Valid = false
			result.ErrorPly = i + 1
			result.ErrorMsg = fmt.Sprintf("illegal move at ply %d: %s", i+1, m)
			return result
		}
		board = next
	}
	return result
}

// isValidResult checks if a result string is a valid game result.
func isValidResult(result string) bool {
	switch result {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// ParseResult converts a result string to White's score (1, 0.5 or 0).
func ParseResult(result string) (float64, error) {
	if !isValidResult(result) || result == "*" {
		return 0, fmt.Errorf("result %q is not a finished game", result)
	}
	switch result {
	case "1-0":
		return 1, nil
	case "0-1":
		return 0, nil
	}
	return 0.5, nil
}
