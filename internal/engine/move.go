package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// MoveKind tags the variant of a move.
type MoveKind int

const (
	NormalMove      MoveKind = iota // Non-capturing move of any piece
	AttackMove                      // Capture on the destination square
	PawnJump                        // Pawn double push from its first move
	EnPassantAttack                 // Pawn capture of a pawn that just jumped past
	KingSideCastle
	QueenSideCastle
	Promotion // Pawn reaching the far rank, with or without a capture
)

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	names := []string{"Normal", "Attack", "PawnJump", "EnPassant", "KingSideCastle", "QueenSideCastle", "Promotion"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Move is an immutable board transition: the moving piece, its
// destination, an optional captured piece, and kind-specific data.
// Executing a move builds a new board and never touches the one it came from.
type Move struct {
	kind      MoveKind
	piece     Piece
	dest      chess.Coordinate
	captured  Piece // Empty type when nothing is captured
	rook      Piece // Castling rook
	rookDest  chess.Coordinate
	promoteTo chess.PieceType
}

func newNormalMove(p Piece, to chess.Coordinate) Move {
	return Move{kind: NormalMove, piece: p, dest: to}
}

func newAttackMove(p Piece, to chess.Coordinate, captured Piece) Move {
	return Move{kind: AttackMove, piece: p, dest: to, captured: captured}
}

func newPawnJump(p Piece, to chess.Coordinate) Move {
	return Move{kind: PawnJump, piece: p, dest: to}
}

func newEnPassantMove(p Piece, to chess.Coordinate, captured Piece) Move {
	return Move{kind: EnPassantAttack, piece: p, dest: to, captured: captured}
}

// newPromotionMove auto-promotes to a queen; captured may be the zero Piece.
func newPromotionMove(p Piece, to chess.Coordinate, captured Piece) Move {
	return Move{kind: Promotion, piece: p, dest: to, captured: captured, promoteTo: chess.Queen}
}

func newCastleMove(kind MoveKind, king Piece, kingDest chess.Coordinate, rook Piece, rookDest chess.Coordinate) Move {
	return Move{kind: kind, piece: king, dest: kingDest, rook: rook, rookDest: rookDest}
}

// Kind returns the move variant.
func (m Move) Kind() MoveKind { return m.kind }

// Piece returns the moving piece as it stood before the move.
func (m Move) Piece() Piece { return m.piece }

// From returns the origin square.
func (m Move) From() chess.Coordinate { return m.piece.coord }

// To returns the destination square.
func (m Move) To() chess.Coordinate { return m.dest }

// Captured returns the captured piece, if any.
func (m Move) Captured() (Piece, bool) {
	return m.captured, !m.captured.isNone()
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.captured.isNone()
}

// IsCastle reports whether the move is a castle.
func (m Move) IsCastle() bool {
	return m.kind == KingSideCastle || m.kind == QueenSideCastle
}

// PromotionType returns the piece a promotion produces, or Empty.
func (m Move) PromotionType() chess.PieceType {
	if m.kind != Promotion {
		return chess.Empty
	}
	return m.promoteTo
}

// WithPromotion returns a copy of a promotion move that promotes to t
// instead of the default queen.
func (m Move) WithPromotion(t chess.PieceType) (Move, error) {
	if m.kind != Promotion {
		return m, &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: m.String(), Alliance: m.piece.alliance.String()}
	}
	switch t {
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		m.promoteTo = t
		return m, nil
	}
	return m, &errors.MoveError{
		Err:      fmt.Errorf("cannot promote to %v: %w", t, errors.ErrIllegalMove),
		MoveText: m.String(),
		Alliance: m.piece.alliance.String(),
	}
}

// Equal reports whether two moves have the same moving piece, destination
// and kind.
func (m Move) Equal(o Move) bool {
	return m.piece == o.piece && m.dest == o.dest && m.kind == o.kind
}

// String returns coordinate notation: origin, destination and, for
// promotions, the lower-case promotion letter (e.g. "e7e8q").
func (m Move) String() string {
	if m.piece.isNone() {
		return "0000"
	}
	s := m.piece.coord.String() + m.dest.String()
	if m.kind == Promotion {
		s += strings.ToLower(string(m.promoteTo.Letter()))
	}
	return s
}

// Execute builds the board that results from playing m on b: every
// unaffected piece is copied, the mover is relocated (first-move flag
// cleared), captured pieces are removed, the castling rook follows the
// king, and the en-passant slot is set only after a pawn jump.
func (m Move) Execute(b *Board) *Board {
	builder := newBuilderFrom(b)
	builder.RemovePiece(m.piece.coord)
	if m.IsCapture() {
		builder.RemovePiece(m.captured.coord)
	}
	moved := m.piece.MovePiece(m)
	builder.SetPiece(moved)
	if m.IsCastle() {
		builder.RemovePiece(m.rook.coord)
		builder.SetPiece(m.rook.relocate(m.rookDest))
	}
	if m.kind == PawnJump {
		builder.SetEnPassantPawn(moved)
	}
	builder.SetMoveMaker(m.piece.alliance.Opponent())
	builder.SetTransitionMove(m)
	return builder.build()
}
