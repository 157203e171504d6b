package engine

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// Builder accumulates piece placements and board state, then freezes them
// into an immutable Board. A Builder is not safe for concurrent use and
// must not be reused after Build.
type Builder struct {
	tiles         [chess.NumTiles]Piece
	moveMaker     chess.Alliance
	enPassant     Piece
	transition    Move
	hasTransition bool
}

// NewBuilder returns an empty builder with White to move.
func NewBuilder() *Builder {
	return &Builder{moveMaker: chess.White}
}

// newBuilderFrom seeds a builder with the pieces and move maker of b. The
// en-passant pawn and transition move are not carried over.
func newBuilderFrom(b *Board) *Builder {
	return &Builder{tiles: b.tiles, moveMaker: b.moveMaker}
}

// SetPiece places p on its coordinate, replacing any occupant.
func (bl *Builder) SetPiece(p Piece) *Builder {
	bl.tiles[p.coord.Index()] = p
	return bl
}

// RemovePiece clears the tile at c.
func (bl *Builder) RemovePiece(c chess.Coordinate) *Builder {
	bl.tiles[c.Index()] = Piece{}
	return bl
}

// SetMoveMaker sets the alliance to move.
func (bl *Builder) SetMoveMaker(a chess.Alliance) *Builder {
	bl.moveMaker = a
	return bl
}

// SetEnPassantPawn marks p as capturable en passant on the next move.
func (bl *Builder) SetEnPassantPawn(p Piece) *Builder {
	bl.enPassant = p
	return bl
}

// SetTransitionMove records the move that produced the board.
func (bl *Builder) SetTransitionMove(m Move) *Builder {
	bl.transition = m
	bl.hasTransition = true
	return bl
}

// Build validates the accumulated state and returns the board. It rejects
// positions without exactly one king per alliance, positions where the side
// that just moved is still in check, and en-passant pawns that are not on
// the board.
func (bl *Builder) Build() (*Board, error) {
	b := bl.build()
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// build freezes the builder without validation. Move execution uses it for
// successor boards, which are legal by construction or are discarded by the
// legality filter.
func (bl *Builder) build() *Board {
	b := &Board{
		tiles:         bl.tiles,
		moveMaker:     bl.moveMaker,
		enPassant:     bl.enPassant,
		transition:    bl.transition,
		hasTransition: bl.hasTransition,
	}
	for _, p := range b.tiles {
		if p.isNone() {
			continue
		}
		if p.alliance == chess.White {
			b.whitePieces = append(b.whitePieces, p)
		} else {
			b.blackPieces = append(b.blackPieces, p)
		}
		if p.kind == chess.King {
			b.kings[p.alliance] = p
		}
	}
	b.hash = b.computeHash()
	return b
}

func (b *Board) validate() error {
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		kings := 0
		for _, p := range b.pieceList(a) {
			if p.kind == chess.King {
				kings++
			}
		}
		if kings != 1 {
			return &errors.PositionError{
				Err:      errors.ErrInvalidPosition,
				Field:    a.String() + " king",
				Expected: "1",
				Got:      fmt.Sprint(kings),
			}
		}
	}

	if ep, ok := b.EnPassantPawn(); ok {
		onBoard, occupied := b.PieceAt(ep.coord)
		if !occupied || onBoard != ep || ep.kind != chess.Pawn || ep.alliance == b.moveMaker {
			return &errors.PositionError{
				Err:      errors.ErrInvalidPosition,
				Field:    "en passant",
				Square:   ep.coord.String(),
				Expected: b.moveMaker.Opponent().String() + " pawn",
				Got:      onBoard.String(),
			}
		}
	}

	waiting := b.moveMaker.Opponent()
	king := b.kings[waiting]
	if b.IsAttacked(king.coord, b.moveMaker) {
		return &errors.PositionError{
			Err:    errors.ErrInvalidPosition,
			Field:  waiting.String() + " king",
			Square: king.coord.String(),
			Got:    "in check with " + b.moveMaker.String() + " to move",
		}
	}
	return nil
}
