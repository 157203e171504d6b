package engine

import (
	"sync"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/hashing"
)

// Board is an immutable chess position. It is built once by a Builder and
// never modified afterwards, so a *Board may be shared freely between
// goroutines and between sibling branches of a search tree.
//
// Players and pseudo-legal move lists are computed lazily on first use and
// memoised for the lifetime of the board.
type Board struct {
	tiles       [chess.NumTiles]Piece
	whitePieces []Piece
	blackPieces []Piece
	enPassant   Piece
	moveMaker   chess.Alliance

	transition    Move
	hasTransition bool

	hash  uint64
	kings [2]Piece

	pseudo  [2]moveSlot
	players [2]playerSlot
}

type moveSlot struct {
	once  sync.Once
	moves []Move
}

type playerSlot struct {
	once   sync.Once
	player *Player
}

// PieceAt returns the piece on c, if any.
func (b *Board) PieceAt(c chess.Coordinate) (Piece, bool) {
	p := b.tiles[c.Index()]
	return p, !p.isNone()
}

// IsEmpty reports whether no piece stands on c.
func (b *Board) IsEmpty(c chess.Coordinate) bool {
	return b.tiles[c.Index()].isNone()
}

// Pieces returns a copy of the active pieces of one alliance in tile order.
func (b *Board) Pieces(a chess.Alliance) []Piece {
	src := b.pieceList(a)
	pieces := make([]Piece, len(src))
	copy(pieces, src)
	return pieces
}

func (b *Board) pieceList(a chess.Alliance) []Piece {
	if a == chess.White {
		return b.whitePieces
	}
	return b.blackPieces
}

// PieceCount returns the number of pieces on the board.
func (b *Board) PieceCount() int {
	return len(b.whitePieces) + len(b.blackPieces)
}

// EnPassantPawn returns the pawn that may be captured en passant on this
// move, if any. Only a board produced by a pawn jump has one.
func (b *Board) EnPassantPawn() (Piece, bool) {
	return b.enPassant, !b.enPassant.isNone()
}

// MoveMaker returns the alliance to move.
func (b *Board) MoveMaker() chess.Alliance {
	return b.moveMaker
}

// TransitionMove returns the move that produced this board, if any.
func (b *Board) TransitionMove() (Move, bool) {
	return b.transition, b.hasTransition
}

// Hash returns the Zobrist hash of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// King returns the king of alliance a. Boards built through Builder.Build
// always have one; transient boards used during construction may not.
func (b *Board) King(a chess.Alliance) (Piece, bool) {
	k := b.kings[a]
	return k, !k.isNone()
}

// PseudoLegalMoves returns every move the pieces of alliance a can make,
// before removing those that leave the own king attacked.
func (b *Board) PseudoLegalMoves(a chess.Alliance) []Move {
	src := b.pseudoLegal(a)
	moves := make([]Move, len(src))
	copy(moves, src)
	return moves
}

// pseudoLegal returns the memoised move slice. Callers must not modify it.
func (b *Board) pseudoLegal(a chess.Alliance) []Move {
	slot := &b.pseudo[a]
	slot.once.Do(func() {
		for _, p := range b.pieceList(a) {
			slot.moves = append(slot.moves, p.CalculateMoves(b)...)
		}
	})
	return slot.moves
}

// Player returns the view of the board for alliance a.
func (b *Board) Player(a chess.Alliance) *Player {
	slot := &b.players[a]
	slot.once.Do(func() {
		slot.player = newPlayer(b, a)
	})
	return slot.player
}

// CurrentPlayer returns the player whose turn it is.
func (b *Board) CurrentPlayer() *Player {
	return b.Player(b.moveMaker)
}

// WhitePlayer returns White's view of the board.
func (b *Board) WhitePlayer() *Player {
	return b.Player(chess.White)
}

// BlackPlayer returns Black's view of the board.
func (b *Board) BlackPlayer() *Player {
	return b.Player(chess.Black)
}

// AllLegalMoves returns White's legal moves followed by Black's.
func (b *Board) AllLegalMoves() []Move {
	white := b.WhitePlayer().legal
	black := b.BlackPlayer().legal
	moves := make([]Move, 0, len(white)+len(black))
	moves = append(moves, white...)
	return append(moves, black...)
}

// String renders the board as a text grid.
func (b *Board) String() string {
	return RenderText(b)
}

// computeHash derives the Zobrist hash from the tiles, the move maker and
// the en-passant pawn.
func (b *Board) computeHash() uint64 {
	var h uint64
	for _, list := range [2][]Piece{b.whitePieces, b.blackPieces} {
		for _, p := range list {
			h ^= hashing.PieceKey(p.kind, p.alliance, p.firstMove, p.coord)
		}
	}
	if b.moveMaker == chess.Black {
		h ^= hashing.SideKey()
	}
	if !b.enPassant.isNone() {
		h ^= hashing.EnPassantKey(b.enPassant.coord.File())
	}
	return h
}
