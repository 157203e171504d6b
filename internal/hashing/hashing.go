// Package hashing provides Zobrist position keys and a position-keyed
// evaluation cache for the search.
package hashing

import (
	"github.com/lgbarn/chessai-go/internal/chess"
)

// Keys holds the random numbers a Zobrist hash is built from.
// A position hash is the XOR of one key per occupied tile (indexed by piece
// type, alliance, first-move flag and tile), the side key when Black is to
// move, and one key per file holding an en-passant-vulnerable pawn.
type Keys struct {
	pieces    [chess.NumPieceTypes][2][2][chess.NumTiles]uint64
	side      uint64
	enPassant [chess.BoardWidth]uint64
}

// zobrist is generated once from a fixed seed so hashes are stable across runs.
var zobrist = newKeys(0x9e3779b97f4a7c15)

func newKeys(seed uint64) *Keys {
	rng := splitmix64{state: seed}
	k := &Keys{}
	for t := range k.pieces {
		for a := range k.pieces[t] {
			for f := range k.pieces[t][a] {
				for sq := range k.pieces[t][a][f] {
					k.pieces[t][a][f][sq] = rng.next()
				}
			}
		}
	}
	k.side = rng.next()
	for i := range k.enPassant {
		k.enPassant[i] = rng.next()
	}
	return k
}

// PieceKey returns the key for a piece on a coordinate.
func PieceKey(t chess.PieceType, a chess.Alliance, firstMove bool, c chess.Coordinate) uint64 {
	f := 0
	if firstMove {
		f = 1
	}
	return zobrist.pieces[t][a][f][c.Index()]
}

// SideKey returns the key XORed in when Black is to move.
func SideKey() uint64 {
	return zobrist.side
}

// EnPassantKey returns the key for an en-passant-vulnerable pawn on file.
func EnPassantKey(file int) uint64 {
	return zobrist.enPassant[file]
}

// splitmix64 is a small deterministic generator for key tables.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
