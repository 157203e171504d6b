package hashing

import (
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
)

func BenchmarkPieceKey(b *testing.B) {
	coords := chess.AllCoordinates()
	for i := 0; i < b.N; i++ {
		PieceKey(chess.Queen, chess.Black, false, coords[i%len(coords)])
	}
}

func BenchmarkEvalCache(b *testing.B) {
	b.Run("Store", func(b *testing.B) {
		c := NewEvalCache(1 << 16)
		for i := 0; i < b.N; i++ {
			c.Store(uint64(i), i)
		}
	})
	b.Run("Lookup", func(b *testing.B) {
		c := NewEvalCache(0)
		for i := 0; i < 1024; i++ {
			c.Store(uint64(i), i)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			c.Lookup(uint64(i & 1023))
		}
	})
	b.Run("Parallel", func(b *testing.B) {
		c := NewEvalCache(0)
		b.RunParallel(func(pb *testing.PB) {
			var i uint64
			for pb.Next() {
				if _, ok := c.Lookup(i & 4095); !ok {
					c.Store(i&4095, int(i))
				}
				i++
			}
		})
	})
}
