package chess

import "testing"

func TestAllianceOpponent(t *testing.T) {
	if White.Opponent() != Black || Black.Opponent() != White {
		t.Error("Opponent() should swap alliances")
	}
}

func TestAllianceGeometry(t *testing.T) {
	tests := []struct {
		alliance      Alliance
		direction     int
		backRank      int
		pawnRank      int
		promotionRank int
	}{
		{White, 1, 0, 1, BoardHeight - 1},
		{Black, -1, BoardHeight - 1, BoardHeight - 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.alliance.String(), func(t *testing.T) {
			if got := tt.alliance.Direction(); got != tt.direction {
				t.Errorf("Direction() = %d, want %d", got, tt.direction)
			}
			if got := tt.alliance.BackRank(); got != tt.backRank {
				t.Errorf("BackRank() = %d, want %d", got, tt.backRank)
			}
			if got := tt.alliance.PawnRank(); got != tt.pawnRank {
				t.Errorf("PawnRank() = %d, want %d", got, tt.pawnRank)
			}
			if got := tt.alliance.PromotionRank(); got != tt.promotionRank {
				t.Errorf("PromotionRank() = %d, want %d", got, tt.promotionRank)
			}
		})
	}
}

func TestPieceTypeValues(t *testing.T) {
	want := map[PieceType]int{
		Pawn:   100,
		Knight: 320,
		Bishop: 330,
		Rook:   500,
		Queen:  900,
		King:   20000,
		Empty:  0,
	}
	for pt, v := range want {
		if got := pt.Value(); got != v {
			t.Errorf("%v.Value() = %d, want %d", pt, got, v)
		}
	}
}

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		pt       PieceType
		alliance Alliance
		want     byte
	}{
		{Knight, White, 'N'},
		{Knight, Black, 'n'},
		{King, White, 'K'},
		{Pawn, Black, 'p'},
	}
	for _, tt := range tests {
		if got := PieceLetter(tt.pt, tt.alliance); got != tt.want {
			t.Errorf("PieceLetter(%v, %v) = %c, want %c", tt.pt, tt.alliance, got, tt.want)
		}
		if back := PieceTypeFromLetter(tt.want); back != tt.pt {
			t.Errorf("PieceTypeFromLetter(%c) = %v, want %v", tt.want, back, tt.pt)
		}
	}
	if PieceTypeFromLetter('x') != Empty {
		t.Error("unknown letter should map to Empty")
	}
}

func TestParseAlliance(t *testing.T) {
	for _, s := range []string{"w", "white", "White"} {
		if a, ok := ParseAlliance(s); !ok || a != White {
			t.Errorf("ParseAlliance(%q) = %v, %v", s, a, ok)
		}
	}
	if a, ok := ParseAlliance("b"); !ok || a != Black {
		t.Errorf("ParseAlliance(b) = %v, %v", a, ok)
	}
	if _, ok := ParseAlliance("red"); ok {
		t.Error("ParseAlliance(red) should fail")
	}
}
