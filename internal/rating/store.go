package rating

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// Stats is a player's game record.
type Stats struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// String returns the compact "w/d/l" form.
func (s Stats) String() string {
	return fmt.Sprintf("%d/%d/%d", s.Wins, s.Draws, s.Losses)
}

// Verbose returns the record spelled out.
func (s Stats) Verbose() string {
	return fmt.Sprintf("Wins: %d, Draws: %d, Losses: %d", s.Wins, s.Draws, s.Losses)
}

// ParseStats reads the "w/d/l" form.
func ParseStats(text string) (Stats, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return Stats{}, fmt.Errorf("stats %q: want wins/draws/losses", text)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Stats{}, fmt.Errorf("stats %q: bad count %q", text, p)
		}
		nums[i] = n
	}
	return Stats{Wins: nums[0], Draws: nums[1], Losses: nums[2]}, nil
}

// Standing is one scoreboard row.
type Standing struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Stats  Stats  `json:"stats"`
}

// Store holds ratings and records. Lookups of names never added fail with
// errors.ErrUnknownPlayer.
type Store interface {
	// AddPlayer registers name with the initial rating and an empty
	// record. It reports false if the name was already known.
	AddPlayer(name string) bool
	Rating(name string) (int, error)
	SetRating(name string, rating int) error
	Stats(name string) (Stats, error)
	AddWin(name string) error
	AddDraw(name string) error
	AddLoss(name string) error
	// Scoreboard returns every player, highest rating first.
	Scoreboard() []Standing
	Size() int
}

type entry struct {
	rating int
	stats  Stats
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	initial int
	players map[string]*entry
}

// NewMemoryStore creates an empty store giving new players initialRating.
func NewMemoryStore(initialRating int) *MemoryStore {
	return &MemoryStore{initial: initialRating, players: make(map[string]*entry)}
}

// AddPlayer implements Store.
func (s *MemoryStore) AddPlayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; ok {
		return false
	}
	s.players[name] = &entry{rating: s.initial}
	return true
}

// Restore sets a player's rating and record, adding the player if needed.
func (s *MemoryStore) Restore(name string, rating int, stats Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[name] = &entry{rating: rating, stats: stats}
}

func (s *MemoryStore) lookup(name string) (*entry, error) {
	e, ok := s.players[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownPlayer, "player %q", name)
	}
	return e, nil
}

// Rating implements Store.
func (s *MemoryStore) Rating(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return e.rating, nil
}

// SetRating implements Store.
func (s *MemoryStore) SetRating(name string, rating int) error {
	return s.update(name, func(e *entry) { e.rating = rating })
}

// Stats implements Store.
func (s *MemoryStore) Stats(name string) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.lookup(name)
	if err != nil {
		return Stats{}, err
	}
	return e.stats, nil
}

// AddWin implements Store.
func (s *MemoryStore) AddWin(name string) error {
	return s.update(name, func(e *entry) { e.stats.Wins++ })
}

// AddDraw implements Store.
func (s *MemoryStore) AddDraw(name string) error {
	return s.update(name, func(e *entry) { e.stats.Draws++ })
}

// AddLoss implements Store.
func (s *MemoryStore) AddLoss(name string) error {
	return s.update(name, func(e *entry) { e.stats.Losses++ })
}

func (s *MemoryStore) update(name string, fn func(*entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	fn(e)
	return nil
}

// Scoreboard implements Store. Equal ratings are listed by name.
func (s *MemoryStore) Scoreboard() []Standing {
	s.mu.RLock()
	board := make([]Standing, 0, len(s.players))
	for name, e := range s.players {
		board = append(board, Standing{Name: name, Rating: e.rating, Stats: e.stats})
	}
	s.mu.RUnlock()

	sort.Slice(board, func(i, j int) bool {
		if board[i].Rating != board[j].Rating {
			return board[i].Rating > board[j].Rating
		}
		return board[i].Name < board[j].Name
	})
	return board
}

// Size implements Store.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
