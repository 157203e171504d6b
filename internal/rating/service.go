package rating

import (
	"fmt"
	"sync"

	"github.com/lgbarn/chessai-go/internal/config"
)

// Result is the outcome of a match from player A's side.
type Result int

const (
	Draw Result = iota
	WinA
	WinB
)

// String returns the string representation of a result.
func (r Result) String() string {
	switch r {
	case WinA:
		return "1-0"
	case WinB:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

func (r Result) scores() (float64, float64) {
	switch r {
	case WinA:
		return 1, 0
	case WinB:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Service records matches against a Store.
type Service struct {
	store Store
	k     float64
	mu    sync.Mutex // Serialises read-modify-write of two ratings
}

// NewService creates a Service using cfg's K-factor.
func NewService(store Store, cfg config.RatingConfig) *Service {
	return &Service{store: store, k: cfg.KFactor}
}

// Store returns the underlying store.
func (s *Service) Store() Store {
	return s.store
}

// RecordMatch registers both players if needed, updates their ratings and
// records, and returns the new ratings.
func (s *Service) RecordMatch(a, b string, result Result) (int, int, error) {
	if a == b {
		return 0, 0, fmt.Errorf("match of %q against itself", a)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.AddPlayer(a)
	s.store.AddPlayer(b)
	ra, err := s.store.Rating(a)
	if err != nil {
		return 0, 0, err
	}
	rb, err := s.store.Rating(b)
	if err != nil {
		return 0, 0, err
	}

	resA, resB := result.scores()
	newA, newB := UpdateRatingsK(ra, rb, resA, resB, s.k)
	if err := s.store.SetRating(a, newA); err != nil {
		return 0, 0, err
	}
	if err := s.store.SetRating(b, newB); err != nil {
		return 0, 0, err
	}

	switch result {
	case WinA:
		err = firstErr(s.store.AddWin(a), s.store.AddLoss(b))
	case WinB:
		err = firstErr(s.store.AddLoss(a), s.store.AddWin(b))
	default:
		err = firstErr(s.store.AddDraw(a), s.store.AddDraw(b))
	}
	if err != nil {
		return 0, 0, err
	}
	return newA, newB, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
