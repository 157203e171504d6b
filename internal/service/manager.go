// Package service manages game sessions: creating games from the board
// factories, gating and applying moves, engine replies, hints, undo and
// state subscriptions.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/rating"
	"github.com/lgbarn/chessai-go/internal/search"
	"github.com/lgbarn/chessai-go/internal/setup"
)

// Setup kinds accepted by CreateOptions.
const (
	SetupStandard = "standard"
	SetupTutor    = "tutor"
	SetupRandom   = "random"
	SetupFEN      = "fen"
)

// EngineName is the rating name of the engine when a game does not name it.
const EngineName = "chessai"

const subscriberBuffer = 8

// CreateOptions describes a new game.
type CreateOptions struct {
	Setup string `json:"setup"` // One of the Setup* kinds; empty means standard
	Tutor int    `json:"tutor"` // Tutor board number for SetupTutor
	FEN   string `json:"fen"`   // Position for SetupFEN

	// Engine is the side the engine plays, nil for none.
	Engine *chess.Alliance `json:"-"`

	// White and Black name the players for rating purposes. A finished
	// game is rated only when both sides are named.
	White string `json:"white"`
	Black string `json:"black"`
}

// Manager owns the sessions. It is safe for concurrent use; calls on
// different games never wait for each other.
type Manager struct {
	cfg     *config.Config
	ai      *search.MiniMax
	random  *setup.Generator
	ratings *rating.Service

	mu    sync.RWMutex
	games map[string]*Game
}

// NewManager creates a manager. ratings may be nil, in which case finished
// games are not rated.
func NewManager(cfg *config.Config, ratings *rating.Service) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ai, err := search.New(*cfg.Search, search.WithLogger(cfg))
	if err != nil {
		return nil, err
	}
	random, err := setup.NewGenerator(*cfg.Random, cfg)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cfg:     cfg,
		ai:      ai,
		random:  random,
		ratings: ratings,
		games:   make(map[string]*Game),
	}, nil
}

// Create starts a game and returns its first state. If the engine plays
// the side to move it replies before Create returns.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (State, error) {
	start, err := m.startBoard(ctx, opts)
	if err != nil {
		return State{}, err
	}
	if opts.Engine != nil {
		if *opts.Engine == chess.White && opts.White == "" && opts.Black != "" {
			opts.White = EngineName
		}
		if *opts.Engine == chess.Black && opts.Black == "" && opts.White != "" {
			opts.Black = EngineName
		}
	}

	m.mu.Lock()
	if limit := m.cfg.Server.MaxGames; limit > 0 && len(m.games) >= limit {
		m.mu.Unlock()
		return State{}, fmt.Errorf("limit %d: %w", limit, errors.ErrTooManyGames)
	}
	g := newGame(uuid.New().String(), start, opts)
	m.games[g.id] = g
	m.mu.Unlock()

	m.cfg.Logf(1, "game %s created from %s setup", g.id, setupName(opts.Setup))

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := m.replyLocked(ctx, g); err != nil {
		return State{}, err
	}
	return g.state(), nil
}

func setupName(kind string) string {
	if kind == "" {
		return SetupStandard
	}
	return kind
}

func (m *Manager) startBoard(ctx context.Context, opts CreateOptions) (*engine.Board, error) {
	switch strings.ToLower(setupName(opts.Setup)) {
	case SetupStandard:
		return setup.StandardBoard(), nil
	case SetupTutor:
		return setup.TutorBoard(opts.Tutor)
	case SetupRandom:
		b, _, err := m.random.RandomBoard(ctx)
		return b, err
	case SetupFEN:
		return engine.ParseFEN(opts.FEN)
	default:
		return nil, fmt.Errorf("setup %q: %w", opts.Setup, errors.ErrInvalidConfig)
	}
}

func (m *Manager) game(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	return g, nil
}

// State returns the current state of a game.
func (m *Manager) State(id string) (State, error) {
	g, err := m.game(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state(), nil
}

// Move plays a human move in coordinate notation ("e2e4", "e7e8q"). Moves
// for the side the engine plays are refused. When the engine plays the
// other side it replies before Move returns.
func (m *Manager) Move(ctx context.Context, id, text string) (State, error) {
	g, err := m.game(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.current()
	if statusOf(b).Over() {
		return State{}, errors.Wrapf(errors.ErrGameOver, "game %s", id)
	}
	if g.enginePlays(b.MoveMaker()) {
		return State{}, fmt.Errorf("%s is played by the engine: %w", b.MoveMaker(), errors.ErrNotYourTurn)
	}
	mv, err := engine.FindMove(b, text)
	if err != nil {
		return State{}, err
	}
	next, err := engine.MakeMove(b, b.MoveMaker(), mv)
	if err != nil {
		return State{}, err
	}
	g.push(mv, next)
	m.cfg.Logf(2, "game %s: %s played %s", id, b.MoveMaker(), mv)
	m.finishLocked(g)
	g.publish()

	if err := m.replyLocked(ctx, g); err != nil {
		return State{}, err
	}
	return g.state(), nil
}

// EngineMove lets the engine play the side to move, whichever side that
// is.
func (m *Manager) EngineMove(ctx context.Context, id string) (State, error) {
	g, err := m.game(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if statusOf(g.current()).Over() {
		return State{}, errors.Wrapf(errors.ErrGameOver, "game %s", id)
	}
	if err := m.playEngineLocked(ctx, g); err != nil {
		return State{}, err
	}
	return g.state(), nil
}

// Hint returns the move the engine would play for the side to move
// without playing it.
func (m *Manager) Hint(ctx context.Context, id string) (engine.Move, error) {
	g, err := m.game(id)
	if err != nil {
		return engine.Move{}, err
	}
	g.mu.Lock()
	b := g.current()
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Server.AIMoveTimeout)
	defer cancel()
	return m.ai.BestMove(ctx, b)
}

// Undo takes back the last move. In a game against the engine it also
// takes back the engine's reply, so the human is to move again.
func (m *Manager) Undo(id string) (State, error) {
	g, err := m.game(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.moves) - 1
	for n > 0 && g.enginePlays(g.boards[n].MoveMaker()) {
		n--
	}
	if n < 0 || g.enginePlays(g.boards[n].MoveMaker()) {
		return State{}, errors.Wrapf(errors.ErrNothingToUndo, "game %s", id)
	}
	for len(g.moves) > n {
		g.pop()
	}
	m.cfg.Logf(2, "game %s: undo to ply %d", id, len(g.moves))
	g.publish()
	return g.state(), nil
}

// Subscribe returns a channel receiving the game's state after every
// change, starting with the current state, and a function that ends the
// subscription and closes the channel.
func (m *Manager) Subscribe(id string) (<-chan State, func(), error) {
	g, err := m.game(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := g.subscribe(subscriberBuffer)
	return ch, cancel, nil
}

// Delete ends a game and closes its subscriptions.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	g, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	g.closeSubscribers()
	m.cfg.Logf(1, "game %s deleted", id)
	return nil
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Ratings returns the rating service, or nil.
func (m *Manager) Ratings() *rating.Service {
	return m.ratings
}

// replyLocked plays the engine's move if the engine is to move.
func (m *Manager) replyLocked(ctx context.Context, g *Game) error {
	b := g.current()
	if !g.enginePlays(b.MoveMaker()) || statusOf(b).Over() {
		return nil
	}
	return m.playEngineLocked(ctx, g)
}

func (m *Manager) playEngineLocked(ctx context.Context, g *Game) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Server.AIMoveTimeout)
	defer cancel()

	b := g.current()
	mv, err := m.ai.BestMove(ctx, b)
	if err != nil {
		return fmt.Errorf("engine move in game %s: %w", g.id, err)
	}
	next, err := engine.MakeMove(b, b.MoveMaker(), mv)
	if err != nil {
		return fmt.Errorf("engine move %s in game %s: %w", mv, g.id, err)
	}
	g.push(mv, next)
	m.cfg.Logf(2, "game %s: engine played %s for %s", g.id, mv, b.MoveMaker())
	m.finishLocked(g)
	g.publish()
	return nil
}

// finishLocked rates a game once, when it first ends.
func (m *Manager) finishLocked(g *Game) {
	status := statusOf(g.current())
	if !status.Over() || g.recorded {
		return
	}
	g.recorded = true
	m.cfg.Logf(1, "game %s ended in %s after %d plies", g.id, status, len(g.moves))
	if m.ratings == nil || g.white == "" || g.black == "" {
		return
	}

	result := rating.Draw
	if status == StatusCheckmate {
		result = rating.WinA
		if g.current().MoveMaker() == chess.White {
			result = rating.WinB
		}
	}
	ra, rb, err := m.ratings.RecordMatch(g.white, g.black, result)
	if err != nil {
		m.cfg.Logf(1, "game %s: rating not recorded: %v", g.id, err)
		return
	}
	m.cfg.Logf(1, "game %s rated %s: %s %d, %s %d", g.id, result, g.white, ra, g.black, rb)
}
