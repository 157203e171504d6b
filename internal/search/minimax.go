// Package search picks moves with a depth-bounded minimax search.
//
// The search explores immutable boards only: every node builds its
// successors with Move.Execute, so sibling branches never share mutable
// state and root moves can be searched on separate goroutines.
package search

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/hashing"
	"github.com/lgbarn/chessai-go/internal/worker"
)

// MateScore is the base magnitude of a checkmate score. The remaining
// search depth is added to it.
const MateScore = 1_000_000

const infinity = math.MaxInt32

// Logger receives search statistics. *config.Config satisfies it.
type Logger interface {
	Logf(level int, format string, args ...interface{})
}

// Stats describes one call to Search.
type Stats struct {
	Depth           int // Deepest completed iteration
	Nodes           int64
	QuiescenceNodes int64
	Cutoffs         int64
	CacheHits       int64
	CacheMisses     int64
	Elapsed         time.Duration
}

// Result is the outcome of a search.
type Result struct {
	Move  engine.Move
	Score int // Positive favours White
	Depth int
	Stats Stats
}

// MiniMax searches for the best move of the side to move. It is safe for
// concurrent use; each call to Search is independent apart from the shared
// evaluation cache.
type MiniMax struct {
	cfg    config.SearchConfig
	eval   Evaluator
	cache  *hashing.EvalCache
	logger Logger

	mu   sync.Mutex
	last Stats
}

// Option configures a MiniMax.
type Option func(*MiniMax)

// WithEvaluator replaces the StandardEvaluator.
func WithEvaluator(e Evaluator) Option {
	return func(m *MiniMax) {
		if e != nil {
			m.eval = e
		}
	}
}

// WithLogger sets where statistics are logged (at level 2).
func WithLogger(l Logger) Option {
	return func(m *MiniMax) {
		m.logger = l
	}
}

// WithEvalCache shares an evaluation cache between searchers. A nil cache
// disables caching.
func WithEvalCache(c *hashing.EvalCache) Option {
	return func(m *MiniMax) {
		m.cache = c
	}
}

// New creates a searcher. The configuration is validated here so that
// Search never has to.
func New(cfg config.SearchConfig, opts ...Option) (*MiniMax, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &MiniMax{cfg: cfg, eval: NewStandardEvaluator()}
	if cfg.EvalCacheSize >= 0 {
		m.cache = hashing.NewEvalCache(cfg.EvalCacheSize)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// BestMove searches b to the given depth and returns the chosen move. It is
// the one-shot form of New(...).BestMove with default ordering, one worker
// and no time budget.
func BestMove(ctx context.Context, b *engine.Board, depth, quiescenceDepth int, usePruning bool) (engine.Move, error) {
	cfg := config.NewSearchConfig()
	cfg.Depth = depth
	cfg.QuiescenceDepth = quiescenceDepth
	cfg.Pruning = usePruning
	m, err := New(*cfg)
	if err != nil {
		return engine.Move{}, err
	}
	return m.BestMove(ctx, b)
}

// Config returns the search configuration.
func (m *MiniMax) Config() config.SearchConfig {
	return m.cfg
}

// LastStats returns the statistics of the most recent search.
func (m *MiniMax) LastStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// BestMove returns the best move for the side to move on b.
func (m *MiniMax) BestMove(ctx context.Context, b *engine.Board) (engine.Move, error) {
	res, err := m.Search(ctx, b)
	if err != nil {
		return engine.Move{}, err
	}
	return res.Move, nil
}

// Search runs the configured search on b. It fails with
// errors.ErrNoLegalMoves when the side to move has no legal move, and with
// the context's error when ctx ends before the first iteration completes.
//
// With a TimeBudget the search deepens one ply at a time up to Depth and
// returns the deepest iteration that finished inside the budget. The
// first iteration always runs to completion.
func (m *MiniMax) Search(ctx context.Context, b *engine.Board) (Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("search not started: %w", context.Cause(ctx))
	}
	moves := b.CurrentPlayer().LegalMoves()
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%s to move: %w", b.MoveMaker(), errors.ErrNoLegalMoves)
	}

	var hits, misses int64
	if m.cache != nil {
		hits, misses = m.cache.Hits(), m.cache.Misses()
	}

	first := m.cfg.Depth
	budgetCtx := ctx
	if m.cfg.TimeBudget > 0 {
		first = 1
		var cancel context.CancelFunc
		budgetCtx, cancel = context.WithTimeout(ctx, m.cfg.TimeBudget)
		defer cancel()
	}

	var (
		res    Result
		found  bool
		counts counters
	)
	for depth := first; depth <= m.cfg.Depth; depth++ {
		sctx := budgetCtx
		if !found {
			sctx = ctx
		}
		s := m.newSearcher(sctx)
		move, score, ok := s.searchRoot(b, moves, depth)
		counts.add(&s.counts)
		if !ok {
			break
		}
		res = Result{Move: move, Score: score, Depth: depth}
		found = true
		if budgetCtx.Err() != nil || abs(score) >= MateScore {
			break
		}
	}
	if !found {
		return Result{}, fmt.Errorf("search interrupted: %w", context.Cause(ctx))
	}

	res.Stats = Stats{
		Depth:           res.Depth,
		Nodes:           counts.nodes,
		QuiescenceNodes: counts.qnodes,
		Cutoffs:         counts.cutoffs,
		Elapsed:         time.Since(start),
	}
	if m.cache != nil {
		res.Stats.CacheHits = m.cache.Hits() - hits
		res.Stats.CacheMisses = m.cache.Misses() - misses
	}
	m.mu.Lock()
	m.last = res.Stats
	m.mu.Unlock()

	if m.logger != nil {
		st := res.Stats
		m.logger.Logf(2, "search: %s plays %s score %d depth %d nodes %d qnodes %d cutoffs %d cache %d/%d in %v",
			b.MoveMaker(), res.Move, res.Score, st.Depth, st.Nodes, st.QuiescenceNodes, st.Cutoffs,
			st.CacheHits, st.CacheHits+st.CacheMisses, st.Elapsed.Round(time.Microsecond))
	}
	return res, nil
}

type counters struct {
	nodes   int64
	qnodes  int64
	cutoffs int64
}

func (c *counters) add(o *counters) {
	c.nodes += o.nodes
	c.qnodes += o.qnodes
	c.cutoffs += o.cutoffs
}

// searcher runs one iteration. Parallel root moves each get their own
// searcher sharing the stop flag.
type searcher struct {
	ctx    context.Context
	cfg    *config.SearchConfig
	eval   Evaluator
	cache  *hashing.EvalCache
	stop   *atomic.Bool
	counts counters
}

func (m *MiniMax) newSearcher(ctx context.Context) *searcher {
	return &searcher{ctx: ctx, cfg: &m.cfg, eval: m.eval, cache: m.cache, stop: &atomic.Bool{}}
}

func (s *searcher) child() *searcher {
	return &searcher{ctx: s.ctx, cfg: s.cfg, eval: s.eval, cache: s.cache, stop: s.stop}
}

// stopped polls the context every 256 nodes.
func (s *searcher) stopped() bool {
	if s.stop.Load() {
		return true
	}
	if (s.counts.nodes+s.counts.qnodes)&0xff == 0 && s.ctx.Err() != nil {
		s.stop.Store(true)
		return true
	}
	return false
}

// searchRoot scores every root move at depth and returns the best. Root
// moves are taken in generation order and a later move must score strictly
// better to replace an earlier one, so ties go to the first generated move
// with or without pruning. ok is false if the search was stopped.
func (s *searcher) searchRoot(b *engine.Board, moves []engine.Move, depth int) (engine.Move, int, bool) {
	if s.cfg.Workers > 1 && len(moves) > 1 {
		return s.searchRootParallel(b, moves, depth)
	}

	white := b.MoveMaker() == chess.White
	alpha, beta := -infinity, infinity
	best, bestScore := -1, 0
	for i, mv := range moves {
		score := s.minimax(mv.Execute(b), depth-1, alpha, beta)
		if s.stop.Load() {
			return engine.Move{}, 0, false
		}
		if best < 0 || improves(white, score, bestScore) {
			best, bestScore = i, score
		}
		if s.cfg.Pruning {
			if white {
				alpha = max(alpha, bestScore)
			} else {
				beta = min(beta, bestScore)
			}
		}
	}
	return moves[best], bestScore, true
}

// searchRootParallel searches each root move with a full window on the
// worker pool and picks the best in generation order.
func (s *searcher) searchRootParallel(b *engine.Board, moves []engine.Move, depth int) (engine.Move, int, bool) {
	var mu sync.Mutex
	process := func(item worker.WorkItem) worker.ProcessResult {
		c := s.child()
		score := c.minimax(item.Move.Execute(item.Board), depth-1, -infinity, infinity)
		mu.Lock()
		s.counts.add(&c.counts)
		mu.Unlock()
		return worker.ProcessResult{
			Index: item.Index,
			Move:  item.Move,
			Score: score,
			Nodes: c.counts.nodes + c.counts.qnodes,
		}
	}

	items := make([]worker.WorkItem, len(moves))
	for i, mv := range moves {
		items[i] = worker.WorkItem{Board: b, Move: mv, Index: i}
	}
	pool := worker.NewPool(s.cfg.Workers, len(items), process)
	results := pool.Run(s.ctx, items)
	if s.stop.Load() || s.ctx.Err() != nil {
		return engine.Move{}, 0, false
	}

	white := b.MoveMaker() == chess.White
	best, bestScore := -1, 0
	for i, r := range results {
		if r.Err != nil {
			return engine.Move{}, 0, false
		}
		if best < 0 || improves(white, r.Score, bestScore) {
			best, bestScore = i, r.Score
		}
	}
	return moves[best], bestScore, true
}

// minimax returns the score of b searched depth plies deep.
func (s *searcher) minimax(b *engine.Board, depth, alpha, beta int) int {
	s.counts.nodes++
	if s.stopped() {
		return 0
	}

	p := b.CurrentPlayer()
	moves := p.LegalMoves()
	if len(moves) == 0 {
		if p.IsInCheck() {
			return mateScore(p.Alliance(), depth)
		}
		return 0
	}
	if depth == 0 {
		return s.quiescence(b, moves, s.cfg.QuiescenceDepth, alpha, beta)
	}
	if s.cfg.Ordering {
		orderMoves(moves)
	}

	white := p.Alliance() == chess.White
	best := -infinity
	if !white {
		best = infinity
	}
	for _, mv := range moves {
		score := s.minimax(mv.Execute(b), depth-1, alpha, beta)
		if improves(white, score, best) {
			best = score
		}
		if s.cfg.Pruning {
			if white {
				alpha = max(alpha, best)
			} else {
				beta = min(beta, best)
			}
			if alpha >= beta {
				s.counts.cutoffs++
				break
			}
		}
	}
	return best
}

// quiescence extends the search through captures only. The side to move
// may stand pat on the static score instead of capturing.
func (s *searcher) quiescence(b *engine.Board, moves []engine.Move, depth, alpha, beta int) int {
	s.counts.qnodes++
	if s.stopped() {
		return 0
	}

	stand := s.evaluate(b)
	if depth == 0 {
		return stand
	}
	caps := captures(moves)
	if len(caps) == 0 {
		return stand
	}
	if s.cfg.Ordering {
		orderMoves(caps)
	}

	white := b.MoveMaker() == chess.White
	best := stand
	if s.cfg.Pruning {
		if white {
			if best >= beta {
				return best
			}
			alpha = max(alpha, best)
		} else {
			if best <= alpha {
				return best
			}
			beta = min(beta, best)
		}
	}

	for _, mv := range caps {
		next := mv.Execute(b)
		var score int
		reply := next.CurrentPlayer()
		replies := reply.LegalMoves()
		switch {
		case len(replies) == 0 && reply.IsInCheck():
			score = mateScore(reply.Alliance(), 0)
		case len(replies) == 0:
			score = 0
		default:
			score = s.quiescence(next, replies, depth-1, alpha, beta)
		}
		if improves(white, score, best) {
			best = score
		}
		if s.cfg.Pruning {
			if white {
				alpha = max(alpha, best)
			} else {
				beta = min(beta, best)
			}
			if alpha >= beta {
				s.counts.cutoffs++
				break
			}
		}
	}
	return best
}

func (s *searcher) evaluate(b *engine.Board) int {
	if s.cache == nil {
		return s.eval.Evaluate(b)
	}
	if score, ok := s.cache.Lookup(b.Hash()); ok {
		return score
	}
	score := s.eval.Evaluate(b)
	s.cache.Store(b.Hash(), score)
	return score
}

// improves reports whether score is strictly better than best for the
// maximising (White) or minimising (Black) side.
func improves(white bool, score, best int) bool {
	if white {
		return score > best
	}
	return score < best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
