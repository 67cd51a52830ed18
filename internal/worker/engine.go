// Package worker runs the periodic cycles: poll-and-detect, dispatch drain,
// expiry sweep and settlement. Cycle bodies are plain methods; scheduling is
// bound separately through asynq tasks.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/service/detect"
	"valuebet/internal/domain/service/fairvalue"
	"valuebet/internal/domain/service/settlement"
	"valuebet/internal/domain/service/tracker"
	"valuebet/internal/domain/value"
	"valuebet/internal/infrastructure/oddsfeed"
	"valuebet/internal/infrastructure/queue"
	"valuebet/pkg/contextx"
	"valuebet/pkg/errcodes"
	"valuebet/pkg/oddsmath"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type OddsFeed interface {
	FetchOdds(ctx context.Context, sportKey string) ([]oddsfeed.FixtureOdds, error)
}

type Queue interface {
	Enqueue(ctx context.Context, op entity.Opportunity, now time.Time) (bool, error)
	DrainBatch(ctx context.Context, n int) ([]queue.Entry, error)
	Requeue(ctx context.Context, entry queue.Entry) error
	Ack(ctx context.Context, entry queue.Entry) error
	Depth(ctx context.Context) (int64, error)
}

type Results interface {
	FinalStatistic(ctx context.Context, fixtureID, market string) (float64, error)
}

// Engine wires feed, detection, queue and tracker into the four cycles.
type Engine struct {
	feed      OddsFeed
	queue     Queue
	results   Results
	estimator *fairvalue.Estimator
	detector  *detect.Detector
	tracker   *tracker.Service

	sports           []string
	kickoffLookahead time.Duration
	drainBatchSize   int
	settleGrace      time.Duration
	scanConcurrency  int

	now func() time.Time
}

func NewEngine(
	feed OddsFeed,
	q Queue,
	results Results,
	estimator *fairvalue.Estimator,
	detector *detect.Detector,
	trackerService *tracker.Service,
) *Engine {
	return &Engine{
		feed:             feed,
		queue:            q,
		results:          results,
		estimator:        estimator,
		detector:         detector,
		tracker:          trackerService,
		sports:           []string{"soccer_epl"},
		kickoffLookahead: 6 * time.Hour,
		drainBatchSize:   2,
		settleGrace:      2 * time.Hour,
		scanConcurrency:  4,
		now:              time.Now,
	}
}

func (e *Engine) WithSports(sports []string) *Engine {
	if len(sports) > 0 {
		e.sports = sports
	}

	return e
}

func (e *Engine) WithKickoffLookahead(window time.Duration) *Engine {
	if window > 0 {
		e.kickoffLookahead = window
	}

	return e
}

func (e *Engine) WithDrainBatchSize(n int) *Engine {
	if n > 0 {
		e.drainBatchSize = n
	}

	return e
}

func (e *Engine) WithSettleGrace(grace time.Duration) *Engine {
	if grace > 0 {
		e.settleGrace = grace
	}

	return e
}

func (e *Engine) WithScanConcurrency(n int) *Engine {
	if n > 0 {
		e.scanConcurrency = n
	}

	return e
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ScanCycle polls all sports, detects value against fresh fair lines,
// resolves conflicts, throttles per book and enqueues the survivors. It also
// revalidates pending bets against the quotes it just saw.
func (e *Engine) ScanCycle(ctx context.Context) error {
	now := e.now()

	fixtures := e.collectOdds(ctx, now)

	var candidates []entity.Opportunity
	for _, fixtureOdds := range fixtures {
		candidates = append(candidates, e.detectFixture(ctx, fixtureOdds, now)...)
	}

	candidates = detect.ResolveConflicts(candidates)
	candidates = e.detector.Throttle(candidates)
	opportunitiesDetected.Add(float64(len(candidates)))

	enqueued, err := e.dispatch(ctx, candidates, now)
	if err != nil {
		return err
	}

	e.revalidate(ctx, fixtures)

	logger(ctx).Info("scan cycle completed",
		"fixtures", len(fixtures),
		"candidates", len(candidates),
		"enqueued", enqueued,
	)

	return nil
}

// collectOdds fans out per sport with bounded concurrency and fans in the
// fixtures inside the kickoff window. A failed sport never fails the cycle.
func (e *Engine) collectOdds(ctx context.Context, now time.Time) []oddsfeed.FixtureOdds {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.scanConcurrency)

	var (
		mu  sync.Mutex
		all []oddsfeed.FixtureOdds
	)

	for _, sport := range e.sports {
		g.Go(func() error {
			fixtures, err := e.feed.FetchOdds(gctx, sport)
			if err != nil {
				logger(ctx).Warn("odds fetch failed", "sport", sport, "error", err)
				return nil
			}

			mu.Lock()
			all = append(all, fixtures...)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait() // per-sport errors are swallowed above

	return lo.Filter(all, func(fixtureOdds oddsfeed.FixtureOdds, _ int) bool {
		return e.inKickoffWindow(fixtureOdds.Fixture, now)
	})
}

func (e *Engine) inKickoffWindow(fixture entity.Fixture, now time.Time) bool {
	if fixture.Kickoff.IsZero() || fixture.Started(now) {
		return false
	}

	return fixture.Kickoff.Sub(now) <= e.kickoffLookahead
}

// detectFixture groups one fixture's quotes by market key and selection,
// estimates each key's fair value and runs the detector over it. Keys with
// too few books are skipped for this cycle.
func (e *Engine) detectFixture(ctx context.Context, fixtureOdds oddsfeed.FixtureOdds, now time.Time) []entity.Opportunity {
	groups := groupQuotes(fixtureOdds)

	var opportunities []entity.Opportunity

	for key, sides := range groups {
		fv, err := e.estimator.Estimate(key, sides)
		if err != nil {
			if !domain.HasCode(err, errcodes.InsufficientData) {
				logger(ctx).Warn("fair value failed", "market_key", key.String(), "error", err)
			}

			continue
		}

		opportunities = append(opportunities, e.detector.Detect(fixtureOdds.Fixture, fv, sides, now)...)
	}

	return opportunities
}

type marketSides map[value.Selection][]entity.Quote

func groupQuotes(fixtureOdds oddsfeed.FixtureOdds) map[entity.MarketKey]marketSides {
	groups := make(map[entity.MarketKey]marketSides)

	for _, q := range fixtureOdds.Quotes {
		key := entity.MarketKey{FixtureID: fixtureOdds.Fixture.ID, Market: q.Market, Line: q.Line}

		sides, ok := groups[key]
		if !ok {
			sides = make(marketSides)
			groups[key] = sides
		}

		sides[q.Selection] = append(sides[q.Selection], q)
	}

	return groups
}

// dispatch enqueues candidates whose dedupe key is not already tracked,
// recently alerted or queued. Only a dead active store fails the cycle; a
// single enqueue failure drops that candidate.
func (e *Engine) dispatch(ctx context.Context, candidates []entity.Opportunity, now time.Time) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	activeKeys, err := e.activeKeySet(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active bets: %w", err)
	}

	enqueued := 0

	for _, op := range candidates {
		key := op.DedupeKey()

		if _, tracked := activeKeys[key]; tracked {
			continue
		}

		if e.tracker.RecentlyAlerted(key) {
			continue
		}

		added, err := e.queue.Enqueue(ctx, op, now)
		if err != nil {
			logger(ctx).Warn("enqueue failed", "dedupe_key", key, "error", err)
			continue
		}

		if added {
			enqueued++

			opportunitiesEnqueued.Inc()
		}
	}

	return enqueued, nil
}

func (e *Engine) activeKeySet(ctx context.Context) (map[string]struct{}, error) {
	bets, err := e.tracker.ActiveBets(ctx)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(bets))
	for _, bet := range bets {
		keys[bet.DedupeKey()] = struct{}{}
	}

	return keys, nil
}

// revalidate recomputes the current edge of pending bets whose market is
// visible in this cycle's quotes and voids the decayed ones. Markets not
// quoted this cycle are left alone.
func (e *Engine) revalidate(ctx context.Context, fixtures []oddsfeed.FixtureOdds) {
	bets, err := e.tracker.ActiveBets(ctx)
	if err != nil {
		logger(ctx).Warn("revalidation skipped", "error", err)
		return
	}

	pending := lo.Filter(bets, func(bet entity.TrackedBet, _ int) bool {
		return bet.Status == value.StatusPending
	})
	if len(pending) == 0 {
		return
	}

	wanted := make(map[entity.MarketKey]marketSides, len(pending))
	for _, bet := range pending {
		wanted[betMarketKey(bet)] = nil
	}

	for _, fixtureOdds := range fixtures {
		for _, q := range fixtureOdds.Quotes {
			key := entity.MarketKey{FixtureID: fixtureOdds.Fixture.ID, Market: q.Market, Line: q.Line}

			sides, ok := wanted[key]
			if !ok {
				continue
			}

			if sides == nil {
				sides = make(marketSides)
				wanted[key] = sides
			}

			sides[q.Selection] = append(sides[q.Selection], q)
		}
	}

	for _, bet := range pending {
		currentEdge, ok := e.currentEdge(bet, wanted[betMarketKey(bet)])
		if !ok {
			continue
		}

		if !e.tracker.ShouldVoid(bet, currentEdge) {
			continue
		}

		reason := fmt.Sprintf("edge decayed to %.2f%% from %.2f%%", currentEdge, bet.EdgePercent)

		if err := e.tracker.Void(ctx, bet.ID, reason); err != nil {
			logger(ctx).Warn("void failed", "bet_id", bet.ID, "error", err)
			continue
		}

		betsVoided.Inc()
	}
}

// currentEdge reprices one pending bet against this cycle's quotes for its
// market. Reports false when the market, the selection or the bet's own book
// is not visible.
func (e *Engine) currentEdge(bet entity.TrackedBet, sides marketSides) (float64, bool) {
	if sides == nil {
		return 0, false
	}

	fv, err := e.estimator.Estimate(betMarketKey(bet), sides)
	if err != nil {
		return 0, false
	}

	fair, ok := fv.Odds[bet.Selection]
	if !ok {
		return 0, false
	}

	for _, q := range sides[bet.Selection] {
		if q.Source == bet.Bookmaker {
			return oddsmath.Edge(q.DecimalOdds, fair), true
		}
	}

	return 0, false
}

func betMarketKey(bet entity.TrackedBet) entity.MarketKey {
	return entity.MarketKey{FixtureID: bet.FixtureID, Market: bet.Market, Line: bet.Line}
}

// DrainCycle releases a bounded batch from the dispatch queue and turns the
// entries into tracked bets, highest edge first. Delivery failures requeue
// at the head; duplicates and dead entries are dropped.
func (e *Engine) DrainCycle(ctx context.Context) error {
	entries, err := e.queue.DrainBatch(ctx, e.drainBatchSize)
	if err != nil {
		return fmt.Errorf("drain dispatch queue: %w", err)
	}

	now := e.now()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Opportunity.EdgePercent > entries[j].Opportunity.EdgePercent
	})

	for _, entry := range entries {
		e.deliver(ctx, entry, now)
	}

	if depth, err := e.queue.Depth(ctx); err == nil {
		queueDepth.Set(float64(depth))
	}

	return nil
}

func (e *Engine) deliver(ctx context.Context, entry queue.Entry, now time.Time) {
	op := entry.Opportunity

	if !op.Kickoff.IsZero() && now.After(op.Kickoff) {
		logger(ctx).Info("queued opportunity expired before dispatch",
			"dedupe_key", op.DedupeKey(), "kickoff", op.Kickoff)
		e.ack(ctx, entry)

		return
	}

	_, err := e.tracker.Create(ctx, op)

	switch {
	case err == nil:
		alertsDispatched.Inc()
		e.ack(ctx, entry)
	case domain.HasCode(err, errcodes.DuplicateBet):
		logger(ctx).Info("duplicate dropped from queue", "dedupe_key", op.DedupeKey())
		e.ack(ctx, entry)
	default:
		logger(ctx).Warn("dispatch failed, requeued", "dedupe_key", op.DedupeKey(), "error", err)

		if rerr := e.queue.Requeue(ctx, entry); rerr != nil {
			logger(ctx).Error("requeue failed, entry lost", "dedupe_key", op.DedupeKey(), "error", rerr)
			e.ack(ctx, entry)
		}
	}
}

func (e *Engine) ack(ctx context.Context, entry queue.Entry) {
	if err := e.queue.Ack(ctx, entry); err != nil {
		logger(ctx).Warn("ack failed", "dedupe_key", entry.Opportunity.DedupeKey(), "error", err)
	}
}

// SweepCycle expires pending bets whose fixture kicked off without a user
// action.
func (e *Engine) SweepCycle(ctx context.Context) error {
	bets, err := e.tracker.ActiveBets(ctx)
	if err != nil {
		return fmt.Errorf("list active bets: %w", err)
	}

	now := e.now()
	expired := 0

	for _, bet := range bets {
		if !bet.Expired(now) {
			continue
		}

		if err := e.tracker.Expire(ctx, bet.ID); err != nil {
			logger(ctx).Warn("expire failed", "bet_id", bet.ID, "error", err)
			continue
		}

		expired++

		betsExpired.Inc()
	}

	if expired > 0 {
		logger(ctx).Info("expiry sweep completed", "expired", expired)
	}

	return nil
}

// SettleCycle grades played bets once their fixture has been over for the
// grace period. Missing results are retried next cycle; ungradeable markets
// are surfaced and left for manual settlement.
func (e *Engine) SettleCycle(ctx context.Context) error {
	bets, err := e.tracker.ActiveBets(ctx)
	if err != nil {
		return fmt.Errorf("list active bets: %w", err)
	}

	now := e.now()

	for _, bet := range bets {
		if !bet.Settleable(now, e.settleGrace) {
			continue
		}

		e.settleOne(ctx, bet)
	}

	return nil
}

func (e *Engine) settleOne(ctx context.Context, bet entity.TrackedBet) {
	actual, err := e.results.FinalStatistic(ctx, bet.FixtureID, bet.Market)
	if err != nil {
		switch {
		case domain.HasCode(err, errcodes.Unresolvable):
			logger(ctx).Warn("bet needs manual settlement",
				"bet_id", bet.ID, "market", bet.Market, "error", err)
		case domain.HasCode(err, errcodes.NotFound):
			logger(ctx).Info("result not published yet", "bet_id", bet.ID, "fixture_id", bet.FixtureID)
		default:
			logger(ctx).Warn("result fetch failed", "bet_id", bet.ID, "error", err)
		}

		return
	}

	outcome, err := settlement.Evaluate(bet, actual)
	if err != nil {
		logger(ctx).Warn("bet needs manual settlement", "bet_id", bet.ID, "error", err)
		return
	}

	if _, err := e.tracker.Settle(ctx, bet.ID, outcome.Result, outcome.Actual); err != nil {
		logger(ctx).Warn("settle failed", "bet_id", bet.ID, "error", err)
		return
	}

	betsSettled.WithLabelValues(outcome.Result.String()).Inc()
}
