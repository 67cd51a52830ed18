// Package tracker owns the lifecycle of tracked bets: creation from
// dispatched opportunities, user actions, expiry, voiding and settlement.
// All mutations are serialized per dedupe key and every terminal transition
// archives the bet and removes it from the active store.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/service/settlement"
	"valuebet/internal/domain/value"
	"valuebet/pkg/contextx"
	"valuebet/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type BetStore interface {
	Save(ctx context.Context, bet entity.TrackedBet) error
	Get(ctx context.Context, id string) (entity.TrackedBet, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.TrackedBet, error)
}

type Archive interface {
	Archive(ctx context.Context, bet entity.TrackedBet) error
	GetByID(ctx context.Context, id string) (entity.TrackedBet, error)
	DailyStats(ctx context.Context, days int) ([]entity.DailyStats, error)
}

type Messenger interface {
	SendAlert(ctx context.Context, bet entity.TrackedBet) (entity.MessageRef, error)
	UpdateAlert(ctx context.Context, bet entity.TrackedBet) error
	DeleteAlert(ctx context.Context, ref entity.MessageRef) error
}

type Service struct {
	store     BetStore
	archive   Archive
	messenger Messenger

	baseUnit    float64
	voidMinEdge float64
	recentTTL   time.Duration

	keys   *keyedMutex
	recent *cache.Cache
	now    func() time.Time
}

func NewService(store BetStore, archive Archive, messenger Messenger) *Service {
	recentTTL := 24 * time.Hour

	return &Service{
		store:       store,
		archive:     archive,
		messenger:   messenger,
		baseUnit:    100,
		voidMinEdge: 3,
		recentTTL:   recentTTL,
		keys:        newKeyedMutex(),
		recent:      cache.New(recentTTL, time.Hour),
		now:         time.Now,
	}
}

func (s *Service) WithBaseUnit(unit float64) *Service {
	s.baseUnit = unit
	return s
}

func (s *Service) WithVoidMinEdge(edge float64) *Service {
	s.voidMinEdge = edge
	return s
}

func (s *Service) WithRecentTTL(ttl time.Duration) *Service {
	s.recentTTL = ttl
	s.recent = cache.New(ttl, time.Hour)

	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create tracks a dispatched opportunity: sizes the stake, sends the alert
// and persists the pending bet. Returns DuplicateBet when the dedupe key is
// already tracked or was alerted within the recent-alert TTL.
func (s *Service) Create(ctx context.Context, op entity.Opportunity) (entity.TrackedBet, error) {
	key := op.DedupeKey()

	s.keys.Lock(key)
	defer s.keys.Unlock(key)

	if _, found := s.recent.Get(key); found {
		return entity.TrackedBet{}, domain.NewError(errcodes.DuplicateBet,
			fmt.Sprintf("recently alerted: %s", key))
	}

	tracked, err := s.findActive(ctx, key)
	if err != nil {
		return entity.TrackedBet{}, err
	}

	if tracked != nil {
		return entity.TrackedBet{}, domain.NewError(errcodes.DuplicateBet,
			fmt.Sprintf("already tracked as %s: %s", tracked.ID, key))
	}

	bet := entity.TrackedBet{
		ID:          op.ID,
		FixtureID:   op.FixtureID,
		Fixture:     op.Fixture,
		League:      op.League,
		Kickoff:     op.Kickoff,
		Market:      op.Market,
		Selection:   op.Selection,
		Line:        op.Line,
		Bookmaker:   op.Bookmaker,
		Odds:        op.QuotedOdds,
		FairOdds:    op.FairOdds,
		EdgePercent: op.EdgePercent,
		Stake:       Stake(op.QuotedOdds, s.baseUnit),
		Status:      value.StatusPending,
		CreatedAt:   s.now(),
	}

	ref, err := s.messenger.SendAlert(ctx, bet)
	if err != nil {
		return entity.TrackedBet{}, domain.WrapError(err, errcodes.TransportError, "send alert")
	}

	bet.Message = ref

	if err := s.store.Save(ctx, bet); err != nil {
		if derr := s.messenger.DeleteAlert(ctx, ref); derr != nil {
			logger(ctx).Warn("orphaned alert message", "bet_id", bet.ID, "error", derr)
		}

		return entity.TrackedBet{}, err
	}

	s.recent.Set(key, struct{}{}, s.recentTTL)

	logger(ctx).Info("bet tracked",
		"bet_id", bet.ID,
		"fixture", bet.Fixture,
		"market", bet.Market,
		"selection", bet.Selection.String(),
		"bookmaker", bet.Bookmaker,
		"odds", bet.Odds,
		"edge_percent", bet.EdgePercent,
		"stake", bet.Stake,
	)

	return bet, nil
}

// RecordAction applies a user decision to a pending bet. Played bets stay
// active for settlement; skipped bets go terminal. Actions on missing or
// terminal records are stale and ignored.
func (s *Service) RecordAction(ctx context.Context, id string, action value.UserAction, actor string) (entity.TrackedBet, error) {
	unlock, bet, err := s.lockBet(ctx, id)
	if err != nil {
		if archived, ok := s.archivedCopy(ctx, id); ok {
			logger(ctx).Warn("stale action on archived bet",
				"bet_id", id, "action", action.String(), "status", archived.Status.String())
			return archived, nil
		}

		return entity.TrackedBet{}, err
	}
	defer unlock()

	next := action.Status()
	if !bet.Status.CanTransitionTo(next) {
		logger(ctx).Warn("stale action ignored",
			"bet_id", id, "action", action.String(), "status", bet.Status.String())
		return bet, nil
	}

	bet.Status = next
	bet.ActedAt = s.now()
	bet.ActedBy = actor

	if next == value.StatusPlayed {
		if err := s.store.Save(ctx, bet); err != nil {
			return entity.TrackedBet{}, err
		}

		if err := s.messenger.UpdateAlert(ctx, bet); err != nil {
			logger(ctx).Warn("alert update failed", "bet_id", bet.ID, "error", err)
		}
	} else {
		if err := s.finalize(ctx, &bet); err != nil {
			return entity.TrackedBet{}, err
		}
	}

	logger(ctx).Info("bet action recorded",
		"bet_id", id, "action", action.String(), "actor", actor)

	return bet, nil
}

// Expire transitions a pending bet whose fixture kicked off without a user
// action. Stale on anything but a pending bet.
func (s *Service) Expire(ctx context.Context, id string) error {
	unlock, bet, err := s.lockBet(ctx, id)
	if err != nil {
		if _, ok := s.archivedCopy(ctx, id); ok {
			return nil
		}

		return err
	}
	defer unlock()

	if !bet.Status.CanTransitionTo(value.StatusExpired) {
		logger(ctx).Warn("stale expire ignored", "bet_id", id, "status", bet.Status.String())
		return nil
	}

	bet.Status = value.StatusExpired

	if err := s.finalize(ctx, &bet); err != nil {
		return err
	}

	logger(ctx).Info("bet expired", "bet_id", id, "fixture", bet.Fixture)

	return nil
}

// Void cancels a pending bet whose edge no longer holds.
func (s *Service) Void(ctx context.Context, id, reason string) error {
	unlock, bet, err := s.lockBet(ctx, id)
	if err != nil {
		if _, ok := s.archivedCopy(ctx, id); ok {
			return nil
		}

		return err
	}
	defer unlock()

	if !bet.Status.CanTransitionTo(value.StatusVoid) {
		logger(ctx).Warn("stale void ignored", "bet_id", id, "status", bet.Status.String())
		return nil
	}

	bet.Status = value.StatusVoid
	bet.VoidReason = reason

	if err := s.finalize(ctx, &bet); err != nil {
		return err
	}

	logger(ctx).Info("bet voided", "bet_id", id, "reason", reason)

	return nil
}

// Settle grades a played bet into a terminal result. Settling an already
// archived bet is a no-op returning the stored record, so repeated
// settlement cycles and manual retries are safe.
func (s *Service) Settle(ctx context.Context, id string, result value.BetResult, resultValue float64) (entity.TrackedBet, error) {
	unlock, bet, err := s.lockBet(ctx, id)
	if err != nil {
		if archived, ok := s.archivedCopy(ctx, id); ok {
			return archived, nil
		}

		return entity.TrackedBet{}, err
	}
	defer unlock()

	next := result.Status()
	if !bet.Status.CanTransitionTo(next) {
		logger(ctx).Warn("stale settle ignored",
			"bet_id", id, "result", result.String(), "status", bet.Status.String())
		return bet, nil
	}

	bet.Status = next
	bet.Result = result
	bet.ResultValue = resultValue
	bet.SettledAt = s.now()
	bet.Profit = settlement.Profit(result, bet.Stake, bet.Odds)

	if err := s.finalize(ctx, &bet); err != nil {
		return entity.TrackedBet{}, err
	}

	logger(ctx).Info("bet settled",
		"bet_id", id,
		"result", result.String(),
		"result_value", resultValue,
		"profit", bet.Profit,
		"actor", actorName(ctx),
	)

	return bet, nil
}

// Discard drops an active bet without grading it: the alert message is
// removed and the record deleted, leaving no archive trace. An operator
// cleanup for bad alerts, not a lifecycle outcome.
func (s *Service) Discard(ctx context.Context, id string) (entity.TrackedBet, error) {
	unlock, bet, err := s.lockBet(ctx, id)
	if err != nil {
		return entity.TrackedBet{}, err
	}
	defer unlock()

	if err := s.store.Delete(ctx, bet.ID); err != nil {
		return entity.TrackedBet{}, err
	}

	if err := s.messenger.DeleteAlert(ctx, bet.Message); err != nil {
		logger(ctx).Warn("alert delete failed", "bet_id", bet.ID, "error", err)
	}

	logger(ctx).Info("bet discarded", "bet_id", bet.ID, "actor", actorName(ctx))

	return bet, nil
}

// ShouldVoid reports whether a pending bet's edge has decayed below the void
// floor or below half of the edge it was alerted at.
func (s *Service) ShouldVoid(bet entity.TrackedBet, currentEdge float64) bool {
	return currentEdge < s.voidMinEdge || currentEdge < bet.EdgePercent/2
}

// Get returns a tracked bet by id, falling back to the archive for
// terminal records.
func (s *Service) Get(ctx context.Context, id string) (entity.TrackedBet, error) {
	bet, err := s.store.Get(ctx, id)
	if err == nil {
		return bet, nil
	}

	if !domain.HasCode(err, errcodes.BetNotFound) {
		return entity.TrackedBet{}, err
	}

	return s.archive.GetByID(ctx, id)
}

// ActiveBets lists all bets still in the active store (pending and played).
func (s *Service) ActiveBets(ctx context.Context) ([]entity.TrackedBet, error) {
	return s.store.List(ctx)
}

// Stats aggregates archived bets per day over the trailing window.
func (s *Service) Stats(ctx context.Context, days int) ([]entity.DailyStats, error) {
	return s.archive.DailyStats(ctx, days)
}

// RecentlyAlerted reports whether the dedupe key was alerted within the
// recent-alert TTL. Keys of active bets count as alerted.
func (s *Service) RecentlyAlerted(key string) bool {
	_, found := s.recent.Get(key)
	return found
}

// lockBet takes the per-key lock for the bet and re-reads it under the lock,
// so the caller observes the state no concurrent transition can still change.
func (s *Service) lockBet(ctx context.Context, id string) (func(), entity.TrackedBet, error) {
	bet, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, entity.TrackedBet{}, err
	}

	key := bet.DedupeKey()
	s.keys.Lock(key)

	bet, err = s.store.Get(ctx, id)
	if err != nil {
		s.keys.Unlock(key)
		return nil, entity.TrackedBet{}, err
	}

	return func() { s.keys.Unlock(key) }, bet, nil
}

// finalize moves a bet into its terminal state: archive first, then drop it
// from the active store, then mirror the outcome onto the alert message.
// Archive is idempotent, so a failed delete is retried on the next attempt.
func (s *Service) finalize(ctx context.Context, bet *entity.TrackedBet) error {
	if err := s.archive.Archive(ctx, *bet); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, bet.ID); err != nil {
		return err
	}

	if err := s.messenger.UpdateAlert(ctx, *bet); err != nil {
		logger(ctx).Warn("alert update failed", "bet_id", bet.ID, "error", err)
	}

	return nil
}

func (s *Service) findActive(ctx context.Context, key string) (*entity.TrackedBet, error) {
	bets, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range bets {
		if bets[i].DedupeKey() == key {
			return &bets[i], nil
		}
	}

	return nil, nil //nolint:nilnil
}

func (s *Service) archivedCopy(ctx context.Context, id string) (entity.TrackedBet, bool) {
	archived, err := s.archive.GetByID(ctx, id)
	if err != nil {
		return entity.TrackedBet{}, false
	}

	return archived, archived.Status.Terminal()
}

// actorName resolves who drove the transition; cycles carry no actor.
func actorName(ctx context.Context) string {
	actor, err := contextx.ActorFromContext(ctx)
	if err != nil {
		return "engine"
	}

	return actor.String()
}
