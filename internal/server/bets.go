package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/contextx"
	"valuebet/pkg/errcodes"
	"valuebet/pkg/httpx/reply"
	"valuebet/pkg/httpx/req"
	"valuebet/pkg/lox"
	"valuebet/pkg/rest"
)

const (
	opsActor = contextx.Actor("ops-api")

	defaultStatsDays = 7
	maxStatsDays     = 90
)

type betService interface {
	ActiveBets(ctx context.Context) ([]entity.TrackedBet, error)
	Get(ctx context.Context, id string) (entity.TrackedBet, error)
	Settle(ctx context.Context, id string, result value.BetResult, resultValue float64) (entity.TrackedBet, error)
	Discard(ctx context.Context, id string) (entity.TrackedBet, error)
	Stats(ctx context.Context, days int) ([]entity.DailyStats, error)
}

type BetServer struct {
	betService betService
}

func NewBetServer(betService betService) BetServer {
	return BetServer{
		betService: betService,
	}
}

func (s BetServer) getV1ActiveBets(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	bets, err := s.betService.ActiveBets(ctx)
	if err != nil {
		return fmt.Errorf("betService.ActiveBets: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(bets, newRESTBet))

	return nil
}

func (s BetServer) getV1Bet(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	bet, err := s.betService.Get(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("betService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBet(bet))

	return nil
}

// postV1SettleBet grades a played bet by hand, for markets the results
// collaborator cannot resolve.
func (s BetServer) postV1SettleBet(w http.ResponseWriter, r *http.Request) error {
	ctx := contextx.WithActor(r.Context(), opsActor)

	var request rest.SettleRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := value.ParseBetResult(request.Result)
	if err != nil {
		return domain.WrapError(err, errcodes.ValidationError, "parse result")
	}

	bet, err := s.betService.Settle(ctx, r.PathValue("id"), result, request.ResultValue)
	if err != nil {
		return fmt.Errorf("betService.Settle: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBet(bet))

	return nil
}

// deleteV1Bet discards an active bet without grading it. Operator cleanup
// for bad alerts; the record leaves no archive trace.
func (s BetServer) deleteV1Bet(w http.ResponseWriter, r *http.Request) error {
	ctx := contextx.WithActor(r.Context(), opsActor)

	if _, err := s.betService.Discard(ctx, r.PathValue("id")); err != nil {
		return fmt.Errorf("betService.Discard: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BetServer) getV1DailyStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	days, err := statsDays(r.URL.Query().Get("days"))
	if err != nil {
		return err
	}

	stats, err := s.betService.Stats(ctx, days)
	if err != nil {
		return fmt.Errorf("betService.Stats: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(stats, newRESTDailyStats))

	return nil
}

func statsDays(raw string) (int, error) {
	if raw == "" {
		return defaultStatsDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ValidationError, "parse days")
	}

	if days < 1 || days > maxStatsDays {
		return 0, domain.NewError(errcodes.ValidationError,
			fmt.Sprintf("days must be between 1 and %d", maxStatsDays))
	}

	return days, nil
}
