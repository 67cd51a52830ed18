// Package handler reacts to operator input from Telegram: commands for
// engine status and performance, and the played/skipped buttons under
// dispatched alerts.
package handler

import (
	"context"
	"time"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
)

type betService interface {
	ActiveBets(ctx context.Context) ([]entity.TrackedBet, error)
	RecordAction(ctx context.Context, id string, action value.UserAction, actor string) (entity.TrackedBet, error)
	Stats(ctx context.Context, days int) ([]entity.DailyStats, error)
}

type dispatchQueue interface {
	Depth(ctx context.Context) (int64, error)
}

// Settings is the engine configuration snapshot /status reports.
type Settings struct {
	MinEdgePercent float64
	MaxEdgePercent float64
	FairMethod     string
	ScanInterval   time.Duration
	BettableBooks  []string
	SharpBooks     []string
}

type Handler struct {
	bets     betService
	queue    dispatchQueue
	settings Settings
}

func New(bets betService, queue dispatchQueue, settings Settings) *Handler {
	return &Handler{
		bets:     bets,
		queue:    queue,
		settings: settings,
	}
}
