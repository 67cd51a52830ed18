// Package persistence archives terminal bets in Postgres and serves the
// aggregates built from them.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/pkg/errcodes"
)

type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func (r *ArchiveRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Archive stores a terminal bet. Re-archiving the same id is a no-op, which
// keeps settlement idempotent.
func (r *ArchiveRepository) Archive(ctx context.Context, bet entity.TrackedBet) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO settled_bets (
				id, fixture_id, fixture, league, kickoff, market, selection,
				line, bookmaker, odds, fair_odds, edge_percent, stake, status,
				created_at, acted_at, acted_by, void_reason, settled_at,
				result, result_value, profit, chat_id, message_id
			) VALUES (
				:id, :fixture_id, :fixture, :league, :kickoff, :market, :selection,
				:line, :bookmaker, :odds, :fair_odds, :edge_percent, :stake, :status,
				:created_at, :acted_at, :acted_by, :void_reason, :settled_at,
				:result, :result_value, :profit, :chat_id, :message_id
			)
			ON CONFLICT (id) DO NOTHING`

		if _, err := tx.NamedExecContext(ctx, query, fromBet(bet)); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to archive bet")
		}

		return nil
	})
}

func (r *ArchiveRepository) GetByID(ctx context.Context, id string) (entity.TrackedBet, error) {
	query := `SELECT * FROM settled_bets WHERE id = $1`

	var schema betSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.TrackedBet{}, domain.NewError(errcodes.BetNotFound, "no archived bet "+id)
		}

		return entity.TrackedBet{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get archived bet")
	}

	return schema.toDomain(), nil
}

// ListByDay returns archived bets created on the given UTC day.
func (r *ArchiveRepository) ListByDay(ctx context.Context, day time.Time) ([]entity.TrackedBet, error) {
	from := day.UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	query := `
		SELECT * FROM settled_bets
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at`

	var schemas []betSchema
	if err := r.db.SelectContext(ctx, &schemas, query, from, to); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list archived bets")
	}

	bets := make([]entity.TrackedBet, 0, len(schemas))
	for _, schema := range schemas {
		bets = append(bets, schema.toDomain())
	}

	return bets, nil
}

// DailyStats aggregates the archive per day over the last `days` days,
// newest first. Staked and profit count settled bets only.
func (r *ArchiveRepository) DailyStats(ctx context.Context, days int) ([]entity.DailyStats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)

	query := `
		SELECT
			date_trunc('day', created_at)::date                                        AS day,
			count(*)                                                                   AS total,
			count(*) FILTER (WHERE status IN ('played', 'won', 'lost', 'push'))        AS played,
			count(*) FILTER (WHERE status = 'skipped')                                 AS skipped,
			count(*) FILTER (WHERE status = 'expired')                                 AS expired,
			count(*) FILTER (WHERE status = 'void')                                    AS voided,
			count(*) FILTER (WHERE status = 'won')                                     AS won,
			count(*) FILTER (WHERE status = 'lost')                                    AS lost,
			count(*) FILTER (WHERE status = 'push')                                    AS pushed,
			coalesce(sum(stake) FILTER (WHERE status IN ('won', 'lost', 'push')), 0)   AS staked,
			coalesce(sum(profit) FILTER (WHERE status IN ('won', 'lost', 'push')), 0)  AS profit
		FROM settled_bets
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1 DESC`

	var stats []entity.DailyStats
	if err := r.db.SelectContext(ctx, &stats, query, since); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to aggregate daily stats")
	}

	return stats, nil
}
