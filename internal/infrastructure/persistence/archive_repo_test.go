package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/internal/infrastructure/persistence"
	"valuebet/pkg/dbtest"
	"valuebet/pkg/errcodes"
)

// testRepo connects to the Postgres named by PG_TEST_DSN and applies the
// schema. Skipped when the variable is not set.
func testRepo(t *testing.T) *persistence.ArchiveRepository {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	migration := filepath.Join("..", "..", "..", "migrations", "001_settled_bets.sql")
	require.NoError(t, dbtest.MigrateFromFile(db, migration))

	t.Cleanup(func() {
		db.MustExec(`TRUNCATE settled_bets`)
		db.Close() //nolint:errcheck
	})

	return persistence.NewArchiveRepository(db)
}

func archivedBet(id string, status value.BetStatus, createdAt time.Time) entity.TrackedBet {
	return entity.TrackedBet{
		ID:          id,
		FixtureID:   "f100",
		Fixture:     "Arsenal vs Chelsea",
		League:      "Premier League",
		Kickoff:     createdAt.Add(3 * time.Hour),
		Market:      "Total Corners",
		Selection:   "Over 9.5",
		Line:        9.5,
		Bookmaker:   "betsson",
		Odds:        2.10,
		FairOdds:    1.90,
		EdgePercent: 10.53,
		Stake:       75,
		Status:      status,
		CreatedAt:   createdAt,
		Message:     entity.MessageRef{ChatID: 42, MessageID: 7},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	rq := require.New(t)

	repo := testRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	bet := archivedBet("b1", value.StatusWon, now.Add(-6*time.Hour))
	bet.ActedAt = now.Add(-5 * time.Hour)
	bet.ActedBy = "@punter"
	bet.SettledAt = now
	bet.Result = value.ResultWon
	bet.ResultValue = 11
	bet.Profit = 82.5

	rq.NoError(repo.Archive(ctx, bet))

	got, err := repo.GetByID(ctx, "b1")
	rq.NoError(err)

	rq.Equal(bet.ID, got.ID)
	rq.Equal(bet.FixtureID, got.FixtureID)
	rq.Equal(bet.Selection, got.Selection)
	rq.Equal(bet.Status, got.Status)
	rq.Equal(bet.Result, got.Result)
	rq.Equal(bet.ActedBy, got.ActedBy)
	rq.Equal(bet.Message, got.Message)
	rq.InDelta(bet.Stake, got.Stake, 1e-9)
	rq.InDelta(bet.Profit, got.Profit, 1e-9)
	rq.InDelta(bet.ResultValue, got.ResultValue, 1e-9)
	rq.True(got.CreatedAt.Equal(bet.CreatedAt))
	rq.True(got.ActedAt.Equal(bet.ActedAt))
	rq.True(got.SettledAt.Equal(bet.SettledAt))
	rq.True(got.Kickoff.Equal(bet.Kickoff))
}

// Re-archiving an id must not overwrite the stored row, so a settlement
// retried after a crash cannot rewrite history.
func TestArchiveIdempotent(t *testing.T) {
	rq := require.New(t)

	repo := testRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	rq.NoError(repo.Archive(ctx, archivedBet("b1", value.StatusWon, now)))
	rq.NoError(repo.Archive(ctx, archivedBet("b1", value.StatusLost, now)))

	got, err := repo.GetByID(ctx, "b1")
	rq.NoError(err)
	rq.Equal(value.StatusWon, got.Status)
}

func TestGetByIDMissing(t *testing.T) {
	rq := require.New(t)

	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.BetNotFound))
}

func TestListByDay(t *testing.T) {
	rq := require.New(t)

	repo := testRepo(t)
	ctx := context.Background()

	today := time.Now().UTC().Truncate(24 * time.Hour)

	rq.NoError(repo.Archive(ctx, archivedBet("late", value.StatusExpired, today.Add(15*time.Hour))))
	rq.NoError(repo.Archive(ctx, archivedBet("early", value.StatusSkipped, today.Add(9*time.Hour))))
	rq.NoError(repo.Archive(ctx, archivedBet("yesterday", value.StatusWon, today.Add(-3*time.Hour))))

	bets, err := repo.ListByDay(ctx, today)
	rq.NoError(err)
	rq.Len(bets, 2)
	rq.Equal("early", bets[0].ID)
	rq.Equal("late", bets[1].ID)
}

func TestDailyStats(t *testing.T) {
	rq := require.New(t)

	repo := testRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	won := archivedBet("won", value.StatusWon, now)
	won.Stake = 75
	won.Profit = 82.5

	lost := archivedBet("lost", value.StatusLost, now)
	lost.Stake = 100
	lost.Profit = -100

	rq.NoError(repo.Archive(ctx, won))
	rq.NoError(repo.Archive(ctx, lost))
	rq.NoError(repo.Archive(ctx, archivedBet("skipped", value.StatusSkipped, now)))
	rq.NoError(repo.Archive(ctx, archivedBet("expired", value.StatusExpired, now)))

	stats, err := repo.DailyStats(ctx, 7)
	rq.NoError(err)
	rq.Len(stats, 1)

	day := stats[0]
	rq.Equal(now.Format("2006-01-02"), day.Date.Format("2006-01-02"))
	rq.Equal(4, day.Total)
	rq.Equal(2, day.Played) // settled bets count as played
	rq.Equal(1, day.Skipped)
	rq.Equal(1, day.Expired)
	rq.Equal(0, day.Voided)
	rq.Equal(1, day.Won)
	rq.Equal(1, day.Lost)
	rq.Equal(0, day.Pushed)
	rq.InDelta(175, day.Staked, 1e-9)  // settled turnover only
	rq.InDelta(-17.5, day.Profit, 1e-9)
	rq.InDelta(-10, day.ROI(), 1e-9)
}
