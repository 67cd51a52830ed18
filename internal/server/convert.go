package server

import (
	"valuebet/internal/domain/entity"
	"valuebet/pkg/rest"
)

const statsDateLayout = "2006-01-02"

func newRESTBet(bet entity.TrackedBet) rest.Bet {
	return rest.Bet{
		ID:          bet.ID,
		FixtureID:   bet.FixtureID,
		Fixture:     bet.Fixture,
		League:      bet.League,
		Kickoff:     bet.Kickoff,
		Market:      bet.Market,
		Selection:   bet.Selection.String(),
		Bookmaker:   bet.Bookmaker,
		Odds:        bet.Odds,
		FairOdds:    bet.FairOdds,
		EdgePercent: bet.EdgePercent,
		Stake:       bet.Stake,
		Status:      bet.Status.String(),
		CreatedAt:   bet.CreatedAt,
		VoidReason:  bet.VoidReason,
		Result:      bet.Result.String(),
		ResultValue: bet.ResultValue,
		Profit:      bet.Profit,
	}
}

func newRESTDailyStats(stats entity.DailyStats) rest.DailyStats {
	return rest.DailyStats{
		Date:       stats.Date.Format(statsDateLayout),
		Total:      stats.Total,
		Played:     stats.Played,
		Skipped:    stats.Skipped,
		Expired:    stats.Expired,
		Voided:     stats.Voided,
		Won:        stats.Won,
		Lost:       stats.Lost,
		Pushed:     stats.Pushed,
		Staked:     stats.Staked,
		Profit:     stats.Profit,
		ROIPercent: stats.ROI(),
	}
}
