package results

// Wire shapes of the fixture-statistics API.

type resultsResponseDTO struct {
	Data []fixtureResultDTO `json:"data"`
}

type fixtureResultDTO struct {
	ID    string       `json:"id"`
	Stats sideStatsDTO `json:"stats"`
}

type sideStatsDTO struct {
	Home []periodStatsDTO `json:"home"`
	Away []periodStatsDTO `json:"away"`
}

type periodStatsDTO struct {
	Period string             `json:"period"`
	Stats  map[string]float64 `json:"stats"`
}

// fullMatch is the period covering the whole fixture.
const fullMatch = "all"

func (s sideStatsDTO) fullMatchTotals() (map[string]float64, map[string]float64) {
	return periodStats(s.Home), periodStats(s.Away)
}

func periodStats(periods []periodStatsDTO) map[string]float64 {
	for _, p := range periods {
		if p.Period == fullMatch {
			return p.Stats
		}
	}

	return nil
}
