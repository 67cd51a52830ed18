package entity

import (
	"fmt"
	"time"
)

// Fixture is the sporting event quotes refer to.
type Fixture struct {
	ID       string    `json:"id"`
	Sport    string    `json:"sport"`
	League   string    `json:"league"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Kickoff  time.Time `json:"kickoff"`
}

// DisplayName renders the fixture for alerts and logs.
func (f Fixture) DisplayName() string {
	return fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
}

// Started reports whether the kickoff time has passed.
func (f Fixture) Started(now time.Time) bool {
	return !f.Kickoff.IsZero() && now.After(f.Kickoff)
}
