package tracker

import (
	"math"
)

// stakeTable maps odds bands to a fraction of the base unit: longer odds,
// smaller stake.
var stakeTable = []struct {
	maxOdds    float64
	multiplier float64
}{
	{maxOdds: 2.00, multiplier: 1.00},
	{maxOdds: 2.75, multiplier: 0.75},
	{maxOdds: 4.00, multiplier: 0.50},
	{maxOdds: 7.00, multiplier: 0.25},
}

const longshotMultiplier = 0.10

// Stake sizes a bet from its decimal odds, in units of baseUnit, rounded
// to cents.
func Stake(odds, baseUnit float64) float64 {
	multiplier := longshotMultiplier

	for _, band := range stakeTable {
		if odds <= band.maxOdds {
			multiplier = band.multiplier
			break
		}
	}

	return math.Round(baseUnit*multiplier*100) / 100
}
