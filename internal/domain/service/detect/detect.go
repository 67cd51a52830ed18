// Package detect turns fair values and raw quotes into a bounded,
// non-contradictory list of value opportunities.
package detect

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/xid"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/oddsmath"
)

const (
	defaultMinEdge    = 5.0
	defaultMaxEdge    = 25.0
	defaultMinOdds    = 1.50
	defaultMaxOdds    = 3.0
	defaultFreshness  = 5 * time.Minute
	defaultMaxPerBook = 3
)

// Detector filters per-book quotes against fair value and bounds the result
// per cycle. Sharp books used for the fair line are never dispatch targets,
// so only the configured bettable set can produce opportunities.
type Detector struct {
	minEdge    float64
	maxEdge    float64
	minOdds    float64
	maxOdds    float64
	freshness  time.Duration
	maxPerBook int
	bettable   map[string]struct{}
}

func NewDetector(bettableBooks []string) *Detector {
	bettable := make(map[string]struct{}, len(bettableBooks))
	for _, book := range bettableBooks {
		bettable[strings.ToLower(book)] = struct{}{}
	}

	return &Detector{
		minEdge:    defaultMinEdge,
		maxEdge:    defaultMaxEdge,
		minOdds:    defaultMinOdds,
		maxOdds:    defaultMaxOdds,
		freshness:  defaultFreshness,
		maxPerBook: defaultMaxPerBook,
		bettable:   bettable,
	}
}

// WithEdgeBounds sets the accepted edge window in percent. The upper bound
// rejects quotes so far off fair value they are likely stale or erroneous.
func (d *Detector) WithEdgeBounds(min, max float64) *Detector {
	d.minEdge, d.maxEdge = min, max
	return d
}

func (d *Detector) WithOddsBounds(min, max float64) *Detector {
	d.minOdds, d.maxOdds = min, max
	return d
}

func (d *Detector) WithFreshness(window time.Duration) *Detector {
	if window > 0 {
		d.freshness = window
	}

	return d
}

func (d *Detector) WithMaxPerBook(n int) *Detector {
	if n > 0 {
		d.maxPerBook = n
	}

	return d
}

// Detect emits one opportunity per bettable book whose fresh quote clears
// the edge and odds windows against the market's fair value. Output order
// is unspecified; callers sort downstream.
func (d *Detector) Detect(fixture entity.Fixture, fv entity.FairValue, sides map[value.Selection][]entity.Quote, now time.Time) []entity.Opportunity {
	var opportunities []entity.Opportunity

	for selection, quotes := range sides {
		fair, ok := fv.Odds[selection]
		if !ok || fair <= 1.0 {
			continue
		}

		for _, quote := range quotes {
			if !d.Bettable(quote.Source) {
				continue
			}

			if !quote.Fresh(now, d.freshness) {
				continue
			}

			if quote.DecimalOdds < d.minOdds || quote.DecimalOdds > d.maxOdds {
				continue
			}

			edge := oddsmath.Edge(quote.DecimalOdds, fair)
			if edge < d.minEdge || edge > d.maxEdge {
				continue
			}

			opportunities = append(opportunities, entity.Opportunity{
				ID:          xid.New().String(),
				FixtureID:   fixture.ID,
				Fixture:     fixture.DisplayName(),
				League:      fixture.League,
				Kickoff:     fixture.Kickoff,
				Market:      quote.Market,
				Selection:   selection,
				Line:        fv.Key.Line,
				Bookmaker:   strings.ToLower(quote.Source),
				QuotedOdds:  quote.DecimalOdds,
				FairOdds:    fair,
				EdgePercent: edge,
				ObservedAt:  quote.ObservedAt,
			})
		}
	}

	return opportunities
}

// Bettable reports whether the book may be alerted on, as opposed to only
// feeding the fair line.
func (d *Detector) Bettable(book string) bool {
	_, ok := d.bettable[strings.ToLower(book)]
	return ok
}

// ResolveConflicts removes contradictory sides quoted on the same line. When
// one line carries both Over and Under opportunities, only the side whose
// best opportunity has the higher edge survives, keeping every book on that
// side. One-sided groups and non-directional selections pass untouched.
func ResolveConflicts(opportunities []entity.Opportunity) []entity.Opportunity {
	groups := make(map[entity.MarketKey][]entity.Opportunity)
	order := make([]entity.MarketKey, 0)

	for _, op := range opportunities {
		key := op.MarketKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], op)
	}

	resolved := make([]entity.Opportunity, 0, len(opportunities))

	for _, key := range order {
		resolved = append(resolved, resolveGroup(groups[key])...)
	}

	return resolved
}

func resolveGroup(group []entity.Opportunity) []entity.Opportunity {
	var bestOver, bestUnder float64

	hasOver, hasUnder := false, false

	for _, op := range group {
		switch op.Selection.Direction() {
		case value.DirectionOver:
			hasOver = true
			bestOver = max(bestOver, op.EdgePercent)
		case value.DirectionUnder:
			hasUnder = true
			bestUnder = max(bestUnder, op.EdgePercent)
		}
	}

	if !hasOver || !hasUnder {
		return group
	}

	losing := value.DirectionUnder
	if bestUnder > bestOver {
		losing = value.DirectionOver
	}

	kept := make([]entity.Opportunity, 0, len(group))

	for _, op := range group {
		if op.Selection.Direction() == losing {
			continue
		}

		kept = append(kept, op)
	}

	return kept
}

// Throttle sorts by descending edge and caps how many opportunities any
// single book contributes per cycle, dropping the lowest-edge excess.
func (d *Detector) Throttle(opportunities []entity.Opportunity) []entity.Opportunity {
	sorted := make([]entity.Opportunity, len(opportunities))
	copy(sorted, opportunities)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EdgePercent > sorted[j].EdgePercent
	})

	perBook := make(map[string]int)
	kept := make([]entity.Opportunity, 0, len(sorted))

	for _, op := range sorted {
		if perBook[op.Bookmaker] >= d.maxPerBook {
			continue
		}

		perBook[op.Bookmaker]++

		kept = append(kept, op)
	}

	return kept
}
