// Package server is the ops JSON API over tracked bets: listing, manual
// settlement and archive aggregates.
package server

// Server combines the entity-specific HTTP servers. Bets are the only
// entity today, but there may be more.
type Server struct {
	BetServer
}

func NewServer(
	betServer BetServer,
) Server {
	return Server{
		BetServer: betServer,
	}
}
