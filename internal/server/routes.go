package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"valuebet/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/bets", func(r chi.Router) {
				r.Get("/active", handler(s.getV1ActiveBets))
				r.Get("/{id}", handler(s.getV1Bet))
				r.Post("/{id}/settle", handler(s.postV1SettleBet))
				r.Delete("/{id}", handler(s.deleteV1Bet))
			})
			r.Route("/stats", func(r chi.Router) {
				r.Get("/daily", handler(s.getV1DailyStats))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
