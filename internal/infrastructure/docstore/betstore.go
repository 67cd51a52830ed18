package docstore

import (
	"context"
	"fmt"
	"sort"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/pkg/errcodes"
)

const activeBetsPath = "active_bets"

// BetStore is the typed active-bet view on top of the document store. It
// holds only non-terminal records; terminal bets move to the archive and
// are deleted here.
type BetStore struct {
	client *Client
}

func NewBetStore(client *Client) *BetStore {
	return &BetStore{client: client}
}

func (s *BetStore) Save(ctx context.Context, bet entity.TrackedBet) error {
	if err := s.client.Put(ctx, betPath(bet.ID), bet); err != nil {
		return fmt.Errorf("client.Put: %w", err)
	}

	return nil
}

func (s *BetStore) Get(ctx context.Context, id string) (entity.TrackedBet, error) {
	var bet entity.TrackedBet

	if err := s.client.Get(ctx, betPath(id), &bet); err != nil {
		if domain.HasCode(err, errcodes.NotFound) {
			return entity.TrackedBet{}, domain.NewError(errcodes.BetNotFound, "no active bet "+id)
		}

		return entity.TrackedBet{}, fmt.Errorf("client.Get: %w", err)
	}

	return bet, nil
}

func (s *BetStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, betPath(id)); err != nil {
		return fmt.Errorf("client.Delete: %w", err)
	}

	return nil
}

// List returns every active bet, oldest first.
func (s *BetStore) List(ctx context.Context) ([]entity.TrackedBet, error) {
	var byID map[string]entity.TrackedBet

	err := s.client.Get(ctx, activeBetsPath, &byID)
	if err != nil {
		if domain.HasCode(err, errcodes.NotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("client.Get: %w", err)
	}

	bets := make([]entity.TrackedBet, 0, len(byID))
	for _, bet := range byID {
		bets = append(bets, bet)
	}

	sort.Slice(bets, func(i, j int) bool { return bets[i].CreatedAt.Before(bets[j].CreatedAt) })

	return bets, nil
}

func betPath(id string) string {
	return activeBetsPath + "/" + id
}
