package ton

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// Refresh fetches balance and unfiltered history together. Either failure
// fails the refresh.
func (s *Service) Refresh(ctx context.Context, userID string, network model.Network) (*model.RefreshResponse, error) {
	var resp model.RefreshResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		balance, err := s.GetBalance(gctx, userID, network)
		resp.Balance = balance
		return err
	})
	g.Go(func() error {
		hist, err := s.History(gctx, userID, network, nil)
		resp.History = hist
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}
