package ton

import (
	"context"
	"fmt"

	"github.com/sergeybanach/wallet-app-1/internal/address"
	"github.com/sergeybanach/wallet-app-1/internal/history"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// History returns the wallet's most recent transactions on network,
// reconciled, filtered by req (which may be nil) and newest first.
func (s *Service) History(ctx context.Context, userID string, network model.Network, req *model.LogRequest) (*model.LogResponse, error) {
	if req != nil {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidFilter, err)
		}
	}

	ledger, err := s.ledger(network)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Address(ctx, userID)
	if err != nil {
		return nil, err
	}
	display, err := address.ForNetwork(raw, network)
	if err != nil {
		return nil, err
	}

	records, err := ledger.GetTransactions(ctx, raw, s.opts.HistoryLimit)
	if err != nil {
		return nil, err
	}

	entries := s.reconciler.Reconcile(raw, records)
	entries, err = history.Filter(entries, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidFilter, err)
	}
	received, sent := history.Totals(entries)

	return &model.LogResponse{
		Address:       display,
		Network:       network,
		TotalReceived: received,
		TotalSent:     sent,
		Transactions:  entries,
	}, nil
}
