package history

import (
	"fmt"

	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// Filter returns the entries matching req, keeping their order. A nil req
// matches everything.
func Filter(entries []model.HistoryEntry, req *model.LogRequest) ([]model.HistoryEntry, error) {
	if req == nil {
		return entries, nil
	}

	result := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		// Filter by direction
		if req.Direction != nil && *req.Direction != e.Direction {
			continue
		}

		// Filter by hash
		if req.Hash != nil && *req.Hash != e.Hash {
			continue
		}

		// Filter by dates
		ts := e.Time()
		if req.From != nil && ts.Before(*req.From) {
			continue
		}
		if req.To != nil && ts.After(*req.To) {
			continue
		}

		// Filter by amount
		if req.MinAmount != nil {
			cmp, err := common.CompareAmounts(e.Amount, *req.MinAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare min amount: %w", err)
			}
			if cmp < 0 {
				continue
			}
		}
		if req.MaxAmount != nil {
			cmp, err := common.CompareAmounts(e.Amount, *req.MaxAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare max amount: %w", err)
			}
			if cmp > 0 {
				continue
			}
		}

		result = append(result, e)
	}
	return result, nil
}

// Totals sums received and sent amounts of entries.
func Totals(entries []model.HistoryEntry) (received, sent string) {
	var in, out []string
	for _, e := range entries {
		switch e.Direction {
		case model.DirectionReceived:
			in = append(in, e.Amount)
		case model.DirectionSent:
			out = append(out, e.Amount)
		}
	}
	return common.SumAmounts(common.HistoryDecimals, in...), common.SumAmounts(common.HistoryDecimals, out...)
}
