package ton

import (
	"context"

	"github.com/sergeybanach/wallet-app-1/internal/address"
	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// fiatDecimals is the precision of fiat values.
const fiatDecimals = 2

// GetBalance gets the wallet balance on network.
func (s *Service) GetBalance(ctx context.Context, userID string, network model.Network) (*model.BalanceResponse, error) {
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

	nano, err := ledger.GetBalance(ctx, raw)
	if err != nil {
		return nil, err
	}

	resp := &model.BalanceResponse{
		Address: display,
		Network: network,
		Nano:    nano,
		TON:     common.NanoToTON(nano),
	}

	// Fiat is informational; a failing price source does not fail the balance.
	if s.opts.Rates != nil && s.opts.RateCurrency != "" && network == model.Mainnet {
		rate, err := s.opts.Rates.GetTONRate(ctx, s.opts.RateCurrency)
		if err != nil {
			s.log.Warn().Err(err).Str("currency", s.opts.RateCurrency).Msg("failed to get rate")
			return resp, nil
		}
		fiat, err := common.MultiplyAmounts(resp.TON, rate, fiatDecimals)
		if err != nil {
			s.log.Warn().Err(err).Str("rate", rate).Msg("failed to compute fiat value")
			return resp, nil
		}
		resp.Rate = rate
		resp.Fiat = fiat
	}
	return resp, nil
}
