package ton

import (
	"context"
	"fmt"
	"time"

	"github.com/sergeybanach/wallet-app-1/internal/model"
	"github.com/sergeybanach/wallet-app-1/internal/store"
)

// Send transfers req.Amount TON to req.ToAddress on network. Sends of one
// user run one at a time and respect the configured cooldown; nothing is
// retried.
func (s *Service) Send(ctx context.Context, userID string, req *model.PayRequest, network model.Network) (*model.PayResponse, error) {
	if err := store.ValidateUserID(userID); err != nil {
		return nil, err
	}
	u := s.user(userID)

	select {
	case u.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-u.sem }()

	// Check cooldown
	if !u.lastSend.IsZero() && s.opts.Cooldown > 0 {
		if elapsed := s.clock.Now().Sub(u.lastSend); elapsed < s.opts.Cooldown {
			remaining := s.opts.Cooldown - elapsed
			return nil, fmt.Errorf("%w, please wait %v", model.ErrCooldown, remaining.Round(time.Second))
		}
	}

	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer func() { record.PrivateKey = "" }()

	handle, err := s.engine.Send(ctx, record, req.ToAddress, req.Amount, network)
	if err != nil {
		return nil, err
	}

	// Save send time
	u.lastSend = s.clock.Now()

	return &model.PayResponse{
		Hash:       handle.Hash,
		Seqno:      handle.Seqno,
		ValidUntil: handle.ValidUntil,
	}, nil
}
