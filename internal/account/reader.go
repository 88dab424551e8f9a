// Package account reads on-chain wallet state.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// SequenceSource is the ledger query behind Reader.
type SequenceSource interface {
	GetSequenceNumber(ctx context.Context, address string) (uint32, error)
}

// Reader returns the sequence number a wallet contract expects next.
// It holds no state: every call goes to the ledger, since any transfer from
// the account, made by any client, moves the value.
type Reader struct {
	source SequenceSource
	log    zerolog.Logger
}

// NewReader creates a Reader over source.
func NewReader(source SequenceSource, logger zerolog.Logger) *Reader {
	return &Reader{source: source, log: logger}
}

// SequenceNumber returns the next expected seqno of address. Failures are
// reported as model.ErrEndpointUnavailable.
func (r *Reader) SequenceNumber(ctx context.Context, address string) (uint32, error) {
	seqno, err := r.source.GetSequenceNumber(ctx, address)
	if err != nil {
		if !errors.Is(err, model.ErrEndpointUnavailable) {
			err = fmt.Errorf("%w: %v", model.ErrEndpointUnavailable, err)
		}
		return 0, fmt.Errorf("failed to read seqno of %s: %w", address, err)
	}

	r.log.Debug().Str("address", address).Uint32("seqno", seqno).Msg("seqno read")
	return seqno, nil
}
