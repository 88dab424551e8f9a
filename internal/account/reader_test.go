package account

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

type countingSource struct {
	values []uint32
	err    error
	calls  int
}

func (s *countingSource) GetSequenceNumber(_ context.Context, _ string) (uint32, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.values[s.calls-1], nil
}

func TestSequenceNumber_NoCache(t *testing.T) {
	src := &countingSource{values: []uint32{4, 5}}
	r := NewReader(src, zerolog.Nop())

	first, err := r.SequenceNumber(context.Background(), "EQaddr")
	require.NoError(t, err)
	second, err := r.SequenceNumber(context.Background(), "EQaddr")
	require.NoError(t, err)

	assert.Equal(t, uint32(4), first)
	assert.Equal(t, uint32(5), second)
	assert.Equal(t, 2, src.calls)
}

func TestSequenceNumber_EndpointError(t *testing.T) {
	src := &countingSource{err: model.ErrEndpointUnavailable}
	_, err := NewReader(src, zerolog.Nop()).SequenceNumber(context.Background(), "EQaddr")
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestSequenceNumber_WrapsOtherErrors(t *testing.T) {
	src := &countingSource{err: errors.New("connection reset")}
	_, err := NewReader(src, zerolog.Nop()).SequenceNumber(context.Background(), "EQaddr")
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, src.calls)
}
