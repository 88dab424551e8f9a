package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleEntries() []model.HistoryEntry {
	return []model.HistoryEntry{
		{Hash: "h1", TimestampMillis: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC).UnixMilli(), Amount: "5.0000", Direction: model.DirectionReceived},
		{Hash: "h2", TimestampMillis: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), Amount: "2.0000", Direction: model.DirectionSent},
		{Hash: "h3", TimestampMillis: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), Amount: "0.0100", Direction: model.DirectionSent},
	}
}

func hashes(entries []model.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Hash
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		req  *model.LogRequest
		want []string
	}{
		{"nil request", nil, []string{"h1", "h2", "h3"}},
		{"empty request", &model.LogRequest{}, []string{"h1", "h2", "h3"}},
		{"sent", &model.LogRequest{Direction: ptr(model.DirectionSent)}, []string{"h2", "h3"}},
		{"received", &model.LogRequest{Direction: ptr(model.DirectionReceived)}, []string{"h1"}},
		{"hash", &model.LogRequest{Hash: ptr("h2")}, []string{"h2"}},
		{"from", &model.LogRequest{From: ptr(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))}, []string{"h1", "h2"}},
		{"to", &model.LogRequest{To: ptr(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))}, []string{"h2", "h3"}},
		{"min amount", &model.LogRequest{MinAmount: ptr("2")}, []string{"h1", "h2"}},
		{"max amount", &model.LogRequest{MaxAmount: ptr("1.5")}, []string{"h3"}},
		{"combined", &model.LogRequest{Direction: ptr(model.DirectionSent), MinAmount: ptr("1")}, []string{"h2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(sampleEntries(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hashes(got))
		})
	}
}

func TestFilter_InvalidAmount(t *testing.T) {
	_, err := Filter(sampleEntries(), &model.LogRequest{MinAmount: ptr("many")})
	require.Error(t, err)
}

func TestTotals(t *testing.T) {
	received, sent := Totals(sampleEntries())
	assert.Equal(t, "5.0000", received)
	assert.Equal(t, "2.0100", sent)

	received, sent = Totals(nil)
	assert.Equal(t, "0.0000", received)
	assert.Equal(t, "0.0000", sent)
}
