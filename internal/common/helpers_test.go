package common

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoToTON(t *testing.T) {
	assert.Equal(t, "0.024981836", NanoToTON(24981836))
	assert.Equal(t, "0.000000000", NanoToTON(0))
	assert.Equal(t, "5.000000000", NanoToTON(5_000_000_000))
}

func TestFormatNano(t *testing.T) {
	tests := []struct {
		nano uint64
		want string
	}{
		{5_000_000_000, "5.0000"},
		{2_000_000_000, "2.0000"},
		{10_000_000, "0.0100"},
		{0, "0.0000"},
		{123_456_789, "0.1235"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNano(new(big.Int).SetUint64(tt.nano), HistoryDecimals), "nano=%d", tt.nano)
	}
}

func TestParseNano(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "1", want: 1_000_000_000},
		{in: "0.2", want: 200_000_000},
		{in: "0.000000001", want: 1},
		{in: "0", want: 0},
		{in: "12.5", want: 12_500_000_000},
		{in: "1.0000000000", want: 1_000_000_000},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "+1", wantErr: true},
		{in: " 1", wantErr: true},
		{in: "1 ", wantErr: true},
		{in: "1ton", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: ".5", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "0.0000000001", wantErr: true},
		{in: "18446744074", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNano(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareAmounts(t *testing.T) {
	cmp, err := CompareAmounts("1.5", "1.50")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareAmounts("0.0100", "2")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	_, err = CompareAmounts("abc", "1")
	require.Error(t, err)
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, "7.0100", SumAmounts(HistoryDecimals, "5.0000", "2.0000", "0.0100", "bad"))
	assert.Equal(t, "0.0000", SumAmounts(HistoryDecimals))
}

func TestFormatNano_Large(t *testing.T) {
	n, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "100000000000.0000", FormatNano(n, HistoryDecimals))
	assert.Equal(t, "0.0100", FormatNano(big.NewInt(10_000_000), HistoryDecimals))
}

func TestQRCode(t *testing.T) {
	encoded, err := QRCode("ton://transfer/UQBvI0aFLnw2QbZgjMPCLRdtRHxhUyinQudg6sdiohIwg8UO")
	require.NoError(t, err)

	png, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
