package address

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

func testAddress(t *testing.T, workchain int32) Address {
	t.Helper()
	var addr Address
	addr.Workchain = workchain
	_, err := rand.Read(addr.Hash[:])
	require.NoError(t, err)
	return addr
}

func testPublicKey(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, wc := range []int32{0, -1} {
		addr := testAddress(t, wc)
		for _, bounceable := range []bool{true, false} {
			for _, testOnly := range []bool{true, false} {
				s := Encode(addr, bounceable, testOnly)
				assert.Len(t, s, friendlyLen)

				got, flags, err := Decode(s)
				require.NoError(t, err)
				assert.Equal(t, addr, got)
				assert.Equal(t, Flags{Bounceable: bounceable, TestOnly: testOnly}, flags)
				assert.Equal(t, s, Encode(got, flags.Bounceable, flags.TestOnly))
			}
		}
	}
}

func TestEncodePrefixes(t *testing.T) {
	addr := testAddress(t, 0)
	assert.True(t, strings.HasPrefix(Encode(addr, true, false), "EQ"))
	assert.True(t, strings.HasPrefix(Encode(addr, false, false), "UQ"))
	assert.True(t, strings.HasPrefix(Encode(addr, true, true), "kQ"))
	assert.True(t, strings.HasPrefix(Encode(addr, false, true), "0Q"))
}

func TestRawRoundTrip(t *testing.T) {
	addr := testAddress(t, -1)
	raw := EncodeRaw(addr)
	assert.True(t, strings.HasPrefix(raw, "-1:"))

	got, flags, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.True(t, flags.Raw)
	assert.Equal(t, raw, EncodeRaw(got))
}

func TestFiveDistinctForms(t *testing.T) {
	f := Forms(testAddress(t, 0), model.Mainnet)
	seen := map[string]bool{}
	for _, s := range []string{f.Raw, f.Bounceable, f.NonBounceable, f.TestBounceable, f.TestNonBounceable} {
		assert.False(t, seen[s], "duplicate form %s", s)
		seen[s] = true
	}

	tf := Forms(testAddress(t, 0), model.Testnet)
	assert.Equal(t, tf.TestBounceable, tf.Bounceable)
	assert.Equal(t, tf.TestNonBounceable, tf.NonBounceable)
}

func TestDecodeStdAlphabet(t *testing.T) {
	for i := 0; i < 64; i++ {
		addr := testAddress(t, 0)
		s := Encode(addr, true, false)
		std := strings.NewReplacer("-", "+", "_", "/").Replace(s)
		got, _, err := Decode(std)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := Encode(testAddress(t, 0), true, false)
	flipped := []byte(valid)
	if flipped[20] == 'A' {
		flipped[20] = 'B'
	} else {
		flipped[20] = 'A'
	}

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short", valid[:40]},
		{"long", valid + "AA"},
		{"checksum", string(flipped)},
		{"not base64", strings.Repeat("!", friendlyLen)},
		{"raw bad workchain", "x:" + strings.Repeat("0", 64)},
		{"raw short hash", "0:abcd"},
		{"raw bad hex", "0:" + strings.Repeat("z", 64)},
		{"raw workchain out of range", "300:" + strings.Repeat("0", 64)},
		{"raw leading zero workchain", "00:" + strings.Repeat("ab", 32)},
		{"raw plus sign", "+0:" + strings.Repeat("ab", 32)},
		{"raw uppercase hex", "0:" + strings.Repeat("AB", 32)},
		{"raw negative zero", "-0:" + strings.Repeat("ab", 32)},
		{"raw padded masterchain", "-01:" + strings.Repeat("ab", 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.in)
			require.ErrorIs(t, err, model.ErrMalformedAddress)
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	pub := testPublicKey(t)

	a, err := Derive(pub, 0)
	require.NoError(t, err)
	b, err := Derive(pub, 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, int32(0), a.Workchain)

	other, err := Derive(testPublicKey(t), 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	master, err := Derive(pub, -1)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), master.Workchain)
	assert.NotEqual(t, a.Hash, master.Hash)
}

func TestDeriveRejectsBadKey(t *testing.T) {
	_, err := Derive(ed25519.PublicKey{1, 2, 3}, 0)
	require.Error(t, err)
}

func TestStateInitHashIsAddress(t *testing.T) {
	pub := testPublicKey(t)
	si, err := StateInit(pub, 0)
	require.NoError(t, err)
	addr, err := Derive(pub, 0)
	require.NoError(t, err)
	assert.Equal(t, addr.Hash[:], si.CalcAddress(0).Data())

	master, err := Derive(pub, -1)
	require.NoError(t, err)
	masterSI, err := StateInit(pub, -1)
	require.NoError(t, err)
	assert.Equal(t, master.Hash[:], masterSI.CalcAddress(-1).Data())
}

func TestForNetwork(t *testing.T) {
	addr := testAddress(t, 0)
	s, err := ForNetwork(Encode(addr, true, false), model.Testnet)
	require.NoError(t, err)
	assert.Equal(t, Encode(addr, false, true), s)

	_, err = ForNetwork("garbage", model.Testnet)
	require.ErrorIs(t, err, model.ErrMalformedAddress)
}
