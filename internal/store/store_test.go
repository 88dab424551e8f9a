package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeybanach/wallet-app-1/internal/crypto"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

var testSealing = Sealing{
	Password: []byte("correct horse"),
	Params:   crypto.Params{N: 1 << 4, R: 8, P: 1},
	Network:  model.Testnet,
}

func testRecord() *model.WalletRecord {
	return &model.WalletRecord{
		Address:    "0QBvI0aFLnw2QbZgjMPCLRdtRHxhUyinQudg6sdiohIwg36E",
		PublicKey:  "6f2346852e7c3641b6608cc3c22d176d447c615328a742e760eac762a2123083",
		PrivateKey: "00112233",
	}
}

// testStore runs the shared test suite against a Store implementation.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "nobody")
		require.ErrorIs(t, err, model.ErrWalletNotFound)

		_, err = s.Address(ctx, "nobody")
		require.ErrorIs(t, err, model.ErrWalletNotFound)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "alice", testRecord()))

		record, err := s.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, testRecord(), record)

		addr, err := s.Address(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, testRecord().Address, addr)
	})

	t.Run("PutTwice", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "bob", testRecord()))

		other := testRecord()
		other.Address = "kQBvI0aFLnw2QbZgjMPCLRdtRHxhUyinQudg6sdiohIwgyNB"
		err := s.Put(ctx, "bob", other)
		require.ErrorIs(t, err, model.ErrWalletExists)

		record, err := s.Get(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, testRecord().Address, record.Address)
	})

	t.Run("UsersAreIsolated", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "carol", testRecord()))
		_, err := s.Get(ctx, "dave")
		require.ErrorIs(t, err, model.ErrWalletNotFound)
	})

	t.Run("ConcurrentPut", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Put(ctx, "erin", testRecord())
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, model.ErrWalletExists)
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
			require.ErrorIs(t, s.Put(ctx, id, testRecord()), model.ErrInvalidUser, id)
			_, err := s.Get(ctx, id)
			require.ErrorIs(t, err, model.ErrInvalidUser, id)
		}
	})
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), testSealing, zerolog.Nop())
	require.NoError(t, err)
	testStore(t, s)
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadgerStore("", testSealing, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestBadgerStore_Persists(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadgerStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "alice", testRecord()))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	record, err := s.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, testRecord(), record)
}

func TestFileStore_WrongPassword(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "alice", testRecord()))

	wrong := testSealing
	wrong.Password = []byte("battery staple")
	s2, err := NewFileStore(dir, wrong, zerolog.Nop())
	require.NoError(t, err)

	_, err = s2.Get(context.Background(), "alice")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
	assert.True(t, IsInvalidPassword(err))

	addr, err := s2.Address(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, testRecord().Address, addr)
}

func TestFileStore_SealedOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "alice", testRecord()))

	data, err := os.ReadFile(filepath.Join(dir, "alice.cwt"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), testRecord().PublicKey)
	assert.Contains(t, string(data), testRecord().Address)
	assert.Contains(t, string(data), `"QR"`)

	info, err := os.Stat(filepath.Join(dir, "alice.cwt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_EmptyFileIsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.cwt"), nil, 0o600))

	s, err := NewFileStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "alice")
	require.ErrorIs(t, err, model.ErrWalletNotFound)
	require.NoError(t, s.Put(context.Background(), "alice", testRecord()))
}

func TestFileStore_BOM(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "alice", testRecord()))

	path := filepath.Join(dir, "alice.cwt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, data...), 0o600))

	record, err := s.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, testRecord(), record)
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.cwt"), []byte("{not json"), 0o600))

	s, err := NewFileStore(dir, testSealing, zerolog.Nop())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "alice")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}
