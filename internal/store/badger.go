package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

const walletKeyPrefix = "wallet/"

// BadgerStore keeps sealed wallets in a Badger database under
// "wallet/<userID>".
type BadgerStore struct {
	db      *badger.DB
	sealing Sealing
	log     zerolog.Logger
}

// OpenBadgerStore opens the database at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string, sealing Sealing, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("%w: database at %s is locked by another process: %v", model.ErrStoreUnavailable, path, err)
		}
		return nil, fmt.Errorf("%w: open database at %s: %v", model.ErrStoreUnavailable, path, err)
	}
	return &BadgerStore{db: db, sealing: sealing, log: logger}, nil
}

func walletKey(userID string) []byte {
	return []byte(walletKeyPrefix + userID)
}

func (s *BadgerStore) read(userID string) ([]byte, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(walletKey(userID))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, model.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: badger get: %v", model.ErrStoreUnavailable, err)
	}
	return val, nil
}

func (s *BadgerStore) Get(_ context.Context, userID string) (*model.WalletRecord, error) {
	data, err := s.read(userID)
	if err != nil {
		return nil, err
	}
	return s.sealing.open(data)
}

func (s *BadgerStore) Address(_ context.Context, userID string) (string, error) {
	data, err := s.read(userID)
	if err != nil {
		return "", err
	}
	sealed, err := decodeSealed(data)
	if err != nil {
		return "", err
	}
	return sealed.Address, nil
}

func (s *BadgerStore) Put(_ context.Context, userID string, record *model.WalletRecord) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	data, err := s.sealing.seal(record)
	if err != nil {
		return err
	}

	// The existence check and the write share one transaction; a concurrent
	// Put of the same user fails with a conflict.
	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(walletKey(userID))
		if err == nil {
			return model.ErrWalletExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(walletKey(userID), data)
	})
	switch {
	case errors.Is(err, model.ErrWalletExists):
		return fmt.Errorf("%w: user %s", model.ErrWalletExists, userID)
	case errors.Is(err, badger.ErrConflict):
		return fmt.Errorf("%w: user %s", model.ErrWalletExists, userID)
	case err != nil:
		return fmt.Errorf("%w: badger put: %v", model.ErrStoreUnavailable, err)
	}

	s.log.Info().Str("user", userID).Str("address", record.Address).Msg("wallet stored")
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
