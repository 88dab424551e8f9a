// Package store persists one sealed wallet record per user.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/crypto"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// Store is the per-user wallet document store. Records are written once.
type Store interface {
	// Get returns the user's record, or model.ErrWalletNotFound.
	Get(ctx context.Context, userID string) (*model.WalletRecord, error)
	// Put stores a new record; model.ErrWalletExists if the user has one.
	Put(ctx context.Context, userID string, record *model.WalletRecord) error
	// Address returns the user's wallet address without decrypting the record.
	Address(ctx context.Context, userID string) (string, error)
	Close() error
}

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.@-]{0,127}$`)

// ValidateUserID rejects ids that are empty, too long or unsafe as file names.
func ValidateUserID(userID string) error {
	if !userIDPattern.MatchString(userID) {
		return fmt.Errorf("%w: %q", model.ErrInvalidUser, userID)
	}
	return nil
}

// Sealing configures how records are encrypted at rest.
type Sealing struct {
	Password []byte
	Params   crypto.Params
	Network  model.Network
}

func (s Sealing) seal(record *model.WalletRecord) ([]byte, error) {
	qr, err := common.QRCode(record.Address)
	if err != nil {
		return nil, err
	}
	sealed, err := crypto.Seal(string(s.Network), qr, record, s.Password, s.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to seal wallet: %w", err)
	}
	data, err := json.MarshalIndent(sealed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sealed wallet: %w", err)
	}
	return data, nil
}

func (s Sealing) open(data []byte) (*model.WalletRecord, error) {
	sealed, err := decodeSealed(data)
	if err != nil {
		return nil, err
	}
	record, err := crypto.Open(sealed, s.Password, s.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}
	return record, nil
}

func decodeSealed(data []byte) (*model.SealedWallet, error) {
	// Skip UTF-8 BOM if present
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	var sealed model.SealedWallet
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal sealed wallet: %v", model.ErrStoreUnavailable, err)
	}
	if sealed.Address == "" {
		return nil, fmt.Errorf("%w: sealed wallet has no address", model.ErrStoreUnavailable)
	}
	return &sealed, nil
}

// IsInvalidPassword reports whether err comes from opening a record with the
// wrong password.
func IsInvalidPassword(err error) bool {
	return errors.Is(err, crypto.ErrInvalidPassword)
}
