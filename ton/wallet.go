package ton

import (
	"context"
	"errors"

	"github.com/sergeybanach/wallet-app-1/internal/address"
	"github.com/sergeybanach/wallet-app-1/internal/keys"
	"github.com/sergeybanach/wallet-app-1/internal/model"
	"github.com/sergeybanach/wallet-app-1/internal/store"
)

// LoadOrCreateWallet returns the user's wallet, creating it from a fresh
// recovery phrase when the user has none. The phrase is returned only on
// creation.
func (s *Service) LoadOrCreateWallet(ctx context.Context, userID string) (*model.GenerateResponse, error) {
	if err := store.ValidateUserID(userID); err != nil {
		return nil, err
	}

	addr, err := s.store.Address(ctx, userID)
	if err == nil {
		return &model.GenerateResponse{Created: false, Message: "Wallet already exists", Address: addr}, nil
	}
	if !errors.Is(err, model.ErrWalletNotFound) {
		return nil, err
	}

	words := keys.NewMnemonic()
	record, err := s.newRecord(words)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, userID, record); err != nil {
		if errors.Is(err, model.ErrWalletExists) {
			// Lost a race with another create for the same user.
			addr, err := s.store.Address(ctx, userID)
			if err != nil {
				return nil, err
			}
			return &model.GenerateResponse{Created: false, Message: "Wallet already exists", Address: addr}, nil
		}
		return nil, err
	}

	s.log.Info().Str("user", userID).Str("address", record.Address).Msg("wallet created")
	return &model.GenerateResponse{
		Created:  true,
		Message:  "Wallet created. Write down the recovery phrase, it is shown only once",
		Address:  record.Address,
		Mnemonic: words,
	}, nil
}

// ImportWallet stores the wallet of an existing recovery phrase.
func (s *Service) ImportWallet(ctx context.Context, userID string, words []string) (*model.GenerateResponse, error) {
	if err := store.ValidateUserID(userID); err != nil {
		return nil, err
	}

	record, err := s.newRecord(words)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, userID, record); err != nil {
		return nil, err
	}

	s.log.Info().Str("user", userID).Str("address", record.Address).Msg("wallet imported")
	return &model.GenerateResponse{Created: true, Message: "Wallet imported", Address: record.Address}, nil
}

// newRecord derives the wallet record of a phrase. The address is stored in
// raw form so it does not depend on a network.
func (s *Service) newRecord(words []string) (*model.WalletRecord, error) {
	kp, err := keys.DeriveKeyPair(words)
	if err != nil {
		return nil, err
	}
	defer kp.Wipe()

	addr, err := address.Derive(kp.PublicKey, s.opts.Workchain)
	if err != nil {
		return nil, err
	}
	return &model.WalletRecord{
		Address:    address.EncodeRaw(addr),
		PublicKey:  kp.PublicHex(),
		PrivateKey: kp.SecretHex(),
	}, nil
}
