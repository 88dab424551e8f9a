package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// ErrInvalidPassword is returned when the envelope does not open with the
// given password.
var ErrInvalidPassword = errors.New("invalid password")

// Open decrypts a sealed envelope back into the wallet record.
// password must be []byte for security (caller should zero it after use)
func Open(sealed *model.SealedWallet, password []byte, params Params) (*model.WalletRecord, error) {
	salt, err := base64.StdEncoding.DecodeString(sealed.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(sealed.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var record model.WalletRecord
	if err := json.Unmarshal(plaintext, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet record: %w", err)
	}
	if record.Address != sealed.Address {
		return nil, errors.New("sealed address does not match wallet record")
	}

	return &record, nil
}

// Reseal opens sealed with oldPassword and seals the same record under
// newPassword with a fresh salt and nonce.
func Reseal(sealed *model.SealedWallet, oldPassword, newPassword []byte, params Params) (*model.SealedWallet, error) {
	record, err := Open(sealed, oldPassword, params)
	if err != nil {
		return nil, err
	}
	defer func() {
		record.PrivateKey = ""
	}()
	return Seal(sealed.Network, sealed.QR, record, newPassword, params)
}
