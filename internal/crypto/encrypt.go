package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

const (
	saltLen   = 32
	nonceLen  = 12
	keyLength = 32
)

// Params are the scrypt cost parameters used to derive the sealing key.
type Params struct {
	N int
	R int
	P int
}

// DefaultParams prioritizes security over performance.
//
// N=2^18 (~256MB RAM, 0.5-2s) works on phones and desktops alike while
// keeping brute force expensive. N=2^20 fails on mobile due to per-app
// memory limits.
var DefaultParams = Params{N: 1 << 18, R: 8, P: 1}

// Seal encrypts a wallet record into a sealed envelope.
// password must be []byte for security (caller should zero it after use)
func Seal(network, qrCode string, record *model.WalletRecord, password []byte, params Params) (*model.SealedWallet, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet record: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.SealedWallet{
		Network:    network,
		Address:    record.Address,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func newGCM(password, salt []byte, params Params) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
