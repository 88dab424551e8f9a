package keys

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// KeyPair is an Ed25519 key pair. SecretKey is the 64-byte form (seed followed
// by the public key).
type KeyPair struct {
	PublicKey ed25519.PublicKey
	SecretKey ed25519.PrivateKey
}

// DeriveKeyPair derives the key pair of a phrase. The same phrase always
// yields the same pair.
func DeriveKeyPair(words []string) (*KeyPair, error) {
	normalized, err := normalize(words)
	if err != nil {
		return nil, err
	}

	// The ledger client is not needed to derive keys.
	w, err := wallet.FromSeed(nil, normalized, wallet.V4R2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPhrase, err)
	}

	secret := w.PrivateKey()
	return &KeyPair{
		PublicKey: secret.Public().(ed25519.PublicKey),
		SecretKey: secret,
	}, nil
}

// KeyPairFromHex rebuilds a key pair from the hex strings of a wallet record.
func KeyPairFromHex(publicHex, secretHex string) (*KeyPair, error) {
	pub, err := hex.DecodeString(publicHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length %d", len(pub))
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	if len(secret) != ed25519.PrivateKeySize {
		clear(secret)
		return nil, fmt.Errorf("invalid secret key length %d", len(secret))
	}

	sk := ed25519.PrivateKey(secret)
	if !bytes.Equal(sk.Public().(ed25519.PublicKey), pub) {
		clear(secret)
		return nil, fmt.Errorf("secret key does not match public key")
	}
	return &KeyPair{PublicKey: pub, SecretKey: sk}, nil
}

// PublicHex returns the hex form of the public key.
func (k *KeyPair) PublicHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// SecretHex returns the hex form of the secret key.
func (k *KeyPair) SecretHex() string {
	return hex.EncodeToString(k.SecretKey)
}

// Wipe zeroes the secret key.
func (k *KeyPair) Wipe() {
	clear(k.SecretKey)
}
