// Package keys derives wallet key pairs from TON recovery phrases.
//
// A TON phrase is 24 words from the BIP-39 English wordlist, but it is not a
// BIP-39 mnemonic: there is no embedded checksum. A phrase is valid when the
// PBKDF2 stretch of its HMAC entropy starts with a zero byte (the "basic
// seed" check). Generation and stretching are done by tonutils-go.
package keys

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// MnemonicWords is the phrase length of the scheme.
const MnemonicWords = 24

// NewMnemonic returns a fresh valid 24-word phrase.
func NewMnemonic() []string {
	return wallet.NewSeed()
}

// ParseMnemonic splits a space separated phrase into normalized words.
func ParseMnemonic(phrase string) []string {
	return strings.Fields(strings.ToLower(phrase))
}

// ValidateMnemonic checks word count, wordlist membership and the basic seed
// check. The error wraps model.ErrInvalidPhrase.
func ValidateMnemonic(words []string) error {
	kp, err := DeriveKeyPair(words)
	if err != nil {
		return err
	}
	kp.Wipe()
	return nil
}

// normalize trims and lowercases words and checks the parts of a phrase that
// tonutils-go accepts more loosely: the exact word count, and which word is
// not in the wordlist.
func normalize(words []string) ([]string, error) {
	if len(words) != MnemonicWords {
		return nil, fmt.Errorf("%w: got %d words, want %d", model.ErrInvalidPhrase, len(words), MnemonicWords)
	}
	out := make([]string, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if _, ok := bip39.GetWordIndex(w); !ok {
			return nil, fmt.Errorf("%w: word %d is not in the wordlist", model.ErrInvalidPhrase, i+1)
		}
		out[i] = w
	}
	return out, nil
}
