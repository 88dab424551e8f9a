// Package address computes the wallet contract address and its textual forms.
//
// An address has one binary value and five string encodings: the raw form
// "<workchain>:<hex>" and four user-friendly base64url forms, one per
// (bounceable, test-only) combination.
package address

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	tonaddr "github.com/xssnick/tonutils-go/address"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

const (
	hashLen         = 32
	friendlyLen     = 48
	tagBounceable   = 0x11
	tagNonBounce    = 0x51
	tagTestOnlyMask = 0x80
)

// Address is a contract address: workchain plus the 256-bit account id.
type Address struct {
	Workchain int32
	Hash      [hashLen]byte
}

// Flags are the options carried by a user-friendly encoding. The raw form
// carries none.
type Flags struct {
	Bounceable bool
	TestOnly   bool
	Raw        bool
}

// TonAddress returns addr as a tonutils-go standard address with no flags set.
func (a Address) TonAddress() *tonaddr.Address {
	hash := a.Hash
	return tonaddr.NewAddress(0, byte(a.Workchain), hash[:])
}

// Encode returns the user-friendly form of addr for the given flags.
func Encode(addr Address, bounceable, testOnly bool) string {
	a := addr.TonAddress()
	a.SetBounce(bounceable)
	a.SetTestnetOnly(testOnly)
	return a.String()
}

// EncodeRaw returns "<workchain>:<lowercase hex>".
func EncodeRaw(addr Address) string {
	return strconv.FormatInt(int64(addr.Workchain), 10) + ":" + hex.EncodeToString(addr.Hash[:])
}

// Decode parses any of the five forms. Standard base64 input is accepted and
// read as its base64url equivalent. Errors wrap model.ErrMalformedAddress.
func Decode(s string) (Address, Flags, error) {
	if strings.Contains(s, ":") {
		addr, err := decodeRaw(s)
		return addr, Flags{Raw: true}, err
	}
	return decodeFriendly(s)
}

func decodeRaw(s string) (Address, error) {
	wcPart, hashPart, _ := strings.Cut(s, ":")
	wc, err := strconv.ParseInt(wcPart, 10, 8)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid workchain %q", model.ErrMalformedAddress, wcPart)
	}
	if len(hashPart) != hashLen*2 {
		return Address{}, fmt.Errorf("%w: raw account id must be %d hex chars", model.ErrMalformedAddress, hashLen*2)
	}
	data, err := hex.DecodeString(hashPart)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", model.ErrMalformedAddress, err)
	}

	var addr Address
	addr.Workchain = int32(wc)
	copy(addr.Hash[:], data)

	// Only the canonical spelling decodes: no sign, no leading zeros, lowercase hex.
	if EncodeRaw(addr) != s {
		return Address{}, fmt.Errorf("%w: non-canonical raw address", model.ErrMalformedAddress)
	}
	return addr, nil
}

func decodeFriendly(s string) (Address, Flags, error) {
	if len(s) != friendlyLen {
		return Address{}, Flags{}, fmt.Errorf("%w: length %d, want %d", model.ErrMalformedAddress, len(s), friendlyLen)
	}

	canonical := strings.NewReplacer("+", "-", "/", "_").Replace(s)
	a, err := tonaddr.ParseAddr(canonical)
	if err != nil {
		return Address{}, Flags{}, fmt.Errorf("%w: %v", model.ErrMalformedAddress, err)
	}
	data := a.Data()
	if len(data) != hashLen {
		return Address{}, Flags{}, fmt.Errorf("%w: account id length %d", model.ErrMalformedAddress, len(data))
	}

	var addr Address
	addr.Workchain = a.Workchain()
	copy(addr.Hash[:], data)
	flags := Flags{Bounceable: a.IsBounceable(), TestOnly: a.IsTestnetOnly()}

	// Rejects tags outside the four defined ones: their re-encoding differs.
	if Encode(addr, flags.Bounceable, flags.TestOnly) != canonical {
		return Address{}, Flags{}, fmt.Errorf("%w: non-canonical encoding", model.ErrMalformedAddress)
	}
	return addr, flags, nil
}

// String returns the raw form.
func (a Address) String() string {
	return EncodeRaw(a)
}

// Formats holds every encoding of one address.
type Formats struct {
	Raw               string
	Bounceable        string
	NonBounceable     string
	TestBounceable    string
	TestNonBounceable string
}

// Forms returns all encodings of addr. Bounceable and NonBounceable are
// test-only when network is the testnet.
func Forms(addr Address, network model.Network) Formats {
	testOnly := network.IsTestnet()
	return Formats{
		Raw:               EncodeRaw(addr),
		Bounceable:        Encode(addr, true, testOnly),
		NonBounceable:     Encode(addr, false, testOnly),
		TestBounceable:    Encode(addr, true, true),
		TestNonBounceable: Encode(addr, false, true),
	}
}

// ForNetwork re-encodes any address string as the non-bounceable form used
// for display on network.
func ForNetwork(s string, network model.Network) (string, error) {
	addr, _, err := Decode(s)
	if err != nil {
		return "", err
	}
	return Encode(addr, false, network.IsTestnet()), nil
}
