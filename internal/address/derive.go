package address

import (
	"crypto/ed25519"
	"fmt"

	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// WalletVersion is the wallet contract every account is deployed as.
var WalletVersion = wallet.V4R2

// SubwalletID returns the wallet id stored in the contract data. It is offset
// by the workchain so the same key yields distinct ids per workchain.
func SubwalletID(workchain int32) uint32 {
	return uint32(int64(wallet.DefaultSubwallet) + int64(workchain))
}

// StateInit returns the StateInit of the wallet contract owned by pub. The
// hash of its cell is the contract's account id.
func StateInit(pub ed25519.PublicKey, workchain int32) (*tlb.StateInit, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length %d", len(pub))
	}
	si, err := wallet.GetStateInit(pub, WalletVersion, SubwalletID(workchain))
	if err != nil {
		return nil, fmt.Errorf("failed to build wallet state init: %w", err)
	}
	return si, nil
}

// Derive computes the wallet contract address of pub on workchain.
func Derive(pub ed25519.PublicKey, workchain int32) (Address, error) {
	si, err := StateInit(pub, workchain)
	if err != nil {
		return Address{}, err
	}
	c, err := tlb.ToCell(si)
	if err != nil {
		return Address{}, fmt.Errorf("failed to serialize wallet state init: %w", err)
	}

	var addr Address
	addr.Workchain = workchain
	copy(addr.Hash[:], c.Hash())
	return addr, nil
}
