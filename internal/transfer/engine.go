// Package transfer builds, signs and submits value transfers from a wallet v4
// contract.
//
// The engine does not serialize calls. Two concurrent sends for one wallet
// read the same seqno and only one of them can be accepted by the ledger;
// callers keep at most one send in flight per wallet.
package transfer

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/sergeybanach/wallet-app-1/internal/address"
	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/keys"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// SequenceReader returns the seqno a wallet contract expects next.
type SequenceReader interface {
	SequenceNumber(ctx context.Context, address string) (uint32, error)
}

// Submitter delivers a serialized external message to the ledger.
type Submitter interface {
	SubmitSignedMessage(ctx context.Context, boc []byte) error
}

// Backend is the ledger access of one network.
type Backend struct {
	Seqno     SequenceReader
	Submitter Submitter
}

// Engine sends transfers. It keeps no per-wallet state.
type Engine struct {
	backends map[model.Network]Backend
	clock    clock.Clock
	log      zerolog.Logger
}

// NewEngine creates an Engine. A nil clk uses the system clock.
func NewEngine(backends map[model.Network]Backend, clk clock.Clock, logger zerolog.Logger) *Engine {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	return &Engine{backends: backends, clock: clk, log: logger}
}

// Signed is a transfer ready to be submitted.
type Signed struct {
	Message     Message
	Seqno       uint32
	ValidUntil  time.Time
	SigningHash []byte
	Signature   []byte
	External    *cell.Cell
}

// Hash returns the hex hash of the external message.
func (s *Signed) Hash() string {
	return hex.EncodeToString(s.External.Hash())
}

// Handle identifies a submitted transfer.
type Handle struct {
	Hash       string    `json:"hash"`
	Seqno      uint32    `json:"seqno"`
	ValidUntil time.Time `json:"valid_until"`
	BOC        []byte    `json:"-"`
}

// Build validates the request, reads the current seqno and signs the
// transfer without submitting it.
func (e *Engine) Build(ctx context.Context, wallet *model.WalletRecord, destination, amount string, network model.Network) (*Signed, error) {
	backend, ok := e.backends[network]
	if !ok {
		return nil, fmt.Errorf("%w: no ledger configured for %s", model.ErrEndpointUnavailable, network)
	}

	dest, _, err := address.Decode(destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidDestination, err)
	}

	value, err := common.ParseNano(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidAmount, err)
	}

	from, _, err := address.Decode(wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address: %w", err)
	}
	kp, err := keys.KeyPairFromHex(wallet.PublicKey, wallet.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet keys: %w", err)
	}
	defer kp.Wipe()

	derived, err := address.Derive(kp.PublicKey, from.Workchain)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(derived.Hash[:], from.Hash[:]) {
		return nil, fmt.Errorf("wallet address %s does not belong to its public key", wallet.Address)
	}

	seqno, err := backend.Seqno.SequenceNumber(ctx, wallet.Address)
	if err != nil {
		return nil, err
	}

	msg := Message{Destination: dest, ValueNano: value, Bounce: false}
	validUntil := time.Unix(e.clock.Now().Add(MessageTTL).Unix(), 0)
	subwallet := address.SubwalletID(from.Workchain)

	inner, err := msg.toCell()
	if err != nil {
		return nil, err
	}

	payload := storeOrder(cell.BeginCell(), subwallet, validUntil, seqno, inner).EndCell()
	signingHash := payload.Hash()
	signature := ed25519.Sign(kp.SecretKey, signingHash)

	body := storeOrder(cell.BeginCell().MustStoreSlice(signature, 512), subwallet, validUntil, seqno, inner).EndCell()

	var stateInit *tlb.StateInit
	if seqno == 0 {
		if stateInit, err = address.StateInit(kp.PublicKey, from.Workchain); err != nil {
			return nil, err
		}
	}
	external, err := externalMessage(from, stateInit, body)
	if err != nil {
		return nil, err
	}

	return &Signed{
		Message:     msg,
		Seqno:       seqno,
		ValidUntil:  validUntil,
		SigningHash: signingHash,
		Signature:   signature,
		External:    external,
	}, nil
}

// Send builds, signs and submits a transfer of amount TON from wallet to
// destination. wallet is not modified.
func (e *Engine) Send(ctx context.Context, wallet *model.WalletRecord, destination, amount string, network model.Network) (*Handle, error) {
	signed, err := e.Build(ctx, wallet, destination, amount, network)
	if err != nil {
		return nil, err
	}

	boc := signed.External.ToBOC()
	if err := e.backends[network].Submitter.SubmitSignedMessage(ctx, boc); err != nil {
		e.log.Warn().
			Str("from", wallet.Address).
			Uint32("seqno", signed.Seqno).
			Err(err).
			Msg("transfer rejected")
		return nil, err
	}

	handle := &Handle{
		Hash:       signed.Hash(),
		Seqno:      signed.Seqno,
		ValidUntil: signed.ValidUntil,
		BOC:        boc,
	}
	e.log.Info().
		Str("from", wallet.Address).
		Str("to", destination).
		Uint64("nano", signed.Message.ValueNano).
		Uint32("seqno", signed.Seqno).
		Str("hash", handle.Hash).
		Msg("transfer submitted")
	return handle, nil
}
