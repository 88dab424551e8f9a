package transfer

import (
	"fmt"
	"time"

	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/sergeybanach/wallet-app-1/internal/address"
)

const (
	// MessageTTL is how long a signed transfer can be accepted by the wallet
	// contract after it was built.
	MessageTTL = 60 * time.Second

	opSimpleSend = 0
	// sendMode pays forward fees from the wallet balance. A failing action
	// fails the whole transfer.
	sendMode = wallet.PayGasSeparately
)

// Message is a plain value transfer to another account.
type Message struct {
	Destination address.Address
	ValueNano   uint64
	Bounce      bool
}

// toCell serializes m as an internal message with an empty body. The source
// address is left empty; the contract fills it in.
func (m Message) toCell() (*cell.Cell, error) {
	c, err := tlb.ToCell(&tlb.InternalMessage{
		IHRDisabled: true,
		Bounce:      m.Bounce,
		DstAddr:     m.Destination.TonAddress(),
		Amount:      tlb.FromNanoTONU(m.ValueNano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize internal message: %w", err)
	}
	return c, nil
}

// storeOrder writes the wallet v4 order fields that follow the signature.
func storeOrder(b *cell.Builder, subwallet uint32, validUntil time.Time, seqno uint32, msg *cell.Cell) *cell.Builder {
	return b.
		MustStoreUInt(uint64(subwallet), 32).
		MustStoreUInt(uint64(validUntil.Unix()), 32).
		MustStoreUInt(uint64(seqno), 32).
		MustStoreUInt(opSimpleSend, 8).
		MustStoreUInt(sendMode, 8).
		MustStoreRef(msg)
}

// externalMessage wraps the signed body into an inbound external message
// addressed to the wallet. stateInit may be nil.
func externalMessage(walletAddr address.Address, stateInit *tlb.StateInit, body *cell.Cell) (*cell.Cell, error) {
	c, err := tlb.ToCell(&tlb.ExternalMessage{
		DstAddr:   walletAddr.TonAddress(),
		ImportFee: tlb.ZeroCoins,
		StateInit: stateInit,
		Body:      body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize external message: %w", err)
	}
	return c, nil
}
