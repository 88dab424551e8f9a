// Package history turns raw ledger transactions into labeled history entries.
//
// The ledger does not record whether a transaction was a payment or a
// receipt. Reconcile guesses it from the message values: this is a heuristic
// reconstruction of intent, not a guarantee. Its tie-break order is fixed:
//
//   - inbound value only: received, from the inbound source
//   - outbound value only: sent, to the first outbound destination
//   - both: the larger side wins, equal values count as received
//   - neither: sent, amount is the fee, counterparty "Network Fees"
package history

import (
	"math/big"
	"strings"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// Reconciler classifies raw records. The clock supplies the timestamp of
// records that carry none.
type Reconciler struct {
	clock clock.Clock
	log   zerolog.Logger
}

// NewReconciler creates a Reconciler. A nil clk uses the system clock.
func NewReconciler(clk clock.Clock, logger zerolog.Logger) *Reconciler {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	return &Reconciler{clock: clk, log: logger}
}

// Reconcile returns one entry per record, in the order given. records is not
// modified and a malformed record never drops the others.
func (r *Reconciler) Reconcile(account string, records []model.RawLedgerRecord) []model.HistoryEntry {
	entries := make([]model.HistoryEntry, 0, len(records))
	for i := range records {
		entries = append(entries, r.classify(&records[i]))
	}
	r.log.Debug().Str("address", account).Int("count", len(entries)).Msg("history reconciled")
	return entries
}

func (r *Reconciler) classify(rec *model.RawLedgerRecord) model.HistoryEntry {
	entry := model.HistoryEntry{
		Hash:            model.CounterpartyUnknown,
		TimestampMillis: rec.Utime * 1000,
	}
	if rec.TransactionID != nil {
		if rec.TransactionID.Hash != "" {
			entry.Hash = rec.TransactionID.Hash
		}
		entry.Lt = rec.TransactionID.Lt
	}
	if rec.Utime <= 0 {
		entry.TimestampMillis = r.clock.Now().UnixMilli()
	}

	inValue, outValue := new(big.Int), new(big.Int)
	var source, destination string
	if rec.InMsg != nil {
		inValue = nanoValue(rec.InMsg.Value)
		source = rec.InMsg.Source
	}
	if len(rec.OutMsgs) > 0 {
		outValue = nanoValue(rec.OutMsgs[0].Value)
		destination = rec.OutMsgs[0].Destination
	}

	inPositive := inValue.Sign() > 0
	outPositive := outValue.Sign() > 0

	switch {
	case inPositive && !outPositive:
		entry.Direction = model.DirectionReceived
		entry.Amount = formatNano(inValue)
		entry.Counterparty = orUnknown(source)
	case outPositive && !inPositive:
		entry.Direction = model.DirectionSent
		entry.Amount = formatNano(outValue)
		entry.Counterparty = orUnknown(destination)
	case inPositive && outPositive:
		if outValue.Cmp(inValue) > 0 {
			entry.Direction = model.DirectionSent
			entry.Amount = formatNano(outValue)
			entry.Counterparty = orUnknown(destination)
		} else {
			entry.Direction = model.DirectionReceived
			entry.Amount = formatNano(inValue)
			entry.Counterparty = orUnknown(source)
		}
	default:
		entry.Direction = model.DirectionSent
		entry.Amount = formatNano(nanoValue(rec.Fee))
		entry.Counterparty = model.CounterpartyNetworkFees
	}
	return entry
}

// nanoValue parses an integer nanoton value. Missing, malformed and negative
// values count as zero.
func nanoValue(v model.LedgerValue) *big.Int {
	n, ok := new(big.Int).SetString(strings.TrimSpace(string(v)), 10)
	if !ok || n.Sign() < 0 {
		return new(big.Int)
	}
	return n
}

func formatNano(n *big.Int) string {
	return common.FormatNano(n, common.HistoryDecimals)
}

func orUnknown(s string) string {
	if s == "" {
		return model.CounterpartyUnknown
	}
	return s
}
