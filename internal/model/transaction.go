package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sergeybanach/wallet-app-1/internal/common"
)

// Direction is the reconciled direction of a history entry
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Placeholders used when the ledger record has no counterparty.
const (
	CounterpartyUnknown     = "Unknown"
	CounterpartyNetworkFees = "Network Fees"
)

// LedgerValue is an integer amount as the indexer reports it. It accepts a JSON
// string, a JSON number or null and keeps the raw text; parsing happens during
// reconciliation so one bad value does not fail the whole batch.
type LedgerValue string

func (v *LedgerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LedgerValue(s)
		return nil
	}
	*v = LedgerValue(data)
	return nil
}

// RawMessage is an inbound or outbound message of a ledger transaction.
type RawMessage struct {
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	Value       LedgerValue `json:"value"`
	FwdFee      LedgerValue `json:"fwd_fee,omitempty"`
	CreatedLt   string      `json:"created_lt,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// TransactionID identifies a ledger transaction.
type TransactionID struct {
	Lt   string `json:"lt"`
	Hash string `json:"hash"`
}

// RawLedgerRecord is one entry of the indexer's getTransactions result.
// Every field is optional.
type RawLedgerRecord struct {
	Utime         int64          `json:"utime"`
	Fee           LedgerValue    `json:"fee"`
	StorageFee    LedgerValue    `json:"storage_fee,omitempty"`
	OtherFee      LedgerValue    `json:"other_fee,omitempty"`
	TransactionID *TransactionID `json:"transaction_id,omitempty"`
	InMsg         *RawMessage    `json:"in_msg,omitempty"`
	OutMsgs       []RawMessage   `json:"out_msgs,omitempty"`
}

// HistoryEntry is a reconciled transaction
type HistoryEntry struct {
	Hash            string    `json:"hash"`
	Lt              string    `json:"lt,omitempty"`
	TimestampMillis int64     `json:"time"`
	Amount          string    `json:"amount"`
	Counterparty    string    `json:"counterparty"`
	Direction       Direction `json:"type"`
}

// Time returns the entry timestamp.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.TimestampMillis)
}

// LogResponse represents response for GET /ton/transactions
type LogResponse struct {
	Address       string         `json:"address"`
	Network       Network        `json:"network"`
	TotalReceived string         `json:"total_received"`
	TotalSent     string         `json:"total_sent"`
	Transactions  []HistoryEntry `json:"transactions"`
}

// LogRequest represents request parameters for GET /ton/transactions
type LogRequest struct {
	Direction *Direction `form:"type"`
	Hash      *string    `form:"hash"`
	From      *time.Time `form:"from"`
	To        *time.Time `form:"to"`
	MinAmount *string    `form:"minAmount"`
	MaxAmount *string    `form:"maxAmount"`
}

// Validate validates LogRequest filter parameters.
func (r *LogRequest) Validate() error {
	if r.Direction != nil && *r.Direction != DirectionSent && *r.Direction != DirectionReceived {
		return fmt.Errorf("type must be sent or received")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareAmounts(*r.MinAmount, *r.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
