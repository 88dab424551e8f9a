package model

import "time"

// PayRequest represents request for POST /ton/send
type PayRequest struct {
	ToAddress string `json:"toAddress"`
	Amount    string `json:"amount"`
}

// PayResponse represents response for POST /ton/send
type PayResponse struct {
	Hash       string    `json:"hash"`
	Seqno      uint32    `json:"seqno"`
	ValidUntil time.Time `json:"validUntil"`
}
