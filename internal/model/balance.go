package model

// BalanceResponse represents response for GET /ton/balance
type BalanceResponse struct {
	Address string  `json:"address"`
	Network Network `json:"network"`
	Nano    uint64  `json:"nano"`
	TON     string  `json:"ton"`
	// Rate and Fiat are empty when no rate currency is configured.
	Rate string `json:"rate,omitempty"`
	Fiat string `json:"fiat,omitempty"`
}

// RefreshResponse represents response for POST /ton/refresh
type RefreshResponse struct {
	Balance *BalanceResponse `json:"balance"`
	History *LogResponse     `json:"history"`
}
