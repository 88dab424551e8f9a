package model

// GenerateResponse represents response for POST /ton/wallet and /ton/wallet/import
type GenerateResponse struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
	Address string `json:"address"`
	// Mnemonic is only returned once, when the wallet was just created.
	Mnemonic []string `json:"mnemonic,omitempty"`
}

// ImportRequest represents request for POST /ton/wallet/import
type ImportRequest struct {
	Mnemonic []string `json:"mnemonic"`
}

// ReceiveResponse represents response for GET /ton/address
type ReceiveResponse struct {
	Address           string `json:"address"`
	Raw               string `json:"raw"`
	Bounceable        string `json:"bounceable"`
	NonBounceable     string `json:"nonBounceable"`
	TestBounceable    string `json:"testBounceable"`
	TestNonBounceable string `json:"testNonBounceable"`
	TransferLink      string `json:"transferLink"`
	QR                string `json:"QR"`
}
