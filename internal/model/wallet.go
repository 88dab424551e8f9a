package model

// Network selects which ledger a call talks to.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// ParseNetwork converts user input to a Network.
func ParseNetwork(s string) (Network, bool) {
	switch Network(s) {
	case Testnet, Mainnet:
		return Network(s), true
	}
	return "", false
}

// IsTestnet reports whether addresses for n carry the test-only flag.
func (n Network) IsTestnet() bool {
	return n == Testnet
}

// WalletRecord is the per-user wallet document. It is written once and never
// changed afterwards. The hex private key is secret material; it is only read
// back to sign transfers.
type WalletRecord struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// SealedWallet represents the .cwt envelope a WalletRecord is stored in.
// Address and QR stay readable; the record itself is in CipherText.
type SealedWallet struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR,omitempty"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}
