package model

import "errors"

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error kinds returned by the wallet core. Callers match them with errors.Is;
// nothing in the core retries on any of them.
var (
	ErrInvalidPhrase       = errors.New("invalid recovery phrase")
	ErrMalformedAddress    = errors.New("malformed address")
	ErrInvalidDestination  = errors.New("invalid destination address")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEndpointUnavailable = errors.New("ledger endpoint unavailable")
	ErrSequenceMismatch    = errors.New("sequence number mismatch")
	ErrStoreUnavailable    = errors.New("wallet store unavailable")

	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrCooldown       = errors.New("send cooldown active")
	ErrInvalidUser    = errors.New("invalid user id")
	ErrInvalidFilter  = errors.New("invalid history filter")
)

// ErrorCode returns the stable API code for err, or "internal" when err is
// not one of the known kinds.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPhrase):
		return "invalid_phrase"
	case errors.Is(err, ErrInvalidDestination):
		return "invalid_destination"
	case errors.Is(err, ErrMalformedAddress):
		return "malformed_address"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrEndpointUnavailable):
		return "endpoint_unavailable"
	case errors.Is(err, ErrSequenceMismatch):
		return "sequence_mismatch"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, ErrWalletExists):
		return "wallet_exists"
	case errors.Is(err, ErrCooldown):
		return "cooldown"
	case errors.Is(err, ErrInvalidUser):
		return "invalid_user"
	case errors.Is(err, ErrInvalidFilter):
		return "invalid_filter"
	}
	return "internal"
}
