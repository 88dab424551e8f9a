package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// UserHeader carries the authenticated user id set by the session layer.
const UserHeader = "X-User-ID"

// WalletService is the wallet API the handlers expose.
type WalletService interface {
	LoadOrCreateWallet(ctx context.Context, userID string) (*model.GenerateResponse, error)
	ImportWallet(ctx context.Context, userID string, words []string) (*model.GenerateResponse, error)
	GetBalance(ctx context.Context, userID string, network model.Network) (*model.BalanceResponse, error)
	Send(ctx context.Context, userID string, req *model.PayRequest, network model.Network) (*model.PayResponse, error)
	History(ctx context.Context, userID string, network model.Network, req *model.LogRequest) (*model.LogResponse, error)
	Refresh(ctx context.Context, userID string, network model.Network) (*model.RefreshResponse, error)
	Receive(ctx context.Context, userID string, network model.Network) (*model.ReceiveResponse, error)
}

// TonHandler serves the wallet endpoints.
type TonHandler struct {
	svc            WalletService
	defaultNetwork model.Network
	log            zerolog.Logger
}

// NewTonHandler creates a new TonHandler. Requests without a network query
// parameter use defaultNetwork.
func NewTonHandler(svc WalletService, defaultNetwork model.Network, logger zerolog.Logger) *TonHandler {
	return &TonHandler{svc: svc, defaultNetwork: defaultNetwork, log: logger}
}

// Wallet handles POST /ton/wallet
// @Summary      Create or load wallet
// @Description  Returns the user's wallet, creating one from a new 24-word recovery phrase if needed. The phrase is returned only on creation.
// @Tags         ton
// @Produce      json
// @Param        X-User-ID  header    string  true  "User id"
// @Success      200  {object}  model.GenerateResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /ton/wallet [post]
func (h *TonHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.LoadOrCreateWallet(r.Context(), r.Header.Get(UserHeader))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ImportWallet handles POST /ton/wallet/import
// @Summary      Import wallet
// @Description  Stores the wallet of an existing 24-word recovery phrase
// @Tags         ton
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string               true  "User id"
// @Param        request    body      model.ImportRequest  true  "Recovery phrase"
// @Success      200  {object}  model.GenerateResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /ton/wallet/import [post]
func (h *TonHandler) ImportWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}
	defer clear(req.Mnemonic)

	resp, err := h.svc.ImportWallet(r.Context(), r.Header.Get(UserHeader), req.Mnemonic)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetBalance handles GET /ton/balance
// @Summary      Get wallet balance
// @Description  Gets the TON balance, with a fiat value on mainnet when a rate currency is configured
// @Tags         ton
// @Produce      json
// @Param        X-User-ID  header    string  true   "User id"
// @Param        network    query     string  false  "testnet or mainnet"
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ton/balance [get]
func (h *TonHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	network, ok := h.network(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), r.Header.Get(UserHeader), network)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Send handles POST /ton/send
// @Summary      Send TON
// @Description  Signs and submits a transfer. Sends of one user are serialized and never retried.
// @Tags         ton
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string            true   "User id"
// @Param        network    query     string            false  "testnet or mainnet"
// @Param        request    body      model.PayRequest  true   "Payment data"
// @Success      200  {object}  model.PayResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      429  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ton/send [post]
func (h *TonHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	network, ok := h.network(w, r)
	if !ok {
		return
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	payResp, err := h.svc.Send(r.Context(), r.Header.Get(UserHeader), &req, network)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payResp)
}

// TransactionHistory handles GET /ton/transactions
// @Summary      Get wallet transactions
// @Description  Gets the most recent transactions, labeled sent or received by a value heuristic, with filtering capability
// @Tags         ton
// @Produce      json
// @Param        X-User-ID  header    string  true   "User id"
// @Param        network    query     string  false  "testnet or mainnet"
// @Param        type       query     string  false  "sent or received"
// @Param        hash       query     string  false  "Transaction hash"
// @Param        from       query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query     string  false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query     string  false  "Minimum amount"
// @Param        maxAmount  query     string  false  "Maximum amount"
// @Success      200  {object}  model.LogResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ton/transactions [get]
func (h *TonHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	network, ok := h.network(w, r)
	if !ok {
		return
	}

	var req model.LogRequest
	q := r.URL.Query()

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := q.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)", Code: "invalid_filter"})
			return
		}
		req.From = &t
	}
	if toStr := q.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)", Code: "invalid_filter"})
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if typeStr := q.Get("type"); typeStr != "" {
		direction := model.Direction(typeStr)
		req.Direction = &direction
	}
	if hash := q.Get("hash"); hash != "" {
		req.Hash = &hash
	}
	if minAmount := q.Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := q.Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}

	logResp, err := h.svc.History(r.Context(), r.Header.Get(UserHeader), network, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logResp)
}

// Refresh handles POST /ton/refresh
// @Summary      Refresh wallet
// @Description  Fetches balance and unfiltered history together
// @Tags         ton
// @Produce      json
// @Param        X-User-ID  header    string  true   "User id"
// @Param        network    query     string  false  "testnet or mainnet"
// @Success      200  {object}  model.RefreshResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ton/refresh [post]
func (h *TonHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	network, ok := h.network(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Refresh(r.Context(), r.Header.Get(UserHeader), network)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Receive handles GET /ton/address
// @Summary      Get receive address
// @Description  Returns every address encoding for the network, a ton:// transfer link and its QR code (base64 PNG)
// @Tags         ton
// @Produce      json
// @Param        X-User-ID  header    string  true   "User id"
// @Param        network    query     string  false  "testnet or mainnet"
// @Success      200  {object}  model.ReceiveResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /ton/address [get]
func (h *TonHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	network, ok := h.network(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Receive(r.Context(), r.Header.Get(UserHeader), network)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// network reads the network query parameter, writing a 400 when it is not
// a known network.
func (h *TonHandler) network(w http.ResponseWriter, r *http.Request) (model.Network, bool) {
	s := r.URL.Query().Get("network")
	if s == "" {
		return h.defaultNetwork, true
	}
	network, ok := model.ParseNetwork(s)
	if !ok {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "network must be testnet or mainnet", Code: "invalid_network"})
		return "", false
	}
	return network, true
}

func (h *TonHandler) writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: model.ErrorCode(err)})
}

// StatusCode maps a service error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidPhrase),
		errors.Is(err, model.ErrMalformedAddress),
		errors.Is(err, model.ErrInvalidDestination),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidUser),
		errors.Is(err, model.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrWalletExists),
		errors.Is(err, model.ErrSequenceMismatch):
		return http.StatusConflict
	case errors.Is(err, model.ErrCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, model.ErrEndpointUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
