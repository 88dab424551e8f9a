package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/rs/zerolog"
	"go.uber.org/ratelimit"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

const (
	methodRunGetMethod    = "runGetMethod"
	methodGetAddressState = "getAddressState"
	methodGetBalance      = "getAddressBalance"
	methodSendBoc         = "sendBoc"
	methodGetTransactions = "getTransactions"

	accountStateActive = "active"
)

// TonCenterClient is a client for the toncenter v2 JSON-RPC API of one network.
//
// Requests are JSON-RPC 2.0 with named params sent as an object. Responses
// use toncenter's envelope ({"ok", "result", "error", "code"}), which the
// strict response decoder of jsonrpc.RPCClient refuses, so the client posts
// and decodes requests itself.
type TonCenterClient struct {
	endpoint string
	headers  map[string]string
	http     *http.Client
	limiter  ratelimit.Limiter
	log      zerolog.Logger
}

// Options configures a TonCenterClient.
type Options struct {
	Endpoint string
	APIKey   string
	// RequestsPerSecond limits outgoing calls; zero means unlimited.
	RequestsPerSecond int
	HTTPClient        *http.Client
	Logger            zerolog.Logger
}

// NewTonCenterClient creates a new ledger client for network.
func NewTonCenterClient(network model.Network, opts Options) *TonCenterClient {
	headers := map[string]string{}
	if opts.APIKey != "" {
		headers["X-API-Key"] = opts.APIKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RequestsPerSecond > 0 {
		limiter = ratelimit.New(opts.RequestsPerSecond)
	}

	return &TonCenterClient{
		endpoint: opts.Endpoint,
		headers:  headers,
		http:     httpClient,
		limiter:  limiter,
		log:      opts.Logger.With().Str("network", string(network)).Logger(),
	}
}

// RPCError is an error reported by the endpoint itself, as opposed to a
// transport failure.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// envelope is the toncenter response wrapper. Error is either a plain string
// or a JSON-RPC error object depending on the failure.
type envelope struct {
	OK     *bool           `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
	Code   int             `json:"code"`
}

func (e *envelope) errorMessage() string {
	if len(e.Error) == 0 || string(e.Error) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &obj); err == nil && obj.Message != "" {
		if e.Code == 0 {
			e.Code = obj.Code
		}
		return obj.Message
	}
	return string(e.Error)
}

// newRequest encodes a JSON-RPC request for method. A single map passed to
// jsonrpc.NewRequest is sent as the params object.
func (c *TonCenterClient) newRequest(ctx context.Context, method string, params map[string]any) (*http.Request, error) {
	rpcReq := jsonrpc.NewRequest(method, params)
	rpcReq.ID = 1

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// call performs one JSON-RPC call. Transport and decoding failures wrap
// model.ErrEndpointUnavailable; endpoint-reported failures are *RPCError.
func (c *TonCenterClient) call(ctx context.Context, method string, params map[string]any, out any) error {
	c.limiter.Take()

	req, err := c.newRequest(ctx, method, params)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrEndpointUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Err(err).Msg("rpc transport failed")
		return fmt.Errorf("%w: %s: %v", model.ErrEndpointUnavailable, method, err)
	}
	defer resp.Body.Close()

	if err := decodeResponse(method, resp, out); err != nil {
		c.log.Debug().Str("method", method).Err(err).Msg("rpc call failed")
		return err
	}
	return nil
}

func decodeResponse(method string, resp *http.Response, out any) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %s: status %d: %v", model.ErrEndpointUnavailable, method, resp.StatusCode, err)
	}
	if msg := env.errorMessage(); msg != "" || (env.OK != nil && !*env.OK) {
		code := env.Code
		if code == 0 {
			code = resp.StatusCode
		}
		return &RPCError{Method: method, Code: code, Message: msg}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d", model.ErrEndpointUnavailable, method, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%w: %s: failed to decode result: %v", model.ErrEndpointUnavailable, method, err)
		}
	}
	return nil
}

type runGetMethodResult struct {
	Stack    [][]json.RawMessage `json:"stack"`
	ExitCode int                 `json:"exit_code"`
}

// GetSequenceNumber returns the seqno the wallet contract expects next.
// An account that is not deployed yet expects 0.
func (c *TonCenterClient) GetSequenceNumber(ctx context.Context, address string) (uint32, error) {
	var res runGetMethodResult
	err := c.call(ctx, methodRunGetMethod, map[string]any{
		"address": address,
		"method":  "seqno",
		"stack":   []any{},
	}, &res)

	var rpcErr *RPCError
	if err != nil && !errors.As(err, &rpcErr) {
		return 0, err
	}
	if err == nil && res.ExitCode == 0 {
		return parseStackNumber(res.Stack)
	}

	// The get method fails on uninitialized accounts; confirm that is the case.
	state, stateErr := c.GetAccountState(ctx, address)
	if stateErr != nil {
		return 0, stateErr
	}
	if state != accountStateActive {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrEndpointUnavailable, err)
	}
	return 0, fmt.Errorf("%w: seqno get method exited with code %d", model.ErrEndpointUnavailable, res.ExitCode)
}

func parseStackNumber(stack [][]json.RawMessage) (uint32, error) {
	if len(stack) == 0 || len(stack[0]) < 2 {
		return 0, fmt.Errorf("%w: empty seqno stack", model.ErrEndpointUnavailable)
	}
	var typ, value string
	if err := json.Unmarshal(stack[0][0], &typ); err != nil || typ != "num" {
		return 0, fmt.Errorf("%w: unexpected seqno stack entry", model.ErrEndpointUnavailable)
	}
	if err := json.Unmarshal(stack[0][1], &value); err != nil {
		return 0, fmt.Errorf("%w: unexpected seqno value", model.ErrEndpointUnavailable)
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(value), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid seqno %q", model.ErrEndpointUnavailable, value)
	}
	return uint32(n), nil
}

// GetAccountState returns "active", "uninitialized" or "frozen".
func (c *TonCenterClient) GetAccountState(ctx context.Context, address string) (string, error) {
	var state string
	if err := c.call(ctx, methodGetAddressState, map[string]any{"address": address}, &state); err != nil {
		return "", asUnavailable(err)
	}
	return state, nil
}

// GetBalance returns the account balance in nanoton.
func (c *TonCenterClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	var raw json.RawMessage
	if err := c.call(ctx, methodGetBalance, map[string]any{"address": address}, &raw); err != nil {
		return 0, asUnavailable(err)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	balance, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid balance %q", model.ErrEndpointUnavailable, s)
	}
	return balance, nil
}

// SubmitSignedMessage sends a serialized external message. A message the
// ledger refuses to accept is reported as model.ErrSequenceMismatch.
func (c *TonCenterClient) SubmitSignedMessage(ctx context.Context, boc []byte) error {
	err := c.call(ctx, methodSendBoc, map[string]any{
		"boc": base64.StdEncoding.EncodeToString(boc),
	}, nil)
	if err == nil {
		return nil
	}

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) && isRejection(rpcErr) {
		return fmt.Errorf("%w: %v", model.ErrSequenceMismatch, rpcErr)
	}
	return asUnavailable(err)
}

// isRejection reports whether the endpoint refused the message itself rather
// than failing to process the request.
func isRejection(e *RPCError) bool {
	if e.Code == http.StatusTooManyRequests || e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return false
	}
	msg := strings.ToLower(e.Message)
	for _, marker := range []string{"exitcode", "exit code", "not accepted", "rejected", "seqno"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// GetTransactions returns up to limit most recent transactions, newest first.
func (c *TonCenterClient) GetTransactions(ctx context.Context, address string, limit int) ([]model.RawLedgerRecord, error) {
	var raw []json.RawMessage
	err := c.call(ctx, methodGetTransactions, map[string]any{
		"address": address,
		"limit":   limit,
	}, &raw)
	if err != nil {
		return nil, asUnavailable(err)
	}

	// Decode one by one so a single unreadable record does not drop the page.
	records := make([]model.RawLedgerRecord, 0, len(raw))
	for i, item := range raw {
		var rec model.RawLedgerRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			c.log.Warn().Int("index", i).Err(err).Msg("skipping undecodable ledger record")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func asUnavailable(err error) error {
	if errors.Is(err, model.ErrEndpointUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrEndpointUnavailable, err)
}
