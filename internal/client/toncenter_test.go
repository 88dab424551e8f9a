package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

const testAddr = "UQBvI0aFLnw2QbZgjMPCLRdtRHxhUyinQudg6sdiohIwg8UO"

type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

// decodeRequest reads a JSON-RPC request the way toncenter does: params must
// be an object, an array is a decoding error.
func decodeRequest(r *http.Request) (rpcRequest, error) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return rpcRequest{}, err
	}
	return req, nil
}

// fakeTonCenter answers JSON-RPC calls with the response registered for the
// method. Responses are raw JSON bodies.
type fakeTonCenter struct {
	t         *testing.T
	responses map[string]string
	status    map[string]int
	calls     []rpcRequest
	apiKeys   []string
}

func newFakeTonCenter(t *testing.T) (*fakeTonCenter, *TonCenterClient) {
	f := &fakeTonCenter{t: t, responses: map[string]string{}, status: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	c := NewTonCenterClient(model.Testnet, Options{
		Endpoint: srv.URL,
		APIKey:   "secret-key",
		Logger:   zerolog.Nop(),
	})
	return f, c
}

func (f *fakeTonCenter) serve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if !assert.NoError(f.t, err) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ok":false,"error":"params: value is not a valid dict","code":422}`))
		return
	}
	f.calls = append(f.calls, req)
	f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-Key"))

	body, ok := f.responses[req.Method]
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error":"unexpected method","code":500}`))
		return
	}
	if status := f.status[req.Method]; status != 0 {
		w.WriteHeader(status)
	}
	w.Write([]byte(body))
}

func (f *fakeTonCenter) methods() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method
	}
	return out
}

func TestGetSequenceNumber(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodRunGetMethod] = `{"ok":true,"result":{"@type":"smc.runResult","gas_used":100,"stack":[["num","0x1b"]],"exit_code":0}}`

	seqno, err := c.GetSequenceNumber(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32(27), seqno)

	require.Len(t, f.calls, 1)
	assert.Equal(t, testAddr, f.calls[0].Params["address"])
	assert.Equal(t, "seqno", f.calls[0].Params["method"])
	assert.Equal(t, "secret-key", f.apiKeys[0])
}

func TestGetSequenceNumber_Uninitialized(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodRunGetMethod] = `{"ok":true,"result":{"stack":[],"exit_code":-13}}`
	f.responses[methodGetAddressState] = `{"ok":true,"result":"uninitialized"}`

	seqno, err := c.GetSequenceNumber(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), seqno)
	assert.Equal(t, []string{methodRunGetMethod, methodGetAddressState}, f.methods())
}

func TestGetSequenceNumber_ActiveButFailing(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodRunGetMethod] = `{"ok":true,"result":{"stack":[],"exit_code":11}}`
	f.responses[methodGetAddressState] = `{"ok":true,"result":"active"}`

	_, err := c.GetSequenceNumber(context.Background(), testAddr)
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestGetSequenceNumber_TransportFailure(t *testing.T) {
	c := NewTonCenterClient(model.Mainnet, Options{Endpoint: "http://127.0.0.1:1", Logger: zerolog.Nop()})

	_, err := c.GetSequenceNumber(context.Background(), testAddr)
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestGetSequenceNumber_Cancelled(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodRunGetMethod] = `{"ok":true,"result":{"stack":[["num","0x1"]],"exit_code":0}}`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetSequenceNumber(ctx, testAddr)
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestGetBalance(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetBalance] = `{"ok":true,"result":"5000000000"}`

	balance, err := c.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000_000), balance)
}

func TestGetBalance_RPCError(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetBalance] = `{"ok":false,"error":"Incorrect address","code":416}`
	f.status[methodGetBalance] = 416

	_, err := c.GetBalance(context.Background(), testAddr)
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestGetBalance_GarbageBody(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetBalance] = `<html>bad gateway</html>`
	f.status[methodGetBalance] = http.StatusBadGateway

	_, err := c.GetBalance(context.Background(), testAddr)
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
}

func TestSubmitSignedMessage(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodSendBoc] = `{"ok":true,"result":{"@type":"ok"}}`

	boc := []byte{0xb5, 0xee, 0x9c, 0x72}
	require.NoError(t, c.SubmitSignedMessage(context.Background(), boc))

	require.Len(t, f.calls, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(boc), f.calls[0].Params["boc"])
}

func TestSubmitSignedMessage_Rejected(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodSendBoc] = `{"ok":false,"error":"LITE_SERVER_UNKNOWN: cannot apply external message to current state : External message was not accepted\nexitcode=33, steps=12","code":500}`
	f.status[methodSendBoc] = http.StatusInternalServerError

	err := c.SubmitSignedMessage(context.Background(), []byte{1})
	require.ErrorIs(t, err, model.ErrSequenceMismatch)
}

func TestSubmitSignedMessage_RateLimited(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodSendBoc] = `{"ok":false,"error":"Ratelimit exceed","code":429}`
	f.status[methodSendBoc] = http.StatusTooManyRequests

	err := c.SubmitSignedMessage(context.Background(), []byte{1})
	require.ErrorIs(t, err, model.ErrEndpointUnavailable)
	assert.NotErrorIs(t, err, model.ErrSequenceMismatch)
}

func TestSubmitSignedMessage_ObjectError(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodSendBoc] = `{"jsonrpc":"2.0","error":{"code":-32000,"message":"message rejected: seqno mismatch"}}`

	err := c.SubmitSignedMessage(context.Background(), []byte{1})
	require.ErrorIs(t, err, model.ErrSequenceMismatch)
}

func TestGetTransactions(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetTransactions] = `{"ok":true,"result":[
		{"utime":1700000000,"fee":"1000","transaction_id":{"lt":"2","hash":"h2"},
		 "in_msg":{"source":"EQsrc","destination":"` + testAddr + `","value":"5000000000"},"out_msgs":[]},
		{"utime":"not-a-number"},
		{"utime":1690000000,"fee":"10000000","transaction_id":{"lt":"1","hash":"h1"},
		 "in_msg":{"source":"","value":"0"},"out_msgs":[{"destination":"EQdst","value":2000000000}]}
	]}`

	records, err := c.GetTransactions(context.Background(), testAddr, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "h2", records[0].TransactionID.Hash)
	assert.Equal(t, model.LedgerValue("5000000000"), records[0].InMsg.Value)
	assert.Equal(t, int64(1700000000), records[0].Utime)
	assert.Equal(t, model.LedgerValue("2000000000"), records[1].OutMsgs[0].Value)

	assert.Equal(t, float64(10), f.calls[0].Params["limit"])
}

func TestGetTransactions_Empty(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetTransactions] = `{"ok":true,"result":[]}`

	records, err := c.GetTransactions(context.Background(), testAddr, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNoAPIKeyHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Values("X-API-Key")
		w.Write([]byte(`{"ok":true,"result":"1"}`))
	}))
	defer srv.Close()

	c := NewTonCenterClient(model.Testnet, Options{Endpoint: srv.URL, Logger: zerolog.Nop()})
	_, err := c.GetBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequestParamsAreAnObject(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"ok":true,"result":"7","@extra":"1700000000.1:0:0.5"}`))
	}))
	defer srv.Close()

	c := NewTonCenterClient(model.Testnet, Options{Endpoint: srv.URL, Logger: zerolog.Nop()})
	balance, err := c.GetBalance(context.Background(), "0:abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), balance)

	require.Contains(t, body, "params")
	assert.JSONEq(t, `{"address":"0:abc"}`, string(body["params"]))
	assert.JSONEq(t, `"getAddressBalance"`, string(body["method"]))
	assert.JSONEq(t, `"2.0"`, string(body["jsonrpc"]))
}

func TestRequestsCarryJSONRPCVersion(t *testing.T) {
	f, c := newFakeTonCenter(t)
	f.responses[methodGetAddressState] = `{"ok":true,"result":"active"}`

	state, err := c.GetAccountState(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, "active", state)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "2.0", f.calls[0].JSONRPC)
	assert.Equal(t, map[string]any{"address": testAddr}, f.calls[0].Params)
}
