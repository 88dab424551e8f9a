package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTONRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "the-open-network", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.Write([]byte(`{"the-open-network":{"usd":5.234}}`))
	}))
	defer srv.Close()

	rate, err := NewCoinGeckoClient(srv.URL).GetTONRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "5.23", rate)
}

func TestGetTONRate_Missing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL).GetTONRate(context.Background(), "eur")
	require.Error(t, err)
}
