package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	tonCoinID    = "the-open-network"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client. An empty baseURL uses
// the public API.
func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetTONRate gets the price of one TON in currency (e.g. "usd").
func (c *CoinGeckoClient) GetTONRate(ctx context.Context, currency string) (string, error) {
	currency = strings.ToLower(currency)
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.baseURL, tonCoinID, currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build rate request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return "", fmt.Errorf("failed to decode rate: %w", err)
	}
	rate, ok := priceResp[tonCoinID][currency]
	if !ok {
		return "", fmt.Errorf("no %s rate for %s", currency, tonCoinID)
	}

	return strconv.FormatFloat(rate, 'f', 2, 64), nil
}
