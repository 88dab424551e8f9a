package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Network         string `envconfig:"TON_NETWORK" default:"testnet"`
	TestnetEndpoint string `envconfig:"TON_TESTNET_ENDPOINT" default:"https://testnet.toncenter.com/api/v2/jsonRPC"`
	TestnetAPIKey   string `envconfig:"TON_TESTNET_API_KEY"`
	MainnetEndpoint string `envconfig:"TON_MAINNET_ENDPOINT" default:"https://toncenter.com/api/v2/jsonRPC"`
	MainnetAPIKey   string `envconfig:"TON_MAINNET_API_KEY"`
	Workchain       int32  `envconfig:"TON_WORKCHAIN" default:"0"`
	// RequestsPerSecond is the ledger rate limit; toncenter allows 1 rps
	// without an API key and 10 with one. Zero disables limiting.
	RequestsPerSecond int    `envconfig:"TON_RPS" default:"1"`
	HistoryLimit      int    `envconfig:"HISTORY_LIMIT" default:"10"`
	PayCooldown       int    `envconfig:"PAY_COOLDOWN_SECONDS" default:"0"`
	StoreBackend      string `envconfig:"STORE_BACKEND" default:"file"`
	StorePath         string `envconfig:"STORE_PATH" default:"./wallets"`
	RateCurrency      string `envconfig:"RATE_CURRENCY"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON           bool   `envconfig:"LOG_JSON" default:"false"`
	LogFile           string `envconfig:"LOG_FILE"`
}

// Endpoint is the ledger RPC location for one network.
type Endpoint struct {
	URL    string
	APIKey string
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	if _, ok := model.ParseNetwork(c.Network); !ok {
		return fmt.Errorf("TON_NETWORK must be testnet or mainnet, got %q", c.Network)
	}
	if c.StoreBackend != "file" && c.StoreBackend != "badger" {
		return fmt.Errorf("STORE_BACKEND must be file or badger, got %q", c.StoreBackend)
	}
	if c.Workchain != 0 && c.Workchain != -1 {
		return fmt.Errorf("TON_WORKCHAIN must be 0 or -1, got %d", c.Workchain)
	}
	if c.HistoryLimit <= 0 {
		return errors.New("HISTORY_LIMIT must be positive")
	}
	if c.RequestsPerSecond < 0 || c.PayCooldown < 0 {
		return errors.New("TON_RPS and PAY_COOLDOWN_SECONDS must not be negative")
	}
	return nil
}

// DefaultNetwork returns the network used when a caller does not pick one.
func (c *Config) DefaultNetwork() model.Network {
	n, _ := model.ParseNetwork(c.Network)
	return n
}

// Endpoints returns the ledger endpoint for each network.
func (c *Config) Endpoints() map[model.Network]Endpoint {
	return map[model.Network]Endpoint{
		model.Testnet: {URL: c.TestnetEndpoint, APIKey: c.TestnetAPIKey},
		model.Mainnet: {URL: c.MainnetEndpoint, APIKey: c.MainnetAPIKey},
	}
}

// Cooldown returns the minimum pause between two sends of the same wallet.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.PayCooldown) * time.Second
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet store password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet store password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
