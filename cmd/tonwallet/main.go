// Command tonwallet runs the wallet HTTP API and offers the same operations
// from the command line.
//
// @title        TON Wallet API
// @version      1.0
// @description  Self-custody TON wallet: one account per user, identified by the X-User-ID header.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sergeybanach/wallet-app-1/internal/client"
	"github.com/sergeybanach/wallet-app-1/internal/config"
	"github.com/sergeybanach/wallet-app-1/internal/crypto"
	"github.com/sergeybanach/wallet-app-1/internal/log"
	"github.com/sergeybanach/wallet-app-1/internal/model"
	"github.com/sergeybanach/wallet-app-1/internal/store"
	"github.com/sergeybanach/wallet-app-1/ton"
)

var (
	userFlag = &cli.StringFlag{
		Name:     "user",
		Usage:    "id of the wallet owner",
		Required: true,
	}
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "testnet or mainnet (defaults to TON_NETWORK)",
	}
)

func main() {
	app := cli.NewApp()

	app.Name = "tonwallet"
	app.Usage = "self-custody TON wallet"
	app.Before = setup
	app.Commands = append(
		app.Commands,
		&serve,
		&create,
		&importWallet,
		&addressCmd,
		&balance,
		&send,
		&historyCmd,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func setup(*cli.Context) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()
	return log.Init(cfg.LogLevel, cfg.LogJSON, cfg.LogFile)
}

// newService opens the store and builds the wallet service. The store
// password is prompted for first.
func newService() (*ton.Service, func(), error) {
	if err := config.PromptForPassword(); err != nil {
		return nil, nil, err
	}
	cfg := config.Get()

	password, err := config.GetPasswordBytes()
	if err != nil {
		return nil, nil, err
	}
	sealing := store.Sealing{Password: password, Params: crypto.DefaultParams, Network: cfg.DefaultNetwork()}

	var st store.Store
	switch cfg.StoreBackend {
	case "badger":
		st, err = store.OpenBadgerStore(cfg.StorePath, sealing, log.Storage)
	default:
		st, err = store.NewFileStore(cfg.StorePath, sealing, log.Storage)
	}
	if err != nil {
		clear(password)
		return nil, nil, err
	}

	ledgers := make(map[model.Network]ton.Ledger)
	for network, endpoint := range cfg.Endpoints() {
		ledgers[network] = client.NewTonCenterClient(network, client.Options{
			Endpoint:          endpoint.URL,
			APIKey:            endpoint.APIKey,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Logger:            log.RPC,
		})
	}

	opts := ton.Options{
		Workchain:    cfg.Workchain,
		HistoryLimit: cfg.HistoryLimit,
		Cooldown:     cfg.Cooldown(),
		RateCurrency: cfg.RateCurrency,
	}
	if cfg.RateCurrency != "" {
		opts.Rates = client.NewCoinGeckoClient("")
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Storage.Warn().Err(err).Msg("failed to close store")
		}
		clear(password)
	}
	return ton.New(st, ledgers, opts), cleanup, nil
}

func networkFrom(ctx *cli.Context) (model.Network, error) {
	s := ctx.String(networkFlag.Name)
	if s == "" {
		return config.Get().DefaultNetwork(), nil
	}
	network, ok := model.ParseNetwork(s)
	if !ok {
		return "", fmt.Errorf("unknown network %q", s)
	}
	return network, nil
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(out))
}

func fatal(err error) {
	if store.IsInvalidPassword(err) {
		err = errors.New("wrong store password")
	}
	fmt.Fprintf(os.Stderr, "[tonwallet] %v\n", err)
	os.Exit(1)
}
