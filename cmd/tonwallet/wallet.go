package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sergeybanach/wallet-app-1/internal/keys"
)

var create = cli.Command{
	Name:   "create",
	Usage:  "create the user's wallet, or show it if it exists",
	Flags:  []cli.Flag{userFlag},
	Action: createAction,
}

var importWallet = cli.Command{
	Name:   "import",
	Usage:  "import a wallet from its 24-word recovery phrase (read from stdin)",
	Flags:  []cli.Flag{userFlag},
	Action: importAction,
}

func createAction(ctx *cli.Context) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.LoadOrCreateWallet(context.Background(), ctx.String(userFlag.Name))
	if err != nil {
		return err
	}
	printJSON(resp)
	return nil
}

func importAction(ctx *cli.Context) error {
	fmt.Fprint(os.Stderr, "Enter recovery phrase: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read recovery phrase: %w", err)
	}
	words := keys.ParseMnemonic(strings.TrimSpace(line))
	defer clear(words)
	if err := keys.ValidateMnemonic(words); err != nil {
		return err
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.ImportWallet(context.Background(), ctx.String(userFlag.Name), words)
	if err != nil {
		return err
	}
	printJSON(resp)
	return nil
}
