package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "show the wallet balance",
	Flags:  []cli.Flag{userFlag, networkFlag},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	network, err := networkFrom(ctx)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.GetBalance(context.Background(), ctx.String(userFlag.Name), network)
	if err != nil {
		return err
	}
	printJSON(resp)
	return nil
}
