package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var addressCmd = cli.Command{
	Name:   "address",
	Usage:  "show every encoding of the wallet address and a transfer link",
	Flags:  []cli.Flag{userFlag, networkFlag},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	network, err := networkFrom(ctx)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.Receive(context.Background(), ctx.String(userFlag.Name), network)
	if err != nil {
		return err
	}
	resp.QR = ""
	printJSON(resp)
	return nil
}
