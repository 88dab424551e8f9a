package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

var send = cli.Command{
	Name:  "send",
	Usage: "send TON to an address",
	Flags: []cli.Flag{
		userFlag,
		networkFlag,
		&cli.StringFlag{
			Name:     "to",
			Usage:    "destination address, any of the five forms",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in TON, e.g. 1.5",
			Required: true,
		},
	},
	Action: sendAction,
}

func sendAction(ctx *cli.Context) error {
	network, err := networkFrom(ctx)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := svc.Send(context.Background(), ctx.String(userFlag.Name), &model.PayRequest{
		ToAddress: ctx.String("to"),
		Amount:    ctx.String("amount"),
	}, network)
	if err != nil {
		return err
	}
	printJSON(resp)
	return nil
}
