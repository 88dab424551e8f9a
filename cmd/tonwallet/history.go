package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

var historyCmd = cli.Command{
	Name:  "history",
	Usage: "list recent transactions",
	Flags: []cli.Flag{
		userFlag,
		networkFlag,
		&cli.StringFlag{
			Name:  "type",
			Usage: "only sent or received",
		},
	},
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	network, err := networkFrom(ctx)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	var req model.LogRequest
	if t := ctx.String("type"); t != "" {
		direction := model.Direction(t)
		req.Direction = &direction
	}

	resp, err := svc.History(context.Background(), ctx.String(userFlag.Name), network, &req)
	if err != nil {
		return err
	}
	printJSON(resp)
	return nil
}
