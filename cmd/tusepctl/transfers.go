package main

import (
	"context"
	"fmt"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/urfave/cli/v2"
)

func transfersCommand(e *env) *cli.Command {
	review := func(approve bool) cli.ActionFunc {
		return func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			api := e.session.API()
			t, found, err := views.FindTransfer(c.Context, api, id)
			if err != nil {
				return fail(notify.Error(err, notify.TransfersLoadFailed), err)
			}
			if !found {
				return fmt.Errorf("transfer %s not found", id)
			}
			n, err := views.ReviewTransfer(c.Context, api, e.viewer(), t, approve, c.String("reason"))
			if err != nil {
				return fail(n, err)
			}
			e.out.notice(n)
			return showTransfers(c.Context, e, "")
		}
	}

	return &cli.Command{
		Name:   "transfers",
		Usage:  "request and review device transfers",
		Before: e.requireCapability(gate.CapTransfers),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list transfers",
				Flags: []cli.Flag{&cli.StringFlag{Name: "status", Usage: "pending, approved, rejected or completed"}},
				Action: func(c *cli.Context) error {
					return showTransfers(c.Context, e, models.TransferStatus(c.String("status")))
				},
			},
			{
				Name:  "create",
				Usage: "request moving a device to another location",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "device", Required: true},
					&cli.StringFlag{Name: "to", Required: true, Usage: "target location"},
					&cli.StringFlag{Name: "reason", Required: true},
				},
				Action: func(c *cli.Context) error {
					in := models.TransferInput{DeviceID: c.String("device"), ToLocation: c.String("to"), Reason: c.String("reason")}
					_, n, err := views.RequestTransfer(c.Context, e.session.API(), e.viewer(), in)
					if err != nil {
						return fail(n, err)
					}
					e.out.notice(n)
					return showTransfers(c.Context, e, "")
				},
			},
			{
				Name:      "approve",
				Usage:     "approve a pending transfer",
				ArgsUsage: "TRANSFER_ID",
				Action:    review(true),
			},
			{
				Name:      "reject",
				Usage:     "reject a pending transfer",
				ArgsUsage: "TRANSFER_ID",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "reason", Usage: "required"}},
				Action:    review(false),
			},
		},
	}
}

// showTransfers reloads the transfer list and prints it.
func showTransfers(ctx context.Context, e *env, status models.TransferStatus) error {
	list, err := views.LoadTransfers(ctx, e.session.API(), e.viewer(), status)
	if err != nil {
		return fail(notify.Error(err, notify.TransfersLoadFailed), err)
	}
	rows := make([][]string, 0, len(list.Transfers))
	for _, t := range list.Transfers {
		actions := "-"
		if len(t.Actions) > 0 {
			actions = fmt.Sprint(t.Actions)
		}
		rows = append(rows, []string{t.ID, t.DeviceCode, t.FromLocation, t.ToLocation, t.StatusLabel, t.RequestedByName, actions})
	}
	return e.out.table(list, []string{"ID", "CİHAZ", "NEREDEN", "NEREYE", "DURUM", "TALEP EDEN", "İŞLEMLER"}, rows)
}
