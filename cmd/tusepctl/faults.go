package main

import (
	"context"
	"fmt"
	"time"

	"tusep-web/internal/client"
	"tusep-web/internal/faults"
	"tusep-web/internal/filter"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/timer"

	"github.com/urfave/cli/v2"
)

var forceFlag = &cli.BoolFlag{
	Name:  "force",
	Usage: "send the request even if the action is not offered to you; the backend decides",
}

func callOptions(c *cli.Context) []faults.CallOption {
	if c.Bool("force") {
		return []faults.CallOption{faults.Force()}
	}
	return nil
}

func faultsCommand(e *env) *cli.Command {
	view := func() *faults.View { return faults.NewView(e.session.API(), e.viewer()) }

	// lifecycle wraps one state transition: run it, print the toast and the
	// refreshed list.
	lifecycle := func(name, usage string, flags []cli.Flag, run func(c *cli.Context, v *faults.View, id string) (notify.Notification, error)) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "FAULT_ID",
			Flags:     append(flags, forceFlag),
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				v := view()
				n, err := run(c, v, id)
				if err != nil {
					return fail(n, err)
				}
				e.out.notice(n)
				return printFaults(e, v.Snapshot().Faults)
			},
		}
	}

	return &cli.Command{
		Name:   "faults",
		Usage:  "list faults and drive the repair lifecycle",
		Before: e.requireCapability(gate.CapFaults),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the faults visible to you",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "open, in_progress or closed"},
					&cli.StringFlag{Name: "q", Usage: "search device code or description"},
				},
				Action: func(c *cli.Context) error {
					snap, err := view().Load(c.Context)
					if err != nil {
						return fail(notify.Error(err, notify.FaultsLoadFailed), err)
					}
					keep := map[string]bool{}
					list := make([]models.Fault, 0, len(snap.Faults))
					for _, r := range snap.Faults {
						list = append(list, r.Fault)
					}
					for _, f := range filter.Faults(list, models.FaultStatus(c.String("status")), c.String("q")) {
						keep[f.ID] = true
					}
					rows := make([]faults.Row, 0, len(keep))
					for _, r := range snap.Faults {
						if keep[r.ID] {
							rows = append(rows, r)
						}
					}
					if err := printFaults(e, rows); err != nil || e.out.json {
						return err
					}
					if len(snap.Technicians) > 0 {
						fmt.Fprintln(e.out.w)
						techs := make([][]string, 0, len(snap.Technicians))
						for _, t := range snap.Technicians {
							techs = append(techs, []string{t.ID, t.Name, t.Email})
						}
						return e.out.table(nil, []string{"TEKNİSYEN", "AD", "E-POSTA"}, techs)
					}
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "report a fault on a device",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "device", Required: true, Usage: "device id"},
					&cli.StringFlag{Name: "description", Required: true},
				},
				Action: func(c *cli.Context) error {
					f, n, err := view().Report(c.Context, models.FaultInput{DeviceID: c.String("device"), Description: c.String("description")})
					if err != nil {
						return fail(n, err)
					}
					e.out.notice(n)
					return e.out.fields(f, [2]string{"Arıza", f.ID}, [2]string{"Durum", f.Status.Label()})
				},
			},
			lifecycle("assign", "assign an open fault to a technician",
				[]cli.Flag{&cli.StringFlag{Name: "to", Usage: "technician id"}},
				func(c *cli.Context, v *faults.View, id string) (notify.Notification, error) {
					return v.Assign(c.Context, id, c.String("to"), callOptions(c)...)
				}),
			lifecycle("start", "start the repair of an assigned fault", nil,
				func(c *cli.Context, v *faults.View, id string) (notify.Notification, error) {
					return v.StartRepair(c.Context, id, callOptions(c)...)
				}),
			lifecycle("end", "finish a repair with notes and a category",
				[]cli.Flag{
					&cli.StringFlag{Name: "notes", Usage: "at least 20 characters"},
					&cli.StringFlag{Name: "category", Usage: "part_replacement, adjustment, complete_repair or other"},
				},
				func(c *cli.Context, v *faults.View, id string) (notify.Notification, error) {
					return v.EndRepair(c.Context, id, c.String("notes"), models.RepairCategory(c.String("category")), callOptions(c)...)
				}),
			lifecycle("confirm", "confirm a repair you reported", nil,
				func(c *cli.Context, v *faults.View, id string) (notify.Notification, error) {
					return v.Confirm(c.Context, id, callOptions(c)...)
				}),
			{
				Name:      "timer",
				Usage:     "show the live repair timer until the repair ends or Ctrl-C",
				ArgsUsage: "FAULT_ID",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "poll", Value: 10 * time.Second, Usage: "how often to check whether the repair ended"},
				},
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					return runTimer(c.Context, e, id, c.Duration("poll"))
				},
			},
		},
	}
}

// runTimer redraws MM:SS in place every second and polls the backend so the
// display freezes once the repair is ended elsewhere.
func runTimer(ctx context.Context, e *env, id string, poll time.Duration) error {
	api := e.session.API()
	f, err := api.Fault(ctx, id)
	if err != nil {
		return fail(notify.Error(err, notify.FaultsLoadFailed), err)
	}
	if !gate.ShowsTimer(f) {
		return fmt.Errorf("fault %s: repair has not started", id)
	}

	d := timer.NewDisplay(f.RepairStart.Time, f.RepairEnd.Time, func(elapsed string) {
		fmt.Fprintf(e.out.w, "\r%s  %s", f.DeviceCode, elapsed)
	})
	d.Start(ctx)
	defer fmt.Fprintln(e.out.w)
	done := d.Done()
	if done == nil {
		return nil
	}
	defer d.Stop()

	tick := time.NewTicker(poll)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-tick.C:
			cur, err := api.Fault(ctx, id)
			if client.IsUnauthorized(err) {
				return fail(notify.Error(err, notify.SessionExpired), err)
			}
			if err != nil {
				continue
			}
			if cur.Ended() {
				d.SetEnd(cur.RepairEnd.Time)
			}
		}
	}
}

func printFaults(e *env, rows []faults.Row) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		elapsed := "-"
		if r.ShowTimer {
			elapsed = r.Elapsed
		}
		actions := "-"
		if len(r.Actions) > 0 {
			actions = fmt.Sprint(r.Actions)
		}
		out = append(out, []string{r.ID, r.DeviceCode, r.StatusLabel, orDash(r.AssignedToName), elapsed, actions, r.Description})
	}
	return e.out.table(rows, []string{"ID", "CİHAZ", "DURUM", "TEKNİSYEN", "SÜRE", "İŞLEMLER", "AÇIKLAMA"}, out)
}
