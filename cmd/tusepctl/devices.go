package main

import (
	"context"
	"fmt"
	"strconv"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/urfave/cli/v2"
)

func devicesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "devices",
		Usage:  "list, inspect and register devices",
		Before: e.requireCapability(gate.CapDevices),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list devices, optionally filtered by code, type or location",
				Flags: []cli.Flag{&cli.StringFlag{Name: "q", Usage: "search term"}},
				Action: func(c *cli.Context) error {
					return showDevices(c.Context, e, c.String("q"))
				},
			},
			{
				Name:      "show",
				Usage:     "show one device and its fault history",
				ArgsUsage: "DEVICE_ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					d, err := views.LoadDeviceDetail(c.Context, e.session.API(), id)
					if err != nil {
						return fail(notify.Error(err, notify.DeviceLoadFailed), err)
					}
					if err := e.out.fields(d,
						[2]string{"Kod", d.Device.Code},
						[2]string{"Tür", d.Device.Type},
						[2]string{"Konum", d.Device.Location},
						[2]string{"Toplam arıza", strconv.Itoa(d.Device.TotalFailures)},
						[2]string{"MTBF", d.Device.MTBFText},
						[2]string{"MTTR", d.Device.MTTRText},
						[2]string{"Erişilebilirlik", fmt.Sprintf("%s (%s)", d.Device.AvailabilityText, d.Device.AvailabilityBand)},
					); err != nil || e.out.json {
						return err
					}
					rows := make([][]string, 0, len(d.Faults))
					for _, f := range d.Faults {
						rows = append(rows, []string{f.ID, f.CreatedAt.Format("2006-01-02 15:04"), f.StatusLabel, f.Description, f.DurationText})
					}
					fmt.Fprintln(e.out.w)
					return e.out.table(nil, []string{"ARIZA", "TARİH", "DURUM", "AÇIKLAMA", "SÜRE"}, rows)
				},
			},
			{
				Name:  "add",
				Usage: "register a new device",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "location", Required: true},
					&cli.Float64Flag{Name: "hours", Usage: "yearly operating hours", Value: models.DefaultOperatingHours},
				},
				Action: func(c *cli.Context) error {
					in := models.DeviceInput{
						Code:                c.String("code"),
						Type:                c.String("type"),
						Location:            c.String("location"),
						TotalOperatingHours: c.Float64("hours"),
					}
					_, n, err := views.AddDevice(c.Context, e.session.API(), e.viewer(), in)
					if err != nil {
						return fail(n, err)
					}
					e.out.notice(n)
					return showDevices(c.Context, e, "")
				},
			},
		},
	}
}

// showDevices reloads the device list and prints it.
func showDevices(ctx context.Context, e *env, term string) error {
	list, err := views.LoadDevices(ctx, e.session.API(), e.viewer(), term)
	if err != nil {
		return fail(notify.Error(err, notify.DevicesLoadFailed), err)
	}
	rows := make([][]string, 0, len(list.Devices))
	for _, d := range list.Devices {
		rows = append(rows, []string{d.ID, d.Code, d.Type, d.Location, strconv.Itoa(d.TotalFailures), d.MTBFText, d.MTTRText, d.AvailabilityText})
	}
	if err := e.out.table(list, []string{"ID", "KOD", "TÜR", "KONUM", "ARIZA", "MTBF", "MTTR", "ERİŞİLEBİLİRLİK"}, rows); err != nil || e.out.json {
		return err
	}
	fmt.Fprintf(e.out.w, "%d / %d cihaz\n", len(list.Devices), list.Total)
	return nil
}

func argID(c *cli.Context) (string, error) {
	if c.NArg() != 1 || c.Args().First() == "" {
		return "", fmt.Errorf("%s: exactly one id is required", c.Command.Name)
	}
	return c.Args().First(), nil
}
