package main

import (
	"fmt"
	"strconv"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/validation"
	"tusep-web/internal/views"

	"github.com/urfave/cli/v2"
)

func loginCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and keep the credential for later commands",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", EnvVars: []string{"TUSEP_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			creds := models.Credentials{Email: c.String("email"), Password: c.String("password")}
			if err := validation.Struct(creds, nil); err != nil {
				return fail(notify.Error(err, notify.FillAllFields), err)
			}
			u, err := e.session.Login(c.Context, creds)
			if err != nil {
				return fail(notify.Error(err, notify.LoginFailed), err)
			}
			e.out.notice(notify.Success(notify.LoginSucceeded))
			return printUser(e, u)
		},
	}
}

func registerCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", EnvVars: []string{"TUSEP_PASSWORD"}, Required: true},
			&cli.StringFlag{Name: "role", Value: string(models.RoleHealthStaff), Usage: "health_staff, technician, manager or quality"},
		},
		Action: func(c *cli.Context) error {
			role, ok := models.ParseRole(c.String("role"))
			if !ok {
				return fmt.Errorf("unknown role %q", c.String("role"))
			}
			reg := models.Registration{Name: c.String("name"), Email: c.String("email"), Password: c.String("password"), Role: role}
			if err := validation.Struct(reg, nil); err != nil {
				return fail(notify.Error(err, notify.FillAllFields), err)
			}
			u, err := e.session.Register(c.Context, reg)
			if err != nil {
				return fail(notify.Error(err, notify.RegisterFailed), err)
			}
			e.out.notice(notify.Success(notify.RegisterSucceeded))
			return printUser(e, u)
		},
	}
}

func logoutCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored credential",
		Action: func(c *cli.Context) error {
			return e.session.Logout(c.Context)
		},
	}
}

func whoamiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "show the signed-in user",
		Before: e.requireLogin,
		Action: func(c *cli.Context) error {
			u, _ := e.session.Current()
			return printUser(e, u)
		},
	}
}

func printUser(e *env, u models.User) error {
	return e.out.fields(u,
		[2]string{"Ad", u.Name},
		[2]string{"E-posta", u.Email},
		[2]string{"Rol", u.Role.Label()},
	)
}

func menuCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "menu",
		Usage:  "list the views available to the signed-in role",
		Before: e.requireLogin,
		Action: func(c *cli.Context) error {
			items := gate.MenuFor(e.viewer().Role)
			rows := make([][]string, 0, len(items))
			for _, m := range items {
				rows = append(rows, []string{m.Label, m.Path})
			}
			return e.out.table(items, []string{"GÖRÜNÜM", "YOL"}, rows)
		},
	}
}

func dashboardCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  "show the summary statistics",
		Before: e.requireLogin,
		Action: func(c *cli.Context) error {
			u, _ := e.session.Current()
			d, err := views.LoadDashboard(c.Context, e.session.API(), u)
			if err != nil {
				return fail(notify.Error(err, notify.StatsLoadFailed), err)
			}
			if err := e.out.fields(d,
				[2]string{"Hoş geldiniz", fmt.Sprintf("%s (%s)", u.Name, d.RoleLabel)},
				[2]string{"Toplam cihaz", strconv.Itoa(d.Stats.TotalDevices)},
				[2]string{"Açık arıza", strconv.Itoa(d.Stats.OpenFaults)},
				[2]string{"Devam eden", strconv.Itoa(d.Stats.InProgressFaults)},
				[2]string{"Kapalı", strconv.Itoa(d.Stats.ClosedFaults)},
				[2]string{"Ortalama MTBF", d.AvgMTBFText + " saat"},
				[2]string{"Ortalama MTTR", d.AvgMTTRText + " saat"},
				[2]string{"Erişilebilirlik", fmt.Sprintf("%s (%s)", d.AvailabilityText, d.AvailabilityBand)},
			); err != nil || e.out.json {
				return err
			}
			rows := make([][]string, 0, len(d.Reliability))
			for _, p := range d.Reliability {
				rows = append(rows, []string{p.Code, views.Percent(p.Availability, 2), views.Fixed(p.MTBF, 1)})
			}
			fmt.Fprintln(e.out.w)
			return e.out.table(nil, []string{"EN GÜVENİLİR", "ERİŞİLEBİLİRLİK", "MTBF"}, rows)
		},
	}
}
