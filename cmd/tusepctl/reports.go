package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"tusep-web/config"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/reports"
	"tusep-web/internal/s3"
	"tusep-web/internal/views"

	"github.com/urfave/cli/v2"
)

func reportsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "reports",
		Usage: "compliance reports and Excel workbooks",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print the three report tables",
				Before: e.requireCapability(gate.CapReports),
				Action: func(c *cli.Context) error {
					r, err := views.LoadReports(c.Context, e.session.API(), e.viewer())
					if err != nil {
						return fail(notify.Error(err, notify.ReportsLoadFailed), err)
					}
					if e.out.json {
						return e.out.raw(r)
					}
					return printReports(e, r)
				},
			},
			{
				Name:      "download",
				Usage:     "save a workbook as {type}_{year}.xlsx",
				ArgsUsage: "device-failure-frequency|intervention-duration|facility-issues",
				Before:    e.requireCapability(gate.CapReports),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "year", Usage: "defaults to the current year"},
					&cli.StringFlag{Name: "dir", Value: ".", Usage: "output directory"},
					&cli.BoolFlag{Name: "archive", Usage: "also upload the workbook to the configured S3 bucket"},
				},
				Action: func(c *cli.Context) error {
					report, ok := models.ParseExcelReport(c.Args().First())
					if !ok {
						return fmt.Errorf("%s: %q", notify.InvalidReportType, c.Args().First())
					}
					year, err := reports.ParseYear(c.String("year"), time.Now())
					if err != nil {
						return err
					}
					var archive reports.Archiver
					if c.Bool("archive") {
						if archive, err = newArchive(c, e.cfg.S3); err != nil {
							return err
						}
					}
					wb, path, err := reports.NewDownloader(e.session.API(), archive, e.cfg.S3.Prefix).Save(c.Context, c.String("dir"), report, year)
					if err != nil {
						return fail(notify.Error(err, notify.ReportDownloadFailed), err)
					}
					e.out.notice(notify.Success(notify.ReportDownloaded))
					pairs := [][2]string{{"Dosya", path}, {"Boyut", strconv.Itoa(len(wb.Data)) + " bayt"}}
					if wb.ArchiveURL != "" {
						pairs = append(pairs, [2]string{"Arşiv", wb.ArchiveURL})
					}
					return e.out.fields(map[string]string{"file": path, "archive_url": wb.ArchiveURL}, pairs...)
				},
			},
			{
				Name:      "preview",
				Usage:     "print the first rows of a downloaded workbook",
				ArgsUsage: "FILE.xlsx",
				Flags:     []cli.Flag{&cli.IntFlag{Name: "rows", Value: 10}},
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					sheets, err := reports.Preview(data, c.Int("rows"))
					if err != nil {
						return err
					}
					if e.out.json {
						return e.out.raw(sheets)
					}
					for _, s := range sheets {
						fmt.Fprintf(e.out.w, "== %s (%d satır)\n", s.Name, s.TotalRows)
						if len(s.Rows) == 0 {
							continue
						}
						if err := e.out.table(nil, s.Rows[0], s.Rows[1:]); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}

func newArchive(c *cli.Context, cfg config.S3Config) (reports.Archiver, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("archive requested but S3_BUCKET is not set")
	}
	u, err := s3.NewUploader(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("create S3 uploader: %w", err)
	}
	return u, nil
}

func printReports(e *env, r views.Reports) error {
	fmt.Fprintln(e.out.w, "== Arıza sıklığı")
	rows := make([][]string, 0, len(r.BreakdownFrequency))
	for _, b := range r.BreakdownFrequency {
		rows = append(rows, []string{b.DeviceCode, b.DeviceType, b.Location, strconv.Itoa(b.TotalFailures), b.OperatingHoursText, b.FrequencyText})
	}
	if err := e.out.table(nil, []string{"CİHAZ", "TÜR", "KONUM", "ARIZA", "ÇALIŞMA SAATİ", "SIKLIK"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(e.out.w, "\n== Müdahale süresi")
	rows = rows[:0]
	for _, i := range r.InterventionDuration {
		rows = append(rows, []string{i.DeviceCode, i.DeviceType, strconv.Itoa(i.TotalInterventions), i.AverageText + " saat", string(i.Band)})
	}
	if err := e.out.table(nil, []string{"CİHAZ", "TÜR", "MÜDAHALE", "ORTALAMA", "DURUM"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(e.out.w, "\n== Teknisyen performansı")
	rows = rows[:0]
	for _, t := range r.TechnicianPerformance {
		rows = append(rows, []string{t.Name, strconv.Itoa(t.TotalAssigned), strconv.Itoa(t.Completed), t.SuccessRateText, string(t.Band)})
	}
	return e.out.table(nil, []string{"TEKNİSYEN", "ATANAN", "TAMAMLANAN", "BAŞARI", "DURUM"}, rows)
}

func usersCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "users",
		Usage:  "list users",
		Before: e.requireCapability(gate.CapUsers),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{&cli.StringFlag{Name: "q", Usage: "search name, email or role"}},
				Action: func(c *cli.Context) error {
					list, err := views.LoadUsers(c.Context, e.session.API(), e.viewer(), c.String("q"))
					if err != nil {
						return fail(notify.Error(err, notify.UsersLoadFailed), err)
					}
					rows := make([][]string, 0, len(list.Users))
					for _, u := range list.Users {
						rows = append(rows, []string{u.Name, u.Email, u.RoleLabel, orDash(u.SuccessRateText)})
					}
					return e.out.table(list, []string{"AD", "E-POSTA", "ROL", "BAŞARI"}, rows)
				},
			},
		},
	}
}

func qualityCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "quality",
		Usage:  "system statistics and the audit log",
		Before: e.requireCapability(gate.CapQualityDashboard),
		Action: func(c *cli.Context) error {
			q, err := views.LoadQuality(c.Context, e.session.API(), e.viewer())
			if err != nil {
				return fail(notify.Error(err, notify.StatsLoadFailed), err)
			}
			if e.out.json {
				return e.out.raw(q)
			}
			e.out.fields(nil,
				[2]string{"Kullanıcı", strconv.Itoa(q.Stats.TotalUsers)},
				[2]string{"Cihaz", strconv.Itoa(q.Stats.TotalDevices)},
				[2]string{"Arıza", strconv.Itoa(q.Stats.TotalFaults)},
				[2]string{"Transfer", fmt.Sprintf("%d (%d bekleyen)", q.Stats.TotalTransfers, q.Stats.PendingTransfers)},
			)
			fmt.Fprintln(e.out.w)
			rows := make([][]string, 0, len(q.Logs))
			for _, l := range q.Logs {
				rows = append(rows, []string{l.Timestamp.Format("2006-01-02 15:04"), l.UserName, l.Event, l.RecordID})
			}
			return e.out.table(nil, []string{"ZAMAN", "KULLANICI", "OLAY", "KAYIT"}, rows)
		},
	}
}
