package views

import (
	"context"
	"fmt"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"

	"golang.org/x/sync/errgroup"
)

type ReliabilityPoint struct {
	Code         string  `json:"code"`
	Availability float64 `json:"availability"`
	MTBF         float64 `json:"mtbf"`
}

type Dashboard struct {
	User             models.User           `json:"user"`
	RoleLabel        string                `json:"role_label"`
	Menu             []gate.MenuItem       `json:"menu"`
	QuickActions     []gate.QuickAction    `json:"quick_actions"`
	Stats            models.DashboardStats `json:"stats"`
	AvgMTBFText      string                `json:"avg_mtbf_text"`
	AvgMTTRText      string                `json:"avg_mttr_text"`
	AvailabilityText string                `json:"availability_text"`
	AvailabilityBand Band                  `json:"availability_band"`
	Reliability      []ReliabilityPoint    `json:"reliability"`
}

// LoadDashboard builds the landing page for user.
func LoadDashboard(ctx context.Context, api API, user models.User) (Dashboard, error) {
	stats, err := api.DashboardStats(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d := Dashboard{
		User:             user,
		RoleLabel:        user.Role.Label(),
		Menu:             gate.MenuFor(user.Role),
		QuickActions:     gate.QuickActionsFor(user.Role),
		Stats:            stats,
		AvgMTBFText:      Fixed(stats.AvgMTBF, 2),
		AvgMTTRText:      Fixed(stats.AvgMTTR, 2),
		AvailabilityText: Percent(stats.AvgAvailability, 2),
		AvailabilityBand: AvailabilityBand(stats.AvgAvailability),
	}
	for i, dev := range stats.MostReliableDevices {
		if i == 5 {
			break
		}
		d.Reliability = append(d.Reliability, ReliabilityPoint{Code: dev.Code, Availability: dev.Availability, MTBF: dev.MTBF})
	}
	return d, nil
}

type BreakdownRow struct {
	models.BreakdownFrequencyRow
	OperatingHoursText string `json:"operating_hours_text"`
	FrequencyText      string `json:"frequency_text"`
}

type InterventionRow struct {
	models.InterventionDurationRow
	AverageText string `json:"average_text"`
	Band        Band   `json:"band"`
}

type TechnicianRow struct {
	models.TechnicianPerformanceRow
	SuccessRateText string `json:"success_rate_text"`
	Band            Band   `json:"band"`
}

// Reports holds the three compliance tables.
type Reports struct {
	BreakdownFrequency    []BreakdownRow       `json:"breakdown_frequency"`
	InterventionDuration  []InterventionRow    `json:"intervention_duration"`
	TechnicianPerformance []TechnicianRow      `json:"technician_performance"`
	ExcelReports          []models.ExcelReport `json:"excel_reports"`
}

// LoadReports fetches the three report tables concurrently.
func LoadReports(ctx context.Context, api API, viewer gate.Viewer) (Reports, error) {
	if !gate.Has(viewer.Role, gate.CapReports) {
		return Reports{}, fmt.Errorf("reports: %w", ErrForbidden)
	}
	var (
		breakdown    []models.BreakdownFrequencyRow
		intervention []models.InterventionDurationRow
		technician   []models.TechnicianPerformanceRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		breakdown, err = api.BreakdownFrequency(gctx)
		return
	})
	g.Go(func() (err error) {
		intervention, err = api.InterventionDuration(gctx)
		return
	})
	g.Go(func() (err error) {
		technician, err = api.TechnicianPerformance(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return Reports{}, err
	}

	out := Reports{
		BreakdownFrequency:    make([]BreakdownRow, 0, len(breakdown)),
		InterventionDuration:  make([]InterventionRow, 0, len(intervention)),
		TechnicianPerformance: make([]TechnicianRow, 0, len(technician)),
		ExcelReports:          models.ExcelReports,
	}
	for _, r := range breakdown {
		out.BreakdownFrequency = append(out.BreakdownFrequency, BreakdownRow{
			BreakdownFrequencyRow: r,
			OperatingHoursText:    Fixed(r.OperatingHours, 1),
			FrequencyText:         Frequency(r.BreakdownFrequency),
		})
	}
	for _, r := range intervention {
		out.InterventionDuration = append(out.InterventionDuration, InterventionRow{
			InterventionDurationRow: r,
			AverageText:             Fixed(r.AverageDurationHours, 2),
			Band:                    InterventionBand(r.AverageDurationHours),
		})
	}
	for _, r := range technician {
		out.TechnicianPerformance = append(out.TechnicianPerformance, TechnicianRow{
			TechnicianPerformanceRow: r,
			SuccessRateText:          Percent(r.SuccessRate, 1),
			Band:                     SuccessRateBand(r.SuccessRate),
		})
	}
	return out, nil
}

type Quality struct {
	Stats models.SystemStats   `json:"stats"`
	Logs  []models.ActivityLog `json:"logs"`
}

// LoadQuality fetches the system-wide statistics and audit log.
func LoadQuality(ctx context.Context, api API, viewer gate.Viewer) (Quality, error) {
	if !gate.Has(viewer.Role, gate.CapQualityDashboard) {
		return Quality{}, fmt.Errorf("quality dashboard: %w", ErrForbidden)
	}
	var q Quality
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		q.Stats, err = api.SystemStats(gctx)
		return
	})
	g.Go(func() (err error) {
		q.Logs, err = api.AllLogs(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return Quality{}, err
	}
	return q, nil
}
