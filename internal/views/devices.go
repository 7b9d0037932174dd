package views

import (
	"context"
	"fmt"

	"tusep-web/internal/filter"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/validation"

	"golang.org/x/sync/errgroup"
)

type DeviceRow struct {
	models.Device
	MTBFText         string `json:"mtbf_text"`
	MTTRText         string `json:"mttr_text"`
	AvailabilityText string `json:"availability_text"`
	AvailabilityBand Band   `json:"availability_band"`
}

func deviceRow(d models.Device) DeviceRow {
	return DeviceRow{
		Device:           d,
		MTBFText:         Fixed(d.MTBF, 1) + " saat",
		MTTRText:         Fixed(d.MTTR, 1) + " saat",
		AvailabilityText: Percent(d.Availability, 2),
		AvailabilityBand: AvailabilityBand(d.Availability),
	}
}

type DeviceList struct {
	Devices []DeviceRow `json:"devices"`
	Total   int         `json:"total"`
	Query   string      `json:"query"`
	CanAdd  bool        `json:"can_add"`
}

// LoadDevices fetches every device and keeps those matching term.
func LoadDevices(ctx context.Context, api API, viewer gate.Viewer, term string) (DeviceList, error) {
	all, err := api.Devices(ctx)
	if err != nil {
		return DeviceList{}, err
	}
	matched := filter.Devices(all, term)
	out := DeviceList{
		Devices: make([]DeviceRow, 0, len(matched)),
		Total:   len(all),
		Query:   term,
		CanAdd:  gate.CanAddDevice(viewer.Role),
	}
	for _, d := range matched {
		out.Devices = append(out.Devices, deviceRow(d))
	}
	return out, nil
}

var deviceMessages = validation.Messages{
	"TotalOperatingHours": notify.InvalidOperatingHrs,
}

// AddDevice registers a device. A zero operating-hour figure defaults to a
// full year.
func AddDevice(ctx context.Context, api API, viewer gate.Viewer, in models.DeviceInput) (models.Device, notify.Notification, error) {
	if !gate.CanAddDevice(viewer.Role) {
		err := fmt.Errorf("add device: %w", ErrForbidden)
		return models.Device{}, notify.Error(err, notify.ActionNotAllowed), err
	}
	if in.TotalOperatingHours == 0 {
		in.TotalOperatingHours = models.DefaultOperatingHours
	}
	if err := validation.Struct(in, deviceMessages); err != nil {
		return models.Device{}, notify.Error(err, notify.FillAllFields), err
	}
	d, err := api.CreateDevice(ctx, in)
	if err != nil {
		return models.Device{}, notify.Error(err, notify.DeviceAddFailed), err
	}
	return d, notify.Success(notify.DeviceAdded), nil
}

// RepairPoint is one bar of the repair-duration chart.
type RepairPoint struct {
	Label    string  `json:"label"`
	Duration float64 `json:"duration"`
}

type DeviceFaultRow struct {
	models.Fault
	StatusLabel  string `json:"status_label"`
	DurationText string `json:"duration_text"`
}

type DeviceDetail struct {
	Device       DeviceRow        `json:"device"`
	Faults       []DeviceFaultRow `json:"faults"`
	RepairSeries []RepairPoint    `json:"repair_series"`
}

// LoadDeviceDetail fetches the device and its faults concurrently.
func LoadDeviceDetail(ctx context.Context, api API, id string) (DeviceDetail, error) {
	var (
		device models.Device
		faults []models.Fault
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		device, err = api.Device(gctx, id)
		return
	})
	g.Go(func() (err error) {
		faults, err = api.DeviceFaults(gctx, id)
		return
	})
	if err := g.Wait(); err != nil {
		return DeviceDetail{}, err
	}

	out := DeviceDetail{
		Device:       deviceRow(device),
		Faults:       make([]DeviceFaultRow, 0, len(faults)),
		RepairSeries: RepairSeries(faults),
	}
	for _, f := range faults {
		row := DeviceFaultRow{Fault: f, StatusLabel: f.Status.Label(), DurationText: "-"}
		if f.RepairDuration != nil && *f.RepairDuration > 0 {
			row.DurationText = Fixed(*f.RepairDuration, 1) + " saat"
		}
		out.Faults = append(out.Faults, row)
	}
	return out, nil
}

// RepairSeries takes the ten most recent faults (the backend lists newest
// first) and returns them oldest first.
func RepairSeries(faults []models.Fault) []RepairPoint {
	n := len(faults)
	if n > 10 {
		n = 10
	}
	out := make([]RepairPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		f := faults[i]
		p := RepairPoint{Label: fmt.Sprintf("#%d", f.BreakdownIteration)}
		if f.RepairDuration != nil {
			p.Duration = *f.RepairDuration
		}
		out = append(out, p)
	}
	return out
}
