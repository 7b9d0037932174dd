// Package views builds the list, detail and report screens. Every loader
// fetches fresh data from the backend; nothing is cached between visits.
package views

import (
	"context"
	"errors"
	"io"

	"tusep-web/internal/models"
)

// ErrForbidden is returned when the viewer's role lacks the view's capability.
var ErrForbidden = errors.New("view not available for this role")

// API is the part of the backend client used by the views.
type API interface {
	Devices(ctx context.Context) ([]models.Device, error)
	Device(ctx context.Context, id string) (models.Device, error)
	DeviceFaults(ctx context.Context, id string) ([]models.Fault, error)
	CreateDevice(ctx context.Context, in models.DeviceInput) (models.Device, error)

	Users(ctx context.Context) ([]models.User, error)

	Transfers(ctx context.Context, status models.TransferStatus) ([]models.Transfer, error)
	CreateTransfer(ctx context.Context, in models.TransferInput) (models.Transfer, error)
	ApproveTransfer(ctx context.Context, id string) error
	RejectTransfer(ctx context.Context, id string, in models.RejectInput) error

	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	SystemStats(ctx context.Context) (models.SystemStats, error)
	AllLogs(ctx context.Context) ([]models.ActivityLog, error)

	BreakdownFrequency(ctx context.Context) ([]models.BreakdownFrequencyRow, error)
	InterventionDuration(ctx context.Context) ([]models.InterventionDurationRow, error)
	TechnicianPerformance(ctx context.Context) ([]models.TechnicianPerformanceRow, error)
	ExcelReport(ctx context.Context, report models.ExcelReport, year int) (io.ReadCloser, error)
}
