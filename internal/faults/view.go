// Package faults drives the fault list and its repair lifecycle:
// open -> in_progress (assign) -> repair started -> repair ended -> closed.
package faults

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/timer"
	"tusep-web/internal/validation"

	"golang.org/x/sync/errgroup"
)

// ErrActionNotAvailable means the action is not offered to this viewer for
// the fault's current state. No request was issued.
var ErrActionNotAvailable = errors.New("action not available")

// API is the subset of the backend client the view needs.
type API interface {
	Faults(ctx context.Context, status models.FaultStatus) ([]models.Fault, error)
	AllFaults(ctx context.Context) ([]models.Fault, error)
	Fault(ctx context.Context, id string) (models.Fault, error)
	Technicians(ctx context.Context) ([]models.User, error)
	CreateFault(ctx context.Context, in models.FaultInput) (models.Fault, error)
	AssignFault(ctx context.Context, id string, in models.AssignInput) error
	StartRepair(ctx context.Context, id string) error
	EndRepair(ctx context.Context, id string, in models.EndRepairInput) error
	ConfirmFault(ctx context.Context, id string) error
}

// Row is one rendered fault with the actions offered to the viewer.
type Row struct {
	models.Fault
	StatusLabel   string        `json:"status_label"`
	CategoryLabel string        `json:"category_label,omitempty"`
	Actions       []gate.Action `json:"actions"`
	ShowTimer     bool          `json:"show_timer"`
	Elapsed       string        `json:"elapsed"`
	Duration      string        `json:"duration,omitempty"`
}

// Snapshot is what one fetch of the fault view produced.
type Snapshot struct {
	Faults      []Row         `json:"faults"`
	Technicians []models.User `json:"technicians,omitempty"`
	CanReport   bool          `json:"can_report"`
}

type View struct {
	api    API
	viewer gate.Viewer
	now    func() time.Time

	mu     sync.Mutex
	faults map[string]models.Fault
	snap   Snapshot
}

func NewView(api API, viewer gate.Viewer) *View {
	return &View{api: api, viewer: viewer, now: time.Now}
}

// Load fetches the viewer's fault list and, for managers, the technicians
// that can be assigned. Both requests run concurrently.
func (v *View) Load(ctx context.Context) (Snapshot, error) {
	var (
		list  []models.Fault
		techs []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if gate.SeesAllFaults(v.viewer.Role) {
			list, err = v.api.AllFaults(gctx)
		} else {
			list, err = v.api.Faults(gctx, "")
		}
		return err
	})
	if gate.NeedsTechnicians(v.viewer.Role) {
		g.Go(func() error {
			var err error
			techs, err = v.api.Technicians(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	now := v.now()
	snap := Snapshot{
		Faults:      make([]Row, 0, len(list)),
		Technicians: techs,
		CanReport:   gate.CanReportFault(v.viewer.Role),
	}
	byID := make(map[string]models.Fault, len(list))
	for _, f := range list {
		byID[f.ID] = f
		snap.Faults = append(snap.Faults, v.row(f, now))
	}

	v.mu.Lock()
	v.faults = byID
	v.snap = snap
	v.mu.Unlock()
	return snap, nil
}

// Snapshot returns the last loaded state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

func (v *View) row(f models.Fault, now time.Time) Row {
	r := Row{
		Fault:       f,
		StatusLabel: f.Status.Label(),
		Actions:     gate.FaultActions(v.viewer, f),
		ShowTimer:   gate.ShowsTimer(f),
		Elapsed:     timer.Format(timer.Elapsed(f.RepairStart.Time, f.RepairEnd.Time, now)),
	}
	if f.RepairCategory != "" {
		r.CategoryLabel = f.RepairCategory.Label()
	}
	if f.RepairDuration != nil {
		r.Duration = timer.FormatHours(*f.RepairDuration)
	}
	if r.Actions == nil {
		r.Actions = []gate.Action{}
	}
	return r
}

// lookup finds id in the last snapshot, falling back to GET /faults/{id}.
func (v *View) lookup(ctx context.Context, id string) (models.Fault, error) {
	v.mu.Lock()
	f, ok := v.faults[id]
	v.mu.Unlock()
	if ok {
		return f, nil
	}
	return v.api.Fault(ctx, id)
}

type callOptions struct {
	force bool
}

type CallOption func(*callOptions)

// Force skips the local visibility check and leaves the decision to the
// backend. Local form validation still applies.
func Force() CallOption {
	return func(o *callOptions) { o.force = true }
}

// transition runs one lifecycle call: check the predicate, issue call, and
// re-fetch the list on success.
func (v *View) transition(ctx context.Context, id string, action gate.Action, call func() error, ok, failed string, opts []CallOption) (notify.Notification, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.force {
		f, err := v.lookup(ctx, id)
		if err != nil {
			return notify.Error(err, failed), err
		}
		if !gate.Allowed(action, v.viewer, f) {
			err := fmt.Errorf("%s on fault %s: %w", action, id, ErrActionNotAvailable)
			return notify.Error(err, notify.ActionNotAllowed), err
		}
	}
	if err := call(); err != nil {
		return notify.Error(err, failed), err
	}
	if _, err := v.Load(ctx); err != nil {
		return notify.Error(err, notify.FaultsLoadFailed), err
	}
	return notify.Success(ok), nil
}

var assignMessages = validation.Messages{"AssignedTo": notify.SelectTechnician}

var endRepairMessages = validation.Messages{
	"RepairNotes":    notify.NotesTooShort,
	"RepairCategory": notify.SelectCategory,
}

// Assign hands an open fault to a technician.
func (v *View) Assign(ctx context.Context, id, technicianID string, opts ...CallOption) (notify.Notification, error) {
	in := models.AssignInput{AssignedTo: technicianID}
	if err := validation.Struct(in, assignMessages); err != nil {
		return notify.Error(err, notify.FillAllFields), err
	}
	return v.transition(ctx, id, gate.ActionAssign, func() error {
		return v.api.AssignFault(ctx, id, in)
	}, notify.FaultAssigned, notify.AssignFailed, opts)
}

func (v *View) StartRepair(ctx context.Context, id string, opts ...CallOption) (notify.Notification, error) {
	return v.transition(ctx, id, gate.ActionStartRepair, func() error {
		return v.api.StartRepair(ctx, id)
	}, notify.RepairStarted, notify.StartFailed, opts)
}

// EndRepair closes the repair window. Notes shorter than 20 characters or a
// missing category are rejected before any request is made.
func (v *View) EndRepair(ctx context.Context, id, notes string, category models.RepairCategory, opts ...CallOption) (notify.Notification, error) {
	in := models.EndRepairInput{RepairNotes: notes, RepairCategory: category}
	if err := validation.Struct(in, endRepairMessages); err != nil {
		return notify.Error(err, notify.FillAllFields), err
	}
	return v.transition(ctx, id, gate.ActionEndRepair, func() error {
		return v.api.EndRepair(ctx, id, in)
	}, notify.RepairEnded, notify.EndFailed, opts)
}

// Confirm lets the reporter close a repaired fault.
func (v *View) Confirm(ctx context.Context, id string, opts ...CallOption) (notify.Notification, error) {
	return v.transition(ctx, id, gate.ActionConfirm, func() error {
		return v.api.ConfirmFault(ctx, id)
	}, notify.FaultConfirmed, notify.ConfirmFailed, opts)
}

// Report files a new fault for a device. Only health staff are offered this.
func (v *View) Report(ctx context.Context, in models.FaultInput) (models.Fault, notify.Notification, error) {
	if !gate.CanReportFault(v.viewer.Role) {
		err := fmt.Errorf("report fault: %w", ErrActionNotAvailable)
		return models.Fault{}, notify.Error(err, notify.ActionNotAllowed), err
	}
	if err := validation.Struct(in, nil); err != nil {
		return models.Fault{}, notify.Error(err, notify.FillAllFields), err
	}
	f, err := v.api.CreateFault(ctx, in)
	if err != nil {
		return models.Fault{}, notify.Error(err, notify.FaultReportFail), err
	}
	return f, notify.Success(notify.FaultReported), nil
}
