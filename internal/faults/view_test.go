package faults

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tusep-web/internal/client"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/validation"
)

// fakeAPI is an in-memory backend that enforces the same rules the server does.
type fakeAPI struct {
	mu       sync.Mutex
	faults   map[string]models.Fault
	caller   gate.Viewer
	calls    map[string]int
	clock    time.Time
	allCalls int
}

func newFake(caller gate.Viewer, faults ...models.Fault) *fakeAPI {
	f := &fakeAPI{faults: map[string]models.Fault{}, caller: caller, calls: map[string]int{}, clock: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	for _, x := range faults {
		f.faults[x.ID] = x
	}
	return f
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) list() []models.Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Fault, 0, len(f.faults))
	for _, x := range f.faults {
		out = append(out, x)
	}
	return out
}

func (f *fakeAPI) Faults(ctx context.Context, _ models.FaultStatus) ([]models.Fault, error) {
	f.count("faults")
	return f.list(), nil
}

func (f *fakeAPI) AllFaults(ctx context.Context) ([]models.Fault, error) {
	f.count("all")
	return f.list(), nil
}

func (f *fakeAPI) Fault(ctx context.Context, id string) (models.Fault, error) {
	f.count("fault")
	f.mu.Lock()
	defer f.mu.Unlock()
	x, ok := f.faults[id]
	if !ok {
		return models.Fault{}, &client.Error{Kind: client.KindValidation, Status: 404, Detail: "Fault not found"}
	}
	return x, nil
}

func (f *fakeAPI) Technicians(ctx context.Context) ([]models.User, error) {
	f.count("technicians")
	return []models.User{{ID: "t1", Name: "Mehmet", Role: models.RoleTechnician}}, nil
}

func (f *fakeAPI) CreateFault(ctx context.Context, in models.FaultInput) (models.Fault, error) {
	f.count("create")
	x := models.Fault{ID: "new", DeviceID: in.DeviceID, Description: in.Description, Status: models.FaultOpen, CreatedBy: f.caller.ID}
	f.mu.Lock()
	f.faults[x.ID] = x
	f.mu.Unlock()
	return x, nil
}

func forbidden(msg string) error {
	return &client.Error{Kind: client.KindValidation, Status: 403, Detail: msg}
}

func (f *fakeAPI) AssignFault(ctx context.Context, id string, in models.AssignInput) error {
	f.count("assign")
	f.mu.Lock()
	defer f.mu.Unlock()
	x := f.faults[id]
	if f.caller.Role != models.RoleManager {
		return forbidden("Only managers can assign faults")
	}
	x.AssignedTo = in.AssignedTo
	x.Status = models.FaultInProgress
	f.faults[id] = x
	return nil
}

func (f *fakeAPI) StartRepair(ctx context.Context, id string) error {
	f.count("start")
	f.mu.Lock()
	defer f.mu.Unlock()
	x := f.faults[id]
	if x.AssignedTo != f.caller.ID {
		return forbidden("Not assigned to you")
	}
	x.RepairStart = models.Timestamp{Time: f.clock}
	f.faults[id] = x
	return nil
}

func (f *fakeAPI) EndRepair(ctx context.Context, id string, in models.EndRepairInput) error {
	f.count("end")
	f.mu.Lock()
	defer f.mu.Unlock()
	x := f.faults[id]
	x.RepairEnd = models.Timestamp{Time: f.clock.Add(45 * time.Minute)}
	x.RepairNotes = in.RepairNotes
	x.RepairCategory = in.RepairCategory
	f.faults[id] = x
	return nil
}

func (f *fakeAPI) ConfirmFault(ctx context.Context, id string) error {
	f.count("confirm")
	f.mu.Lock()
	defer f.mu.Unlock()
	x := f.faults[id]
	if x.CreatedBy != f.caller.ID {
		return forbidden("Only the reporter can confirm this fault")
	}
	x.Status = models.FaultClosed
	f.faults[id] = x
	return nil
}

var (
	manager = gate.Viewer{ID: "m1", Role: models.RoleManager}
	tech    = gate.Viewer{ID: "t1", Role: models.RoleTechnician}
	nurse   = gate.Viewer{ID: "h1", Role: models.RoleHealthStaff}
	nurse2  = gate.Viewer{ID: "h2", Role: models.RoleHealthStaff}
)

func rowByID(s Snapshot, id string) Row {
	for _, r := range s.Faults {
		if r.ID == id {
			return r
		}
	}
	return Row{}
}

func TestLoadScopesByRole(t *testing.T) {
	ctx := context.Background()
	api := newFake(manager, models.Fault{ID: "f1", Status: models.FaultOpen})
	snap, err := NewView(api, manager).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if api.calls["all"] != 1 || api.calls["faults"] != 0 || api.calls["technicians"] != 1 {
		t.Fatalf("manager calls = %v", api.calls)
	}
	if len(snap.Technicians) != 1 || snap.CanReport {
		t.Fatalf("manager snapshot = %+v", snap)
	}
	if got := rowByID(snap, "f1").Actions; len(got) != 1 || got[0] != gate.ActionAssign {
		t.Fatalf("manager actions on open fault = %v", got)
	}

	api = newFake(tech, models.Fault{ID: "f1", Status: models.FaultOpen})
	snap, _ = NewView(api, tech).Load(ctx)
	if api.calls["faults"] != 1 || api.calls["technicians"] != 0 {
		t.Fatalf("technician calls = %v", api.calls)
	}
	if got := rowByID(snap, "f1").Actions; len(got) != 0 {
		t.Fatalf("technician actions on open fault = %v", got)
	}
}

func TestAssignRequiresTechnician(t *testing.T) {
	api := newFake(manager, models.Fault{ID: "f1", Status: models.FaultOpen})
	v := NewView(api, manager)
	v.Load(context.Background())

	n, err := v.Assign(context.Background(), "f1", "")
	var verr *validation.Error
	if !errors.As(err, &verr) || n.Message != notify.SelectTechnician {
		t.Fatalf("err = %v, notice = %+v", err, n)
	}
	if api.calls["assign"] != 0 {
		t.Fatal("request issued despite validation failure")
	}

	n, err = v.Assign(context.Background(), "f1", "t1")
	if err != nil || n.Message != notify.FaultAssigned {
		t.Fatalf("assign = %+v, %v", n, err)
	}
	if rowByID(v.Snapshot(), "f1").Status != models.FaultInProgress {
		t.Fatal("snapshot not refreshed after assign")
	}
}

func TestStartRepairSwapsActionAndStartsTimer(t *testing.T) {
	ctx := context.Background()
	api := newFake(tech, models.Fault{ID: "f1", Status: models.FaultInProgress, AssignedTo: "t1", CreatedBy: "h1"})
	v := NewView(api, tech)
	v.now = func() time.Time { return api.clock.Add(90 * time.Second) }

	snap, _ := v.Load(ctx)
	if r := rowByID(snap, "f1"); len(r.Actions) != 1 || r.Actions[0] != gate.ActionStartRepair || r.ShowTimer {
		t.Fatalf("before start: %+v", r)
	}

	if _, err := v.StartRepair(ctx, "f1"); err != nil {
		t.Fatal(err)
	}
	r := rowByID(v.Snapshot(), "f1")
	if len(r.Actions) != 1 || r.Actions[0] != gate.ActionEndRepair {
		t.Fatalf("after start actions = %v", r.Actions)
	}
	if !r.ShowTimer || r.Elapsed != "01:30" {
		t.Fatalf("timer = %v %q", r.ShowTimer, r.Elapsed)
	}
}

func TestEndRepairValidatesLocally(t *testing.T) {
	ctx := context.Background()
	f := models.Fault{ID: "f1", Status: models.FaultInProgress, AssignedTo: "t1", RepairStart: models.Timestamp{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}}
	api := newFake(tech, f)
	v := NewView(api, tech)
	v.Load(ctx)

	cases := []struct {
		notes    string
		category models.RepairCategory
		want     string
	}{
		{"kısa not", models.CategoryAdjustment, notify.NotesTooShort},
		{"Fan değiştirildi, test edildi.", "", notify.SelectCategory},
		{"Fan değiştirildi, test edildi.", "bogus", notify.SelectCategory},
	}
	for _, c := range cases {
		n, err := v.EndRepair(ctx, "f1", c.notes, c.category)
		if err == nil || n.Message != c.want {
			t.Fatalf("EndRepair(%q, %q) = %+v, %v", c.notes, c.category, n, err)
		}
	}
	if api.calls["end"] != 0 {
		t.Fatal("end-repair request issued despite invalid input")
	}

	n, err := v.EndRepair(ctx, "f1", "Fan değiştirildi, test edildi.", models.CategoryPartReplacement)
	if err != nil || n.Level != notify.LevelSuccess {
		t.Fatalf("valid end repair = %+v, %v", n, err)
	}
	r := rowByID(v.Snapshot(), "f1")
	if len(r.Actions) != 0 || r.Elapsed != "45:00" {
		t.Fatalf("after end: actions=%v elapsed=%q", r.Actions, r.Elapsed)
	}
}

func TestConfirmByNonCreator(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(-time.Hour)
	f := models.Fault{
		ID: "f1", Status: models.FaultInProgress, CreatedBy: "h1", AssignedTo: "t1",
		RepairStart: models.Timestamp{Time: start}, RepairEnd: models.Timestamp{Time: start.Add(time.Minute)},
	}
	api := newFake(nurse2, f)
	v := NewView(api, nurse2)
	snap, _ := v.Load(ctx)

	if got := rowByID(snap, "f1").Actions; len(got) != 0 {
		t.Fatalf("confirm offered to non-creator: %v", got)
	}

	_, err := v.Confirm(ctx, "f1")
	if !errors.Is(err, ErrActionNotAvailable) || api.calls["confirm"] != 0 {
		t.Fatalf("unforced confirm: err=%v calls=%v", err, api.calls)
	}

	n, err := v.Confirm(ctx, "f1", Force())
	if err == nil || n.Level != notify.LevelError || n.Message != "Only the reporter can confirm this fault" {
		t.Fatalf("forced confirm = %+v, %v", n, err)
	}
	snap, _ = v.Load(ctx)
	if rowByID(snap, "f1").Status != models.FaultInProgress {
		t.Fatal("status changed after rejected confirm")
	}
}

func TestConfirmByCreator(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(-time.Hour)
	f := models.Fault{
		ID: "f1", Status: models.FaultInProgress, CreatedBy: "h1",
		RepairStart: models.Timestamp{Time: start}, RepairEnd: models.Timestamp{Time: start.Add(time.Minute)},
	}
	api := newFake(nurse, f)
	v := NewView(api, nurse)
	// No Load: the view falls back to GET /faults/{id}.
	n, err := v.Confirm(ctx, "f1")
	if err != nil || n.Message != notify.FaultConfirmed {
		t.Fatalf("confirm = %+v, %v", n, err)
	}
	if api.calls["fault"] != 1 {
		t.Fatalf("expected one detail lookup, calls = %v", api.calls)
	}
	if rowByID(v.Snapshot(), "f1").Status != models.FaultClosed {
		t.Fatal("fault not closed")
	}
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	api := newFake(nurse)
	v := NewView(api, nurse)
	if _, n, err := v.Report(ctx, models.FaultInput{DeviceID: "d1"}); err == nil || n.Message != notify.FillAllFields {
		t.Fatalf("missing description accepted: %+v", n)
	}
	f, n, err := v.Report(ctx, models.FaultInput{DeviceID: "d1", Description: "Ekran açılmıyor"})
	if err != nil || f.CreatedBy != "h1" || n.Message != notify.FaultReported {
		t.Fatalf("report = %+v %+v %v", f, n, err)
	}

	if _, _, err := NewView(api, tech).Report(ctx, models.FaultInput{DeviceID: "d1", Description: "x"}); !errors.Is(err, ErrActionNotAvailable) {
		t.Fatalf("technician report err = %v", err)
	}
}
