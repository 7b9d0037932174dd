package views

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"tusep-web/internal/client"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
)

type fakeAPI struct {
	mu        sync.Mutex
	calls     map[string]int
	devices   []models.Device
	faults    []models.Fault
	users     []models.User
	transfers []models.Transfer
	created   models.DeviceInput
	rejected  models.RejectInput
	failWith  error
}

func newFake() *fakeAPI { return &fakeAPI{calls: map[string]int{}} }

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.failWith
}

func (f *fakeAPI) Devices(context.Context) ([]models.Device, error) {
	return f.devices, f.hit("devices")
}
func (f *fakeAPI) Device(_ context.Context, id string) (models.Device, error) {
	return models.Device{ID: id, Code: "VNT-07", Availability: 90}, f.hit("device")
}
func (f *fakeAPI) DeviceFaults(context.Context, string) ([]models.Fault, error) {
	return f.faults, f.hit("device_faults")
}
func (f *fakeAPI) CreateDevice(_ context.Context, in models.DeviceInput) (models.Device, error) {
	f.created = in
	return models.Device{ID: "new", Code: in.Code}, f.hit("create_device")
}
func (f *fakeAPI) Users(context.Context) ([]models.User, error) { return f.users, f.hit("users") }
func (f *fakeAPI) Transfers(context.Context, models.TransferStatus) ([]models.Transfer, error) {
	return f.transfers, f.hit("transfers")
}
func (f *fakeAPI) CreateTransfer(_ context.Context, in models.TransferInput) (models.Transfer, error) {
	return models.Transfer{ID: "tr", Status: models.TransferPending}, f.hit("create_transfer")
}
func (f *fakeAPI) ApproveTransfer(context.Context, string) error { return f.hit("approve") }
func (f *fakeAPI) RejectTransfer(_ context.Context, _ string, in models.RejectInput) error {
	f.rejected = in
	return f.hit("reject")
}
func (f *fakeAPI) DashboardStats(context.Context) (models.DashboardStats, error) {
	return models.DashboardStats{AvgAvailability: 96.456, MostReliableDevices: make([]models.Device, 7)}, f.hit("stats")
}
func (f *fakeAPI) SystemStats(context.Context) (models.SystemStats, error) {
	return models.SystemStats{TotalUsers: 4}, f.hit("system")
}
func (f *fakeAPI) AllLogs(context.Context) ([]models.ActivityLog, error) {
	return []models.ActivityLog{{Event: "Arıza kaydı oluşturuldu"}}, f.hit("logs")
}
func (f *fakeAPI) BreakdownFrequency(context.Context) ([]models.BreakdownFrequencyRow, error) {
	return []models.BreakdownFrequencyRow{{DeviceCode: "A", BreakdownFrequency: 0}, {DeviceCode: "B", BreakdownFrequency: 0.00456, OperatingHours: 8760}}, f.hit("breakdown")
}
func (f *fakeAPI) InterventionDuration(context.Context) ([]models.InterventionDurationRow, error) {
	return []models.InterventionDurationRow{{DeviceCode: "A", AverageDurationHours: 30}}, f.hit("intervention")
}
func (f *fakeAPI) TechnicianPerformance(context.Context) ([]models.TechnicianPerformanceRow, error) {
	return []models.TechnicianPerformanceRow{{Name: "M", SuccessRate: 75}}, f.hit("technician")
}
func (f *fakeAPI) ExcelReport(context.Context, models.ExcelReport, int) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("xlsx")), f.hit("excel")
}

var (
	manager = gate.Viewer{ID: "m1", Role: models.RoleManager}
	tech    = gate.Viewer{ID: "t1", Role: models.RoleTechnician}
	nurse   = gate.Viewer{ID: "h1", Role: models.RoleHealthStaff}
	quality = gate.Viewer{ID: "q1", Role: models.RoleQuality}
)

func TestBands(t *testing.T) {
	if AvailabilityBand(95) != BandGood || AvailabilityBand(85) != BandWarning || AvailabilityBand(84.99) != BandCritical {
		t.Fatal("availability bands")
	}
	if SuccessRateBand(90) != BandGood || SuccessRateBand(70) != BandWarning || SuccessRateBand(10) != BandCritical {
		t.Fatal("success bands")
	}
	if InterventionBand(24) != BandGood || InterventionBand(24.01) != BandCritical {
		t.Fatal("intervention bands")
	}
	if Frequency(0) != "N/A" || Frequency(0.125) != "0.13" {
		t.Fatalf("Frequency = %q %q", Frequency(0), Frequency(0.125))
	}
}

func TestLoadDevicesFiltersAndGates(t *testing.T) {
	api := newFake()
	api.devices = []models.Device{
		{Code: "VNT-07", Type: "Ventilatör", Location: "Yoğun Bakım", Availability: 97.5, MTBF: 120.25},
		{Code: "MR-01", Type: "MR", Location: "Radyoloji", Availability: 80},
	}
	list, err := LoadDevices(context.Background(), api, tech, "vnt")
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Devices) != 1 || list.Total != 2 || !list.CanAdd {
		t.Fatalf("list = %+v", list)
	}
	row := list.Devices[0]
	if row.AvailabilityText != "97.50%" || row.AvailabilityBand != BandGood || row.MTBFText != "120.3 saat" {
		t.Fatalf("row = %+v", row)
	}
	if list, _ := LoadDevices(context.Background(), api, nurse, ""); len(list.Devices) != 2 || list.CanAdd {
		t.Fatalf("nurse list = %+v", list)
	}
}

func TestAddDeviceDefaultsHours(t *testing.T) {
	api := newFake()
	_, n, err := AddDevice(context.Background(), api, manager, models.DeviceInput{Code: "X", Type: "Y", Location: "Z"})
	if err != nil || n.Message != notify.DeviceAdded {
		t.Fatalf("AddDevice = %+v, %v", n, err)
	}
	if api.created.TotalOperatingHours != models.DefaultOperatingHours {
		t.Fatalf("hours = %v", api.created.TotalOperatingHours)
	}
	if _, _, err := AddDevice(context.Background(), api, nurse, models.DeviceInput{Code: "X"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("nurse add = %v", err)
	}
	if _, n, _ := AddDevice(context.Background(), api, manager, models.DeviceInput{Code: "X"}); n.Message != notify.FillAllFields {
		t.Fatalf("missing fields notice = %+v", n)
	}
}

func ptr(f float64) *float64 { return &f }

func TestDeviceDetailAndSeries(t *testing.T) {
	api := newFake()
	for i := 12; i >= 1; i-- {
		api.faults = append(api.faults, models.Fault{ID: "f", BreakdownIteration: i, RepairDuration: ptr(float64(i) / 2)})
	}
	api.faults[0].RepairDuration = nil

	d, err := LoadDeviceDetail(context.Background(), api, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if api.calls["device"] != 1 || api.calls["device_faults"] != 1 {
		t.Fatalf("calls = %v", api.calls)
	}
	s := d.RepairSeries
	if len(s) != 10 || s[0].Label != "#3" || s[9].Label != "#12" || s[9].Duration != 0 {
		t.Fatalf("series = %+v", s)
	}
	if d.Faults[1].DurationText != "5.5 saat" || d.Faults[0].DurationText != "-" {
		t.Fatalf("duration texts = %q %q", d.Faults[0].DurationText, d.Faults[1].DurationText)
	}
	if d.Device.AvailabilityBand != BandWarning {
		t.Fatalf("band = %v", d.Device.AvailabilityBand)
	}
}

func TestDeviceDetailJointFailure(t *testing.T) {
	api := newFake()
	api.failWith = &client.Error{Kind: client.KindServer, Status: 500}
	if _, err := LoadDeviceDetail(context.Background(), api, "d1"); !client.IsServer(err) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadUsers(t *testing.T) {
	api := newFake()
	api.users = []models.User{
		{Name: "Mehmet", Role: models.RoleTechnician, SuccessfulRepairs: 8, FailedRepairs: 2},
		{Name: "Ayşe", Role: models.RoleHealthStaff},
	}
	list, err := LoadUsers(context.Background(), api, quality, "")
	if err != nil {
		t.Fatal(err)
	}
	if list.Users[0].SuccessRateText != "80.0%" || list.Users[0].SuccessRateBand != BandWarning {
		t.Fatalf("technician row = %+v", list.Users[0])
	}
	if list.Users[1].SuccessRateText != "" || list.Users[1].RoleLabel != "Sağlık Personeli" {
		t.Fatalf("staff row = %+v", list.Users[1])
	}
	if _, err := LoadUsers(context.Background(), api, tech, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("technician allowed to list users: %v", err)
	}
}

func TestTransfers(t *testing.T) {
	ctx := context.Background()
	api := newFake()
	api.transfers = []models.Transfer{{ID: "t1", Status: models.TransferPending}, {ID: "t2", Status: models.TransferApproved}}

	list, err := LoadTransfers(ctx, api, quality, "")
	if err != nil {
		t.Fatal(err)
	}
	if list.CanRequest || api.calls["devices"] != 0 {
		t.Fatalf("quality must not request transfers: %+v", list)
	}
	if len(list.Transfers[0].Actions) != 2 || len(list.Transfers[1].Actions) != 0 {
		t.Fatalf("actions = %v / %v", list.Transfers[0].Actions, list.Transfers[1].Actions)
	}

	if list, _ := LoadTransfers(ctx, api, nurse, ""); !list.CanRequest || api.calls["devices"] != 1 {
		t.Fatal("nurse form should load devices")
	}

	n, err := ReviewTransfer(ctx, api, quality, api.transfers[0], false, "   ")
	if err == nil || n.Message != notify.RejectionReasonReq || api.calls["reject"] != 0 {
		t.Fatalf("blank rejection = %+v %v", n, err)
	}
	if n, err := ReviewTransfer(ctx, api, quality, api.transfers[0], false, " Bölüm kapasitesi dolu "); err != nil || n.Message != notify.TransferRejected {
		t.Fatalf("reject = %+v %v", n, err)
	}
	if api.rejected.RejectionReason != "Bölüm kapasitesi dolu" {
		t.Fatalf("reason = %q", api.rejected.RejectionReason)
	}
	if _, err := ReviewTransfer(ctx, api, manager, api.transfers[0], true, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("manager approve = %v", err)
	}
	if _, _, err := RequestTransfer(ctx, api, nurse, models.TransferInput{DeviceID: "d"}); err == nil {
		t.Fatal("incomplete transfer accepted")
	}
}

func TestReportsAndQuality(t *testing.T) {
	ctx := context.Background()
	api := newFake()
	r, err := LoadReports(ctx, api, manager)
	if err != nil {
		t.Fatal(err)
	}
	if r.BreakdownFrequency[0].FrequencyText != "N/A" || r.BreakdownFrequency[1].OperatingHoursText != "8760.0" {
		t.Fatalf("breakdown = %+v", r.BreakdownFrequency)
	}
	if r.InterventionDuration[0].Band != BandCritical || r.TechnicianPerformance[0].SuccessRateText != "75.0%" {
		t.Fatalf("rows = %+v %+v", r.InterventionDuration, r.TechnicianPerformance)
	}
	if _, err := LoadReports(ctx, api, nurse); !errors.Is(err, ErrForbidden) {
		t.Fatal("nurse reached reports")
	}
	if _, err := LoadQuality(ctx, api, manager); !errors.Is(err, ErrForbidden) {
		t.Fatal("manager reached quality dashboard")
	}
	q, err := LoadQuality(ctx, api, quality)
	if err != nil || q.Stats.TotalUsers != 4 || len(q.Logs) != 1 {
		t.Fatalf("quality = %+v %v", q, err)
	}
}

func TestDashboard(t *testing.T) {
	api := newFake()
	d, err := LoadDashboard(context.Background(), api, models.User{ID: "h1", Role: models.RoleHealthStaff})
	if err != nil {
		t.Fatal(err)
	}
	if d.AvailabilityText != "96.46%" || len(d.Reliability) != 5 || len(d.Menu) != 4 {
		t.Fatalf("dashboard = %+v", d)
	}
	if len(d.QuickActions) != 1 || d.QuickActions[0].Path != "/faults/new" {
		t.Fatalf("quick actions = %v", d.QuickActions)
	}
}
