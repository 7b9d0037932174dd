package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"manager", RoleManager, true},
		{" Technician ", RoleTechnician, true},
		{"health_staff", RoleHealthStaff, true},
		{"quality", RoleQuality, true},
		{"admin", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
	if RoleManager.Label() != "Yönetici" {
		t.Fatalf("unexpected label %q", RoleManager.Label())
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	var f Fault
	body := `{"id":"f1","status":"in_progress","repair_start":"2025-03-01T10:00:00.123456","repair_end":null,"created_at":"2025-03-01T09:00:00+03:00"}`
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !f.Started() || f.Ended() {
		t.Fatalf("expected started and not ended, got %+v", f)
	}
	want := time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC)
	if !f.RepairStart.Equal(want) {
		t.Fatalf("repair_start = %v, want %v", f.RepairStart.Time, want)
	}
	if f.CreatedAt.Hour() != 6 {
		t.Fatalf("created_at not normalised to UTC: %v", f.CreatedAt.Time)
	}
}

func TestTimestampMarshalKeepsFraction(t *testing.T) {
	ts := Timestamp{time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC)}
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-03-01T10:00:00.123456Z"` {
		t.Fatalf("marshal = %s", b)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil || !back.Equal(ts.Time) {
		t.Fatalf("round trip = %v, %v", back.Time, err)
	}
	if b, _ := json.Marshal(Timestamp{}); string(b) != "null" {
		t.Fatalf("zero marshal = %s", b)
	}
}

func TestFaultStatusLabels(t *testing.T) {
	want := map[FaultStatus]string{FaultOpen: "Açık", FaultInProgress: "Devam Ediyor", FaultClosed: "Kapatıldı", "queued": "queued"}
	for s, label := range want {
		if got := s.Label(); got != label {
			t.Errorf("%s label = %q, want %q", s, got, label)
		}
	}
}

func TestSuccessRate(t *testing.T) {
	if r := (User{}).SuccessRate(); r != 0 {
		t.Fatalf("empty success rate = %v", r)
	}
	if r := (User{SuccessfulRepairs: 3, FailedRepairs: 1}).SuccessRate(); r != 75 {
		t.Fatalf("success rate = %v, want 75", r)
	}
}
