package timer

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{90 * time.Second, "01:30"},
		{3661 * time.Second, "61:01"},
		{125*time.Minute + 3*time.Second, "125:03"},
		{59*time.Second + 999*time.Millisecond, "00:59"},
		{-5 * time.Second, "00:00"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Fatalf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{0: "00:00", -1: "00:00", 0.5: "30:00", 1.5: "90:00", 0.25: "15:00"}
	for in, want := range cases {
		if got := FormatHours(in); got != want {
			t.Fatalf("FormatHours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)
	now := start.Add(time.Hour)

	if got := Elapsed(time.Time{}, time.Time{}, now); got != 0 {
		t.Fatalf("no start: %v", got)
	}
	if got := Elapsed(start, end, now); got != 10*time.Minute {
		t.Fatalf("with end: %v", got)
	}
	if got := Elapsed(start, time.Time{}, now); got != time.Hour {
		t.Fatalf("running: %v", got)
	}
}

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) render(s string) {
	r.mu.Lock()
	r.got = append(r.got, s)
	r.mu.Unlock()
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDisplayFixedWhenEnded(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	rec := &recorder{}
	d := NewDisplay(start, start.Add(90*time.Second), rec.render, WithInterval(time.Millisecond))
	d.Start(context.Background())
	if d.Done() != nil {
		t.Fatal("ended repair must not schedule a ticker")
	}
	time.Sleep(10 * time.Millisecond)
	if got := rec.values(); len(got) != 1 || got[0] != "01:30" {
		t.Fatalf("renders = %v", got)
	}
}

func TestDisplayZeroWithoutStart(t *testing.T) {
	rec := &recorder{}
	d := NewDisplay(time.Time{}, time.Time{}, rec.render)
	d.Start(context.Background())
	d.Stop()
	if got := rec.values(); len(got) != 1 || got[0] != "00:00" {
		t.Fatalf("renders = %v", got)
	}
}

func TestDisplayTicksUntilStopped(t *testing.T) {
	start := time.Now().Add(-2 * time.Minute)
	rec := &recorder{}
	d := NewDisplay(start, time.Time{}, rec.render, WithInterval(2*time.Millisecond))
	d.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	d.Stop()
	d.Stop()

	n := len(rec.values())
	if n < 2 {
		t.Fatalf("expected recurring renders, got %d", n)
	}
	time.Sleep(10 * time.Millisecond)
	if len(rec.values()) != n {
		t.Fatal("display rendered after Stop")
	}
}

func TestDisplaySetEndStopsTicker(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	rec := &recorder{}
	d := NewDisplay(start, time.Time{}, rec.render, WithInterval(time.Millisecond))
	d.Start(context.Background())
	d.SetEnd(start.Add(3661 * time.Second))

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker did not exit after SetEnd")
	}
	got := rec.values()
	if got[len(got)-1] != "61:01" {
		t.Fatalf("last render = %q, want 61:01", got[len(got)-1])
	}
	if d.Value() != "61:01" {
		t.Fatalf("Value = %q", d.Value())
	}
}

func TestDisplayContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDisplay(time.Now(), time.Time{}, func(string) {}, WithInterval(time.Millisecond))
	d.Start(ctx)
	cancel()
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker survived context cancellation")
	}
}
