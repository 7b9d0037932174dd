package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tusep-web/internal/models"
)

type cliBackend struct {
	endCalls atomic.Int32
}

func (b *cliBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tech := models.User{ID: "u-tech", Name: "Mehmet Kaya", Email: "tech@tusep.test", Role: models.RoleTechnician}
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/api/auth/login" {
		json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "tok-tech", User: tech})
		return
	}
	if r.Header.Get("Authorization") != "Bearer tok-tech" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
		return
	}
	switch r.URL.Path {
	case "/api/auth/me":
		json.NewEncoder(w).Encode(tech)
	case "/api/faults":
		json.NewEncoder(w).Encode([]models.Fault{{ID: "f1", DeviceCode: "MR-01", Status: models.FaultInProgress, AssignedTo: "u-tech", AssignedToName: "Mehmet Kaya"}})
	case "/api/faults/f1/end-repair":
		b.endCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not Found"})
	}
}

func runCLI(t *testing.T, backendURL string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	argv := append([]string{"tusepctl", "--config", t.TempDir(), "--backend", backendURL + "/api"}, args...)
	err := app.RunContext(context.Background(), argv)
	return out.String(), err
}

func newCLITest(t *testing.T) (*cliBackend, string) {
	t.Helper()
	t.Setenv("SESSION_FILE_DIR", t.TempDir())
	t.Setenv("SESSION_SECRET", "test-secret")
	b := &cliBackend{}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv.URL
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	_, url := newCLITest(t)

	if _, err := runCLI(t, url, "whoami"); err == nil {
		t.Fatal("whoami before login should fail")
	}
	if _, err := runCLI(t, url, "login", "--email", "tech@tusep.test", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := runCLI(t, url, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Mehmet Kaya") || !strings.Contains(out, "Teknisyen") {
		t.Fatalf("whoami output %q", out)
	}

	if _, err := runCLI(t, url, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := runCLI(t, url, "whoami"); err == nil {
		t.Fatal("whoami after logout should fail")
	}
}

func TestMenuHidesUsersFromTechnician(t *testing.T) {
	_, url := newCLITest(t)
	if _, err := runCLI(t, url, "login", "--email", "tech@tusep.test", "--password", "secret"); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, url, "menu")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "/users") || !strings.Contains(out, "/faults") {
		t.Fatalf("menu output %q", out)
	}
	if _, err := runCLI(t, url, "users", "list"); err == nil {
		t.Fatal("technician must not list users")
	}
}

func TestEndRepairShortNotesNeverReachBackend(t *testing.T) {
	b, url := newCLITest(t)
	if _, err := runCLI(t, url, "login", "--email", "tech@tusep.test", "--password", "secret"); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, url, "faults", "end", "--notes", "kısa not", "--category", "adjustment", "f1")
	if err == nil || !strings.Contains(err.Error(), "20 karakter") {
		t.Fatalf("err = %v", err)
	}
	if n := b.endCalls.Load(); n != 0 {
		t.Fatalf("backend end-repair called %d times", n)
	}
}
