package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tusep-web/internal/models"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api")
}

func TestBearerAndRequestIDAttached(t *testing.T) {
	var gotAuth, gotID string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(RequestIDHeader)
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.User{ID: "u1", Role: models.RoleManager})
	})

	u, err := c.WithToken("tok-1", nil).Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.ID != "u1" || u.Role != models.RoleManager {
		t.Fatalf("user = %+v", u)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotID == "" {
		t.Fatal("missing request id")
	}
}

func TestAnonymousCallHasNoBearer(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected Authorization %q", h)
		}
		var creds models.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "a@b.c" {
			t.Errorf("email = %q", creds.Email)
		}
		json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "t", TokenType: "bearer"})
	})
	resp, err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
	if err != nil || resp.AccessToken != "t" {
		t.Fatalf("Login = %+v, %v", resp, err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
		detail string
	}{
		{"unauthorized", 401, `{"detail":"Could not validate credentials"}`, KindUnauthorized, "Could not validate credentials"},
		{"validation", 400, `{"detail":"Fault is not open"}`, KindValidation, "Fault is not open"},
		{"forbidden", 403, `{"detail":"Only the reporter can confirm"}`, KindValidation, "Only the reporter can confirm"},
		{"fastapi list", 422, `{"detail":[{"loc":["body","repair_notes"],"msg":"too short"}]}`, KindValidation, "repair_notes: too short"},
		{"server", 500, `oops`, KindServer, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})
			err := c.ConfirmFault(context.Background(), "f1")
			if err == nil {
				t.Fatal("expected error")
			}
			if kindOf(err) != tc.kind {
				t.Fatalf("kind = %v, want %v", kindOf(err), tc.kind)
			}
			if Detail(err) != tc.detail {
				t.Fatalf("detail = %q, want %q", Detail(err), tc.detail)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := New(srv.URL).Devices(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestUnauthorizedHookRunsOnlyWithToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	calls := 0
	hook := func() { calls++ }

	c.WithToken("", hook).Devices(context.Background())
	if calls != 0 {
		t.Fatalf("hook ran for anonymous call")
	}
	c.WithToken("tok", hook).Devices(context.Background())
	if calls != 1 {
		t.Fatalf("hook calls = %d, want 1", calls)
	}
}

func TestFaultsStatusQuery(t *testing.T) {
	var gotQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `[]`)
	})
	if _, err := c.Faults(context.Background(), models.FaultOpen); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "status=open" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestExcelReportStreamsBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/excel/intervention-duration" || r.URL.Query().Get("year") != "2024" {
			t.Errorf("unexpected request %s", r.URL)
		}
		io.WriteString(w, "PK-workbook")
	})
	body, err := c.ExcelReport(context.Background(), models.ReportInterventionDuration, 2024)
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()
	b, _ := io.ReadAll(body)
	if string(b) != "PK-workbook" {
		t.Fatalf("body = %q", b)
	}
}
