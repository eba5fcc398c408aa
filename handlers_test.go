package faresolver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/transit-tools/fare-resolver/config"
	"github.com/transit-tools/fare-resolver/fare"
)

func testService(t *testing.T) (*Service, *fare.Table) {
	t.Helper()
	header := []string{"from", "to", "fare", "priceType", "validFrom", "validTo"}
	values := [][]string{
		{"Tokyo", "Okinawa", "12000", "Standard", "2025-06-01", "2025-06-30"},
	}
	rows := make([]fare.RawRow, 0, len(values))
	for _, line := range values {
		row := make(fare.RawRow, 0, len(header))
		for i, label := range header {
			row = append(row, fare.Cell{Label: label, Value: line[i]})
		}
		rows = append(rows, row)
	}
	tbl, err := fare.Build(rows, []fare.AliasRow{{Alias: "Haneda", Canonical: "Tokyo"}}, "test")
	if err != nil {
		t.Fatal(err)
	}
	store := fare.NewStore()
	store.Install(tbl)
	return NewService(store, NewResolveCache(config.CacheConfig{}), nil), tbl
}

func TestHandleResolve(t *testing.T) {
	svc, _ := testService(t)
	body := `{"legs":[
		{"date":"2025-06-15","from":"Haneda","to":"Okinawa"},
		{"date":"2025-07-01","from":"Tokyo","to":"Okinawa"},
		{"date":"2025-06-15","from":"Osaka","to":"Sapporo"},
		{"date":"not a date","from":"Tokyo","to":"Okinawa"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()
	svc.handleResolve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ResolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 4 {
		t.Fatalf("got %d results", len(resp.Results))
	}
	if !resp.Results[0].Hit || resp.Results[0].Record.Fare != 12000 {
		t.Errorf("alias leg = %+v", resp.Results[0])
	}
	if resp.Results[1].Hit || !resp.Results[1].HasAnyRoute {
		t.Errorf("out-of-window leg = %+v", resp.Results[1])
	}
	if resp.Results[2].Hit || resp.Results[2].HasAnyRoute {
		t.Errorf("unknown-route leg = %+v", resp.Results[2])
	}
	if resp.Results[3].Error == "" {
		t.Errorf("bad-date leg should carry an error, got %+v", resp.Results[3])
	}
	if resp.Summary.Hits != 1 || resp.Summary.Misses != 3 || resp.Summary.TotalFare != 12000 {
		t.Errorf("summary = %+v", resp.Summary)
	}
}

func TestHandleResolve_CachedResultStable(t *testing.T) {
	svc, _ := testService(t)
	body := `{"legs":[{"date":"2025-06-15","from":"Haneda","to":"Okinawa"}]}`

	var first, second ResolveResponse
	for i, out := range []*ResolveResponse{&first, &second} {
		req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader(body))
		w := httptest.NewRecorder()
		svc.handleResolve(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d", i, w.Code)
		}
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatal(err)
		}
	}
	if !first.Results[0].Hit || !second.Results[0].Hit ||
		first.Results[0].Record.Fare != second.Results[0].Record.Fare {
		t.Errorf("cached result drifted: %+v vs %+v", first.Results[0], second.Results[0])
	}
}

func TestHandleResolve_RequiresPost(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/resolve", nil)
	w := httptest.NewRecorder()
	svc.handleResolve(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestHandleSummary(t *testing.T) {
	svc, tbl := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()
	svc.handleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var s fare.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Fares != len(tbl.Records) || s.Source != "test" {
		t.Errorf("summary = %+v", s)
	}
}

func TestHandleSummary_NoTable(t *testing.T) {
	svc := NewService(fare.NewStore(), NewResolveCache(config.CacheConfig{}), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()
	svc.handleSummary(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHandleReload_FailureKeepsTable(t *testing.T) {
	svc, tbl := testService(t)
	svc.Reload = func() (*fare.Table, error) { return nil, errors.New("source gone") }

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	w := httptest.NewRecorder()
	svc.handleReload(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if svc.Store.Active() != tbl {
		t.Error("failed reload must keep the prior table active")
	}
}

func TestHandleHealth(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	svc.handleHealth(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var h healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.BuiltAt == nil {
		t.Errorf("health = %+v", h)
	}
}
