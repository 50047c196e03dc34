package admin

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fremen-sim/internal/alert"
	"fremen-sim/internal/config"
	"fremen-sim/internal/garrison"
	"fremen-sim/internal/sim"
	"fremen-sim/internal/telemetry"
)

func testSimulator() *sim.Simulator {
	cfg := &config.SimulationConfig{
		ClusterID: "test-cluster",
		Outposts: []config.OutpostConfig{
			{ID: "outpost-west", X: 0, Z: 0, CaptureRadius: 10, MinGarrison: 2},
		},
	}
	nowFn := func() time.Time { return time.Unix(0, 0) }
	rng := rand.New(rand.NewSource(1))
	return sim.NewSimulator(cfg, nil, nil, nil, nil, time.Second, nowFn, rng)
}

func TestHandleRoster(t *testing.T) {
	server := NewServer(testSimulator())

	req := httptest.NewRequest(http.MethodGet, "/roster", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var rows []telemetry.TrooperStateRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 roster rows, got %d", len(rows))
	}
}

func TestHandleOutposts(t *testing.T) {
	server := NewServer(testSimulator())

	req := httptest.NewRequest(http.MethodGet, "/outposts", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var statuses []garrison.Status
	if err := json.NewDecoder(w.Result().Body).Decode(&statuses); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(statuses) != 1 || statuses[0].LiveGarrison != 2 {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestHandleAlerts(t *testing.T) {
	server := NewServer(testSimulator())

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var stats alert.Stats
	if err := json.NewDecoder(w.Result().Body).Decode(&stats); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("expected no alerts, got %d", stats.Total)
	}
}

func TestHandleJam(t *testing.T) {
	simulator := testSimulator()
	server := NewServer(simulator)

	req := httptest.NewRequest(http.MethodPost, "/jam?outpost=outpost-west", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", w.Result().StatusCode)
	}
	statuses := simulator.Outposts()
	if !statuses[0].Jammed {
		t.Fatalf("expected outpost to be jammed")
	}

	req = httptest.NewRequest(http.MethodPost, "/jam?outpost=outpost-west&state=false", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if simulator.Outposts()[0].Jammed {
		t.Fatalf("expected outpost to be unjammed")
	}
}

func TestHandleJamMissingOutpost(t *testing.T) {
	server := NewServer(testSimulator())

	req := httptest.NewRequest(http.MethodPost, "/jam", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", w.Result().StatusCode)
	}
}

func TestHandleCapturedAndRecaptured(t *testing.T) {
	simulator := testSimulator()
	server := NewServer(simulator)

	req := httptest.NewRequest(http.MethodPost, "/captured?outpost=outpost-west", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected no content, got %v", w.Result().StatusCode)
	}
	if got := len(simulator.RosterSnapshot()); got != 0 {
		t.Fatalf("expected empty roster after capture, got %d", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/recaptured?outpost=outpost-west", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected no content, got %v", w.Result().StatusCode)
	}
	if simulator.Outposts()[0].Controlling != "harkonnen" {
		t.Fatalf("expected harkonnen control after recapture")
	}
}

func TestHandleDefeat(t *testing.T) {
	simulator := testSimulator()
	server := NewServer(simulator)

	rows := simulator.RosterSnapshot()
	req := httptest.NewRequest(http.MethodPost, "/defeat?trooper="+rows[0].TrooperID, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected no content, got %v", w.Result().StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/defeat?trooper=nope", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", w.Result().StatusCode)
	}
}

func TestHandleIndex(t *testing.T) {
	server := NewServer(testSimulator())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", w.Result().StatusCode)
	}
	body := w.Body.String()
	if !strings.Contains(body, "test-cluster") || !strings.Contains(body, "outpost-west") {
		t.Fatalf("index missing expected content: %s", body)
	}
}
