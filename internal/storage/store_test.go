package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0, 20, 40},
		States: []sim.State{
			{50000, 0.5, 0.5},
			{120000, 0.8, 0.7},
			{260000, 0.95, 0.9},
		},
		Metrics: map[string]float64{"final_pay": 260000},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	params := career.DefaultParams()
	params.PayCeiling = 500000

	runID, err := store.Save("ceiling", params, 40, 3, 7, "rk45", testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(runID, "ceiling_") {
		t.Errorf("run ID %q should carry the scenario name", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Scenario != "ceiling" || meta.Seed != 7 || meta.Integrator != "rk45" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Params.PayCeiling != 500000 {
		t.Errorf("params not preserved: %+v", meta.Params)
	}
	if meta.Metrics["final_pay"] != 260000 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	traj, err := store.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory: %v", err)
	}
	want := testResult()
	if len(traj.Times) != len(want.Times) {
		t.Fatalf("trajectory has %d samples, want %d", len(traj.Times), len(want.Times))
	}
	for i := range want.Times {
		if math.Abs(traj.Times[i]-want.Times[i]) > 1e-6 {
			t.Errorf("time %d = %f, want %f", i, traj.Times[i], want.Times[i])
		}
		for j := range want.States[i] {
			if math.Abs(traj.States[i][j]-want.States[i][j]) > 1e-5 {
				t.Errorf("state[%d][%d] = %f, want %f", i, j, traj.States[i][j], want.States[i][j])
			}
		}
	}
}

func TestStore_List(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if runs, err := store.List(); err != nil || len(runs) != 0 {
		t.Fatalf("fresh store: runs=%v err=%v", runs, err)
	}

	if _, err := store.Save("baseline", career.DefaultParams(), 40, 3, 0, "rk45", testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "baseline" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestStore_ListMissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStore_LoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := store.LoadTrajectory("nope"); err == nil {
		t.Error("expected error for unknown trajectory")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{ID: "baseline_1", Scenario: "baseline", Seed: 3}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, testResult()); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var out struct {
		Meta   RunMetadata `json:"meta"`
		Times  []float64   `json:"times"`
		States [][]float64 `json:"states"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if out.Meta.ID != "baseline_1" || len(out.Times) != 3 || len(out.States) != 3 {
		t.Errorf("export = %+v", out)
	}
	if out.States[2][0] != 260000 {
		t.Errorf("final pay in export = %f", out.States[2][0])
	}
}
