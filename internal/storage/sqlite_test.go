package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func testHistory(t *testing.T) *History {
	t.Helper()

	h, err := OpenHistory(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenHistory() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })

	return h
}

func TestRecordAndQueryRuns(t *testing.T) {
	h := testHistory(t)

	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := RunRecord{
		ID:          "run-1",
		StartedAt:   started,
		FinishedAt:  started.Add(3 * time.Second),
		Catalog:     "my_catalog",
		ContainerID: "abc123def456",
		StepsOK:     6,
		StepsFailed: 1,
	}
	steps := []StepRecord{
		{Seq: 1, Name: "create catalog", Method: "POST", Path: "/catalogs", Status: 201},
		{Seq: 2, Name: "create principal", Method: "POST", Path: "/principals", Status: 409, Error: "http 409: already exists"},
	}

	if err := h.RecordRun(rec, steps); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := h.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	got := runs[0]
	if got.ID != "run-1" || got.Catalog != "my_catalog" || got.StepsOK != 6 || got.StepsFailed != 1 {
		t.Errorf("run = %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}

	gotSteps, err := h.RunSteps("run-1")
	if err != nil {
		t.Fatalf("RunSteps() error = %v", err)
	}
	if len(gotSteps) != 2 {
		t.Fatalf("got %d steps, want 2", len(gotSteps))
	}
	if gotSteps[0].Name != "create catalog" || gotSteps[1].Error == "" {
		t.Errorf("steps = %+v", gotSteps)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	h := testHistory(t)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := RunRecord{
			ID:         "run-" + string(rune('a'+i)),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Second),
			Catalog:    "my_catalog",
		}
		if err := h.RecordRun(rec, nil); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := h.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("order = %s, %s; want run-c, run-b", runs[0].ID, runs[1].ID)
	}
}

func TestRunStepsUnknownRun(t *testing.T) {
	h := testHistory(t)

	steps, err := h.RunSteps("missing")
	if err != nil {
		t.Fatalf("RunSteps() error = %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("got %d steps for unknown run, want 0", len(steps))
	}
}
