package runs

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

func TestInitCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "runs.db")
	repo := NewSQLiteRepository(dbPath)

	if err := repo.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if repo.DB() == nil {
		t.Fatal("expected db handle to be initialized")
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
}

func TestSQLiteRepository_CreateUpdateGetList(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "runs.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := &domain.Run{
		ProfileName: "default",
		Output:      "random_data.json",
		Count:       1000,
		Seed:        12345,
		ConfigHash:  "abc",
		Status:      domain.RunStatusRunning,
		StartedAt:   started,
	}
	if err := repo.Create(run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RunStatusRunning || got.CompletedAt != nil || got.Stats != nil {
		t.Fatalf("unexpected stored run: %#v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, started)
	}

	done := started.Add(2 * time.Second)
	stats, _ := json.Marshal(domain.RunStats{Documents: 1000, BytesWritten: 42})
	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &done
	run.Stats = stats
	if err := repo.Update(run); err != nil {
		t.Fatal(err)
	}

	failed := &domain.Run{
		ProfileName: "other",
		Output:      "x.json",
		Seed:        1,
		ConfigHash:  "def",
		Status:      domain.RunStatusFailed,
		StartedAt:   started.Add(time.Hour),
		Error:       "disk full",
	}
	if err := repo.Create(failed); err != nil {
		t.Fatal(err)
	}

	all, err := repo.List(10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != failed.ID {
		t.Fatalf("expected newest first, got %#v", all)
	}

	ok, err := repo.List(0, string(domain.RunStatusSuccess))
	if err != nil {
		t.Fatal(err)
	}
	if len(ok) != 1 || ok[0].ID != run.ID {
		t.Fatalf("unexpected status filter result: %#v", ok)
	}
	if ok[0].CompletedAt == nil || !ok[0].CompletedAt.Equal(done) {
		t.Fatalf("completed_at not stored: %#v", ok[0].CompletedAt)
	}
	var back domain.RunStats
	if err := json.Unmarshal(ok[0].Stats, &back); err != nil || back.Documents != 1000 {
		t.Fatalf("stats not stored: %s (%v)", ok[0].Stats, err)
	}

	if _, err := repo.Get("missing"); err == nil {
		t.Fatal("expected error for missing run")
	}
}
