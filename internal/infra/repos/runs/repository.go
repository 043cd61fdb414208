package runs

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

// Repository stores the history of generation runs.
type Repository interface {
	Init() error
	Create(run *domain.Run) error
	Update(run *domain.Run) error
	Get(id string) (*domain.Run, error)
	List(limit int, status string) ([]*domain.Run, error)
	Close() error
}

// Open picks the Postgres repository for postgres:// DSNs and SQLite for
// anything else, which is treated as a file path.
func Open(dsn string) (Repository, error) {
	dsn = strings.TrimSpace(dsn)
	var repo Repository
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		repo = NewPostgresRepository(dsn)
	} else {
		repo = NewSQLiteRepository(dsn)
	}
	if err := repo.Init(); err != nil {
		return nil, err
	}
	return repo, nil
}

const runColumns = `id, profile_name, output, doc_count, seed, config_hash, status, started_at, completed_at, stats, error`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func statsText(run *domain.Run) interface{} {
	if len(run.Stats) == 0 {
		return nil
	}
	return string(run.Stats)
}

// scanRun reads one row in runColumns order. Timestamps are stored as
// RFC3339 text in SQLite and as timestamptz in Postgres, so both are
// accepted through parseTime.
func scanRun(row rowScanner, parseTime func(interface{}) time.Time) (*domain.Run, error) {
	var run domain.Run
	var startedAt, completedAt interface{}
	var stats, errStr sql.NullString

	err := row.Scan(
		&run.ID, &run.ProfileName, &run.Output, &run.Count,
		&run.Seed, &run.ConfigHash, &run.Status,
		&startedAt, &completedAt, &stats, &errStr,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt = parseTime(startedAt)
	if completedAt != nil {
		t := parseTime(completedAt)
		run.CompletedAt = &t
	}
	if stats.Valid && stats.String != "" {
		run.Stats = json.RawMessage(stats.String)
	}
	if errStr.Valid {
		run.Error = errStr.String
	}
	return &run, nil
}

func parseStoredTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, _ := time.Parse(time.RFC3339Nano, t)
		return parsed
	case []byte:
		parsed, _ := time.Parse(time.RFC3339Nano, string(t))
		return parsed
	default:
		return time.Time{}
	}
}
