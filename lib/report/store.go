package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/runner"
	"github.com/lni/dragonboat/v4/logger"

	_ "modernc.org/sqlite"
)

var log = logger.GetLogger("report")

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT    NOT NULL,
	timestamp     INTEGER NOT NULL,
	profile       TEXT    NOT NULL,
	probe         TEXT    NOT NULL,
	kind          TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	baseline      INTEGER NOT NULL,
	size          INTEGER NOT NULL,
	seed          INTEGER NOT NULL,
	rounds        INTEGER NOT NULL,
	iterations    INTEGER NOT NULL,
	ns_per_op     REAL    NOT NULL,
	stddev_ns     REAL    NOT NULL,
	min_ns        REAL    NOT NULL,
	max_ns        REAL    NOT NULL,
	allocs_per_op INTEGER NOT NULL,
	bytes_per_op  INTEGER NOT NULL,
	samples       INTEGER NOT NULL,
	p50_ns        INTEGER NOT NULL,
	p95_ns        INTEGER NOT NULL,
	p99_ns        INTEGER NOT NULL,
	ratio         REAL    NOT NULL,
	build_time_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run_id ON results (run_id);`

const insertResult = `
INSERT INTO results (
	run_id, timestamp, profile, probe, kind, model, baseline, size, seed, rounds, iterations,
	ns_per_op, stddev_ns, min_ns, max_ns, allocs_per_op, bytes_per_op, samples,
	p50_ns, p95_ns, p99_ns, ratio, build_time_ns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectRecent = `
SELECT
	run_id, timestamp, profile, probe, kind, model, baseline, size, seed, rounds, iterations,
	ns_per_op, stddev_ns, min_ns, max_ns, allocs_per_op, bytes_per_op, samples,
	p50_ns, p95_ns, p99_ns, ratio, build_time_ns
FROM results
ORDER BY id DESC
LIMIT ?`

// Store keeps the history of benchmark results in a SQLite database
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the results database at path
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		log.Warningf("failed to enable WAL mode: %v", err)
	}

	return &Store{db: db}, nil
}

// Save inserts all results in one transaction
func (s *Store) Save(results []runner.Result) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertResult)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		_, err := stmt.Exec(
			r.RunID, r.Timestamp.UnixNano(), r.Profile, r.Probe, string(r.Kind), string(r.Model),
			r.Baseline, r.Size, r.Seed, r.Rounds, r.Iterations,
			r.NsPerOp, r.RoundStats.StdDeviation, r.RoundStats.Min, r.RoundStats.Max,
			r.AllocsPerOp, r.BytesPerOp, r.Samples,
			r.P50.Nanoseconds(), r.P95.Nanoseconds(), r.P99.Nanoseconds(), r.Ratio, r.BuildTime.Nanoseconds(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert result for probe %s: %w", r.Probe, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	log.Debugf("saved %d results", len(results))
	return nil
}

// Recent returns up to limit results, newest first
func (s *Store) Recent(limit int) ([]runner.Result, error) {
	rows, err := s.db.Query(selectRecent, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []runner.Result
	for rows.Next() {
		var (
			r                          runner.Result
			timestamp                  int64
			kind, model                string
			p50, p95, p99, buildTimeNs int64
		)
		err := rows.Scan(
			&r.RunID, &timestamp, &r.Profile, &r.Probe, &kind, &model, &r.Baseline,
			&r.Size, &r.Seed, &r.Rounds, &r.Iterations,
			&r.NsPerOp, &r.RoundStats.StdDeviation, &r.RoundStats.Min, &r.RoundStats.Max,
			&r.AllocsPerOp, &r.BytesPerOp, &r.Samples,
			&p50, &p95, &p99, &r.Ratio, &buildTimeNs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		r.Timestamp = time.Unix(0, timestamp)
		r.Kind = maps.Kind(kind)
		r.Model = maps.Model(model)
		r.P50, r.P95, r.P99 = time.Duration(p50), time.Duration(p95), time.Duration(p99)
		r.BuildTime = time.Duration(buildTimeNs)
		r.RoundStats.Mean = r.NsPerOp
		r.RoundStats.Count = r.Rounds
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
