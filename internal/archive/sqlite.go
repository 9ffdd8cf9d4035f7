package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ipdlab/dilemma/internal/tournament"
)

// ErrRunNotFound is returned when a run id is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// Store is a SQLite-backed archive of tournament runs.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the archive database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunSummary is one row of the archive listing.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Seed       uint64    `json:"seed"`
	Rounds     int       `json:"rounds"`
	Noise      float64   `json:"noise"`
	AgentCount int       `json:"agent_count"`
	MatchCount int       `json:"match_count"`
	Failures   int       `json:"failures"`
	Winner     string    `json:"winner"`
}

// StoredRun is a fully loaded archived run.
type StoredRun struct {
	RunSummary
	Standings []tournament.Standing `json:"standings"`
	Matches   []StoredMatch         `json:"matches"`
}

// StoredMatch is one archived pairing outcome.
type StoredMatch struct {
	Index  int    `json:"index"`
	AgentA string `json:"agent_a"`
	AgentB string `json:"agent_b"`
	ScoreA int    `json:"score_a"`
	ScoreB int    `json:"score_b"`
	Rounds int    `json:"rounds"`
}

// SaveRun archives a completed tournament result and returns the new
// run id.
func (s *Store) SaveRun(ctx context.Context, res *tournament.Result) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	agents := len(res.Standings)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, seed, rounds, noise, agent_count, match_count, failure_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now, int64(res.Seed), res.Rounds, res.Noise, agents, len(res.Matches), len(res.Failures))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, st := range res.Standings {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO standings (run_id, rank, agent, strategy, score, matches, avg_per_round)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, st.Rank, st.Agent, st.Strategy, st.Score, st.Matches, st.AvgRound)
		if err != nil {
			return "", fmt.Errorf("inserting standing for %q: %w", st.Agent, err)
		}
	}

	for i, m := range res.Matches {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO matches (run_id, idx, agent_a, agent_b, score_a, score_b, rounds)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, m.AgentA, m.AgentB, m.ScoreA, m.ScoreB, m.Rounds)
		if err != nil {
			return "", fmt.Errorf("inserting match %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.seed, r.rounds, r.noise, r.agent_count, r.match_count, r.failure_count,
		        COALESCE((SELECT agent FROM standings s WHERE s.run_id = r.id AND s.rank = 1), '')
		 FROM runs r
		 ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var created string
		var seed int64
		if err := rows.Scan(&rs.ID, &created, &seed, &rs.Rounds, &rs.Noise,
			&rs.AgentCount, &rs.MatchCount, &rs.Failures, &rs.Winner); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rs.Seed = uint64(seed)
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			rs.CreatedAt = t
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// GetRun loads a full archived run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*StoredRun, error) {
	run := &StoredRun{}
	var created string
	var seed int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, seed, rounds, noise, agent_count, match_count, failure_count
		 FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &created, &seed, &run.Rounds, &run.Noise,
			&run.AgentCount, &run.MatchCount, &run.Failures)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	run.Seed = uint64(seed)
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		run.CreatedAt = t
	}

	srows, err := s.db.QueryContext(ctx,
		`SELECT rank, agent, strategy, score, matches, avg_per_round
		 FROM standings WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("querying standings: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		var st tournament.Standing
		if err := srows.Scan(&st.Rank, &st.Agent, &st.Strategy, &st.Score, &st.Matches, &st.AvgRound); err != nil {
			return nil, fmt.Errorf("scanning standing: %w", err)
		}
		run.Standings = append(run.Standings, st)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	if run.Winner == "" && len(run.Standings) > 0 {
		run.Winner = run.Standings[0].Agent
	}

	mrows, err := s.db.QueryContext(ctx,
		`SELECT idx, agent_a, agent_b, score_a, score_b, rounds
		 FROM matches WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m StoredMatch
		if err := mrows.Scan(&m.Index, &m.AgentA, &m.AgentB, &m.ScoreA, &m.ScoreB, &m.Rounds); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		run.Matches = append(run.Matches, m)
	}
	return run, mrows.Err()
}
