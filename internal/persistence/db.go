// Package persistence provides SQLite-based storage for run results:
// configuration, per-tick history series, and final population snapshots.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/talgya/civitas/internal/config"
	"github.com/talgya/civitas/internal/engine"
	"github.com/talgya/civitas/internal/model"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		config_yaml TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		practice TEXT NOT NULL,
		avg_hours REAL NOT NULL,
		participation_rate REAL NOT NULL,
		PRIMARY KEY (run_id, tick, practice)
	);

	CREATE TABLE IF NOT EXISTS agents (
		run_id TEXT NOT NULL,
		agent_id INTEGER NOT NULL,
		pos_x REAL NOT NULL,
		pos_y REAL NOT NULL,
		money REAL NOT NULL,
		comm_strength REAL NOT NULL,
		free_time REAL NOT NULL,
		values_json TEXT NOT NULL,
		allocation_json TEXT NOT NULL,
		memberships_json TEXT NOT NULL,
		PRIMARY KEY (run_id, agent_id)
	);

	CREATE TABLE IF NOT EXISTS institutions (
		run_id TEXT NOT NULL,
		institution_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		practice TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		member_count INTEGER NOT NULL,
		cost_per_hour REAL NOT NULL,
		income_per_hour REAL NOT NULL,
		PRIMARY KEY (run_id, institution_id)
	);

	CREATE INDEX IF NOT EXISTS idx_history_run ON history(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes a completed run: config, full history, and the final
// agent and institution state.
func (db *DB) SaveRun(runID uuid.UUID, cfg *config.Config, sim *engine.Simulation) error {
	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, seed, ticks, config_yaml) VALUES (?, ?, ?, ?)`,
		runID.String(), cfg.Seed, sim.CurrentTick(), string(cfgYAML),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	h := sim.History
	for i, tick := range h.Ticks {
		for p := 0; p < model.NumPractices; p++ {
			if _, err := tx.Exec(
				`INSERT INTO history (run_id, tick, practice, avg_hours, participation_rate)
				 VALUES (?, ?, ?, ?, ?)`,
				runID.String(), tick, model.PracticeName(model.PracticeType(p)),
				h.AvgHours[p][i], h.Participation[p][i],
			); err != nil {
				return fmt.Errorf("insert history tick %d: %w", tick, err)
			}
		}
	}

	for _, a := range sim.Agents {
		valuesJSON, _ := json.Marshal(a.Values)
		allocJSON, _ := json.Marshal(a.Allocation)
		membersJSON, _ := json.Marshal(keys(a.Memberships))
		if _, err := tx.Exec(
			`INSERT INTO agents (run_id, agent_id, pos_x, pos_y, money, comm_strength,
			                     free_time, values_json, allocation_json, memberships_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID.String(), a.ID, a.Position.X, a.Position.Y, a.Money, a.CommStrength,
			a.FreeTime(), string(valuesJSON), string(allocJSON), string(membersJSON),
		); err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	for _, inst := range sim.Institutions {
		if _, err := tx.Exec(
			`INSERT INTO institutions (run_id, institution_id, name, practice, capacity,
			                           member_count, cost_per_hour, income_per_hour)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID.String(), inst.ID, inst.Name, model.PracticeName(inst.Practice),
			inst.Capacity, len(inst.Members), inst.CostPerHour, inst.IncomePerHour,
		); err != nil {
			return fmt.Errorf("insert institution %d: %w", inst.ID, err)
		}
	}

	return tx.Commit()
}

// HistoryRow is one (tick, practice) aggregate read back from storage.
type HistoryRow struct {
	Tick              int     `db:"tick"`
	Practice          string  `db:"practice"`
	AvgHours          float64 `db:"avg_hours"`
	ParticipationRate float64 `db:"participation_rate"`
}

// LoadHistory reads a run's history ordered by tick then practice.
func (db *DB) LoadHistory(runID uuid.UUID) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := db.conn.Select(&rows,
		`SELECT tick, practice, avg_hours, participation_rate
		 FROM history WHERE run_id = ? ORDER BY tick, practice`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return rows, nil
}

// RunCount returns the number of stored runs.
func (db *DB) RunCount() (int, error) {
	var n int
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM runs`); err != nil {
		return 0, err
	}
	return n, nil
}

func keys(m map[model.InstitutionID]struct{}) []model.InstitutionID {
	out := make([]model.InstitutionID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
