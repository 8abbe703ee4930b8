// Package catalog records generation runs in SQLite. The grid itself is
// never stored: a run's seed plus its recorded parameters is enough to
// regenerate the identical map, so the catalog is a book of recipes for
// reproducing and comparing layouts.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/roguefoundry/delvegen/internal/dungeon"
)

// Run is one recorded generation.
type Run struct {
	ID        int64
	Seed      int64
	Width     int
	Height    int
	Rows      int
	Columns   int
	RealRooms int
	Spawn     dungeon.Location
	Exit      dungeon.Location

	// GroundTiles is the carved floor area, a cheap fingerprint for
	// spotting regressions across seeds.
	GroundTiles int

	CreatedAt time.Time
}

// NewRun builds a Run from a generation's config and result.
func NewRun(cfg *dungeon.Config, m *dungeon.DungeonMap) *Run {
	ground := 0
	for y := 0; y < m.Grid.Height(); y++ {
		for x := 0; x < m.Grid.Width(); x++ {
			if tile, _ := m.Grid.At(x, y); tile == dungeon.TileGround {
				ground++
			}
		}
	}
	return &Run{
		Seed:        cfg.Seed,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Rows:        cfg.Rows,
		Columns:     cfg.Columns,
		RealRooms:   cfg.RealRooms,
		Spawn:       m.Spawn,
		Exit:        m.Exit,
		GroundTiles: ground,
	}
}

// Catalog wraps the SQLite connection.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at the given path.
func Open(path string) (*Catalog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (c *Catalog) migrate() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		rows INTEGER NOT NULL,
		columns INTEGER NOT NULL,
		real_rooms INTEGER NOT NULL,
		spawn_x INTEGER NOT NULL,
		spawn_y INTEGER NOT NULL,
		exit_x INTEGER NOT NULL,
		exit_y INTEGER NOT NULL,
		ground_tiles INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Record inserts a run and fills in its assigned id.
func (c *Catalog) Record(run *Run) error {
	result, err := c.db.Exec(
		`INSERT INTO runs (seed, width, height, rows, columns, real_rooms,
			spawn_x, spawn_y, exit_x, exit_y, ground_tiles)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed, run.Width, run.Height, run.Rows, run.Columns, run.RealRooms,
		run.Spawn.X, run.Spawn.Y, run.Exit.X, run.Exit.Y, run.GroundTiles,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	run.ID = id
	return nil
}

// Recent returns up to limit runs, newest first.
func (c *Catalog) Recent(limit int) ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT id, seed, width, height, rows, columns, real_rooms,
			spawn_x, spawn_y, exit_x, exit_y, ground_tiles, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// BySeed returns every recorded run for a seed, oldest first.
func (c *Catalog) BySeed(seed int64) ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT id, seed, width, height, rows, columns, real_rooms,
			spawn_x, spawn_y, exit_x, exit_y, ground_tiles, created_at
		 FROM runs WHERE seed = ? ORDER BY id`, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to query seed %d: %w", seed, err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.Seed, &run.Width, &run.Height, &run.Rows, &run.Columns,
			&run.RealRooms, &run.Spawn.X, &run.Spawn.Y, &run.Exit.X, &run.Exit.Y,
			&run.GroundTiles, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
