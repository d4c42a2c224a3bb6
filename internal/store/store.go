// Package store persists per-frame detection results to sqlite for
// post-incident review.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"fire-aimer/internal/cluster"
	"fire-aimer/internal/gimbal"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	frame_id INTEGER PRIMARY KEY AUTOINCREMENT,
	captured_at TIMESTAMP NOT NULL,
	hotspot_count INTEGER NOT NULL,
	target_count INTEGER NOT NULL,
	command_azimuth_degrees REAL,
	command_pitch_degrees REAL
);
CREATE TABLE IF NOT EXISTS targets (
	frame_id INTEGER NOT NULL,
	target_rank INTEGER NOT NULL,
	severity REAL NOT NULL,
	pixel_x REAL NOT NULL,
	pixel_y REAL NOT NULL,
	world_x REAL NOT NULL,
	world_y REAL NOT NULL,
	world_z REAL NOT NULL,
	member_count INTEGER NOT NULL,
	PRIMARY KEY (frame_id, target_rank),
	FOREIGN KEY (frame_id) REFERENCES frames(frame_id)
);
`

// Store is a sqlite-backed detection log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the detection log at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open detection log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create detection log schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordFrame inserts one frame's ranked targets and the commanded
// angles (nil when no target was aimed at). Returns the frame id.
func (s *Store) RecordFrame(capturedAt time.Time, hotspotCount int, targets []cluster.SprayTarget, command *gimbal.Angles) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var az, pitch any
	if command != nil {
		az = command.TargetAzimuthDegrees
		pitch = command.TargetPitchDegrees
	}

	res, err := tx.Exec(
		`INSERT INTO frames (captured_at, hotspot_count, target_count, command_azimuth_degrees, command_pitch_degrees)
		 VALUES (?, ?, ?, ?, ?)`,
		capturedAt, hotspotCount, len(targets), az, pitch,
	)
	if err != nil {
		return 0, fmt.Errorf("insert frame: %w", err)
	}
	frameID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for rank, t := range targets {
		_, err := tx.Exec(
			`INSERT INTO targets (frame_id, target_rank, severity, pixel_x, pixel_y, world_x, world_y, world_z, member_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			frameID, rank+1, t.Severity,
			t.PixelAimPoint.X, t.PixelAimPoint.Y,
			t.WorldAimPoint.X, t.WorldAimPoint.Y, t.WorldAimPoint.Z,
			len(t.SourceHotspotIDs),
		)
		if err != nil {
			return 0, fmt.Errorf("insert target %d: %w", rank+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return frameID, nil
}

// FrameCount returns the number of recorded frames.
func (s *Store) FrameCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM frames`).Scan(&n)
	return n, err
}

// TargetSeverities returns the per-rank severities recorded for a
// frame, ordered by rank.
func (s *Store) TargetSeverities(frameID int64) ([]float64, error) {
	rows, err := s.db.Query(`SELECT severity FROM targets WHERE frame_id = ? ORDER BY target_rank`, frameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
