package storage

import (
	"fmt"
	"time"
)

// Snapshot is one persisted checkpoint of an editing session: the whole
// serialized document under a human-readable label.
type Snapshot struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	Label        string    `json:"label"`
	DocumentJSON string    `json:"documentJson"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SnapshotStore manages history checkpoints in SQLite.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// List returns a project's checkpoints, oldest first.
func (s *SnapshotStore) List(projectID string) ([]Snapshot, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, project_id, label, document_json, created_at
		 FROM snapshots WHERE project_id = ? ORDER BY created_at ASC, id ASC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.ProjectID, &sn.Label, &sn.DocumentJSON, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, sn)
	}
	return snaps, rows.Err()
}

// Get returns one checkpoint by id.
func (s *SnapshotStore) Get(id string) (*Snapshot, error) {
	sn := &Snapshot{}
	err := s.db.conn.QueryRow(
		`SELECT id, project_id, label, document_json, created_at FROM snapshots WHERE id = ?`, id,
	).Scan(&sn.ID, &sn.ProjectID, &sn.Label, &sn.DocumentJSON, &sn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return sn, nil
}

// Push records a new checkpoint and prunes the oldest beyond the cap.
func (s *SnapshotStore) Push(id, projectID, label, documentJSON string) (*Snapshot, error) {
	now := time.Now()
	_, err := s.db.conn.Exec(
		`INSERT INTO snapshots (id, project_id, label, document_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, projectID, label, documentJSON, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	s.pruneIfNeeded(projectID, 40)

	return &Snapshot{
		ID:           id,
		ProjectID:    projectID,
		Label:        label,
		DocumentJSON: documentJSON,
		CreatedAt:    now,
	}, nil
}

// ClearProject removes all checkpoints for a project.
func (s *SnapshotStore) ClearProject(projectID string) error {
	_, err := s.db.conn.Exec(`DELETE FROM snapshots WHERE project_id = ?`, projectID)
	return err
}

// pruneIfNeeded removes the oldest checkpoints when count exceeds maxSnaps.
func (s *SnapshotStore) pruneIfNeeded(projectID string, maxSnaps int) {
	var count int
	s.db.conn.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE project_id = ?`, projectID).Scan(&count)
	if count <= maxSnaps {
		return
	}

	s.db.conn.Exec(
		`DELETE FROM snapshots WHERE id IN (
			SELECT id FROM snapshots WHERE project_id = ?
			ORDER BY created_at ASC, id ASC LIMIT ?
		)`, projectID, count-maxSnaps,
	)
}
