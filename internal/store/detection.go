package store

import (
	"database/sql"
	"image"
	"time"
)

// Detection is one recognized hand in one frame.
type Detection struct {
	ID         int64           `json:"id"`
	SessionID  string          `json:"session_id"`
	FrameSeq   uint64          `json:"frame_seq"`
	HandIndex  int             `json:"hand_index"`
	Label      string          `json:"label"`
	Handedness string          `json:"handedness,omitempty"`
	Box        image.Rectangle `json:"box"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LabelCount is the number of detections carrying one label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DetectionRepository provides operations on recorded detections.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// CreateBatch inserts detections in a single transaction and fills in their IDs.
func (r *DetectionRepository) CreateBatch(detections []*Detection) error {
	if len(detections) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO detections
		 (session_id, frame_seq, hand_index, label, handedness, min_x, min_y, max_x, max_y, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, d := range detections {
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		result, err := stmt.Exec(
			d.SessionID, int64(d.FrameSeq), d.HandIndex, d.Label, d.Handedness,
			d.Box.Min.X, d.Box.Min.Y, d.Box.Max.X, d.Box.Max.Y, d.CreatedAt,
		)
		if err != nil {
			return err
		}
		if d.ID, err = result.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListBySession returns the detections of a session in frame order.
// A positive limit caps the number returned.
func (r *DetectionRepository) ListBySession(sessionID string, limit int) ([]*Detection, error) {
	query := `SELECT id, session_id, frame_seq, hand_index, label, handedness,
	                 min_x, min_y, max_x, max_y, created_at
	          FROM detections WHERE session_id = ? ORDER BY frame_seq, hand_index`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []*Detection
	for rows.Next() {
		d := &Detection{}
		var seq int64
		err := rows.Scan(
			&d.ID, &d.SessionID, &seq, &d.HandIndex, &d.Label, &d.Handedness,
			&d.Box.Min.X, &d.Box.Min.Y, &d.Box.Max.X, &d.Box.Max.Y, &d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		d.FrameSeq = uint64(seq)
		detections = append(detections, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return detections, nil
}

// CountByLabel returns how often each label was recorded in a session,
// most frequent first.
func (r *DetectionRepository) CountByLabel(sessionID string) ([]LabelCount, error) {
	rows, err := r.db.Query(
		`SELECT label, COUNT(*) FROM detections WHERE session_id = ?
		 GROUP BY label ORDER BY COUNT(*) DESC, label`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []LabelCount
	for rows.Next() {
		var c LabelCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
