// Package store keeps tracking sessions in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DaniruKun/multitracker/record"
)

var ErrNotFound = errors.New("store: session not found")

type Store struct {
	*sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			video TEXT NOT NULL,
			tracker TEXT NOT NULL,
			objects INTEGER NOT NULL,
			created_unix_nanos INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS samples (
			session_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			elapsed_nanos INTEGER NOT NULL,
			object INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			w INTEGER NOT NULL,
			h INTEGER NOT NULL,
			PRIMARY KEY (session_id, frame, object),
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

type Session struct {
	ID        string
	Video     string
	Tracker   string
	Objects   int
	Samples   int
	CreatedAt time.Time
}

func (s *Session) String() string {
	return fmt.Sprintf("%s  %s  tracker=%s objects=%d samples=%d  %s",
		s.ID, s.CreatedAt.Format(time.RFC3339), s.Tracker, s.Objects, s.Samples, s.Video)
}

// SaveSession stores tl under a new session id and returns that id.
func (s *Store) SaveSession(ctx context.Context, video, tracker string, tl *record.Timeline) (string, error) {
	id := uuid.New().String()

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (session_id, video, tracker, objects, created_unix_nanos) VALUES (?, ?, ?, ?, ?)",
		id, video, tracker, tl.Objects(), time.Now().UnixNano())
	if err != nil {
		return "", err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO samples (session_id, frame, elapsed_nanos, object, x, y, w, h) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, sample := range tl.Samples() {
		for obj, r := range sample.Boxes {
			if _, err := stmt.ExecContext(ctx, id, sample.Frame, int64(sample.Elapsed), obj, r.Min.X, r.Min.Y, r.Dx(), r.Dy()); err != nil {
				return "", err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSessions returns stored sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT s.session_id, s.video, s.tracker, s.objects, s.created_unix_nanos,
			(SELECT COUNT(DISTINCT frame) FROM samples WHERE samples.session_id = s.session_id)
		FROM sessions s
		ORDER BY s.created_unix_nanos DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var created int64
		if err := rows.Scan(&sess.ID, &sess.Video, &sess.Tracker, &sess.Objects, &created, &sess.Samples); err != nil {
			return nil, err
		}
		sess.CreatedAt = time.Unix(0, created)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// LoadTimeline rebuilds the timeline stored for session id.
func (s *Store) LoadTimeline(ctx context.Context, id string) (*record.Timeline, error) {
	var objects int
	err := s.QueryRowContext(ctx, "SELECT objects FROM sessions WHERE session_id = ?", id).Scan(&objects)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.QueryContext(ctx,
		"SELECT frame, elapsed_nanos, object, x, y, w, h FROM samples WHERE session_id = ? ORDER BY frame, object", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tl := record.NewTimeline(objects)
	var (
		curFrame   = -1
		curElapsed int64
		boxes      []image.Rectangle
	)
	flush := func() error {
		if curFrame < 0 {
			return nil
		}
		return tl.Append(time.Duration(curElapsed), curFrame, boxes)
	}

	for rows.Next() {
		var frame, obj, x, y, w, h int
		var elapsed int64
		if err := rows.Scan(&frame, &elapsed, &obj, &x, &y, &w, &h); err != nil {
			return nil, err
		}
		if frame != curFrame {
			if err := flush(); err != nil {
				return nil, err
			}
			curFrame, curElapsed, boxes = frame, elapsed, nil
		}
		boxes = append(boxes, image.Rect(x, y, x+w, y+h))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tl, nil
}
