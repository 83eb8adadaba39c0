package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Track is one uploaded file in the catalog. FileURL is the path the static
// host serves it under; the sync protocol treats it as an opaque reference.
type Track struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	FileURL      string    `json:"file_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	d := &DB{conn: conn}
	if err := d.init(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error { return d.conn.Close() }

func (d *DB) init() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL UNIQUE,
			original_name TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			file_url TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func (d *DB) AddTrack(filename, originalName string, size int64, fileURL string) (*Track, error) {
	res, err := d.conn.Exec(
		"INSERT INTO tracks (filename, original_name, size, file_url) VALUES (?, ?, ?, ?)",
		filename, originalName, size, fileURL)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return d.GetTrackByID(id)
}

func (d *DB) GetTrackByID(id int64) (*Track, error) {
	t := &Track{}
	err := d.conn.QueryRow(
		"SELECT id, filename, original_name, size, file_url, created_at FROM tracks WHERE id = ?", id).
		Scan(&t.ID, &t.Filename, &t.OriginalName, &t.Size, &t.FileURL, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (d *DB) ListTracks() ([]*Track, error) {
	rows, err := d.conn.Query(
		"SELECT id, filename, original_name, size, file_url, created_at FROM tracks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t := &Track{}
		if err := rows.Scan(&t.ID, &t.Filename, &t.OriginalName, &t.Size, &t.FileURL, &t.CreatedAt); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
