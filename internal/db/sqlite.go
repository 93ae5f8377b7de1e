package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS episodes (
		guid TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		audio_url TEXT NOT NULL DEFAULT '',
		audio_path TEXT NOT NULL DEFAULT '',
		duration REAL NOT NULL DEFAULT 0,
		language TEXT NOT NULL DEFAULT '',
		transcript_url TEXT NOT NULL DEFAULT '',
		transcript_path TEXT NOT NULL DEFAULT '',
		chapters_path TEXT NOT NULL DEFAULT '',
		transcription_progress REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

const episodeColumns = `guid, title, audio_url, audio_path, duration, language,
	transcript_url, transcript_path, chapters_path, transcription_progress,
	created_at, updated_at`

func scanEpisode(row interface{ Scan(...any) error }) (*models.Episode, error) {
	ep := &models.Episode{}
	var progress sql.NullFloat64
	err := row.Scan(&ep.GUID, &ep.Title, &ep.AudioURL, &ep.AudioPath, &ep.Duration,
		&ep.Language, &ep.TranscriptURL, &ep.TranscriptPath, &ep.ChaptersPath,
		&progress, &ep.CreatedAt, &ep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if progress.Valid {
		ep.TranscriptionProgress = &progress.Float64
	}
	return ep, nil
}

// UpsertEpisode inserts or updates an episode's feed-supplied fields, leaving
// derived artifact fields alone on update.
func (d *Database) UpsertEpisode(ep *models.Episode) error {
	_, err := d.db.Exec(`
		INSERT INTO episodes (guid, title, audio_url, duration, language, transcript_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(guid) DO UPDATE SET
			title = ?, audio_url = ?, duration = ?, language = ?, transcript_url = ?,
			updated_at = CURRENT_TIMESTAMP`,
		ep.GUID, ep.Title, ep.AudioURL, ep.Duration, ep.Language, ep.TranscriptURL,
		ep.Title, ep.AudioURL, ep.Duration, ep.Language, ep.TranscriptURL,
	)
	return err
}

func (d *Database) GetEpisode(guid string) (*models.Episode, error) {
	return scanEpisode(d.db.QueryRow(
		"SELECT "+episodeColumns+" FROM episodes WHERE guid = ?", guid))
}

func (d *Database) ListEpisodes() ([]*models.Episode, error) {
	rows, err := d.db.Query("SELECT " + episodeColumns + " FROM episodes ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	episodes := []*models.Episode{}
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

func (d *Database) SetAudioPath(guid, path string, duration float64) error {
	_, err := d.db.Exec(
		"UPDATE episodes SET audio_path = ?, duration = ?, updated_at = ? WHERE guid = ?",
		path, duration, time.Now(), guid,
	)
	return err
}

func (d *Database) SetTranscriptPath(guid, filename string) error {
	_, err := d.db.Exec(
		"UPDATE episodes SET transcript_path = ?, updated_at = ? WHERE guid = ?",
		filename, time.Now(), guid,
	)
	return err
}

func (d *Database) SetChaptersPath(guid, filename string) error {
	_, err := d.db.Exec(
		"UPDATE episodes SET chapters_path = ?, updated_at = ? WHERE guid = ?",
		filename, time.Now(), guid,
	)
	return err
}

// SetTranscriptionProgress writes the in-flight progress; nil clears it back
// to idle.
func (d *Database) SetTranscriptionProgress(guid string, progress *float64) error {
	var val sql.NullFloat64
	if progress != nil {
		val = sql.NullFloat64{Float64: *progress, Valid: true}
	}
	_, err := d.db.Exec(
		"UPDATE episodes SET transcription_progress = ? WHERE guid = ?",
		val, guid,
	)
	return err
}

func (d *Database) DeleteEpisode(guid string) error {
	_, err := d.db.Exec("DELETE FROM episodes WHERE guid = ?", guid)
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}
