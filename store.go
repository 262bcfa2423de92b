package sharecraft

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for social
// preview overrides.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS social_previews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image_url TEXT NOT NULL,
    is_default INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

const previewColumns = `id, path, title, description, image_url, is_default, created_at, updated_at`

func scanPreview(row interface{ Scan(...any) error }) (Preview, error) {
	var p Preview
	var isDefault int
	err := row.Scan(&p.ID, &p.Path, &p.Title, &p.Description, &p.ImageURL, &isDefault, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Preview{}, err
	}
	p.IsDefault = isDefault == 1
	return p, nil
}

// ListAll returns every override ordered by id descending.
func (s *Store) ListAll() ([]Preview, error) {
	rows, err := s.db.Query(`SELECT ` + previewColumns + ` FROM social_previews ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []Preview
	for rows.Next() {
		p, err := scanPreview(rows)
		if err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}
	return previews, rows.Err()
}

// Create inserts a new override and returns the stored record with its
// assigned id and timestamps. It fails with ErrDuplicatePath when the path
// is already taken.
func (s *Store) Create(p Preview) (Preview, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO social_previews (path, title, description, image_url, is_default, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Path, p.Title, p.Description, p.ImageURL, boolToInt(p.IsDefault), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Preview{}, ErrDuplicatePath
		}
		return Preview{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Preview{}, err
	}
	return s.GetByID(id)
}

// Update overwrites an existing override's fields and refreshes updated_at,
// returning the stored record. It fails with ErrNotFound when the id is
// absent and ErrDuplicatePath when the new path collides with another
// record.
func (s *Store) Update(id int64, p Preview) (Preview, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE social_previews SET path = ?, title = ?, description = ?, image_url = ?, is_default = ?, updated_at = ? WHERE id = ?`,
		p.Path, p.Title, p.Description, p.ImageURL, boolToInt(p.IsDefault), now, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Preview{}, ErrDuplicatePath
		}
		return Preview{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Preview{}, err
	}
	if affected == 0 {
		return Preview{}, ErrNotFound
	}
	return s.GetByID(id)
}

// Delete removes an override by id. Deleting an absent id is a silent
// no-op.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM social_previews WHERE id = ?`, id)
	return err
}

// GetByID returns a single override by id.
func (s *Store) GetByID(id int64) (Preview, error) {
	row := s.db.QueryRow(`SELECT `+previewColumns+` FROM social_previews WHERE id = ?`, id)
	p, err := scanPreview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preview{}, ErrNotFound
	}
	return p, err
}

// GetByPath returns the override whose path matches exactly.
func (s *Store) GetByPath(path string) (Preview, error) {
	row := s.db.QueryRow(`SELECT `+previewColumns+` FROM social_previews WHERE path = ?`, path)
	p, err := scanPreview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preview{}, ErrNotFound
	}
	return p, err
}

// GetDefault returns the fallback override. The schema permits several
// records with is_default set; the oldest one (lowest id) wins so the
// result is deterministic.
func (s *Store) GetDefault() (Preview, error) {
	row := s.db.QueryRow(`SELECT ` + previewColumns + ` FROM social_previews WHERE is_default = 1 ORDER BY id ASC LIMIT 1`)
	p, err := scanPreview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preview{}, ErrNotFound
	}
	return p, err
}

// CountAll returns the total number of overrides.
func (s *Store) CountAll() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM social_previews`).Scan(&n)
	return n, err
}

// CountCustom returns the number of non-default overrides.
func (s *Store) CountCustom() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM social_previews WHERE is_default = 0`).Scan(&n)
	return n, err
}

// RecentPages returns the most recently updated overrides for the admin
// dashboard, newest first.
func (s *Store) RecentPages(limit int) ([]RecentPage, error) {
	rows, err := s.db.Query(`
		SELECT path,
		       CASE WHEN is_default = 1 THEN 'Default' ELSE 'Custom' END,
		       updated_at
		FROM social_previews
		ORDER BY updated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []RecentPage
	for rows.Next() {
		var p RecentPage
		if err := rows.Scan(&p.URL, &p.PreviewType, &p.LastModified); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
