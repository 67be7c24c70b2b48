package smwgfx

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/bodgit/smwgfx/bpp"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog caches rendered sheets keyed by the contents of the source file,
// its format and the scale it was rendered at.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens or creates the catalog stored in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, format INTEGER NOT NULL, scale INTEGER NOT NULL, tiles INTEGER NOT NULL, png BLOB NOT NULL, UNIQUE(sha1, format, scale))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (sheet_id INTEGER NOT NULL, path TEXT NOT NULL UNIQUE, FOREIGN KEY(sheet_id) REFERENCES sheet(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func checksum(b []byte) string {
	h := sha1.Sum(b)
	return fmt.Sprintf("%X", h[:])
}

// Sheet is a cached rendering.
type Sheet struct {
	ID    int64
	Tiles int
	PNG   []byte
}

// FindSheet returns the sheet rendered from contents in format f at scale, or
// nil if there isn't one.
func (c *Catalog) FindSheet(contents []byte, f bpp.Format, scale int) (*Sheet, error) {
	s := new(Sheet)
	switch err := c.db.QueryRow("SELECT id, tiles, png FROM sheet WHERE sha1 = ? AND format = ? AND scale = ?", checksum(contents), f.Bits(), scale).Scan(&s.ID, &s.Tiles, &s.PNG); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return s, nil
	default:
		return nil, err
	}
}

// AddSheet stores a rendering of contents and returns its ID. Adding the same
// rendering twice returns the existing ID.
func (c *Catalog) AddSheet(contents []byte, f bpp.Format, scale, tiles int, png []byte) (int64, error) {
	sha := checksum(contents)

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM sheet WHERE sha1 = ? AND format = ? AND scale = ?", sha, f.Bits(), scale).Scan(&id); err {
	case sql.ErrNoRows:
		if _, err := c.db.Exec("INSERT OR IGNORE INTO sheet (sha1, format, scale, tiles, png) VALUES (?, ?, ?, ?, ?)", sha, f.Bits(), scale, tiles, png); err != nil {
			return 0, err
		}
		// Another worker may have inserted the same rendering first
		err := c.db.QueryRow("SELECT id FROM sheet WHERE sha1 = ? AND format = ? AND scale = ?", sha, f.Bits(), scale).Scan(&id)
		return id, err
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddSource records that the file at path was rendered as sheet.
func (c *Catalog) AddSource(path string, sheet int64) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO source (sheet_id, path) VALUES (?, ?)", sheet, path); err != nil {
		return err
	}
	return nil
}

// Sources returns the paths rendered as sheet.
func (c *Catalog) Sources(sheet int64) ([]string, error) {
	rows, err := c.db.Query("SELECT path FROM source WHERE sheet_id = ? ORDER BY path", sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
