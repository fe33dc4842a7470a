/*
Package store implements a SQLite backed library of VDP palettes, tiles and
name tables.

Tiles are deduplicated by their SHA-1 so a tile shared between several tile
sheets is only stored once.
*/
package store

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/bodgit/vdp"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a named palette, tile sheet or name table
// doesn't exist.
var ErrNotFound = errors.New("store: not found")

// DB is the asset library. It is safe for concurrent use.
type DB struct {
	db     *sql.DB
	logger *log.Logger
}

type querier interface {
	Exec(string, ...interface{}) (sql.Result, error)
	QueryRow(string, ...interface{}) *sql.Row
}

// New opens or creates the library in file.
func New(file string, logger *log.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// SQLite only allows one writer at a time
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (name TEXT NOT NULL, position INTEGER NOT NULL, tile_id INTEGER NOT NULL, PRIMARY KEY (name, position), FOREIGN KEY(tile_id) REFERENCES tile(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS mapping (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &DB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the library.
func (db *DB) Close() error {
	return db.db.Close()
}

// AddPalette stores p under name, replacing any existing palette.
func (db *DB) AddPalette(name string, p vdp.Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO palette (name, data) VALUES (?, ?)", name, b); err != nil {
		return err
	}
	return nil
}

// Palette returns the palette stored under name.
func (db *DB) Palette(name string) (vdp.Palette, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT data FROM palette WHERE name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return vdp.Palette{}, ErrNotFound
	case nil:
		return vdp.DecodePalette(b, vdp.Variable)
	default:
		return vdp.Palette{}, err
	}
}

func addTile(q querier, t vdp.Tile) (int64, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var id int64
	switch err := q.QueryRow("SELECT id FROM tile WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := q.Exec("INSERT INTO tile (sha1, data) VALUES (?, ?)", sha, b)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddTile stores t if it isn't already present and returns its id.
func (db *DB) AddTile(t vdp.Tile) (int64, error) {
	return addTile(db.db, t)
}

// Tile returns the tile with the given id.
func (db *DB) Tile(id int64) (vdp.Tile, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT data FROM tile WHERE id = ?", id).Scan(&b); err {
	case sql.ErrNoRows:
		return vdp.Tile{}, ErrNotFound
	case nil:
		return vdp.NewTile(b)
	default:
		return vdp.Tile{}, err
	}
}

// TileCount returns the number of unique tiles stored.
func (db *DB) TileCount() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM tile").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// AddTiles stores the ordered tile sheet tiles under name, replacing any
// existing sheet, and returns the id of each tile.
func (db *DB) AddTiles(name string, tiles []vdp.Tile) ([]int64, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sheet WHERE name = ?", name); err != nil {
		return nil, err
	}

	ids := make([]int64, len(tiles))
	for i, t := range tiles {
		if ids[i], err = addTile(tx, t); err != nil {
			return nil, err
		}
		if _, err := tx.Exec("INSERT INTO sheet (name, position, tile_id) VALUES (?, ?, ?)", name, i, ids[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	db.logger.Printf("Stored %d tiles as \"%s\"\n", len(tiles), name)

	return ids, nil
}

// Tiles returns the tile sheet stored under name.
func (db *DB) Tiles(name string) ([]vdp.Tile, error) {
	rows, err := db.db.Query("SELECT t.data FROM sheet AS s JOIN tile AS t ON s.tile_id = t.id WHERE s.name = ? ORDER BY s.position", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiles []vdp.Tile
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		t, err := vdp.NewTile(b)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tiles == nil {
		return nil, ErrNotFound
	}

	return tiles, nil
}

// AddMapping stores the name table entries under name, replacing any existing
// name table.
func (db *DB) AddMapping(name string, entries []vdp.MappingEntry) error {
	b := bytes.NewBuffer(make([]byte, 0, len(entries)*2))
	if err := vdp.WriteMapping(b, entries); err != nil {
		return err
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO mapping (name, data) VALUES (?, ?)", name, b.Bytes()); err != nil {
		return err
	}
	return nil
}

// Mapping returns the name table stored under name.
func (db *DB) Mapping(name string) ([]vdp.MappingEntry, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT data FROM mapping WHERE name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return vdp.ReadMapping(bytes.NewReader(b))
	default:
		return nil, err
	}
}
