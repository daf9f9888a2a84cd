package book

import (
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/notnil/chess"
)

// Builder accumulates per-position move counts from games and writes the
// most-played move per key in either serving format. It is an offline tool;
// nothing in the serving path ever writes a book.
type Builder struct {
	counts map[string]map[string]int
}

func NewBuilder() *Builder {
	return &Builder{counts: make(map[string]map[string]int)}
}

// AddPGN reads every game in a PGN stream into the builder.
func (b *Builder) AddPGN(r io.Reader) error {
	games, err := chess.GamesFromPGN(r)
	if err != nil {
		return fmt.Errorf("read pgn: %w", err)
	}
	for _, game := range games {
		b.AddGame(game)
	}
	return nil
}

// AddGame counts every move of the game under its position's key.
func (b *Builder) AddGame(game *chess.Game) {
	positions := game.Positions()
	for i, move := range game.Moves() {
		key := Key(positions[i])
		if b.counts[key] == nil {
			b.counts[key] = make(map[string]int)
		}
		b.counts[key][move.String()]++
	}
}

// Entries resolves each key to its most-played move, breaking count ties by
// the lexicographically smallest move string so builds are reproducible.
func (b *Builder) Entries() map[string]string {
	return b.resolve(func(cur, best int) bool { return cur > best })
}

// RareEntries resolves each key to its least-played move, for books that
// steer into offbeat openings. Ties break like Entries.
func (b *Builder) RareEntries() map[string]string {
	return b.resolve(func(cur, best int) bool { return cur < best })
}

func (b *Builder) resolve(better func(cur, best int) bool) map[string]string {
	entries := make(map[string]string, len(b.counts))
	for key, moves := range b.counts {
		names := make([]string, 0, len(moves))
		for move := range moves {
			names = append(names, move)
		}
		sort.Strings(names)
		best := names[0]
		for _, move := range names[1:] {
			if better(moves[move], moves[best]) {
				best = move
			}
		}
		entries[key] = best
	}
	return entries
}

// WriteGzipJSON writes a resolved entry set as a gzipped JSON object.
func (b *Builder) WriteGzipJSON(path string, entries map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create book %s: %w", path, err)
	}
	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(entries); err != nil {
		f.Close()
		return fmt.Errorf("encode book %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush book %s: %w", path, err)
	}
	return f.Close()
}

// WriteSQLite writes a resolved entry set into a fresh SQLite file. The raw
// counts go into a build-time `counts` table that is dropped before the file
// is finished, leaving only the `book` table for serving.
func (b *Builder) WriteSQLite(path string, entries map[string]string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("create book %s: %w", path, err)
	}
	defer db.Close()

	stmts := []string{
		`DROP TABLE IF EXISTS book`,
		`DROP TABLE IF EXISTS counts`,
		`CREATE TABLE book (key TEXT PRIMARY KEY, move TEXT NOT NULL)`,
		`CREATE TABLE counts (key TEXT NOT NULL, move TEXT NOT NULL, n INTEGER NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("prepare book %s: %w", path, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("write book %s: %w", path, err)
	}
	for key, moves := range b.counts {
		for move, n := range moves {
			if _, err := tx.Exec(`INSERT INTO counts (key, move, n) VALUES (?, ?, ?)`, key, move, n); err != nil {
				tx.Rollback()
				return fmt.Errorf("write book %s: %w", path, err)
			}
		}
	}
	for key, move := range entries {
		if _, err := tx.Exec(`INSERT INTO book (key, move) VALUES (?, ?)`, key, move); err != nil {
			tx.Rollback()
			return fmt.Errorf("write book %s: %w", path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write book %s: %w", path, err)
	}
	if _, err := db.Exec(`DROP TABLE counts`); err != nil {
		return fmt.Errorf("finish book %s: %w", path, err)
	}
	return nil
}
