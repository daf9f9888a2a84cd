package book

import (
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/notnil/chess"
	_ "modernc.org/sqlite"
)

// Book is a read-only store mapping a normalized position key to a
// recommended move. It serves either from an embedded SQLite file or from a
// gzipped JSON map held in memory. All lookup paths are safe for concurrent
// readers: the map is never written after load and sql.DB pools connections.
type Book struct {
	entries map[string]string
	db      *sql.DB
}

// Load opens a book file. Paths ending in ".db" are read as SQLite with a
// `book` table of (key, move) pairs; paths ending in ".gz" as a gzipped JSON
// object. Any failure to open or parse yields an empty book: playing without
// a book is a normal state, not an error.
func Load(path string) *Book {
	b, err := load(path)
	if err != nil {
		log.Printf("book: %v, continuing without a book", err)
		return &Book{}
	}
	return b
}

func load(path string) (*Book, error) {
	if path == "" {
		return &Book{}, nil
	}
	switch {
	case strings.HasSuffix(path, ".db"):
		return loadSQLite(path)
	case strings.HasSuffix(path, ".gz"):
		return loadGzipJSON(path)
	}
	return nil, fmt.Errorf("unsupported book format %q", path)
}

func loadSQLite(path string) (*Book, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open book %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open book %s: %w", path, err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM book`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("probe book %s: %w", path, err)
	}
	return &Book{db: db}, nil
}

func loadGzipJSON(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book %s: %w", path, err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read book %s: %w", path, err)
	}
	defer gz.Close()
	entries := make(map[string]string)
	if err := json.NewDecoder(gz).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode book %s: %w", path, err)
	}
	return &Book{entries: entries}, nil
}

// Lookup returns the book move for pos. A missing key, an unparsable stored
// move and an illegal stored move are all misses, never errors.
func (b *Book) Lookup(pos *chess.Position) (*chess.Move, bool) {
	raw, ok := b.rawLookup(Key(pos))
	if !ok {
		return nil, false
	}
	move, err := chess.UCINotation{}.Decode(pos, raw)
	if err != nil {
		return nil, false
	}
	for _, legal := range pos.ValidMoves() {
		if legal.String() == move.String() {
			return legal, true
		}
	}
	return nil, false
}

func (b *Book) rawLookup(key string) (string, bool) {
	if b.db != nil {
		var move string
		err := b.db.QueryRow(`SELECT move FROM book WHERE key = ?`, key).Scan(&move)
		if err != nil {
			if err != sql.ErrNoRows {
				log.Printf("book: lookup %q: %v", key, err)
			}
			return "", false
		}
		return move, true
	}
	move, ok := b.entries[key]
	return move, ok
}

// Len reports the number of entries for in-memory books and -1 for SQLite
// ones, where counting every row up front is not worth it.
func (b *Book) Len() int {
	if b.db != nil {
		return -1
	}
	return len(b.entries)
}

func (b *Book) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Key normalizes a position to its first four FEN fields (placement, side to
// move, castling rights, en-passant target). Dropping the move counters
// collapses transpositions onto one key.
func Key(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return pos.String()
	}
	return strings.Join(fields[:4], " ")
}
