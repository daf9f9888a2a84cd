package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gmkornilov/chess-weak-engines/pkg/book"
)

func main() {
	rare := flag.Bool("rare", false, "resolve each position to its least-played move instead of its most-played one")
	flag.Parse()
	if flag.NArg() < 2 {
		log.Fatal("usage: bookbuild [-rare] <out.db|out.json.gz> <games.pgn> ...")
	}
	out := flag.Arg(0)

	builder := book.NewBuilder()
	for _, path := range flag.Args()[1:] {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		err = builder.AddPGN(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	entries := builder.Entries()
	if *rare {
		entries = builder.RareEntries()
	}

	var err error
	switch {
	case strings.HasSuffix(out, ".db"):
		err = builder.WriteSQLite(out, entries)
	case strings.HasSuffix(out, ".gz"):
		err = builder.WriteGzipJSON(out, entries)
	default:
		log.Fatalf("unsupported book format %q", out)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d positions to %s", len(entries), out)
}
