// badger_inspect dumps the entries of a convo-lab badger directory.
//
//	go run ./tools -db ./data/badger -prefix inbox:alice: -limit 50
package main

import (
	"convo-lab/infrastructure/storage"
	"convo-lab/internal/render"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "badger directory")
	prefix := flag.String("prefix", "msg:", "key prefix (msg:, inbox:, thread:, profile:, typing:)")
	kind := flag.String("kind", "", "only show one record kind, e.g. MESSAGE or MALFORMED")
	limit := flag.Int("limit", 200, "maximum number of rows")
	flag.Parse()

	db, err := openReadOnly(*dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", *dbPath, err)
	}
	defer db.Close()

	rows, err := scan(db, []byte(*prefix), *limit)
	if err != nil {
		log.Fatal(err)
	}
	if *kind != "" {
		rows = lo.Filter(rows, func(row render.RecordRow, _ int) bool {
			if row.Err != nil {
				return *kind == "MALFORMED"
			}
			return row.Kind == *kind
		})
	}
	render.Records(os.Stdout, rows)
}

// scan decodes up to limit entries under prefix. Undecodable values are
// returned as rows carrying their error.
func scan(db *badger.DB, prefix []byte, limit int) ([]render.RecordRow, error) {
	var rows []render.RecordRow
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(rows) < limit; it.Next() {
			key := string(it.Item().Key())
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", key, err)
			}
			record, err := storage.Describe(key, val)
			rows = append(rows, render.RecordRow{
				Key:    key,
				Kind:   record.Kind,
				ID:     record.ID,
				At:     record.At,
				Detail: record.Detail,
				Err:    err,
			})
		}
		return nil
	})
	return rows, err
}

// openReadOnly skips the directory lock so a running master can be inspected.
func openReadOnly(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
}
