package badger

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DB wraps a badger instance and runs periodic value-log garbage
// collection, which badger does not do on its own.
type DB struct {
	*badger.DB

	stopGC   chan struct{}
	stopOnce sync.Once
}

// New opens (or creates) a badger database at dbPath.
func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	db := &DB{
		DB:     bdb,
		stopGC: make(chan struct{}),
	}
	go db.gcLoop()
	return db, nil
}

func (db *DB) gcLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// RunValueLogGC reclaims at most one file per call; loop
			// until it reports nothing left to collect.
			for db.RunValueLogGC(0.5) == nil {
			}
		case <-db.stopGC:
			return
		}
	}
}

// Close stops garbage collection and closes the database.
func (db *DB) Close() error {
	db.stopOnce.Do(func() { close(db.stopGC) })
	return db.DB.Close()
}

// HealthCheck verifies the database accepts transactions.
func (db *DB) HealthCheck() error {
	if db.IsClosed() {
		return fmt.Errorf("badger db is closed")
	}
	return db.View(func(txn *badger.Txn) error {
		return nil
	})
}
