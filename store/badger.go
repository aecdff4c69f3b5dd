package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// sessionPrefix namespaces session records inside the database.
const sessionPrefix = "session/"

// BadgerOptions configures the BadgerDB adapter.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool

	// Logger receives badger's warnings and errors. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// BadgerAdapter stores sessions in BadgerDB.
type BadgerAdapter struct {
	db *badger.DB
}

// NewBadgerAdapter opens (or creates) a BadgerDB database.
func NewBadgerAdapter(opts BadgerOptions) (*BadgerAdapter, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("store: BadgerOptions.Dir is required for on-disk mode")
	}

	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "badger").Logger()
	}
	dbOpts = dbOpts.WithLogger(badgerLogger{log: log})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &BadgerAdapter{db: db}, nil
}

// Get retrieves a value by key.
func (b *BadgerAdapter) Get(_ context.Context, key string) ([]byte, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionPrefix + key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, false, nil
	case errors.Is(err, badger.ErrDBClosed):
		return nil, false, ErrAdapterClosed
	case err != nil:
		return nil, false, err
	}
	return val, true, nil
}

// Set stores a value by key.
func (b *BadgerAdapter) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionPrefix+key), value)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrAdapterClosed
	}
	return err
}

// Delete removes a key.
func (b *BadgerAdapter) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionPrefix + key))
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil
	case errors.Is(err, badger.ErrDBClosed):
		return ErrAdapterClosed
	}
	return err
}

// Keys returns all session keys in ascending order.
func (b *BadgerAdapter) Keys(_ context.Context) ([]string, error) {
	prefix := []byte(sessionPrefix)
	var keys []string
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return nil, ErrAdapterClosed
	}
	return keys, err
}

// Close closes the database.
func (b *BadgerAdapter) Close() error {
	return b.db.Close()
}

// badgerLogger forwards badger warnings and errors to zerolog and drops the rest.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(f string, v ...any) {
	l.log.Error().Msgf(f, v...)
}

func (l badgerLogger) Warningf(f string, v ...any) {
	l.log.Warn().Msgf(f, v...)
}

func (badgerLogger) Infof(string, ...any) {}

func (badgerLogger) Debugf(string, ...any) {}

var _ Adapter = (*BadgerAdapter)(nil)
