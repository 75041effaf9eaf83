// Package store persists assertion source text in BadgerDB, keyed by
// principal. The evaluation core holds no disk state; the store owns
// persistence and recompiles the full database on load, so a query
// always runs against an immutable snapshot.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
	"github.com/wbrown/janus-soutei/soutei/modecheck"
	"github.com/wbrown/janus-soutei/soutei/parser"
)

const assertionPrefix = "assertion/"

// Store is a BadgerDB-backed assertion store.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) a store at the given path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is too chatty for a CLI tool

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Install parses, mode-checks, and persists an assertion's source text
// for the principal. The natives map supplies the signatures the mode
// checker consults; a failing check rejects the install.
func (s *Store) Install(principal string, source string, natives map[string]engine.NativeAssertion) error {
	rules, err := parser.ParseAssertion(source)
	if err != nil {
		return fmt.Errorf("assertion %q: %w", principal, err)
	}

	if violations := modecheck.CheckAssertion(rules, natives); len(violations) > 0 {
		return fmt.Errorf("assertion %q: %w", principal, violations[0])
	}

	// Compile once up front so a syntactically valid but malformed
	// assertion never reaches the store.
	if _, err := engine.CompileRules(rules); err != nil {
		return fmt.Errorf("assertion %q: %w", principal, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(assertionKey(principal), []byte(source))
	})
	if err != nil {
		return fmt.Errorf("failed to persist assertion %q: %w", principal, err)
	}

	s.logger.Info("assertion installed",
		zap.String("principal", principal),
		zap.Int("rules", len(rules)))
	return nil
}

// Retract removes the principal's assertion.
func (s *Store) Retract(principal string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(assertionKey(principal))
	})
	if err != nil {
		return fmt.Errorf("failed to retract assertion %q: %w", principal, err)
	}

	s.logger.Info("assertion retracted", zap.String("principal", principal))
	return nil
}

// Source returns the stored source text for a principal.
func (s *Store) Source(principal string) (string, error) {
	var source string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(assertionKey(principal))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			source = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", fmt.Errorf("no assertion for principal %q", principal)
	}
	return source, err
}

// Principals lists every principal with a stored assertion.
func (s *Store) Principals() ([]string, error) {
	var principals []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(assertionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			principals = append(principals, string(key[len(prefix):]))
		}
		return nil
	})
	return principals, err
}

// Load compiles every stored assertion plus the supplied native
// assertions into a fresh database snapshot.
func (s *Store) Load(natives map[string]engine.NativeAssertion) (engine.Database, error) {
	db := engine.NewDatabase()

	principals, err := s.Principals()
	if err != nil {
		return db, err
	}

	for _, principal := range principals {
		source, err := s.Source(principal)
		if err != nil {
			return db, err
		}
		rules, err := parser.ParseAssertion(source)
		if err != nil {
			return db, fmt.Errorf("assertion %q: %w", principal, err)
		}
		asn, err := engine.CompileRules(rules)
		if err != nil {
			return db, fmt.Errorf("assertion %q: %w", principal, err)
		}
		db = db.InstallRules(soutei.String(principal), asn)
	}

	for name, asn := range natives {
		db = db.InstallNative(name, asn)
	}

	s.logger.Debug("database loaded",
		zap.Int("assertions", len(principals)),
		zap.Int("native_assertions", len(natives)))
	return db, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

func assertionKey(principal string) []byte {
	return []byte(assertionPrefix + principal)
}
