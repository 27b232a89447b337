package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/ubuntu733/opendial/assignment"
	"github.com/ubuntu733/opendial/values"
)

var (
	// ErrNotFound indicates no assignment is stored under the requested name
	ErrNotFound = errors.New("assignment not found")

	// ErrInvalidName indicates a name that cannot be used as a key
	ErrInvalidName = errors.New("invalid assignment name")
)

// Key layout:
//
//	n/<name>               -> empty, marks that <name> exists
//	v/<name>\x00<variable> -> values.Encode(value)
const (
	namePrefix = "n/"
	varPrefix  = "v/"
	separator  = "\x00"
)

// Options configures a Store
type Options struct {
	// Path is the badger directory; ignored when InMemory is set
	Path string

	// InMemory keeps everything in memory (tests, dry runs)
	InMemory bool

	// Logger receives store and badger messages; nil discards them
	Logger *zerolog.Logger
}

// Store persists named assignments in BadgerDB
type Store struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens or creates a store
func Open(opts Options) (*Store, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, fmt.Errorf("store path is required unless in-memory")
		}
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts.Logger = badgerLogger{log: logger.With().Str("component", "badger").Logger()}

	// Assignments are small; keep values in the LSM tree
	bopts.ValueThreshold = 1 << 10

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	logger.Debug().Str("path", opts.Path).Bool("in_memory", opts.InMemory).Msg("opened assignment store")
	return &Store{db: db, log: logger}, nil
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a under name, replacing whatever was stored there before
func (s *Store) Put(name string, a assignment.Assignment) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := deletePrefix(txn, varsPrefix(name)); err != nil {
			return err
		}
		if err := txn.Set(nameKey(name), []byte{}); err != nil {
			return fmt.Errorf("failed to write name: %w", err)
		}
		for _, variable := range a.Vars() {
			v, _ := a.Get(variable)
			if err := txn.Set(varKey(name, variable), values.Encode(v)); err != nil {
				return fmt.Errorf("failed to write variable %q: %w", variable, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store assignment %q: %w", name, err)
	}

	s.log.Debug().Str("assignment", name).Int("vars", a.Len()).Msg("stored assignment")
	return nil
}

// Get loads the assignment stored under name
func (s *Store) Get(name string) (assignment.Assignment, error) {
	if err := validateName(name); err != nil {
		return assignment.Assignment{}, err
	}

	vars := make(map[string]values.Value)
	err := s.db.View(func(txn *badger.Txn) error {
		if err := checkExists(txn, name); err != nil {
			return err
		}

		prefix := varsPrefix(name)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			variable := string(item.Key()[len(prefix):])
			err := item.Value(func(val []byte) error {
				v, err := values.Decode(val)
				if err != nil {
					return fmt.Errorf("variable %q: %w", variable, err)
				}
				vars[variable] = v
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return assignment.Assignment{}, err
		}
		return assignment.Assignment{}, fmt.Errorf("failed to load assignment %q: %w", name, err)
	}

	return assignment.New(vars), nil
}

// Delete removes the assignment stored under name
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := checkExists(txn, name); err != nil {
			return err
		}
		if err := deletePrefix(txn, varsPrefix(name)); err != nil {
			return err
		}
		return txn.Delete(nameKey(name))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete assignment %q: %w", name, err)
	}

	s.log.Debug().Str("assignment", name).Msg("deleted assignment")
	return nil
}

// Names returns the stored assignment names in sorted order
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(namePrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()[len(namePrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return names, nil
}

func checkExists(txn *badger.Txn, name string) error {
	_, err := txn.Get(nameKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return err
}

// deletePrefix removes every key under prefix. Keys are collected first and
// deleted once the iterator is closed.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	var keys [][]byte
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.Contains(name, separator) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, name)
	}
	return nil
}

func nameKey(name string) []byte {
	return []byte(namePrefix + name)
}

func varsPrefix(name string) []byte {
	return []byte(varPrefix + name + separator)
}

func varKey(name, variable string) []byte {
	return []byte(varPrefix + name + separator + variable)
}
