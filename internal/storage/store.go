package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var metaBucket = []byte("metadata")

// ErrNotFound is returned when an item id is not in the catalog.
var ErrNotFound = errors.New("item not found")

func bucketFor(kind Kind) ([]byte, error) {
	switch kind {
	case KindApplication:
		return []byte("applications"), nil
	case KindPlace:
		return []byte("places"), nil
	case KindDocument:
		return []byte("documents"), nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

// Store is the bbolt-backed item catalog.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{metaBucket}
		for _, k := range Kinds {
			b, _ := bucketFor(k)
			buckets = append(buckets, b)
		}
		for _, bucket := range buckets {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveItems writes items in a single transaction, replacing existing ids.
func (s *Store) SaveItems(items []*Item) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, item := range items {
			if item.ID == "" {
				return fmt.Errorf("item %q has no id", item.Name)
			}
			name, err := bucketFor(item.Kind)
			if err != nil {
				return err
			}
			if item.AddedAt.IsZero() {
				item.AddedAt = time.Now()
			}
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			if err := tx.Bucket(name).Put([]byte(item.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetItem(kind Kind, id string) (*Item, error) {
	name, err := bucketFor(kind)
	if err != nil {
		return nil, err
	}
	var item Item
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(name).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems returns every item of kind sorted by name, case-insensitively.
func (s *Store) GetItems(kind Kind) ([]*Item, error) {
	name, err := bucketFor(kind)
	if err != nil {
		return nil, err
	}
	var items []*Item
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(name).ForEach(func(_ []byte, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return nil
			}
			items = append(items, &item)
			return nil
		})
	})
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, err
}

func (s *Store) DeleteItem(kind Kind, id string) error {
	name, err := bucketFor(kind)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(name).Delete([]byte(id))
	})
}

// Count returns the number of items of kind.
func (s *Store) Count(kind Kind) (int, error) {
	name, err := bucketFor(kind)
	if err != nil {
		return 0, err
	}
	n := 0
	err = s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(name).Stats().KeyN
		return nil
	})
	return n, err
}

// SetMeta stores a small string value, such as the catalog version.
func (s *Store) SetMeta(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put([]byte(key), []byte(value))
	})
}

// Meta returns a stored value, or "" when unset.
func (s *Store) Meta(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket(metaBucket).Get([]byte(key)))
		return nil
	})
	return value, err
}
