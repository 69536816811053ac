// Package bbolt implements the ports.Storage interface using bbolt
// (embedded B+ tree). Datasets and run results live in their own top-level
// buckets as JSON blobs keyed by name. Writes are transactional — a crash
// mid-write cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/partialobs/simoos/internal/ports"
)

// Bucket keys
var (
	bucketDatasets = []byte("datasets")
	bucketRuns     = []byte("runs")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDataset persists a dataset under a name, overwriting any prior one.
func (s *Store) SaveDataset(name string, ds *ports.Dataset) error {
	if ds == nil {
		return fmt.Errorf("nil dataset")
	}
	enc := encodeDataset(ds)
	return s.put(bucketDatasets, name, &enc)
}

// LoadDataset retrieves a dataset by name. Returns nil, nil if absent.
func (s *Store) LoadDataset(name string) (*ports.Dataset, error) {
	var dj datasetJSON
	ok, err := s.get(bucketDatasets, name, &dj)
	if err != nil || !ok {
		return nil, err
	}
	return decodeDataset(dj), nil
}

// SaveRun persists a run result under an experiment name.
func (s *Store) SaveRun(experiment string, res *ports.RunResult) error {
	if res == nil {
		return fmt.Errorf("nil run result")
	}
	return s.put(bucketRuns, experiment, res)
}

// LoadRun retrieves a run result. Returns nil, nil if absent.
func (s *Store) LoadRun(experiment string) (*ports.RunResult, error) {
	var res ports.RunResult
	ok, err := s.get(bucketRuns, experiment, &res)
	if err != nil || !ok {
		return nil, err
	}
	return &res, nil
}

// ListRuns returns the names of all stored runs, sorted.
func (s *Store) ListRuns() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// DeleteExperiment removes the run stored under name. Idempotent: deleting
// a nonexistent run is not an error.
func (s *Store) DeleteExperiment(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}

// put JSON-marshals v and stores it under bucket/key.
func (s *Store) put(bucket []byte, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", bucket, key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), blob)
	})
}

// get loads bucket/key into v; ok is false when the entry is absent.
func (s *Store) get(bucket []byte, key string, v any) (bool, error) {
	var blob []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(key)); data != nil {
			blob = append(blob, data...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if blob == nil {
		return false, nil
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return false, fmt.Errorf("unmarshal %s/%s: %w", bucket, key, err)
	}
	return true, nil
}
