// Package bolt implements db.Store on an embedded bbolt file.
// It mirrors the Redis driver's hash/set/kv surface so the two are
// interchangeable behind the driver switch.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/semdex/internal/db"
)

var (
	bucketHashes = []byte("hashes")
	bucketSets   = []byte("sets")
	bucketKV     = []byte("kv")
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store implements db.Store on a single bbolt file.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) the bolt file at path.
func NewStore(path string) (*Store, error) {
	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketHashes, bucketSets, bucketKV} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}

	return &Store{db: bdb}, nil
}

// Ping verifies the underlying file handle is usable.
func (s *Store) Ping(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketKV) == nil {
			return fmt.Errorf("kv bucket missing")
		}
		return nil
	})
}

// Close closes the bolt file.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady is immediate for an embedded store.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// HSet stores all fields of a hash in one write transaction, so a record
// becomes visible to readers atomically.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHashes).Put([]byte(key), data)
	})
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields := map[string]string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketHashes).Get([]byte(key))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &fields)
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return fields, nil
}

// Del deletes a hash key.
func (s *Store) Del(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHashes).Delete([]byte(key))
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks if a hash key exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketHashes).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return found, nil
}

// SAdd adds members to a set. Sets are nested buckets keyed by member.
func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		set, err := tx.Bucket(bucketSets).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := set.Put([]byte(m), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRem removes members from a set.
func (s *Store) SRem(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		set := tx.Bucket(bucketSets).Bucket([]byte(key))
		if set == nil {
			return nil
		}
		for _, m := range members {
			if err := set.Delete([]byte(m)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}

// SMembers returns all members of a set. A missing key yields an empty slice.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	var members []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		set := tx.Bucket(bucketSets).Bucket([]byte(key))
		if set == nil {
			return nil
		}
		return set.ForEach(func(k, _ []byte) error {
			members = append(members, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SCard returns the cardinality of a set.
func (s *Store) SCard(_ context.Context, key string) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		set := tx.Bucket(bucketSets).Bucket([]byte(key))
		if set == nil {
			return nil
		}
		n = int64(set.Stats().KeyN)
		return nil
	})
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return n, nil
}

// Get retrieves a value from the kv bucket.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketKV).Get([]byte(key))
		if data == nil {
			return db.ErrKeyNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// Set stores a value in the kv bucket.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKV).Put([]byte(key), value)
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
