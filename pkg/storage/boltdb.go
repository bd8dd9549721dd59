package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/traindeck/traindeck/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketApps = []byte("apps")
)

// BoltStore implements Store interface using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store under dataDir
func NewBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, "traindeck.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketApps); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketApps, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SaveApp persists a submission record (upsert)
func (s *BoltStore) SaveApp(rec *types.AppRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketApps)
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.ID), data)
	})
}

// GetApp returns the submission record with the given app id
func (s *BoltStore) GetApp(id string) (*types.AppRecord, error) {
	var rec types.AppRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketApps)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("app not found: %s", id)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListApps returns all submission records, most recent first
func (s *BoltStore) ListApps() ([]*types.AppRecord, error) {
	var recs []*types.AppRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketApps)
		return b.ForEach(func(k, v []byte) error {
			var rec types.AppRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			recs = append(recs, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].SubmittedAt.After(recs[j].SubmittedAt)
	})
	return recs, nil
}

// DeleteApp removes a submission record
func (s *BoltStore) DeleteApp(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketApps)
		return b.Delete([]byte(id))
	})
}
