package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"symdoc/internal/port"
)

var (
	bucketFiles = []byte("files")
	bucketMeta  = []byte("meta")
)

// BoltStore is a port.SymbolStore backed by a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	// A second symdoc process holding the lock makes this fail instead of
	// blocking; callers fall back to running uncached.
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketFiles, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) GetFile(path string) (port.CachedFile, bool, error) {
	var entry port.CachedFile
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFiles).Get([]byte(path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			// A corrupt entry is a cache miss.
			return nil
		}
		found = true
		return nil
	})
	return entry, found, err
}

// PutFiles writes all entries in a single transaction.
func (s *BoltStore) PutFiles(files []port.CachedFile) error {
	if len(files) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		for _, f := range files {
			data, err := json.Marshal(f)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(f.Path), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) ListFiles() ([]port.CachedFile, error) {
	var files []port.CachedFile
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFiles).ForEach(func(k, v []byte) error {
			var f port.CachedFile
			if err := json.Unmarshal(v, &f); err != nil {
				return nil
			}
			files = append(files, f)
			return nil
		})
	})
	return files, err
}

func (s *BoltStore) Prune(keep map[string]bool) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			if !keep[string(k)] {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Clear drops every cached file entry.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketFiles); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketFiles)
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
