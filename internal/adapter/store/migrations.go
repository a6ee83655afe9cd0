package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"symdoc/config"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keyConfigHash    = []byte("config_hash")
)

// SchemaInfo stores schema version and configuration hash.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

// GetSchemaInfo retrieves the current schema info from the database.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}

		if versionData := b.Get(keySchemaVersion); versionData != nil {
			if err := json.Unmarshal(versionData, &info.Version); err != nil {
				info.Version = 0
			}
		}
		if hashData := b.Get(keyConfigHash); hashData != nil {
			info.ConfigHash = string(hashData)
		}
		return nil
	})
	return &info, err
}

// SetSchemaInfo stores the schema info in the database.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)

		versionData, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, versionData); err != nil {
			return err
		}
		return b.Put(keyConfigHash, []byte(info.ConfigHash))
	})
}

// ComputeConfigHash hashes everything that changes what a file extracts to:
// the rule set fingerprint and the read limits.
func ComputeConfigHash(cfg *config.Config, rulesFingerprint string) string {
	relevant := struct {
		Rules       string `json:"rules"`
		MaxFileSize int64  `json:"max_file_size"`
	}{
		Rules:       rulesFingerprint,
		MaxFileSize: cfg.Scan.MaxFileSize,
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// MigrationResult describes the result of a migration check.
type MigrationResult struct {
	NeedsRebuild bool
	OldVersion   int
	NewVersion   int
	Reason       string
}

// CheckMigration reports whether cached entries were produced under a
// different schema or configuration.
func (s *BoltStore) CheckMigration(configHash string) (*MigrationResult, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	result := &MigrationResult{
		OldVersion: info.Version,
		NewVersion: CurrentSchemaVersion,
	}

	switch {
	case info.Version == 0 && info.ConfigHash == "":
		// Fresh cache, nothing to invalidate.
	case info.Version != CurrentSchemaVersion:
		result.NeedsRebuild = true
		result.Reason = fmt.Sprintf("schema version changed (%d -> %d)", info.Version, CurrentSchemaVersion)
	case info.ConfigHash != configHash:
		result.NeedsRebuild = true
		result.Reason = "extraction rules or limits changed"
	}

	return result, nil
}

// Prepare opens the cache at path, clears it when stale and records the
// current schema info.
func Prepare(path, configHash string) (*BoltStore, *MigrationResult, error) {
	st, err := NewBoltStore(path)
	if err != nil {
		return nil, nil, err
	}

	result, err := st.CheckMigration(configHash)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if result.NeedsRebuild {
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	if err := st.SetSchemaInfo(&SchemaInfo{Version: CurrentSchemaVersion, ConfigHash: configHash}); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to update schema info: %w", err)
	}
	return st, result, nil
}
