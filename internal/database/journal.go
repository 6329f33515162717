package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timshannon/bolthold"

	"github.com/cinevault/cinevault/internal/models"
)

const (
	journalFileMode = 0600
	journalDirMode  = 0755
)

// AuditEntry records a single catalog mutation.
type AuditEntry struct {
	ID      uint64    `boltholdKey:"ID" json:"id"`
	Action  string    `json:"action"` // "create", "update" or "delete"
	MovieID int64     `json:"movie_id"`
	Code    string    `json:"code"`
	Title   string    `json:"title"`
	At      time.Time `json:"at"`
}

// MetadataRecord is a persisted external metadata lookup result.
type MetadataRecord struct {
	Code      string `boltholdKey:"Code"`
	Meta      models.Metadata
	CreatedAt time.Time
}

// Journal is the embedded BoltDB store holding the catalog change
// history and the persistent metadata cache.
type Journal struct {
	store *bolthold.Store
}

// NewJournal opens (or creates) the journal file.
func NewJournal(path string) (*Journal, error) {
	if path == "" {
		path = filepath.Join(".", "journal.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), journalDirMode); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	store, err := bolthold.Open(path, journalFileMode, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &Journal{store: store}, nil
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	return j.store.Close()
}

// Append records a catalog mutation.
func (j *Journal) Append(action string, movieID int64, code, title string) error {
	entry := &AuditEntry{
		Action:  action,
		MovieID: movieID,
		Code:    code,
		Title:   title,
		At:      time.Now(),
	}

	if err := j.store.Insert(bolthold.NextSequence(), entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := j.store.Find(&entries, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	// Sequence keys come back oldest-first.
	for i, k := 0, len(entries)-1; i < k; i, k = i+1, k-1 {
		entries[i], entries[k] = entries[k], entries[i]
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// DeleteOlderThan removes audit entries older than the given age and
// returns how many were dropped.
func (j *Journal) DeleteOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)

	var old []AuditEntry
	query := bolthold.Where("At").Lt(cutoff)
	if err := j.store.Find(&old, query); err != nil {
		return 0, fmt.Errorf("failed to find old audit entries: %w", err)
	}
	if len(old) == 0 {
		return 0, nil
	}

	if err := j.store.DeleteMatching(&AuditEntry{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete old audit entries: %w", err)
	}
	return len(old), nil
}

// GetMetadata returns the cached metadata for a catalog code, or nil
// when absent.
func (j *Journal) GetMetadata(code string) (*models.Metadata, error) {
	var rec MetadataRecord
	err := j.store.Get(code, &rec)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached metadata: %w", err)
	}
	return &rec.Meta, nil
}

// StoreMetadata persists a metadata lookup result for a catalog code.
func (j *Journal) StoreMetadata(code string, meta *models.Metadata) error {
	rec := &MetadataRecord{
		Code:      code,
		Meta:      *meta,
		CreatedAt: time.Now(),
	}

	if err := j.store.Upsert(code, rec); err != nil {
		return fmt.Errorf("failed to store metadata: %w", err)
	}
	return nil
}

// DeleteMetadataOlderThan removes cached metadata older than the given
// age and returns how many records were dropped.
func (j *Journal) DeleteMetadataOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)

	var old []MetadataRecord
	query := bolthold.Where("CreatedAt").Lt(cutoff)
	if err := j.store.Find(&old, query); err != nil {
		return 0, fmt.Errorf("failed to find old metadata: %w", err)
	}
	if len(old) == 0 {
		return 0, nil
	}

	if err := j.store.DeleteMatching(&MetadataRecord{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete old metadata: %w", err)
	}
	return len(old), nil
}
