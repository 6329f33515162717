package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/internal/database"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/logger"
)

func TestCleanupNowPurgesExpired(t *testing.T) {
	journal, err := database.NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	require.NoError(t, journal.Append("create", 1, "MV001", "First"))
	require.NoError(t, journal.StoreMetadata("MV001", &models.Metadata{Title: "First"}))

	// A negative retention treats everything as expired.
	svc := NewCleanup(journal, -time.Hour, logger.New())
	svc.CleanupNow()

	entries, err := journal.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 0)

	meta, err := journal.GetMetadata("MV001")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestCleanupKeepsFreshEntries(t *testing.T) {
	journal, err := database.NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	require.NoError(t, journal.Append("create", 1, "MV001", "First"))

	svc := NewCleanup(journal, time.Hour, logger.New())
	svc.CleanupNow()

	entries, err := journal.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStartStopIdempotent(t *testing.T) {
	journal, err := database.NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	svc := NewCleanup(journal, time.Hour, logger.New())
	svc.SetInterval(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.Start(ctx)
	svc.Start(ctx) // second Start is a no-op
	svc.Stop()
	svc.Stop() // second Stop is a no-op
}
