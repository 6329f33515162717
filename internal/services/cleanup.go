package services

import (
	"context"
	"sync"
	"time"

	"github.com/cinevault/cinevault/internal/database"
	"github.com/cinevault/cinevault/pkg/logger"
)

const defaultCleanupInterval = 1 * time.Hour

// CleanupService periodically purges journal entries and persisted
// metadata older than the retention period.
type CleanupService struct {
	journal   *database.Journal
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	mu        sync.Mutex
	running   bool
	stopChan  chan struct{}
}

// NewCleanup creates a cleanup service with the given retention.
func NewCleanup(journal *database.Journal, retention time.Duration, log logger.Logger) *CleanupService {
	return &CleanupService{
		journal:   journal,
		logger:    log,
		interval:  defaultCleanupInterval,
		retention: retention,
		stopChan:  make(chan struct{}),
	}
}

// SetInterval sets how often cleanup runs.
func (c *CleanupService) SetInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
}

// Start begins periodic cleanup. Calling Start on a running service
// is a no-op.
func (c *CleanupService) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stopChan = make(chan struct{})
	stop := c.stopChan
	c.mu.Unlock()

	c.logger.Infof("[Cleanup] starting with interval %v, retention %v", c.interval, c.retention)

	c.performCleanup()
	go c.loop(ctx, stop)
}

// Stop halts periodic cleanup.
func (c *CleanupService) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	close(c.stopChan)
	c.logger.Infof("[Cleanup] stopped")
}

func (c *CleanupService) loop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-stop:
			return
		case <-ticker.C:
			c.performCleanup()
		}
	}
}

func (c *CleanupService) performCleanup() {
	if c.journal == nil {
		return
	}

	entries, err := c.journal.DeleteOlderThan(c.retention)
	if err != nil {
		c.logger.Errorf("[Cleanup] failed to purge audit entries: %v", err)
	}

	meta, err := c.journal.DeleteMetadataOlderThan(c.retention)
	if err != nil {
		c.logger.Errorf("[Cleanup] failed to purge metadata cache: %v", err)
	}

	if entries > 0 || meta > 0 {
		c.logger.Infof("[Cleanup] purged %d audit entries, %d metadata records", entries, meta)
	}
}

// CleanupNow performs an immediate cleanup pass.
func (c *CleanupService) CleanupNow() {
	c.performCleanup()
}
