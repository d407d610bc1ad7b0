package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	appbilling "github.com/billfold/backend/internal/application/billing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const summaryKeyPrefix = "billing:summary:"

// RedisSummaryCache stores invoice status summaries in Redis with a TTL.
// Suitable for multi-instance deployments where the summaries must stay
// consistent across processes.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSummaryCache creates a cache over an existing Redis client
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached summary for the account, if present
func (c *RedisSummaryCache) Get(ctx context.Context, accountID uuid.UUID) (*appbilling.InvoiceStatusSummary, bool) {
	data, err := c.client.Get(ctx, summaryKey(accountID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("summary cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var summary appbilling.InvoiceStatusSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("summary cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &summary, true
}

// Set stores the summary for the account
func (c *RedisSummaryCache) Set(ctx context.Context, accountID uuid.UUID, summary *appbilling.InvoiceStatusSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("summary cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, summaryKey(accountID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("summary cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached summary for the account
func (c *RedisSummaryCache) Invalidate(ctx context.Context, accountID uuid.UUID) {
	if err := c.client.Del(ctx, summaryKey(accountID)).Err(); err != nil {
		c.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

func summaryKey(accountID uuid.UUID) string {
	return fmt.Sprintf("%s%s", summaryKeyPrefix, accountID)
}

// InMemorySummaryCache is a process-local summary cache for
// single-instance deployments and tests
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]inMemoryEntry
	ttl     time.Duration
}

type inMemoryEntry struct {
	summary   appbilling.InvoiceStatusSummary
	expiresAt time.Time
}

// NewInMemorySummaryCache creates an in-memory summary cache
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	return &InMemorySummaryCache{
		entries: make(map[uuid.UUID]inMemoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached summary for the account, if present and fresh
func (c *InMemorySummaryCache) Get(ctx context.Context, accountID uuid.UUID) (*appbilling.InvoiceStatusSummary, bool) {
	c.mu.RLock()
	entry, ok := c.entries[accountID]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	summary := entry.summary
	return &summary, true
}

// Set stores the summary for the account
func (c *InMemorySummaryCache) Set(ctx context.Context, accountID uuid.UUID, summary *appbilling.InvoiceStatusSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[accountID] = inMemoryEntry{
		summary:   *summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached summary for the account
func (c *InMemorySummaryCache) Invalidate(ctx context.Context, accountID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, accountID)
}

var (
	_ appbilling.SummaryCache = (*RedisSummaryCache)(nil)
	_ appbilling.SummaryCache = (*InMemorySummaryCache)(nil)
)
