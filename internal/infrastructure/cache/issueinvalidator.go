package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/shared/logger"
)

const scanBatchSize = 100

// RedisCacheInvalidator fans targeted deletions out across the read-cache
// namespaces after a mutation. Failures are logged and never propagated:
// every entry carries a TTL, so a missed invalidation heals itself.
type RedisCacheInvalidator struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisCacheInvalidator(client *redis.Client, log logger.Interface) *RedisCacheInvalidator {
	return &RedisCacheInvalidator{
		client: client,
		logger: log.Named("cache_invalidator"),
	}
}

var _ usecases.CacheInvalidator = (*RedisCacheInvalidator)(nil)

func (c *RedisCacheInvalidator) InvalidateIssue(ctx context.Context, ref usecases.InvalidationRef) {
	if ref.IssueID != 0 {
		if err := c.client.Del(ctx, IssueDetailKey(ref.IssueID)).Err(); err != nil {
			c.logger.Warnw("failed to drop issue detail key", "issue_id", ref.IssueID, "error", err)
		}
	}

	patterns := []string{IssueListPattern(), AdminStatsPattern()}
	if ref.WardID != 0 {
		patterns = append(patterns, WardPattern(ref.WardID))
	}
	if ref.ZoneID != 0 {
		patterns = append(patterns, ZonePattern(ref.ZoneID))
	}
	for _, userID := range ref.UserIDs {
		patterns = append(patterns, UserDashboardPattern(userID))
	}

	for _, pattern := range patterns {
		c.deleteByPattern(ctx, pattern)
	}
}

// deleteByPattern walks the keyspace with SCAN rather than KEYS so a large
// cache never blocks Redis.
func (c *RedisCacheInvalidator) deleteByPattern(ctx context.Context, pattern string) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("failed to delete cache key", "key", iter.Val(), "error", err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("error during cache scan", "pattern", pattern, "error", err)
		return
	}
	if deleted > 0 {
		c.logger.Debugw("invalidated cache keys", "pattern", pattern, "count", deleted)
	}
}
