package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/shared/logger"
)

const (
	issueDetailTTL = 10 * time.Minute
	statsTTL       = 2 * time.Minute
)

// RedisIssueCache is the lazy read-through store for the issue detail and
// stats read models. Misses and Redis failures both read as cache misses;
// the caller falls back to the database.
type RedisIssueCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisIssueCache(client *redis.Client, log logger.Interface) *RedisIssueCache {
	return &RedisIssueCache{
		client: client,
		logger: log.Named("issue_cache"),
	}
}

var _ usecases.IssueReadCache = (*RedisIssueCache)(nil)

func (c *RedisIssueCache) GetIssueDetail(ctx context.Context, issueID uint) (*dto.IssueDTO, bool) {
	data, err := c.client.Get(ctx, IssueDetailKey(issueID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("failed to read issue detail from redis", "issue_id", issueID, "error", err)
		}
		return nil, false
	}

	var d dto.IssueDTO
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warnw("corrupt cached issue detail, dropping", "issue_id", issueID, "error", err)
		c.client.Del(ctx, IssueDetailKey(issueID))
		return nil, false
	}
	return &d, true
}

func (c *RedisIssueCache) SetIssueDetail(ctx context.Context, d *dto.IssueDTO) {
	data, err := json.Marshal(d)
	if err != nil {
		c.logger.Warnw("failed to marshal issue detail", "issue_id", d.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, IssueDetailKey(d.ID), data, issueDetailTTL).Err(); err != nil {
		c.logger.Warnw("failed to cache issue detail", "issue_id", d.ID, "error", err)
	}
}

func (c *RedisIssueCache) GetStats(ctx context.Context, wardID *uint) (*dto.StatsDTO, bool) {
	data, err := c.client.Get(ctx, statsKey(wardID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("failed to read stats from redis", "error", err)
		}
		return nil, false
	}

	var d dto.StatsDTO
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warnw("corrupt cached stats, dropping", "error", err)
		c.client.Del(ctx, statsKey(wardID))
		return nil, false
	}
	return &d, true
}

func (c *RedisIssueCache) SetStats(ctx context.Context, wardID *uint, d *dto.StatsDTO) {
	data, err := json.Marshal(d)
	if err != nil {
		c.logger.Warnw("failed to marshal stats", "error", err)
		return
	}
	if err := c.client.Set(ctx, statsKey(wardID), data, statsTTL).Err(); err != nil {
		c.logger.Warnw("failed to cache stats", "error", err)
	}
}

func statsKey(wardID *uint) string {
	if wardID == nil {
		return AdminStatsKey()
	}
	return WardStatsKey(*wardID)
}
