// Package cache contains the Redis-backed read cache and the invalidation
// fan-out for the issue lifecycle.
package cache

import "fmt"

// Key builders for every cache namespace. All mutation-driven invalidation
// uses these builders; free-form key strings outside this file are a bug.
// Every pattern is scoped by an identifier so an issue in one ward can never
// drop another ward's entries.

func IssueDetailKey(issueID uint) string {
	return fmt.Sprintf("issues:detail:%d", issueID)
}

func IssueListPattern() string {
	return "issues:list:*"
}

func WardPattern(wardID uint) string {
	return fmt.Sprintf("issues:ward:%d:*", wardID)
}

func WardStatsKey(wardID uint) string {
	return fmt.Sprintf("issues:ward:%d:stats", wardID)
}

func ZonePattern(zoneID uint) string {
	return fmt.Sprintf("issues:zone:%d:*", zoneID)
}

func AdminStatsPattern() string {
	return "stats:admin:*"
}

func AdminStatsKey() string {
	return "stats:admin:citywide"
}

func UserDashboardPattern(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d:*", userID)
}
