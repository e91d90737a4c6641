package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeys_Scoped(t *testing.T) {
	assert.Equal(t, "issues:detail:42", IssueDetailKey(42))
	assert.Equal(t, "issues:ward:11:*", WardPattern(11))
	assert.Equal(t, "issues:ward:11:stats", WardStatsKey(11))
	assert.Equal(t, "issues:zone:2:*", ZonePattern(2))
	assert.Equal(t, "dashboard:user:5:*", UserDashboardPattern(5))
	assert.Equal(t, "stats:admin:citywide", AdminStatsKey())
}

func TestCacheKeys_WardPatternNeverMatchesOtherWard(t *testing.T) {
	// issues:ward:1:* must not cover ward 11 keys.
	pattern := WardPattern(1)
	prefix := strings.TrimSuffix(pattern, "*")
	assert.True(t, strings.HasPrefix(WardStatsKey(1), prefix))
	assert.False(t, strings.HasPrefix(WardStatsKey(11), prefix))
}
