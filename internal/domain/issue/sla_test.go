package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSLATarget(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, createdAt.Add(24*time.Hour), SLATarget(createdAt, 24))
	// Windows beyond a day must not snap to day boundaries.
	assert.Equal(t, createdAt.Add(72*time.Hour), SLATarget(createdAt, 72))
	assert.Equal(t, createdAt.Add(time.Hour), SLATarget(createdAt, 1))
}

func TestSLABreached(t *testing.T) {
	target := time.Now().UTC().Add(time.Hour)

	onTime := target.Add(-30 * time.Minute)
	late := target.Add(30 * time.Minute)

	assert.False(t, SLABreached(target, &onTime))
	assert.True(t, SLABreached(target, &late))

	// Unresolved: judged against now.
	assert.False(t, SLABreached(target, nil))
	assert.True(t, SLABreached(time.Now().UTC().Add(-time.Minute), nil))
}

func TestSLACompliance(t *testing.T) {
	tests := []struct {
		name          string
		within        int64
		totalResolved int64
		want          float64
	}{
		{"no resolved issues is vacuously compliant", 0, 0, 100},
		{"all within target", 10, 10, 100},
		{"all breached", 0, 10, 0},
		{"half within target", 5, 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SLACompliance(tt.within, tt.totalResolved), 0.0001)
		})
	}
}
