package issue

import (
	"time"

	"civicgrid/internal/shared/biztime"
)

// SLATarget converts a category's SLA allowance into an absolute deadline.
// Exact duration arithmetic: windows beyond 24h carry no day-boundary
// artifacts.
func SLATarget(createdAt time.Time, slaHours int) time.Time {
	return createdAt.Add(time.Duration(slaHours) * time.Hour)
}

// SLABreached reports whether the deadline was missed. A resolved issue is
// judged by its resolution time, an unresolved one by the current time.
func SLABreached(target time.Time, resolvedAt *time.Time) bool {
	if resolvedAt != nil {
		return resolvedAt.After(target)
	}
	return biztime.NowUTC().After(target)
}

// SLACompliance returns the percentage of resolved issues that met their
// target. A set with no resolved issues is vacuously compliant (100).
func SLACompliance(resolvedWithinTarget, totalResolved int64) float64 {
	if totalResolved == 0 {
		return 100
	}
	return float64(resolvedWithinTarget) / float64(totalResolved) * 100
}
