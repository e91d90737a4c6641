// Package constants defines application-wide constant values.
package constants

import "time"

// User roles
const (
	RoleCitizen      = "CITIZEN"
	RoleFieldWorker  = "FIELD_WORKER"
	RoleWardEngineer = "WARD_ENGINEER"
	RoleZoneOfficer  = "ZONE_OFFICER"
	RoleSuperAdmin   = "SUPER_ADMIN"
)

// Ticket numbering
const (
	// TicketPrefix is the human-readable prefix of every ticket number.
	TicketPrefix = "CIV"
	// TicketSequenceDigits is the zero-padded width of the yearly sequence.
	TicketSequenceDigits = 6
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Cache TTLs
const (
	// WardResolverTTL bounds how long a coordinate-to-ward lookup is memoized.
	// Ward boundaries rarely change, so tens of minutes is safe.
	WardResolverTTL = 30 * time.Minute
	// AssigneeSelectorTTL is deliberately short so engineer availability
	// changes are picked up in near real time.
	AssigneeSelectorTTL = 5 * time.Minute
)

// CoordinatePrecision is the number of decimal places coordinates are rounded
// to when used as cache keys (~11m, absorbs GPS jitter).
const CoordinatePrecision = 4
