// Package authorization centralizes role-based capability checks for the
// issue lifecycle. Use cases consult this table before any transition instead
// of scattering role comparisons through handlers.
package authorization

import "civicgrid/internal/shared/constants"

// Role is the authenticated role of the acting user.
type Role string

const (
	RoleCitizen      Role = constants.RoleCitizen
	RoleFieldWorker  Role = constants.RoleFieldWorker
	RoleWardEngineer Role = constants.RoleWardEngineer
	RoleZoneOfficer  Role = constants.RoleZoneOfficer
	RoleSuperAdmin   Role = constants.RoleSuperAdmin
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleFieldWorker, RoleWardEngineer, RoleZoneOfficer, RoleSuperAdmin:
		return true
	}
	return false
}

// ParseRole returns the role for s, defaulting to citizen for unknown values.
func ParseRole(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}
	return RoleCitizen
}

// Capability is a named operation class gated by role.
type Capability string

const (
	// CanTransition gates generic status updates.
	CanTransition Capability = "CAN_TRANSITION"
	// CanVerify gates the dedicated verify/reject surface.
	CanVerify Capability = "CAN_VERIFY"
	// CanReassign gates reassignment of an issue to another engineer.
	CanReassign Capability = "CAN_REASSIGN"
	// CanUploadAfterMedia gates AFTER-photo uploads on an issue.
	CanUploadAfterMedia Capability = "CAN_UPLOAD_AFTER_MEDIA"
)

var capabilityRoles = map[Capability]map[Role]bool{
	CanTransition: {
		RoleWardEngineer: true,
		RoleZoneOfficer:  true,
		RoleSuperAdmin:   true,
	},
	CanVerify: {
		RoleZoneOfficer: true,
		RoleSuperAdmin:  true,
	},
	CanReassign: {
		RoleZoneOfficer: true,
		RoleSuperAdmin:  true,
	},
	CanUploadAfterMedia: {
		RoleFieldWorker:  true,
		RoleWardEngineer: true,
		RoleZoneOfficer:  true,
		RoleSuperAdmin:   true,
	},
}

// Can reports whether role holds the given capability.
func Can(role Role, capability Capability) bool {
	roles, ok := capabilityRoles[capability]
	if !ok {
		return false
	}
	return roles[role]
}
