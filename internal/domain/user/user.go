// Package user models the people in the platform: citizens reporting issues
// and the municipal staff working them. Engineers are scoped to exactly one
// ward, zone officers to exactly one zone.
package user

import (
	"fmt"
	"time"

	"civicgrid/internal/shared/authorization"
)

type User struct {
	id         uint
	name       string
	email      string
	role       authorization.Role
	wardID     *uint
	zoneID     *uint
	department string
	active     bool
	createdAt  time.Time
}

func ReconstructUser(
	id uint,
	name, email string,
	role authorization.Role,
	wardID, zoneID *uint,
	department string,
	active bool,
	createdAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if role == authorization.RoleWardEngineer && (wardID == nil || *wardID == 0) {
		return nil, fmt.Errorf("ward engineer must be scoped to a ward")
	}
	if role == authorization.RoleZoneOfficer && (zoneID == nil || *zoneID == 0) {
		return nil, fmt.Errorf("zone officer must be scoped to a zone")
	}

	return &User{
		id:         id,
		name:       name,
		email:      email,
		role:       role,
		wardID:     wardID,
		zoneID:     zoneID,
		department: department,
		active:     active,
		createdAt:  createdAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) Role() authorization.Role     { return u.role }
func (u *User) WardID() *uint                { return u.wardID }
func (u *User) ZoneID() *uint                { return u.zoneID }
func (u *User) Department() string           { return u.department }
func (u *User) IsActive() bool               { return u.active }
func (u *User) CreatedAt() time.Time         { return u.createdAt }

// BelongsToWard reports whether the user is scoped to the given ward.
func (u *User) BelongsToWard(wardID uint) bool {
	return u.wardID != nil && *u.wardID == wardID
}
