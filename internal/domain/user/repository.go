package user

import "context"

// UserRepository reads users. The issue core never writes users; account
// management is owned elsewhere.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	// FindWardEngineers returns active WARD_ENGINEER users of the ward
	// ordered by creation time ascending. An empty department matches all
	// departments.
	FindWardEngineers(ctx context.Context, wardID uint, department string) ([]*User, error)
}
