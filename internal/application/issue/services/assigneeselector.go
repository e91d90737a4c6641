// Package services contains application services composed by the issue use
// cases.
package services

import (
	"context"
	"fmt"

	"civicgrid/internal/domain/user"
	"civicgrid/internal/shared/cacheutil"
	"civicgrid/internal/shared/constants"
	"civicgrid/internal/shared/logger"
)

// selection memoizes both outcomes: a picked engineer and "nobody eligible".
type selection struct {
	userID uint
	found  bool
}

// AssigneeSelector picks the responsible engineer for a new or reassigned
// issue. Primary rule: earliest-created active WARD_ENGINEER in the ward
// matching the category department. Fallback: earliest-created active
// WARD_ENGINEER in the ward regardless of department. No eligible engineer
// is not an error; the issue stays OPEN.
//
// Results are cached per (ward, department) with a short TTL so engineer
// availability changes surface quickly. The key is ward-scoped by
// construction; two wards can never share a cached decision.
type AssigneeSelector struct {
	users  user.UserRepository
	cache  *cacheutil.TTLCache[selection]
	logger logger.Interface
}

func NewAssigneeSelector(users user.UserRepository, log logger.Interface) *AssigneeSelector {
	return &AssigneeSelector{
		users:  users,
		cache:  cacheutil.NewTTLCache[selection](constants.AssigneeSelectorTTL),
		logger: log.Named("issue.assignee_selector"),
	}
}

// Select returns the chosen engineer's ID, or nil when no active engineer is
// available in the ward.
func (s *AssigneeSelector) Select(ctx context.Context, wardID uint, department string) (*uint, error) {
	key := selectorKey(wardID, department)
	if sel, ok := s.cache.Get(key); ok {
		if !sel.found {
			return nil, nil
		}
		id := sel.userID
		return &id, nil
	}

	engineer, err := s.pick(ctx, wardID, department)
	if err != nil {
		return nil, err
	}

	if engineer == nil {
		s.cache.Set(key, selection{})
		s.logger.Debugw("no eligible engineer", "ward_id", wardID, "department", department)
		return nil, nil
	}

	s.cache.Set(key, selection{userID: engineer.ID(), found: true})
	id := engineer.ID()
	return &id, nil
}

// Invalidate drops the cached decisions for a ward. Called after a
// reassignment so the next creation sees fresh availability.
func (s *AssigneeSelector) Invalidate(wardID uint, department string) {
	s.cache.Delete(selectorKey(wardID, department))
	s.cache.Delete(selectorKey(wardID, ""))
}

func (s *AssigneeSelector) pick(ctx context.Context, wardID uint, department string) (*user.User, error) {
	if department != "" {
		engineers, err := s.users.FindWardEngineers(ctx, wardID, department)
		if err != nil {
			return nil, fmt.Errorf("failed to load ward engineers: %w", err)
		}
		if len(engineers) > 0 {
			return engineers[0], nil
		}
	}

	// Fallback: any department within the ward.
	engineers, err := s.users.FindWardEngineers(ctx, wardID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load ward engineers: %w", err)
	}
	if len(engineers) > 0 {
		return engineers[0], nil
	}
	return nil, nil
}

func selectorKey(wardID uint, department string) string {
	if department == "" {
		department = "any"
	}
	return fmt.Sprintf("ward:%d:dept:%s", wardID, department)
}
