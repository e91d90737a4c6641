package ward

import "context"

// WardRepository reads the geographic hierarchy. Boundaries change rarely;
// callers cache aggressively.
type WardRepository interface {
	FindByID(ctx context.Context, id uint) (*Ward, error)
	ListActive(ctx context.Context) ([]*Ward, error)
}

// ZoneRepository reads zones.
type ZoneRepository interface {
	FindByID(ctx context.Context, id uint) (*Zone, error)
}
