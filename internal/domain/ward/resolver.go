package ward

import (
	"context"
	"fmt"

	"civicgrid/internal/shared/cacheutil"
	"civicgrid/internal/shared/constants"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
)

// Resolver maps a reported GPS point onto the ward containing it. Lookups are
// memoized on coordinates rounded to 4 decimal places (~11m) so GPS jitter
// from repeat reports of the same spot does not re-run the containment scan.
type Resolver struct {
	wards  WardRepository
	cache  *cacheutil.TTLCache[uint]
	logger logger.Interface
}

func NewResolver(wards WardRepository, log logger.Interface) *Resolver {
	return &Resolver{
		wards:  wards,
		cache:  cacheutil.NewTTLCache[uint](constants.WardResolverTTL),
		logger: log.Named("ward.resolver"),
	}
}

// Resolve returns the ID of the ward containing (lat, lon). A point outside
// every ward boundary yields an OUTSIDE_JURISDICTION error; issue creation
// treats that as a hard validation failure.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64) (uint, error) {
	key := coordinateKey(lat, lon)
	if wardID, ok := r.cache.Get(key); ok {
		return wardID, nil
	}

	wards, err := r.wards.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load ward boundaries: %w", err)
	}

	for _, w := range wards {
		if w.Contains(lat, lon) {
			r.cache.Set(key, w.ID())
			return w.ID(), nil
		}
	}

	r.logger.Debugw("no ward contains point", "lat", lat, "lon", lon)
	return 0, errors.NewOutsideJurisdictionError(lat, lon)
}

// coordinateKey rounds the pair to CoordinatePrecision decimals. The rounding
// is part of the contract: coarser keys would leak resolutions across ward
// boundaries, finer ones defeat the memoization.
func coordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.*f:%.*f", constants.CoordinatePrecision, lat, constants.CoordinatePrecision, lon)
}
