package services

import (
	"context"
	"fmt"

	"civicgrid/internal/domain/ward"
	"civicgrid/internal/shared/cacheutil"
	"civicgrid/internal/shared/constants"
	"civicgrid/internal/shared/errors"
)

// ZoneLookup maps wards onto their owning zones for cache scoping. Ward to
// zone assignments change about as often as ward boundaries, so results are
// memoized with the same TTL as the resolver.
type ZoneLookup struct {
	wards ward.WardRepository
	cache *cacheutil.TTLCache[uint]
}

func NewZoneLookup(wards ward.WardRepository) *ZoneLookup {
	return &ZoneLookup{
		wards: wards,
		cache: cacheutil.NewTTLCache[uint](constants.WardResolverTTL),
	}
}

func (z *ZoneLookup) ZoneID(ctx context.Context, wardID uint) (uint, error) {
	key := fmt.Sprintf("ward:%d", wardID)
	if zoneID, ok := z.cache.Get(key); ok {
		return zoneID, nil
	}

	w, err := z.wards.FindByID(ctx, wardID)
	if err != nil {
		return 0, fmt.Errorf("failed to load ward: %w", err)
	}
	if w == nil {
		return 0, errors.NewNotFoundError(fmt.Sprintf("ward %d not found", wardID))
	}

	z.cache.Set(key, w.ZoneID())
	return w.ZoneID(), nil
}
