package ward

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
)

type mockWardRepository struct {
	FindByIDFunc   func(ctx context.Context, id uint) (*Ward, error)
	ListActiveFunc func(ctx context.Context) ([]*Ward, error)
	listCalls      int
}

func (m *mockWardRepository) FindByID(ctx context.Context, id uint) (*Ward, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockWardRepository) ListActive(ctx context.Context) ([]*Ward, error) {
	m.listCalls++
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func testWards(t *testing.T) []*Ward {
	t.Helper()

	w1, err := ReconstructWard(11, "Shivajinagar", 2, Polygon{
		{Latitude: 18.50, Longitude: 73.80},
		{Latitude: 18.50, Longitude: 73.90},
		{Latitude: 18.60, Longitude: 73.90},
		{Latitude: 18.60, Longitude: 73.80},
	}, true)
	require.NoError(t, err)

	w2, err := ReconstructWard(12, "Kothrud", 2, Polygon{
		{Latitude: 18.40, Longitude: 73.80},
		{Latitude: 18.40, Longitude: 73.90},
		{Latitude: 18.50, Longitude: 73.90},
		{Latitude: 18.50, Longitude: 73.80},
	}, true)
	require.NoError(t, err)

	return []*Ward{w1, w2}
}

func TestResolver_Resolve(t *testing.T) {
	wards := testWards(t)
	repo := &mockWardRepository{
		ListActiveFunc: func(ctx context.Context) ([]*Ward, error) {
			return wards, nil
		},
	}
	resolver := NewResolver(repo, logger.NewLogger())

	wardID, err := resolver.Resolve(context.Background(), 18.55, 73.85)
	require.NoError(t, err)
	assert.Equal(t, uint(11), wardID)

	wardID, err = resolver.Resolve(context.Background(), 18.45, 73.85)
	require.NoError(t, err)
	assert.Equal(t, uint(12), wardID)
}

func TestResolver_OutsideJurisdiction(t *testing.T) {
	repo := &mockWardRepository{
		ListActiveFunc: func(ctx context.Context) ([]*Ward, error) {
			return testWards(t), nil
		},
	}
	resolver := NewResolver(repo, logger.NewLogger())

	_, err := resolver.Resolve(context.Background(), 19.99, 72.80)
	require.Error(t, err)
	assert.True(t, errors.IsOutsideJurisdictionError(err))
}

func TestResolver_MemoizesRoundedCoordinates(t *testing.T) {
	repo := &mockWardRepository{
		ListActiveFunc: func(ctx context.Context) ([]*Ward, error) {
			return testWards(t), nil
		},
	}
	resolver := NewResolver(repo, logger.NewLogger())

	_, err := resolver.Resolve(context.Background(), 18.55001, 73.85001)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// Within 4-decimal rounding of the first point: served from cache.
	_, err = resolver.Resolve(context.Background(), 18.550012, 73.850013)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// A materially different point scans again.
	_, err = resolver.Resolve(context.Background(), 18.45, 73.85)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestResolver_RepositoryError(t *testing.T) {
	repo := &mockWardRepository{
		ListActiveFunc: func(ctx context.Context) ([]*Ward, error) {
			return nil, fmt.Errorf("db down")
		},
	}
	resolver := NewResolver(repo, logger.NewLogger())

	_, err := resolver.Resolve(context.Background(), 18.55, 73.85)
	require.Error(t, err)
	assert.False(t, errors.IsOutsideJurisdictionError(err))
}
