package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulu/internal/domain"
)

// routeTable is an in-memory RouteReader counting lookups
type routeTable struct {
	routes  []*domain.Route
	lookups int
}

func (t *routeTable) FindRoute(_ context.Context, ws domain.Workspace, locale, path string) (*domain.Route, error) {
	t.lookups++
	for _, r := range t.routes {
		if r.Workspace == ws && r.Locale == locale && r.Path == path {
			return r, nil
		}
	}
	return nil, nil
}

func (t *routeTable) FindRouteByTarget(_ context.Context, ws domain.Workspace, locale, targetID string) (*domain.Route, error) {
	for _, r := range t.routes {
		if r.Workspace == ws && r.Locale == locale && r.TargetID == targetID && !r.IsHistory {
			return r, nil
		}
	}
	return nil, nil
}

func (t *routeTable) RouteHistory(context.Context, domain.Workspace, string, string) ([]*domain.Route, error) {
	return nil, nil
}

func (t *routeTable) ListRoutes(context.Context, domain.Workspace, string) ([]*domain.Route, error) {
	return t.routes, nil
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	table := &routeTable{routes: []*domain.Route{
		{ID: "1", Workspace: domain.WorkspaceLive, Locale: "en", Path: "/parent/child", TargetID: "c", IsHistory: true},
		{ID: "2", Workspace: domain.WorkspaceLive, Locale: "en", Path: "/parent/parent-child", TargetID: "c"},
	}}
	r, err := NewResolver(table, 16)
	require.NoError(t, err)

	res, err := r.Resolve(ctx, domain.WorkspaceLive, "en", "/parent/parent-child")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "c", res.TargetID)
	assert.False(t, res.Redirect)

	res, err = r.Resolve(ctx, domain.WorkspaceLive, "en", "/parent/child")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Redirect)
	assert.Equal(t, "/parent/parent-child", res.Location)

	res, err = r.Resolve(ctx, domain.WorkspaceLive, "de", "/parent/child")
	require.NoError(t, err)
	assert.Nil(t, res, "locales are independent")

	lookups := table.lookups
	_, err = r.Resolve(ctx, domain.WorkspaceLive, "en", "/parent/child")
	require.NoError(t, err)
	assert.Equal(t, lookups, table.lookups, "second lookup is served from the cache")
	assert.Equal(t, 2, r.Len())

	r.Purge()
	assert.Equal(t, 0, r.Len())
}

func TestNewResolverRejectsInvalidSize(t *testing.T) {
	_, err := NewResolver(&routeTable{}, 0)
	assert.Error(t, err)
}
