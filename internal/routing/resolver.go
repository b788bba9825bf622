package routing

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"sulu/internal/domain"
	"sulu/internal/ports"
)

// Resolver looks up request paths in the route table, caching results
// until the next flush.
type Resolver struct {
	routes ports.RouteReader
	cache  *lru.Cache[string, domain.Resolution]
}

// NewResolver creates a resolver holding at most size resolutions
func NewResolver(routes ports.RouteReader, size int) (*Resolver, error) {
	cache, err := lru.New[string, domain.Resolution](size)
	if err != nil {
		return nil, fmt.Errorf("create route cache: %w", err)
	}
	return &Resolver{routes: routes, cache: cache}, nil
}

// Resolve returns the target of path in ws and locale, or nil when no route
// exists. History routes resolve with Redirect set and the canonical Location.
func (r *Resolver) Resolve(ctx context.Context, ws domain.Workspace, locale, path string) (*domain.Resolution, error) {
	key := string(ws) + "|" + locale + "|" + path
	if res, ok := r.cache.Get(key); ok {
		return &res, nil
	}

	route, err := r.routes.FindRoute(ctx, ws, locale, path)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, nil
	}

	res := domain.Resolution{Route: route, TargetID: route.TargetID}
	if route.IsHistory {
		res.Redirect = true
		canonical, err := r.routes.FindRouteByTarget(ctx, ws, locale, route.TargetID)
		if err != nil {
			return nil, err
		}
		if canonical != nil {
			res.Location = canonical.Path
		}
	}

	r.cache.Add(key, res)
	return &res, nil
}

// Purge drops every cached resolution
func (r *Resolver) Purge() {
	r.cache.Purge()
}

// Len returns the number of cached resolutions
func (r *Resolver) Len() int {
	return r.cache.Len()
}
