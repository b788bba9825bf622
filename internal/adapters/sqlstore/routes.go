package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sulu/internal/domain"
)

const routeColumns = `id, workspace, locale, path, target_id, is_history, created_at`

func scanRoute(row interface{ Scan(...any) error }) (*domain.Route, error) {
	var (
		r         domain.Route
		ws        string
		createdAt int64
	)
	if err := row.Scan(&r.ID, &ws, &r.Locale, &r.Path, &r.TargetID, &r.IsHistory, &createdAt); err != nil {
		return nil, err
	}
	r.Workspace = domain.Workspace(ws)
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	return &r, nil
}

func (s queries) selectRoute(ctx context.Context, where string, args ...any) (*domain.Route, error) {
	row := s.q.QueryRowContext(ctx, rebind(s.driver, "SELECT "+routeColumns+" FROM routes WHERE "+where), args...)
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func (s queries) selectRoutes(ctx context.Context, where, orderBy string, args ...any) ([]*domain.Route, error) {
	rows, err := s.query(ctx, "SELECT "+routeColumns+" FROM routes WHERE "+where+" ORDER BY "+orderBy, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.Route
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// FindRoute returns the route registered at path
func (s queries) FindRoute(ctx context.Context, ws domain.Workspace, locale, path string) (*domain.Route, error) {
	return s.selectRoute(ctx, "workspace = ? AND locale = ? AND path = ?", string(ws), locale, path)
}

// FindRouteByTarget returns the canonical route of a target
func (s queries) FindRouteByTarget(ctx context.Context, ws domain.Workspace, locale, targetID string) (*domain.Route, error) {
	return s.selectRoute(ctx, "workspace = ? AND locale = ? AND target_id = ? AND is_history = ?",
		string(ws), locale, targetID, false)
}

// RouteHistory returns the history routes of a target, oldest first
func (s queries) RouteHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) ([]*domain.Route, error) {
	return s.selectRoutes(ctx, "workspace = ? AND locale = ? AND target_id = ? AND is_history = ?",
		"created_at, id", string(ws), locale, targetID, true)
}

// ListRoutes returns every route of a workspace and locale
func (s queries) ListRoutes(ctx context.Context, ws domain.Workspace, locale string) ([]*domain.Route, error) {
	return s.selectRoutes(ctx, "workspace = ? AND locale = ?", "path", string(ws), locale)
}

// CreateRoute inserts a route
func (s queries) CreateRoute(ctx context.Context, route *domain.Route) error {
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}
	_, err := s.exec(ctx, `
		INSERT INTO routes (id, workspace, locale, path, target_id, is_history, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, route.ID, string(route.Workspace), route.Locale, route.Path, route.TargetID, route.IsHistory,
		route.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("create %s route %s: %w", route.Workspace, route.Path, err)
	}
	return nil
}

// MarkHistory turns a route into a redirect
func (s queries) MarkHistory(ctx context.Context, routeID string) error {
	_, err := s.exec(ctx, `UPDATE routes SET is_history = ? WHERE id = ?`, true, routeID)
	return err
}

// ActivateRoute turns a history route back into the canonical route
func (s queries) ActivateRoute(ctx context.Context, routeID string) error {
	_, err := s.exec(ctx, `UPDATE routes SET is_history = ? WHERE id = ?`, false, routeID)
	return err
}

// DeleteRoute removes a route
func (s queries) DeleteRoute(ctx context.Context, routeID string) error {
	_, err := s.exec(ctx, `DELETE FROM routes WHERE id = ?`, routeID)
	return err
}

// DeleteRoutesForTargets removes all routes of the targets
func (s queries) DeleteRoutesForTargets(ctx context.Context, ws domain.Workspace, locale string, targetIDs []string) error {
	for _, id := range targetIDs {
		var err error
		if locale == "" {
			_, err = s.exec(ctx, `DELETE FROM routes WHERE workspace = ? AND target_id = ?`, string(ws), id)
		} else {
			_, err = s.exec(ctx, `DELETE FROM routes WHERE workspace = ? AND locale = ? AND target_id = ?`,
				string(ws), locale, id)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteHistory removes history routes and returns how many were deleted
func (s queries) DeleteHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) (int, error) {
	query := `DELETE FROM routes WHERE workspace = ? AND locale = ? AND is_history = ?`
	args := []any{string(ws), locale, true}
	if targetID != "" {
		query += ` AND target_id = ?`
		args = append(args, targetID)
	}

	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
