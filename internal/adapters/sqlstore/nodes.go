package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sulu/internal/domain"
)

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements node and route access on top of a querier
type queries struct {
	q      querier
	driver string
}

const nodeColumns = `
	n.id, n.parent_id, n.path, n.name, n.node_type, n.mixins, n.order_weight, n.created_at,
	l.locale, l.title, l.segment, l.segment_generated, l.route_path, l.stage, l.properties, l.changed_at
	FROM nodes n
	LEFT JOIN localizations l ON l.workspace = n.workspace AND l.node_id = n.id`

func (s queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, rebind(s.driver, query), args...)
}

func (s queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.q.QueryContext(ctx, rebind(s.driver, query), args...)
}

// selectNodes runs a node query and groups the joined localization rows
func (s queries) selectNodes(ctx context.Context, ws domain.Workspace, where, orderBy string, args ...any) ([]*domain.Node, error) {
	rows, err := s.query(ctx, "SELECT "+nodeColumns+" WHERE n.workspace = ? AND "+where+" ORDER BY "+orderBy+", l.locale",
		append([]any{string(ws)}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*domain.Node
	var current *domain.Node
	for rows.Next() {
		var (
			n         domain.Node
			mixins    string
			createdAt int64
			locale    sql.NullString
			title     sql.NullString
			segment   sql.NullString
			generated sql.NullBool
			routePath sql.NullString
			stage     sql.NullString
			props     sql.NullString
			changedAt sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Path, &n.Name, &n.Type, &mixins, &n.Order, &createdAt,
			&locale, &title, &segment, &generated, &routePath, &stage, &props, &changedAt); err != nil {
			return nil, err
		}

		if current == nil || current.ID != n.ID {
			n.Workspace = ws
			n.CreatedAt = time.Unix(0, createdAt).UTC()
			n.Mixins = splitMixins(mixins)
			n.Localizations = map[string]*domain.Localization{}
			current = &n
			nodes = append(nodes, current)
		}

		if !locale.Valid {
			continue
		}
		loc := &domain.Localization{
			Locale:           locale.String,
			Title:            title.String,
			Segment:          segment.String,
			SegmentGenerated: generated.Bool,
			RoutePath:        routePath.String,
			Stage:            domain.Stage(stage.String),
			ChangedAt:        time.Unix(0, changedAt.Int64).UTC(),
		}
		if props.Valid && props.String != "" {
			if err := json.Unmarshal([]byte(props.String), &loc.Properties); err != nil {
				return nil, fmt.Errorf("node %s: invalid properties: %w", n.ID, err)
			}
		}
		current.SetLocalization(loc)
	}

	return nodes, rows.Err()
}

func (s queries) selectNode(ctx context.Context, ws domain.Workspace, where string, args ...any) (*domain.Node, error) {
	nodes, err := s.selectNodes(ctx, ws, where, "n.id", args...)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// FindNode retrieves a node by identifier
func (s queries) FindNode(ctx context.Context, ws domain.Workspace, id string) (*domain.Node, error) {
	return s.selectNode(ctx, ws, "n.id = ?", id)
}

// FindNodeByPath retrieves a node by path
func (s queries) FindNodeByPath(ctx context.Context, ws domain.Workspace, path string) (*domain.Node, error) {
	return s.selectNode(ctx, ws, "n.path = ?", path)
}

// Children returns the direct children of parentID
func (s queries) Children(ctx context.Context, ws domain.Workspace, parentID string) ([]*domain.Node, error) {
	return s.selectNodes(ctx, ws, "n.parent_id = ?", "n.order_weight, n.created_at, n.id", parentID)
}

// Descendants returns every node strictly below path
func (s queries) Descendants(ctx context.Context, ws domain.Workspace, path string) ([]*domain.Node, error) {
	prefix := path + "/"
	if path == domain.RootPath {
		prefix = domain.RootPath
	}
	return s.selectNodes(ctx, ws, "substr(n.path, 1, ?) = ? AND n.path <> ?", "n.path",
		utf8.RuneCountInString(prefix), prefix, path)
}

// ScanNodes pages through nodes in path order
func (s queries) ScanNodes(ctx context.Context, ws domain.Workspace, afterPath string, limit int) ([]*domain.Node, error) {
	return s.selectNodes(ctx, ws,
		"n.path IN (SELECT path FROM nodes WHERE workspace = ? AND path > ? ORDER BY path LIMIT ?)",
		"n.path", string(ws), afterPath, limit)
}

// InsertNode inserts a node with its localizations
func (s queries) InsertNode(ctx context.Context, node *domain.Node) error {
	if node.CreatedAt.IsZero() {
		node.CreatedAt = time.Now().UTC()
	}
	_, err := s.exec(ctx, `
		INSERT INTO nodes (workspace, id, parent_id, path, name, node_type, mixins, order_weight, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(node.Workspace), node.ID, node.ParentID, node.Path, node.Name, node.Type,
		strings.Join(node.Mixins, ","), node.Order, node.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert %s node %s: %w", node.Workspace, node.Path, err)
	}

	for _, locale := range node.Locales() {
		if err := s.SaveLocalization(ctx, node.Workspace, node.ID, node.Localizations[locale]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateNode updates the structural columns and replaces all localizations
func (s queries) UpdateNode(ctx context.Context, node *domain.Node) error {
	_, err := s.exec(ctx, `
		UPDATE nodes SET parent_id = ?, path = ?, name = ?, node_type = ?, mixins = ?, order_weight = ?
		WHERE workspace = ? AND id = ?
	`, node.ParentID, node.Path, node.Name, node.Type, strings.Join(node.Mixins, ","), node.Order,
		string(node.Workspace), node.ID)
	if err != nil {
		return fmt.Errorf("update %s node %s: %w", node.Workspace, node.ID, err)
	}

	if _, err := s.exec(ctx, `DELETE FROM localizations WHERE workspace = ? AND node_id = ?`,
		string(node.Workspace), node.ID); err != nil {
		return err
	}
	for _, locale := range node.Locales() {
		if err := s.SaveLocalization(ctx, node.Workspace, node.ID, node.Localizations[locale]); err != nil {
			return err
		}
	}
	return nil
}

// MoveNode re-parents and/or renames a node and rewrites its subtree paths
func (s queries) MoveNode(ctx context.Context, ws domain.Workspace, id, newParentID, newName string) (*domain.Node, error) {
	node, err := s.FindNode(ctx, ws, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%s node %s not found", ws, id)
	}

	parentPath := domain.RootPath
	if newParentID != "" {
		parent, err := s.FindNode(ctx, ws, newParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%s parent %s not found", ws, newParentID)
		}
		parentPath = parent.Path
	}

	oldPath := node.Path
	newPath := domain.JoinPath(parentPath, newName)

	descendants, err := s.Descendants(ctx, ws, oldPath)
	if err != nil {
		return nil, err
	}

	if _, err := s.exec(ctx, `
		UPDATE nodes SET parent_id = ?, name = ?, path = ? WHERE workspace = ? AND id = ?
	`, newParentID, newName, newPath, string(ws), id); err != nil {
		return nil, fmt.Errorf("move %s node %s: %w", ws, oldPath, err)
	}

	for _, d := range descendants {
		if _, err := s.exec(ctx, `UPDATE nodes SET path = ? WHERE workspace = ? AND id = ?`,
			domain.Rebase(d.Path, oldPath, newPath), string(ws), d.ID); err != nil {
			return nil, fmt.Errorf("move %s node %s: %w", ws, d.Path, err)
		}
	}

	node.ParentID = newParentID
	node.Name = newName
	node.Path = newPath
	return node, nil
}

// DeleteSubtree removes a node and everything below it
func (s queries) DeleteSubtree(ctx context.Context, ws domain.Workspace, id string) error {
	node, err := s.FindNode(ctx, ws, id)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}

	descendants, err := s.Descendants(ctx, ws, node.Path)
	if err != nil {
		return err
	}

	ids := []string{node.ID}
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}

	for _, nodeID := range ids {
		if _, err := s.exec(ctx, `DELETE FROM localizations WHERE workspace = ? AND node_id = ?`,
			string(ws), nodeID); err != nil {
			return err
		}
		if _, err := s.exec(ctx, `DELETE FROM nodes WHERE workspace = ? AND id = ?`,
			string(ws), nodeID); err != nil {
			return err
		}
	}
	return nil
}

// SetOrder updates the order weight of a node
func (s queries) SetOrder(ctx context.Context, ws domain.Workspace, id string, weight int) error {
	_, err := s.exec(ctx, `UPDATE nodes SET order_weight = ? WHERE workspace = ? AND id = ?`,
		weight, string(ws), id)
	return err
}

// SaveLocalization inserts or replaces one localization
func (s queries) SaveLocalization(ctx context.Context, ws domain.Workspace, nodeID string, loc *domain.Localization) error {
	props := []byte("{}")
	if len(loc.Properties) > 0 {
		var err error
		if props, err = json.Marshal(loc.Properties); err != nil {
			return fmt.Errorf("encode properties: %w", err)
		}
	}
	if loc.ChangedAt.IsZero() {
		loc.ChangedAt = time.Now().UTC()
	}

	_, err := s.exec(ctx, `
		INSERT INTO localizations
			(workspace, node_id, locale, title, segment, segment_generated, route_path, stage, properties, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (workspace, node_id, locale) DO UPDATE SET
			title = excluded.title,
			segment = excluded.segment,
			segment_generated = excluded.segment_generated,
			route_path = excluded.route_path,
			stage = excluded.stage,
			properties = excluded.properties,
			changed_at = excluded.changed_at
	`, string(ws), nodeID, loc.Locale, loc.Title, loc.Segment, loc.SegmentGenerated, loc.RoutePath,
		string(loc.Stage), string(props), loc.ChangedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save %s localization %s/%s: %w", ws, nodeID, loc.Locale, err)
	}
	return nil
}

// DeleteLocalization removes one localization
func (s queries) DeleteLocalization(ctx context.Context, ws domain.Workspace, nodeID, locale string) error {
	_, err := s.exec(ctx, `DELETE FROM localizations WHERE workspace = ? AND node_id = ? AND locale = ?`,
		string(ws), nodeID, locale)
	return err
}

func splitMixins(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
