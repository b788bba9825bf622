package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/lifecycle"
	"sulu/internal/ports"
)

// Generator computes and persists routes for nodes in both workspaces
type Generator struct {
	registry    *domain.Registry
	maxAttempts int
	resolver    *Resolver
	log         zerolog.Logger
}

// NewGenerator creates a generator. resolver may be nil.
func NewGenerator(registry *domain.Registry, maxAttempts int, resolver *Resolver, log zerolog.Logger) *Generator {
	return &Generator{
		registry:    registry,
		maxAttempts: maxAttempts,
		resolver:    resolver,
		log:         log,
	}
}

// Register attaches the route handlers to d. The synchronizer must be
// registered first so live shells exist when live routes are assigned.
func (g *Generator) Register(d *lifecycle.Dispatcher) {
	d.On(lifecycle.Persist, "routing.persist", g.onPersist)
	d.On(lifecycle.Rename, "routing.rename", g.onMove)
	d.On(lifecycle.Move, "routing.move", g.onMove)
	d.On(lifecycle.Copy, "routing.copy", g.onCopy)
	d.On(lifecycle.Remove, "routing.remove", g.onRemove)
	d.On(lifecycle.Publish, "routing.publish", g.onPublish)
	d.On(lifecycle.Unpublish, "routing.unpublish", g.onUnpublish)
	d.On(lifecycle.Flush, "routing.purge-cache", g.onFlush)
}

// Segment returns the route segment of node in locale. Generated segments are
// re-evaluated from the content type's template and stored on the localization.
func (g *Generator) Segment(node *domain.Node, locale string) (string, error) {
	loc := node.Localization(locale)
	if loc == nil {
		return "", fmt.Errorf("node %s has no %s localization", node.ID, locale)
	}
	if !loc.SegmentGenerated && loc.Segment != "" {
		return loc.Segment, nil
	}

	ct, ok := g.registry.Lookup(node.Type)
	if !ok {
		return "", &application.TemplateError{Reason: fmt.Sprintf("unknown content type %q", node.Type)}
	}
	tpl, err := ParseTemplate(ct.RouteTemplate)
	if err != nil {
		return "", err
	}
	seg, err := tpl.Evaluate(NodeFields(node, locale))
	if err != nil {
		return "", err
	}
	if tpl.Absolute() {
		seg = domain.RootPath + seg
	}
	loc.Segment = seg
	loc.SegmentGenerated = true
	return seg, nil
}

// Candidate returns the undisambiguated route path of node in locale
func (g *Generator) Candidate(ctx context.Context, tx ports.Tx, node *domain.Node, locale string) (string, error) {
	seg, err := g.Segment(node, locale)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(seg, domain.RootPath) {
		return domain.JoinPath(domain.RootPath, seg), nil
	}

	base, err := g.parentRoute(ctx, tx, node, locale)
	if err != nil {
		return "", err
	}
	return domain.JoinPath(base, seg), nil
}

// parentRoute walks up the ancestors of node and returns the first route found
func (g *Generator) parentRoute(ctx context.Context, tx ports.Tx, node *domain.Node, locale string) (string, error) {
	parentID := node.ParentID
	for parentID != "" {
		route, err := tx.FindRouteByTarget(ctx, node.Workspace, locale, parentID)
		if err != nil {
			return "", err
		}
		if route != nil {
			return route.Path, nil
		}
		parent, err := tx.FindNode(ctx, node.Workspace, parentID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			break
		}
		parentID = parent.ParentID
	}
	return domain.RootPath, nil
}

// Assign computes the route of node in locale within the node's workspace and
// brings the route table in line with it. A superseded route becomes history
// in the live workspace and is dropped in the draft workspace. When the path
// changes, the routes of all descendants are recomputed.
func (g *Generator) Assign(ctx context.Context, tx ports.Tx, node *domain.Node, locale string) (*domain.Route, error) {
	ws := node.Workspace
	loc := node.Localization(locale)
	if loc == nil {
		return nil, fmt.Errorf("node %s has no %s localization", node.ID, locale)
	}
	prevSegment := loc.Segment

	candidate, err := g.Candidate(ctx, tx, node, locale)
	if err != nil {
		return nil, err
	}

	current, err := tx.FindRouteByTarget(ctx, ws, locale, node.ID)
	if err != nil {
		return nil, err
	}

	path, err := domain.Disambiguate(candidate, g.maxAttempts, func(p string) (bool, error) {
		r, err := tx.FindRoute(ctx, ws, locale, p)
		if err != nil {
			return false, err
		}
		return r == nil || r.TargetID == node.ID, nil
	})
	if errors.Is(err, domain.ErrExhausted) {
		return nil, &application.ConflictError{Path: candidate, Attempts: g.maxAttempts}
	}
	if err != nil {
		return nil, err
	}

	if current != nil && current.Path == path {
		if loc.RoutePath != path || loc.Segment != prevSegment {
			loc.RoutePath = path
			if err := tx.SaveLocalization(ctx, ws, node.ID, loc); err != nil {
				return nil, err
			}
		}
		return current, nil
	}

	existing, err := tx.FindRoute(ctx, ws, locale, path)
	if err != nil {
		return nil, err
	}

	previous := ""
	if current != nil {
		previous = current.Path
		if ws == domain.WorkspaceLive {
			err = tx.MarkHistory(ctx, current.ID)
		} else {
			err = tx.DeleteRoute(ctx, current.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("retire route %s: %w", current.Path, err)
		}
	}

	var route *domain.Route
	if existing != nil && existing.TargetID == node.ID {
		if err := tx.ActivateRoute(ctx, existing.ID); err != nil {
			return nil, err
		}
		route = existing
		route.IsHistory = false
	} else {
		route = &domain.Route{
			ID:        ulid.Make().String(),
			Workspace: ws,
			Locale:    locale,
			Path:      path,
			TargetID:  node.ID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.CreateRoute(ctx, route); err != nil {
			return nil, fmt.Errorf("create route %s: %w", path, err)
		}
	}

	loc.RoutePath = path
	if err := tx.SaveLocalization(ctx, ws, node.ID, loc); err != nil {
		return nil, err
	}

	g.log.Info().
		Str("workspace", string(ws)).
		Str("locale", locale).
		Str("node_id", node.ID).
		Str("path", path).
		Str("previous", previous).
		Msg("route assigned")

	if err := g.migrate(ctx, tx, ws, node.ID, locale); err != nil {
		return nil, err
	}
	return route, nil
}

// migrate recomputes the routes of the children of parentID. Children without
// a localization in locale are passed through to their own children.
func (g *Generator) migrate(ctx context.Context, tx ports.Tx, ws domain.Workspace, parentID, locale string) error {
	children, err := tx.Children(ctx, ws, parentID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.Localization(locale) != nil {
			if _, err := g.Assign(ctx, tx, child, locale); err != nil {
				return err
			}
			continue
		}
		if err := g.migrate(ctx, tx, ws, child.ID, locale); err != nil {
			return err
		}
	}
	return nil
}

// Reassign recomputes the routes of node and its subtree in every locale
// used anywhere in the subtree
func (g *Generator) Reassign(ctx context.Context, tx ports.Tx, node *domain.Node) error {
	descendants, err := tx.Descendants(ctx, node.Workspace, node.Path)
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	var locales []string
	for _, n := range append([]*domain.Node{node}, descendants...) {
		for _, locale := range n.Locales() {
			if !seen[locale] {
				seen[locale] = true
				locales = append(locales, locale)
			}
		}
	}

	for _, locale := range locales {
		if node.Localization(locale) != nil {
			if _, err := g.Assign(ctx, tx, node, locale); err != nil {
				return err
			}
			continue
		}
		if err := g.migrate(ctx, tx, node.Workspace, node.ID, locale); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) onPersist(ctx context.Context, ev *lifecycle.Event) error {
	_, err := g.Assign(ctx, ev.Tx, ev.Node, ev.Locale)
	return err
}

// onMove also serves renames, templates may refer to the node name
func (g *Generator) onMove(ctx context.Context, ev *lifecycle.Event) error {
	for _, ws := range domain.Workspaces {
		node, err := ev.Tx.FindNode(ctx, ws, ev.Node.ID)
		if err != nil {
			return err
		}
		if node == nil {
			continue
		}
		if err := g.Reassign(ctx, ev.Tx, node); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) onCopy(ctx context.Context, ev *lifecycle.Event) error {
	if len(ev.Copies) == 0 {
		return nil
	}
	top, err := ev.Tx.FindNode(ctx, domain.WorkspaceDraft, ev.Copies[0].CopyID)
	if err != nil {
		return err
	}
	if top == nil {
		return &application.NotFoundError{Workspace: domain.WorkspaceDraft, ID: ev.Copies[0].CopyID}
	}
	return g.Reassign(ctx, ev.Tx, top)
}

func (g *Generator) onRemove(ctx context.Context, ev *lifecycle.Event) error {
	for _, ws := range domain.Workspaces {
		if err := ev.Tx.DeleteRoutesForTargets(ctx, ws, "", ev.Removed); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) onPublish(ctx context.Context, ev *lifecycle.Event) error {
	live, err := ev.Tx.FindNode(ctx, domain.WorkspaceLive, ev.Node.ID)
	if err != nil {
		return err
	}
	if live == nil {
		return &application.DriftError{ID: ev.Node.ID, Operation: "publish"}
	}
	_, err = g.Assign(ctx, ev.Tx, live, ev.Locale)
	return err
}

func (g *Generator) onUnpublish(ctx context.Context, ev *lifecycle.Event) error {
	if err := ev.Tx.DeleteRoutesForTargets(ctx, domain.WorkspaceLive, ev.Locale, []string{ev.Node.ID}); err != nil {
		return err
	}
	// published children fall back to the next ancestor route
	return g.migrate(ctx, ev.Tx, domain.WorkspaceLive, ev.Node.ID, ev.Locale)
}

func (g *Generator) onFlush(ctx context.Context, ev *lifecycle.Event) error {
	if g.resolver != nil {
		g.resolver.Purge()
	}
	return nil
}
