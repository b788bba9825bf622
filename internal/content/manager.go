// Package content runs every content operation as one unit of work spanning
// the draft workspace, the live workspace and the route table.
package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sulu/internal/application"
	"sulu/internal/config"
	"sulu/internal/domain"
	"sulu/internal/lifecycle"
	"sulu/internal/ports"
	"sulu/internal/publish"
	"sulu/internal/routing"
)

// Manager implements ports.ContentManager
type Manager struct {
	store         ports.ContentStore
	registry      *domain.Registry
	dispatcher    *lifecycle.Dispatcher
	generator     *routing.Generator
	resolver      *routing.Resolver
	defaultLocale string
	batchSize     int
	maxAttempts   int
	log           zerolog.Logger
	now           func() time.Time
}

// Ensure Manager implements ContentManager
var _ ports.ContentManager = (*Manager)(nil)

// New wires the synchronizer and the route generator onto a fresh
// dispatcher. The synchronizer is registered first.
func New(store ports.ContentStore, registry *domain.Registry, cfg config.Config, log zerolog.Logger) (*Manager, error) {
	if registry == nil {
		registry = domain.DefaultRegistry()
	}
	for typ, tpl := range cfg.RouteTemplates {
		if _, err := routing.ParseTemplate(tpl); err != nil {
			return nil, err
		}
		if !registry.SetRouteTemplate(typ, tpl) {
			log.Warn().Str("type", typ).Msg("route template for unknown content type ignored")
		}
	}

	resolver, err := routing.NewResolver(store, cfg.RouteCacheSize)
	if err != nil {
		return nil, err
	}

	dispatcher := lifecycle.NewDispatcher(log.With().Str("component", "lifecycle").Logger())
	publish.New(log.With().Str("component", "publish").Logger()).Register(dispatcher)
	generator := routing.NewGenerator(registry, cfg.MaxSuffixAttempts, resolver,
		log.With().Str("component", "routing").Logger())
	generator.Register(dispatcher)

	return &Manager{
		store:         store,
		registry:      registry,
		dispatcher:    dispatcher,
		generator:     generator,
		resolver:      resolver,
		defaultLocale: cfg.DefaultLocale,
		batchSize:     cfg.BatchSize,
		maxAttempts:   cfg.MaxSuffixAttempts,
		log:           log,
		now:           time.Now,
	}, nil
}

// Dispatcher exposes the lifecycle dispatcher, e.g. to list registrations
func (m *Manager) Dispatcher() *lifecycle.Dispatcher {
	return m.dispatcher
}

// Registry returns the content types known to the manager
func (m *Manager) Registry() *domain.Registry {
	return m.registry
}

// unit is one open unit of work
type unit struct {
	tx      ports.Tx
	touched []string
}

func (u *unit) touch(ids ...string) {
	for _, id := range ids {
		if !slices.Contains(u.touched, id) {
			u.touched = append(u.touched, id)
		}
	}
}

// run executes fn in a unit of work. The parity check runs before commit and
// the flush handlers after it; any error before commit rolls everything back.
func (m *Manager) run(ctx context.Context, op string, fn func(u *unit) error) error {
	tx, err := m.store.Begin(ctx)
	if err != nil {
		return err
	}
	u := &unit{tx: tx}

	if err := fn(u); err != nil {
		m.rollback(tx, op, err)
		return err
	}
	if err := m.dispatcher.Dispatch(ctx, &lifecycle.Event{Kind: lifecycle.PreFlush, Tx: tx, Touched: u.touched}); err != nil {
		m.rollback(tx, op, err)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", op, err)
	}

	m.log.Debug().Str("op", op).Strs("touched", u.touched).Msg("unit of work committed")
	return m.dispatcher.Dispatch(ctx, &lifecycle.Event{Kind: lifecycle.Flush, Touched: u.touched})
}

func (m *Manager) rollback(tx ports.Tx, op string, cause error) {
	if err := tx.Rollback(); err != nil {
		m.log.Error().Err(err).Str("op", op).Msg("rollback failed")
	}
	m.log.Warn().Err(cause).Str("op", op).Msg("unit of work rolled back")
}

func (m *Manager) emit(ctx context.Context, u *unit, ev *lifecycle.Event) error {
	ev.Tx = u.tx
	return m.dispatcher.Dispatch(ctx, ev)
}

func (m *Manager) locale(locale string) (string, error) {
	if locale == "" {
		locale = m.defaultLocale
	}
	if err := application.ValidateLocale(locale); err != nil {
		return "", err
	}
	return locale, nil
}

func (m *Manager) draftNode(ctx context.Context, tx ports.Tx, id string) (*domain.Node, error) {
	if err := application.ValidateID("id", id); err != nil {
		return nil, err
	}
	node, err := tx.FindNode(ctx, domain.WorkspaceDraft, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &application.NotFoundError{Workspace: domain.WorkspaceDraft, ID: id}
	}
	return node, nil
}

// parentPath returns the draft path below which children of parentID live
func (m *Manager) parentPath(ctx context.Context, tx ports.Tx, parentID string) (string, error) {
	if parentID == "" {
		return domain.RootPath, nil
	}
	parent, err := m.draftNode(ctx, tx, parentID)
	if err != nil {
		return "", err
	}
	return parent.Path, nil
}

// uniqueName disambiguates name among the draft children of parentPath
func (m *Manager) uniqueName(ctx context.Context, tx ports.Tx, parentPath, name, selfID string) (string, error) {
	unique, err := domain.Disambiguate(name, m.maxAttempts, func(candidate string) (bool, error) {
		existing, err := tx.FindNodeByPath(ctx, domain.WorkspaceDraft, domain.JoinPath(parentPath, candidate))
		if err != nil {
			return false, err
		}
		return existing == nil || existing.ID == selfID, nil
	})
	if errors.Is(err, domain.ErrExhausted) {
		return "", &application.ConflictError{Path: domain.JoinPath(parentPath, name), Attempts: m.maxAttempts}
	}
	return unique, err
}

// placeLast moves node behind its draft siblings and renumbers them all to
// position*10
func (m *Manager) placeLast(ctx context.Context, u *unit, node *domain.Node) error {
	siblings, err := u.tx.Children(ctx, domain.WorkspaceDraft, node.ParentID)
	if err != nil {
		return err
	}
	siblings = slices.DeleteFunc(siblings, func(n *domain.Node) bool { return n.ID == node.ID })
	siblings = append(siblings, node)
	for i, sib := range siblings {
		order := (i + 1) * 10
		if sib.Order == order && sib.ID != node.ID {
			continue
		}
		if err := u.tx.SetOrder(ctx, domain.WorkspaceDraft, sib.ID, order); err != nil {
			return err
		}
		u.touch(sib.ID)
	}
	node.Order = len(siblings) * 10
	return nil
}

func nameFor(title string) string {
	if name := domain.Slugify(title); name != "" {
		return name
	}
	return "node"
}

func (m *Manager) validateProperties(typ string, props domain.Properties) error {
	ct, ok := m.registry.Lookup(typ)
	if !ok {
		return &application.ValidationError{Field: "type", Message: fmt.Sprintf("unknown content type %q", typ)}
	}
	if err := ct.Validate(props); err != nil {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			return &application.ValidationError{Field: fe.Field, Message: fe.Message}
		}
		return err
	}
	return nil
}

func applySegment(loc *domain.Localization, segment string) {
	seg := domain.SlugifyPath(segment)
	loc.Segment = seg
	loc.SegmentGenerated = seg == ""
}

// Create adds a draft node with one localization and mirrors it to live
func (m *Manager) Create(ctx context.Context, req ports.CreateRequest) (*domain.Node, error) {
	locale, err := m.locale(req.Locale)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("title", strings.TrimSpace(req.Title)); err != nil {
		return nil, err
	}
	if req.Type == "" {
		req.Type = "page"
	}
	if err := m.validateProperties(req.Type, req.Properties); err != nil {
		return nil, err
	}

	var id string
	err = m.run(ctx, "create", func(u *unit) error {
		parentPath, err := m.parentPath(ctx, u.tx, req.ParentID)
		if err != nil {
			return err
		}
		name, err := m.uniqueName(ctx, u.tx, parentPath, nameFor(req.Title), "")
		if err != nil {
			return err
		}
		now := m.now().UTC()
		node := &domain.Node{
			ID:        uuid.NewString(),
			Workspace: domain.WorkspaceDraft,
			ParentID:  req.ParentID,
			Path:      domain.JoinPath(parentPath, name),
			Name:      name,
			Type:      req.Type,
			CreatedAt: now,
		}
		loc := &domain.Localization{
			Locale:     locale,
			Title:      strings.TrimSpace(req.Title),
			Stage:      domain.StageDraft,
			Properties: req.Properties.Clone(),
			ChangedAt:  now,
		}
		applySegment(loc, req.Segment)
		node.SetLocalization(loc)

		if err := u.tx.InsertNode(ctx, node); err != nil {
			return err
		}
		id = node.ID
		u.touch(id)
		if err := m.placeLast(ctx, u, node); err != nil {
			return err
		}

		if err := m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Persist, Node: node, Locale: locale}); err != nil {
			return err
		}
		if err := m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Reorder, Node: node}); err != nil {
			return err
		}
		if req.Publish {
			return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Publish, Node: node, Locale: locale})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, id)
}

// Update edits or adds one localization of a draft node
func (m *Manager) Update(ctx context.Context, req ports.UpdateRequest) (*domain.Node, error) {
	locale, err := m.locale(req.Locale)
	if err != nil {
		return nil, err
	}

	err = m.run(ctx, "update", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, req.ID)
		if err != nil {
			return err
		}
		previous := node.Clone()

		loc := node.Localization(locale)
		added := loc == nil
		if added {
			if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
				return &application.ValidationError{Field: "title", Message: "title is required for a new locale"}
			}
			loc = &domain.Localization{Locale: locale, Stage: domain.StageDraft, SegmentGenerated: true}
			node.SetLocalization(loc)
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return &application.ValidationError{Field: "title", Message: "title cannot be empty"}
			}
			loc.Title = title
		}
		if req.Segment != nil {
			applySegment(loc, *req.Segment)
		}
		if len(req.Properties) > 0 {
			props := loc.Properties.Clone()
			if props == nil {
				props = domain.Properties{}
			}
			for k, v := range req.Properties {
				props[k] = v
			}
			if err := m.validateProperties(node.Type, props); err != nil {
				return err
			}
			loc.Properties = props
		} else if added {
			// a new locale must satisfy required fields on its own
			if err := m.validateProperties(node.Type, loc.Properties); err != nil {
				return err
			}
		}
		loc.Stage = loc.Stage.AfterEdit()
		loc.ChangedAt = m.now().UTC()

		if err := u.tx.SaveLocalization(ctx, domain.WorkspaceDraft, node.ID, loc); err != nil {
			return err
		}
		u.touch(node.ID)

		ev := &lifecycle.Event{Kind: lifecycle.Persist, Node: node, Previous: previous, Locale: locale}
		if err := m.emit(ctx, u, ev); err != nil {
			return err
		}
		if req.Publish {
			return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Publish, Node: node, Locale: locale})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, req.ID)
}

// Rename changes the node name, and so its path, in both workspaces
func (m *Manager) Rename(ctx context.Context, id, newName string) (*domain.Node, error) {
	name := domain.Slugify(newName)
	if name == "" {
		return nil, &application.ValidationError{Field: "name", Message: "name is required"}
	}

	err := m.run(ctx, "rename", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		parentPath, err := m.parentPath(ctx, u.tx, node.ParentID)
		if err != nil {
			return err
		}
		name, err := m.uniqueName(ctx, u.tx, parentPath, name, node.ID)
		if err != nil {
			return err
		}
		if name == node.Name {
			return nil
		}

		renamed, err := u.tx.MoveNode(ctx, domain.WorkspaceDraft, node.ID, node.ParentID, name)
		if err != nil {
			return err
		}
		u.touch(node.ID)
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Rename, Node: renamed, Previous: node})
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, id)
}

// Move re-parents a node. An empty newParentID moves it to the root.
func (m *Manager) Move(ctx context.Context, id, newParentID string) (*domain.Node, error) {
	err := m.run(ctx, "move", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		parentPath, err := m.parentPath(ctx, u.tx, newParentID)
		if err != nil {
			return err
		}
		if newParentID == node.ID || domain.IsDescendant(parentPath, node.Path) {
			return &application.MoveError{SourceID: id, DestID: newParentID, Reason: "cannot move a node into its own subtree"}
		}
		if newParentID == node.ParentID {
			return nil
		}

		name, err := m.uniqueName(ctx, u.tx, parentPath, node.Name, node.ID)
		if err != nil {
			return err
		}
		moved, err := u.tx.MoveNode(ctx, domain.WorkspaceDraft, node.ID, newParentID, name)
		if err != nil {
			return err
		}
		u.touch(node.ID)
		if err := m.placeLast(ctx, u, moved); err != nil {
			return err
		}

		if err := m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Move, Node: moved, Previous: node}); err != nil {
			return err
		}
		// live weights follow the draft positions
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Reorder, Node: moved})
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, id)
}

// Copy duplicates a draft subtree under newParentID with fresh identifiers.
// Copies start unpublished.
func (m *Manager) Copy(ctx context.Context, id, newParentID string) (*domain.Node, error) {
	var copyID string
	err := m.run(ctx, "copy", func(u *unit) error {
		source, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		parentPath, err := m.parentPath(ctx, u.tx, newParentID)
		if err != nil {
			return err
		}
		descendants, err := u.tx.Descendants(ctx, domain.WorkspaceDraft, source.Path)
		if err != nil {
			return err
		}
		name, err := m.uniqueName(ctx, u.tx, parentPath, source.Name, "")
		if err != nil {
			return err
		}
		now := m.now().UTC()
		topPath := domain.JoinPath(parentPath, name)
		ids := map[string]string{}
		var pairs []lifecycle.CopyPair
		var top *domain.Node

		for _, src := range append([]*domain.Node{source}, descendants...) {
			c := src.Clone()
			c.ID = uuid.NewString()
			c.CreatedAt = now
			c.Path = domain.Rebase(src.Path, source.Path, topPath)
			if src.ID == source.ID {
				c.ParentID = newParentID
				c.Name = name
				top = c
			} else {
				c.ParentID = ids[src.ParentID]
			}
			for _, loc := range c.Localizations {
				loc.Stage = domain.StageDraft
				loc.RoutePath = ""
				loc.ChangedAt = now
			}
			if err := u.tx.InsertNode(ctx, c); err != nil {
				return err
			}
			ids[src.ID] = c.ID
			pairs = append(pairs, lifecycle.CopyPair{SourceID: src.ID, CopyID: c.ID})
			u.touch(c.ID)
		}

		copyID = top.ID
		if err := m.placeLast(ctx, u, top); err != nil {
			return err
		}
		if err := m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Copy, Node: top, Copies: pairs}); err != nil {
			return err
		}
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Reorder, Node: top})
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, copyID)
}

// Reorder places a node at position (starting at 1) among its siblings and
// returns the siblings in their new order
func (m *Manager) Reorder(ctx context.Context, id string, position int) ([]*domain.Node, error) {
	if position < 1 {
		return nil, &application.ValidationError{Field: "position", Message: "position starts at 1"}
	}

	var parentID string
	err := m.run(ctx, "reorder", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		parentID = node.ParentID
		siblings, err := u.tx.Children(ctx, domain.WorkspaceDraft, node.ParentID)
		if err != nil {
			return err
		}

		siblings = slices.DeleteFunc(siblings, func(n *domain.Node) bool { return n.ID == node.ID })
		pos := min(position, len(siblings)+1)
		siblings = slices.Insert(siblings, pos-1, node)

		for i, sib := range siblings {
			if err := u.tx.SetOrder(ctx, domain.WorkspaceDraft, sib.ID, (i+1)*10); err != nil {
				return err
			}
			u.touch(sib.ID)
		}
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Reorder, Node: node})
	})
	if err != nil {
		return nil, err
	}
	return m.store.Children(ctx, domain.WorkspaceDraft, parentID)
}

// Remove deletes a node and its subtree from both workspaces together with
// their routes
func (m *Manager) Remove(ctx context.Context, id string) error {
	return m.run(ctx, "remove", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		descendants, err := u.tx.Descendants(ctx, domain.WorkspaceDraft, node.Path)
		if err != nil {
			return err
		}
		removed := []string{node.ID}
		for _, d := range descendants {
			removed = append(removed, d.ID)
		}

		if err := u.tx.DeleteSubtree(ctx, domain.WorkspaceDraft, node.ID); err != nil {
			return err
		}
		u.touch(removed...)
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Remove, Node: node, Removed: removed})
	})
}

// Publish copies one draft localization to the live workspace
func (m *Manager) Publish(ctx context.Context, id, locale string) (*domain.Node, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	err = m.run(ctx, "publish", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		if node.Localization(locale) == nil {
			return &application.ValidationError{Field: "locale", Message: fmt.Sprintf("node has no %s content", locale)}
		}
		u.touch(node.ID)
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Publish, Node: node, Locale: locale})
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceLive, id)
}

// Unpublish withdraws one localization from the live workspace
func (m *Manager) Unpublish(ctx context.Context, id, locale string) (*domain.Node, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	err = m.run(ctx, "unpublish", func(u *unit) error {
		node, err := m.draftNode(ctx, u.tx, id)
		if err != nil {
			return err
		}
		live, err := u.tx.FindNode(ctx, domain.WorkspaceLive, id)
		if err != nil {
			return err
		}
		if live == nil {
			return &application.DriftError{ID: id, Operation: "unpublish"}
		}
		if live.Localization(locale) == nil {
			return &application.ValidationError{Field: "locale", Message: fmt.Sprintf("node is not published in %s", locale)}
		}
		u.touch(node.ID)
		return m.emit(ctx, u, &lifecycle.Event{Kind: lifecycle.Unpublish, Node: node, Locale: locale})
	})
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, domain.WorkspaceDraft, id)
}

// Get returns a node of a workspace
func (m *Manager) Get(ctx context.Context, ws domain.Workspace, id string) (*domain.Node, error) {
	node, err := m.store.FindNode(ctx, ws, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &application.NotFoundError{Workspace: ws, ID: id}
	}
	return node, nil
}

// Tree returns the whole workspace as a tree localized in locale
func (m *Manager) Tree(ctx context.Context, ws domain.Workspace, locale string) (*domain.TreeNode, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	nodes, err := m.store.Descendants(ctx, ws, domain.RootPath)
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(nodes, locale), nil
}

// Routes lists every route of a workspace and locale
func (m *Manager) Routes(ctx context.Context, ws domain.Workspace, locale string) ([]*domain.Route, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	return m.store.ListRoutes(ctx, ws, locale)
}

// Resolve looks up a request path
func (m *Manager) Resolve(ctx context.Context, ws domain.Workspace, locale, path string) (*domain.Resolution, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	path = domain.JoinPath(domain.RootPath, path)
	res, err := m.resolver.Resolve(ctx, ws, locale, path)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("route %s: %w", path, application.ErrNotFound)
	}
	return res, nil
}

// RegenerateRoutes recomputes every route of a workspace and locale in path
// order, committing a unit of work every batch
func (m *Manager) RegenerateRoutes(ctx context.Context, ws domain.Workspace, locale string) (*ports.RegenerateStats, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return nil, err
	}
	if !ws.Valid() {
		return nil, &application.ValidationError{Field: "workspace", Message: fmt.Sprintf("unknown workspace %q", ws)}
	}

	stats := &ports.RegenerateStats{}
	after := ""
	for {
		var batch []*domain.Node
		err := m.run(ctx, "regenerate", func(u *unit) error {
			var err error
			batch, err = u.tx.ScanNodes(ctx, ws, after, m.batchSize)
			if err != nil {
				return err
			}
			for _, node := range batch {
				u.touch(node.ID)
				loc := node.Localization(locale)
				if loc == nil {
					continue
				}
				before := loc.RoutePath
				if _, err := m.generator.Assign(ctx, u.tx, node, locale); err != nil {
					return err
				}
				if before != loc.RoutePath {
					stats.Changed++
				}
			}
			return nil
		})
		if err != nil {
			return stats, err
		}
		if len(batch) == 0 {
			break
		}
		stats.Scanned += len(batch)
		stats.Batches++
		after = batch[len(batch)-1].Path
		m.log.Info().
			Str("workspace", string(ws)).
			Str("locale", locale).
			Int("scanned", stats.Scanned).
			Int("changed", stats.Changed).
			Msg("route batch committed")
		if len(batch) < m.batchSize {
			break
		}
	}
	return stats, nil
}

// CleanupHistory deletes history routes of a locale, limited to targetID when given
func (m *Manager) CleanupHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) (int, error) {
	locale, err := m.locale(locale)
	if err != nil {
		return 0, err
	}
	var n int
	err = m.run(ctx, "cleanup-history", func(u *unit) error {
		var err error
		n, err = u.tx.DeleteHistory(ctx, ws, locale, targetID)
		return err
	})
	return n, err
}
