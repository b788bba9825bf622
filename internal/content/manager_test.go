package content

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulu/internal/adapters/sqlstore"
	"sulu/internal/application"
	"sulu/internal/config"
	"sulu/internal/domain"
	"sulu/internal/lifecycle"
	"sulu/internal/ports"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newManager(t *testing.T, store *sqlstore.Store, tweak func(*config.Config)) *Manager {
	t.Helper()
	cfg := config.Default()
	if tweak != nil {
		tweak(&cfg)
	}
	m, err := New(store, nil, cfg, zerolog.Nop())
	require.NoError(t, err)
	return m
}

func setup(t *testing.T) (*Manager, *sqlstore.Store) {
	store := newTestStore(t)
	return newManager(t, store, nil), store
}

func ptr(s string) *string { return &s }

func create(t *testing.T, m *Manager, parentID, title string, publish bool) *domain.Node {
	t.Helper()
	node, err := m.Create(context.Background(), ports.CreateRequest{
		ParentID: parentID,
		Title:    title,
		Publish:  publish,
	})
	require.NoError(t, err)
	return node
}

func routePaths(t *testing.T, m *Manager, ws domain.Workspace, locale string) map[string]bool {
	t.Helper()
	routes, err := m.Routes(context.Background(), ws, locale)
	require.NoError(t, err)
	paths := map[string]bool{}
	for _, r := range routes {
		paths[r.Path] = r.IsHistory
	}
	return paths
}

func routeOf(t *testing.T, m *Manager, ws domain.Workspace, id string) string {
	t.Helper()
	node, err := m.Get(context.Background(), ws, id)
	require.NoError(t, err)
	loc := node.Localization("en")
	require.NotNil(t, loc)
	return loc.RoutePath
}

func TestHandlerOrder(t *testing.T) {
	m, _ := setup(t)
	d := m.Dispatcher()

	assert.Equal(t, []string{"publish.mirror", "routing.persist"}, d.Registrations(lifecycle.Persist))
	assert.Equal(t, []string{"publish.publish", "routing.publish"}, d.Registrations(lifecycle.Publish))
	assert.Equal(t, []string{"publish.parity"}, d.Registrations(lifecycle.PreFlush))
	assert.Equal(t, []string{"routing.purge-cache"}, d.Registrations(lifecycle.Flush))
}

func TestCreateMirrorsStructureToLive(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", false)
	child := create(t, m, parent.ID, "Child", false)

	assert.Equal(t, "/parent/child", child.Path)
	assert.Equal(t, 10, child.Order)

	live, err := m.Get(ctx, domain.WorkspaceLive, child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.Path, live.Path)
	assert.Equal(t, parent.ID, live.ParentID)
	assert.Empty(t, live.Localizations, "live shells carry no content until published")

	assert.Equal(t, map[string]bool{"/parent": false, "/parent/child": false}, routePaths(t, m, domain.WorkspaceDraft, "en"))
	assert.Empty(t, routePaths(t, m, domain.WorkspaceLive, "en"))
	assert.Equal(t, domain.StageDraft, child.Localization("en").Stage)
}

func TestPublishCopiesLocalizationToLive(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	node := create(t, m, "", "About Us", false)
	live, err := m.Publish(ctx, node.ID, "en")
	require.NoError(t, err)

	assert.Equal(t, node.ID, live.ID)
	loc := live.Localization("en")
	require.NotNil(t, loc)
	assert.Equal(t, "About Us", loc.Title)
	assert.Equal(t, domain.StagePublished, loc.Stage)
	assert.Equal(t, "/about-us", loc.RoutePath)

	draft, err := m.Get(ctx, domain.WorkspaceDraft, node.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePublished, draft.Localization("en").Stage)

	edited, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Title: ptr("About")})
	require.NoError(t, err)
	assert.Equal(t, domain.StageUnpublishedChanges, edited.Localization("en").Stage)

	live, err = m.Get(ctx, domain.WorkspaceLive, node.ID)
	require.NoError(t, err)
	assert.Equal(t, "About Us", live.Localization("en").Title, "live is untouched by draft edits")
}

func TestConflictingRoutesGetSuffixes(t *testing.T) {
	m, _ := setup(t)

	var names []string
	for range 3 {
		names = append(names, create(t, m, "", "Hello", true).Name)
	}

	assert.Equal(t, []string{"hello", "hello-1", "hello-2"}, names)
	want := map[string]bool{"/hello": false, "/hello-1": false, "/hello-2": false}
	assert.Equal(t, want, routePaths(t, m, domain.WorkspaceDraft, "en"))
	assert.Equal(t, want, routePaths(t, m, domain.WorkspaceLive, "en"))
}

func TestExhaustedNamesReportConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newManager(t, store, func(cfg *config.Config) { cfg.MaxSuffixAttempts = 1 })

	create(t, m, "", "Hello", true)
	create(t, m, "", "Hello", true)

	_, err := m.Create(ctx, ports.CreateRequest{Title: "Hello", Publish: true})
	var ce *application.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, application.ErrSuffixExhausted)
	assert.Equal(t, "/hello", ce.Path)

	for _, ws := range domain.Workspaces {
		children, err := store.Children(ctx, ws, "")
		require.NoError(t, err)
		assert.Len(t, children, 2)
	}
}

func TestExhaustedTemplateRoutesReportConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newManager(t, store, func(cfg *config.Config) { cfg.MaxSuffixAttempts = 1 })

	var parents []*domain.Node
	for _, title := range []string{"One", "Two", "Three"} {
		parents = append(parents, create(t, m, "", title, true))
	}
	for _, parent := range parents[:2] {
		_, err := m.Create(ctx, ports.CreateRequest{ParentID: parent.ID, Type: "article", Title: "Post", Publish: true})
		require.NoError(t, err)
	}
	draftBefore := routePaths(t, m, domain.WorkspaceDraft, "en")
	liveBefore := routePaths(t, m, domain.WorkspaceLive, "en")
	assert.Contains(t, draftBefore, "/articles/post-1")

	_, err := m.Create(ctx, ports.CreateRequest{ParentID: parents[2].ID, Type: "article", Title: "Post", Publish: true})
	var ce *application.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, application.ErrSuffixExhausted)
	assert.Equal(t, 1, ce.Attempts)

	for _, ws := range domain.Workspaces {
		children, err := store.Children(ctx, ws, parents[2].ID)
		require.NoError(t, err)
		assert.Empty(t, children, "nothing persisted in %s", ws)
	}
	assert.Equal(t, draftBefore, routePaths(t, m, domain.WorkspaceDraft, "en"))
	assert.Equal(t, liveBefore, routePaths(t, m, domain.WorkspaceLive, "en"))
}

func TestChangedSegmentLeavesRedirect(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", true)
	child := create(t, m, parent.ID, "Child", true)

	_, err := m.Update(ctx, ports.UpdateRequest{
		ID:      child.ID,
		Locale:  "en",
		Segment: ptr("/parent-child"),
		Publish: true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"/parent":              false,
		"/parent/child":        true,
		"/parent/parent-child": false,
	}, routePaths(t, m, domain.WorkspaceLive, "en"))
	assert.Equal(t, map[string]bool{
		"/parent":              false,
		"/parent/parent-child": false,
	}, routePaths(t, m, domain.WorkspaceDraft, "en"))

	res, err := m.Resolve(ctx, domain.WorkspaceLive, "en", "/parent/child")
	require.NoError(t, err)
	assert.True(t, res.Redirect)
	assert.Equal(t, child.ID, res.TargetID)
	assert.Equal(t, "/parent/parent-child", res.Location)

	live, err := m.Get(ctx, domain.WorkspaceLive, child.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePublished, live.Localization("en").Stage)
	assert.False(t, live.Localization("en").SegmentGenerated)
}

func TestTitleChangeFollowsGeneratedSegment(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	node := create(t, m, "", "Hello", true)
	_, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Title: ptr("World"), Publish: true})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"/hello": true, "/world": false}, routePaths(t, m, domain.WorkspaceLive, "en"))

	// explicit segments are kept when the title changes
	_, err = m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Segment: ptr("fixed")})
	require.NoError(t, err)
	updated, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Title: ptr("Other")})
	require.NoError(t, err)
	assert.Equal(t, "/fixed", updated.Localization("en").RoutePath)
}

func TestOwnHistoryRouteIsReactivated(t *testing.T) {
	ctx := context.Background()
	m, store := setup(t)

	node := create(t, m, "", "Hello", true)
	first, err := store.FindRouteByTarget(ctx, domain.WorkspaceLive, "en", node.ID)
	require.NoError(t, err)

	for _, title := range []string{"World", "Hello"} {
		_, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Title: ptr(title), Publish: true})
		require.NoError(t, err)
	}

	canonical, err := store.FindRouteByTarget(ctx, domain.WorkspaceLive, "en", node.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, canonical.ID)
	assert.Equal(t, "/hello", canonical.Path)

	history, err := store.RouteHistory(ctx, domain.WorkspaceLive, "en", node.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "/world", history[0].Path)
}

func TestHistoryRouteOfOtherTargetIsKept(t *testing.T) {
	ctx := context.Background()
	m, store := setup(t)

	a := create(t, m, "", "Hello", true)
	_, err := m.Update(ctx, ports.UpdateRequest{ID: a.ID, Locale: "en", Title: ptr("World"), Publish: true})
	require.NoError(t, err)

	b := create(t, m, "", "Hello", true)
	assert.Equal(t, "hello-1", b.Name)
	assert.Equal(t, "/hello-1", routeOf(t, m, domain.WorkspaceLive, b.ID))

	res, err := m.Resolve(ctx, domain.WorkspaceLive, "en", "/hello")
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.TargetID)
	assert.True(t, res.Redirect)
	assert.Equal(t, "/world", res.Location)

	history, err := store.RouteHistory(ctx, domain.WorkspaceLive, "en", a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "/hello", history[0].Path)

	assert.Equal(t, map[string]bool{"/hello": true, "/world": false, "/hello-1": false},
		routePaths(t, m, domain.WorkspaceLive, "en"))
}

func TestLocalesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	node := create(t, m, "", "Hello", false)
	_, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "de", Title: ptr("Hallo")})
	require.NoError(t, err)
	other := create(t, m, "", "Hallo", false)

	assert.Equal(t, map[string]bool{"/hello": false, "/hallo": false}, routePaths(t, m, domain.WorkspaceDraft, "en"))
	assert.Equal(t, map[string]bool{"/hallo": false}, routePaths(t, m, domain.WorkspaceDraft, "de"))

	res, err := m.Resolve(ctx, domain.WorkspaceDraft, "de", "hallo")
	require.NoError(t, err)
	assert.Equal(t, node.ID, res.TargetID)
	res, err = m.Resolve(ctx, domain.WorkspaceDraft, "en", "hallo")
	require.NoError(t, err)
	assert.Equal(t, other.ID, res.TargetID)

	_, err = m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "fr"})
	assert.ErrorAs(t, err, new(*application.ValidationError), "a new locale needs a title")
}

func TestNewLocaleChecksRequiredFields(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewRegistry(domain.ContentType{
		Name:          "page",
		RouteTemplate: "{title}",
		Fields:        []domain.FieldDef{{Name: "description", Kind: domain.KindString, Required: true}},
	})
	m, err := New(newTestStore(t), registry, config.Default(), zerolog.Nop())
	require.NoError(t, err)

	node, err := m.Create(ctx, ports.CreateRequest{
		Title:      "Hello",
		Properties: domain.Properties{"description": domain.StringValue("Greeting")},
	})
	require.NoError(t, err)

	_, err = m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "de", Title: ptr("Hallo")})
	var ve *application.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "description", ve.Field)

	draft, err := m.Get(ctx, domain.WorkspaceDraft, node.ID)
	require.NoError(t, err)
	assert.Nil(t, draft.Localization("de"))
	assert.Empty(t, routePaths(t, m, domain.WorkspaceDraft, "de"))

	updated, err := m.Update(ctx, ports.UpdateRequest{
		ID:         node.ID,
		Locale:     "de",
		Title:      ptr("Hallo"),
		Properties: domain.Properties{"description": domain.StringValue("Gruss")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/hallo", updated.Localization("de").RoutePath)
}

func TestMoveCascadesRoutes(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	alpha := create(t, m, "", "Alpha", true)
	charlie := create(t, m, alpha.ID, "Charlie", true)
	beta := create(t, m, "", "Beta", true)

	moved, err := m.Move(ctx, alpha.ID, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, "/beta/alpha", moved.Path)

	liveCharlie, err := m.Get(ctx, domain.WorkspaceLive, charlie.ID)
	require.NoError(t, err)
	assert.Equal(t, "/beta/alpha/charlie", liveCharlie.Path)
	assert.Equal(t, "/beta/alpha/charlie", liveCharlie.Localization("en").RoutePath)

	assert.Equal(t, map[string]bool{
		"/alpha":              true,
		"/alpha/charlie":      true,
		"/beta":               false,
		"/beta/alpha":         false,
		"/beta/alpha/charlie": false,
	}, routePaths(t, m, domain.WorkspaceLive, "en"))
	assert.Equal(t, map[string]bool{
		"/beta":               false,
		"/beta/alpha":         false,
		"/beta/alpha/charlie": false,
	}, routePaths(t, m, domain.WorkspaceDraft, "en"))

	res, err := m.Resolve(ctx, domain.WorkspaceLive, "en", "/alpha/charlie")
	require.NoError(t, err)
	assert.Equal(t, "/beta/alpha/charlie", res.Location)
}

func TestMoveIntoOwnSubtreeIsRejected(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", false)
	child := create(t, m, parent.ID, "Child", false)

	_, err := m.Move(ctx, parent.ID, child.ID)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
	_, err = m.Move(ctx, parent.ID, parent.ID)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
}

func TestCopyCreatesLiveShells(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", true)
	child := create(t, m, parent.ID, "Child", true)

	dup, err := m.Copy(ctx, parent.ID, "")
	require.NoError(t, err)
	assert.NotEqual(t, parent.ID, dup.ID)
	assert.Equal(t, "/parent-1", dup.Path)
	assert.Equal(t, domain.StageDraft, dup.Localization("en").Stage)

	tree, err := m.Tree(ctx, domain.WorkspaceLive, "en")
	require.NoError(t, err)
	liveCopy := tree.Find(dup.ID)
	require.NotNil(t, liveCopy)
	require.Len(t, liveCopy.Children, 1)
	assert.NotEqual(t, child.ID, liveCopy.Children[0].ID)

	draft := routePaths(t, m, domain.WorkspaceDraft, "en")
	assert.Contains(t, draft, "/parent-1")
	assert.Contains(t, draft, "/parent-1/child")
	assert.Len(t, routePaths(t, m, domain.WorkspaceLive, "en"), 2, "copies are not published")
}

func TestReorderFollowsInLive(t *testing.T) {
	ctx := context.Background()
	m, store := setup(t)

	one := create(t, m, "", "One", false)
	two := create(t, m, "", "Two", false)
	three := create(t, m, "", "Three", false)

	siblings, err := m.Reorder(ctx, three.ID, 1)
	require.NoError(t, err)

	var ids []string
	var orders []int
	for _, n := range siblings {
		ids = append(ids, n.ID)
		orders = append(orders, n.Order)
	}
	assert.Equal(t, []string{three.ID, one.ID, two.ID}, ids)
	assert.Equal(t, []int{10, 20, 30}, orders)

	live, err := store.Children(ctx, domain.WorkspaceLive, "")
	require.NoError(t, err)
	require.Len(t, live, 3)
	for i, n := range live {
		assert.Equal(t, ids[i], n.ID)
		assert.Equal(t, orders[i], n.Order)
	}

	_, err = m.Reorder(ctx, one.ID, 0)
	assert.ErrorAs(t, err, new(*application.ValidationError))
}

func TestMoveAfterRemoveRenumbersSiblings(t *testing.T) {
	ctx := context.Background()
	m, store := setup(t)

	x := create(t, m, "", "X", true)
	q := create(t, m, "", "Q", true)
	a := create(t, m, q.ID, "A", true)
	b := create(t, m, q.ID, "B", true)
	c := create(t, m, q.ID, "C", true)

	require.NoError(t, m.Remove(ctx, b.ID))
	_, err := m.Move(ctx, x.ID, q.ID)
	require.NoError(t, err)

	for _, ws := range domain.Workspaces {
		children, err := store.Children(ctx, ws, q.ID)
		require.NoError(t, err)
		var ids []string
		var orders []int
		for _, n := range children {
			ids = append(ids, n.ID)
			orders = append(orders, n.Order)
		}
		assert.Equal(t, []string{a.ID, c.ID, x.ID}, ids, "order in %s", ws)
		assert.Equal(t, []int{10, 20, 30}, orders, "weights in %s", ws)
	}

	d := create(t, m, q.ID, "D", false)
	assert.Equal(t, 40, d.Order)
}

func TestRemoveDeletesBothWorkspaces(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", true)
	child := create(t, m, parent.ID, "Child", true)

	require.NoError(t, m.Remove(ctx, parent.ID))

	for _, ws := range domain.Workspaces {
		_, err := m.Get(ctx, ws, child.ID)
		assert.ErrorIs(t, err, application.ErrNotFound)
		assert.Empty(t, routePaths(t, m, ws, "en"))
	}
}

func TestRemoveWithoutLiveCounterpartRollsBack(t *testing.T) {
	ctx := context.Background()
	m, store := setup(t)

	node := create(t, m, "", "Orphan", false)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteSubtree(ctx, domain.WorkspaceLive, node.ID))
	require.NoError(t, tx.Commit())

	err = m.Remove(ctx, node.ID)
	assert.ErrorIs(t, err, application.ErrIdentifierDrift)

	draft, err := m.Get(ctx, domain.WorkspaceDraft, node.ID)
	require.NoError(t, err, "draft deletion was rolled back")
	assert.Equal(t, "/orphan", draft.Path)
	assert.Contains(t, routePaths(t, m, domain.WorkspaceDraft, "en"), "/orphan")
}

func TestTemplateErrorRollsBackCreate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newManager(t, store, func(cfg *config.Config) {
		cfg.RouteTemplates = map[string]string{"page": "{description}"}
	})

	_, err := m.Create(ctx, ports.CreateRequest{Title: "No Description"})
	var te *application.TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "description", te.Field)

	tree, err := m.Tree(ctx, domain.WorkspaceDraft, "en")
	require.NoError(t, err)
	assert.Empty(t, tree.Children)

	node, err := m.Create(ctx, ports.CreateRequest{
		Title:      "With Description",
		Properties: domain.Properties{"description": domain.StringValue("Team Page")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/team-page", node.Localization("en").RoutePath)
}

func TestArticleUsesAbsoluteTemplate(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Blog", false)
	article, err := m.Create(ctx, ports.CreateRequest{ParentID: parent.ID, Type: "article", Title: "First Post"})
	require.NoError(t, err)

	assert.Equal(t, "/blog/first-post", article.Path)
	assert.Equal(t, "/articles/first-post", article.Localization("en").RoutePath)
}

func TestUnpublish(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	node := create(t, m, "", "Hello", true)
	draft, err := m.Unpublish(ctx, node.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDraft, draft.Localization("en").Stage)

	live, err := m.Get(ctx, domain.WorkspaceLive, node.ID)
	require.NoError(t, err)
	assert.Nil(t, live.Localization("en"))
	assert.Empty(t, routePaths(t, m, domain.WorkspaceLive, "en"))

	_, err = m.Resolve(ctx, domain.WorkspaceLive, "en", "/hello")
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = m.Unpublish(ctx, node.ID, "en")
	assert.ErrorAs(t, err, new(*application.ValidationError))
}

func TestRegenerateRoutesInBatches(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	small := func(cfg *config.Config) { cfg.BatchSize = 2 }
	m := newManager(t, store, small)

	for _, title := range []string{"A", "B", "C"} {
		create(t, m, "", title, false)
	}

	stats, err := m.RegenerateRoutes(ctx, domain.WorkspaceDraft, "en")
	require.NoError(t, err)
	assert.Equal(t, ports.RegenerateStats{Scanned: 3, Changed: 0, Batches: 2}, *stats)

	prefixed := newManager(t, store, func(cfg *config.Config) {
		small(cfg)
		cfg.RouteTemplates = map[string]string{"page": "/pages/{title}"}
	})
	stats, err = prefixed.RegenerateRoutes(ctx, domain.WorkspaceDraft, "en")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Changed)
	assert.Equal(t, map[string]bool{"/pages/a": false, "/pages/b": false, "/pages/c": false},
		routePaths(t, prefixed, domain.WorkspaceDraft, "en"))
}

func TestCleanupHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	node := create(t, m, "", "Hello", true)
	_, err := m.Update(ctx, ports.UpdateRequest{ID: node.ID, Locale: "en", Title: ptr("World"), Publish: true})
	require.NoError(t, err)

	n, err := m.CleanupHistory(ctx, domain.WorkspaceLive, "en", node.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[string]bool{"/world": false}, routePaths(t, m, domain.WorkspaceLive, "en"))
}

func TestRenameMirrorsToLive(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	parent := create(t, m, "", "Parent", true)
	child := create(t, m, parent.ID, "Child", false)

	renamed, err := m.Rename(ctx, parent.ID, "Renamed Parent")
	require.NoError(t, err)
	assert.Equal(t, "/renamed-parent", renamed.Path)

	live, err := m.Get(ctx, domain.WorkspaceLive, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "/renamed-parent/child", live.Path)
	assert.Equal(t, "/parent", renamed.Localization("en").RoutePath, "routes follow segments, not names")
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	_, err := m.Publish(ctx, "5b4f1f9e-2c43-4c1f-9a7e-0d8c6d3e0f11", "en")
	assert.True(t, errors.Is(err, application.ErrNotFound))

	_, err = m.Publish(ctx, "not-a-uuid", "en")
	assert.ErrorAs(t, err, new(*application.ValidationError))
}
