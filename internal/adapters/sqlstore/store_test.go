package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulu/internal/domain"
	"sulu/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func begin(t *testing.T, s *Store) ports.Tx {
	t.Helper()
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func page(id, parentID, path string, order int) *domain.Node {
	return &domain.Node{
		ID:        id,
		Workspace: domain.WorkspaceDraft,
		ParentID:  parentID,
		Path:      path,
		Name:      domain.BaseName(path),
		Type:      "page",
		Order:     order,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)

	version, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestNodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	node := page("a", "", "/parent", 10)
	node.Mixins = []string{"seo", "excerpt"}
	node.SetLocalization(&domain.Localization{
		Locale:           "en",
		Title:            "Parent",
		Segment:          "parent",
		SegmentGenerated: true,
		Stage:            domain.StageDraft,
		Properties: domain.Properties{
			"description": domain.StringValue("hello"),
			"keywords":    domain.StringsValue([]string{"a", "b"}),
		},
		ChangedAt: time.Now().UTC(),
	})
	node.SetLocalization(&domain.Localization{Locale: "de", Title: "Eltern", Stage: domain.StageDraft})

	tx := begin(t, s)
	require.NoError(t, tx.InsertNode(ctx, node))
	require.NoError(t, tx.Commit())

	got, err := s.FindNode(ctx, domain.WorkspaceDraft, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/parent", got.Path)
	assert.Equal(t, []string{"seo", "excerpt"}, got.Mixins)
	assert.Equal(t, []string{"de", "en"}, got.Locales())

	en := got.Localization("en")
	require.NotNil(t, en)
	assert.Equal(t, "Parent", en.Title)
	assert.True(t, en.SegmentGenerated)
	assert.Equal(t, domain.StringValue("hello"), en.Properties["description"])
	assert.Equal(t, []string{"a", "b"}, en.Properties["keywords"].Strings)

	other, err := s.FindNode(ctx, domain.WorkspaceLive, "a")
	require.NoError(t, err)
	assert.Nil(t, other, "workspaces are separate")
}

func TestRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx := begin(t, s)
	require.NoError(t, tx.InsertNode(ctx, page("a", "", "/a", 10)))
	require.NoError(t, tx.Rollback())

	got, err := s.FindNode(ctx, domain.WorkspaceDraft, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMoveNodeRewritesSubtree(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx := begin(t, s)
	for _, n := range []*domain.Node{
		page("a", "", "/a", 10),
		page("b", "a", "/a/b", 10),
		page("c", "b", "/a/b/c", 10),
		page("ab", "", "/ab", 20),
		page("x", "", "/x", 30),
	} {
		require.NoError(t, tx.InsertNode(ctx, n))
	}

	moved, err := tx.MoveNode(ctx, domain.WorkspaceDraft, "b", "x", "b2")
	require.NoError(t, err)
	assert.Equal(t, "/x/b2", moved.Path)
	require.NoError(t, tx.Commit())

	c, err := s.FindNode(ctx, domain.WorkspaceDraft, "c")
	require.NoError(t, err)
	assert.Equal(t, "/x/b2/c", c.Path)

	ab, err := s.FindNode(ctx, domain.WorkspaceDraft, "ab")
	require.NoError(t, err)
	assert.Equal(t, "/ab", ab.Path, "siblings sharing a name prefix are untouched")

	desc, err := s.Descendants(ctx, domain.WorkspaceDraft, "/x")
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "b", desc[0].ID)
	assert.Equal(t, "c", desc[1].ID)
}

func TestChildrenOrderAndDeleteSubtree(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx := begin(t, s)
	require.NoError(t, tx.InsertNode(ctx, page("p", "", "/p", 10)))
	require.NoError(t, tx.InsertNode(ctx, page("one", "p", "/p/one", 20)))
	require.NoError(t, tx.InsertNode(ctx, page("two", "p", "/p/two", 10)))
	require.NoError(t, tx.SetOrder(ctx, domain.WorkspaceDraft, "one", 5))

	children, err := tx.Children(ctx, domain.WorkspaceDraft, "p")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "one", children[0].ID)

	require.NoError(t, tx.DeleteSubtree(ctx, domain.WorkspaceDraft, "p"))
	require.NoError(t, tx.Commit())

	all, err := s.Descendants(ctx, domain.WorkspaceDraft, domain.RootPath)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScanNodesPages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx := begin(t, s)
	require.NoError(t, tx.InsertNode(ctx, page("a", "", "/a", 10)))
	require.NoError(t, tx.InsertNode(ctx, page("b", "", "/b", 20)))
	require.NoError(t, tx.InsertNode(ctx, page("c", "", "/c", 30)))
	require.NoError(t, tx.Commit())

	first, err := s.ScanNodes(ctx, domain.WorkspaceDraft, "", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "/b", first[1].Path)

	rest, err := s.ScanNodes(ctx, domain.WorkspaceDraft, first[1].Path, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "/c", rest[0].Path)
}

func TestRoutes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx := begin(t, s)
	old := &domain.Route{ID: "r1", Workspace: domain.WorkspaceLive, Locale: "en", Path: "/old", TargetID: "a"}
	cur := &domain.Route{ID: "r2", Workspace: domain.WorkspaceLive, Locale: "en", Path: "/new", TargetID: "a"}
	de := &domain.Route{ID: "r3", Workspace: domain.WorkspaceLive, Locale: "de", Path: "/new", TargetID: "a"}
	for _, r := range []*domain.Route{old, cur, de} {
		require.NoError(t, tx.CreateRoute(ctx, r))
	}
	require.NoError(t, tx.MarkHistory(ctx, "r1"))

	dup := &domain.Route{ID: "r4", Workspace: domain.WorkspaceLive, Locale: "en", Path: "/new", TargetID: "b"}
	assert.Error(t, tx.CreateRoute(ctx, dup), "path is unique per workspace and locale")
	require.NoError(t, tx.Rollback())

	tx = begin(t, s)
	for _, r := range []*domain.Route{old, cur, de} {
		require.NoError(t, tx.CreateRoute(ctx, r))
	}
	require.NoError(t, tx.MarkHistory(ctx, "r1"))
	require.NoError(t, tx.Commit())

	canonical, err := s.FindRouteByTarget(ctx, domain.WorkspaceLive, "en", "a")
	require.NoError(t, err)
	require.NotNil(t, canonical)
	assert.Equal(t, "/new", canonical.Path)

	history, err := s.RouteHistory(ctx, domain.WorkspaceLive, "en", "a")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsHistory)

	missing, err := s.FindRoute(ctx, domain.WorkspaceDraft, "en", "/new")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tx = begin(t, s)
	n, err := tx.DeleteHistory(ctx, domain.WorkspaceLive, "en", "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, tx.DeleteRoutesForTargets(ctx, domain.WorkspaceLive, "", []string{"a"}))
	require.NoError(t, tx.Commit())

	for _, locale := range []string{"en", "de"} {
		routes, err := s.ListRoutes(ctx, domain.WorkspaceLive, locale)
		require.NoError(t, err)
		assert.Empty(t, routes)
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM routes WHERE workspace = ? AND path = ?"
	assert.Equal(t, q, rebind(DriverSQLite, q))
	assert.Equal(t, "SELECT * FROM routes WHERE workspace = $1 AND path = $2", rebind(DriverPostgres, q))
}
