// Package publish keeps the live workspace structurally in line with the
// draft workspace and copies content across on publish.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/lifecycle"
	"sulu/internal/ports"
)

// Synchronizer mirrors draft structure changes into the live workspace.
// Live nodes share identifiers with their draft counterparts and only carry
// localizations that have been published.
type Synchronizer struct {
	log zerolog.Logger
	now func() time.Time
}

// New creates a synchronizer
func New(log zerolog.Logger) *Synchronizer {
	return &Synchronizer{log: log, now: time.Now}
}

// Register attaches the synchronizer handlers to d
func (s *Synchronizer) Register(d *lifecycle.Dispatcher) {
	d.On(lifecycle.Persist, "publish.mirror", s.onPersist)
	d.On(lifecycle.Rename, "publish.rename", s.onRename)
	d.On(lifecycle.Move, "publish.move", s.onMove)
	d.On(lifecycle.Copy, "publish.copy", s.onCopy)
	d.On(lifecycle.Reorder, "publish.reorder", s.onReorder)
	d.On(lifecycle.Remove, "publish.remove", s.onRemove)
	d.On(lifecycle.Publish, "publish.publish", s.onPublish)
	d.On(lifecycle.Unpublish, "publish.unpublish", s.onUnpublish)
	d.On(lifecycle.PreFlush, "publish.parity", s.onPreFlush)
}

// EnsureLive creates live shells for node and any missing ancestors
func (s *Synchronizer) EnsureLive(ctx context.Context, tx ports.Tx, node *domain.Node) error {
	var missing []*domain.Node
	for cur := node; cur != nil; {
		live, err := tx.FindNode(ctx, domain.WorkspaceLive, cur.ID)
		if err != nil {
			return err
		}
		if live != nil {
			break
		}
		missing = append(missing, cur)
		if cur.ParentID == "" {
			break
		}
		parent, err := tx.FindNode(ctx, domain.WorkspaceDraft, cur.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return &application.NotFoundError{Workspace: domain.WorkspaceDraft, ID: cur.ParentID}
		}
		cur = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		shell := missing[i].Shell(domain.WorkspaceLive)
		if err := tx.InsertNode(ctx, shell); err != nil {
			return fmt.Errorf("create live shell: %w", err)
		}
		s.log.Debug().Str("node_id", shell.ID).Str("path", shell.Path).Msg("live shell created")
	}
	return nil
}

func (s *Synchronizer) liveNode(ctx context.Context, tx ports.Tx, id, op string) (*domain.Node, error) {
	live, err := tx.FindNode(ctx, domain.WorkspaceLive, id)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return nil, &application.DriftError{ID: id, Operation: op}
	}
	return live, nil
}

func (s *Synchronizer) onPersist(ctx context.Context, ev *lifecycle.Event) error {
	return s.EnsureLive(ctx, ev.Tx, ev.Node)
}

func (s *Synchronizer) onRename(ctx context.Context, ev *lifecycle.Event) error {
	live, err := s.liveNode(ctx, ev.Tx, ev.Node.ID, "rename")
	if err != nil {
		return err
	}
	_, err = ev.Tx.MoveNode(ctx, domain.WorkspaceLive, live.ID, live.ParentID, ev.Node.Name)
	return err
}

func (s *Synchronizer) onMove(ctx context.Context, ev *lifecycle.Event) error {
	if ev.Node.ParentID != "" {
		parent, err := ev.Tx.FindNode(ctx, domain.WorkspaceDraft, ev.Node.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return &application.NotFoundError{Workspace: domain.WorkspaceDraft, ID: ev.Node.ParentID}
		}
		if err := s.EnsureLive(ctx, ev.Tx, parent); err != nil {
			return err
		}
	}
	if _, err := s.liveNode(ctx, ev.Tx, ev.Node.ID, "move"); err != nil {
		return err
	}
	moved, err := ev.Tx.MoveNode(ctx, domain.WorkspaceLive, ev.Node.ID, ev.Node.ParentID, ev.Node.Name)
	if err != nil {
		return err
	}
	s.log.Debug().Str("node_id", moved.ID).Str("path", moved.Path).Msg("live node moved")
	return nil
}

func (s *Synchronizer) onCopy(ctx context.Context, ev *lifecycle.Event) error {
	for _, pair := range ev.Copies {
		node, err := ev.Tx.FindNode(ctx, domain.WorkspaceDraft, pair.CopyID)
		if err != nil {
			return err
		}
		if node == nil {
			return &application.NotFoundError{Workspace: domain.WorkspaceDraft, ID: pair.CopyID}
		}
		if err := s.EnsureLive(ctx, ev.Tx, node); err != nil {
			return err
		}
	}
	return nil
}

// onReorder orders live siblings as the draft siblings, each weighted
// position*10
func (s *Synchronizer) onReorder(ctx context.Context, ev *lifecycle.Event) error {
	siblings, err := ev.Tx.Children(ctx, domain.WorkspaceDraft, ev.Node.ParentID)
	if err != nil {
		return err
	}
	for i, sib := range siblings {
		live, err := s.liveNode(ctx, ev.Tx, sib.ID, "reorder")
		if err != nil {
			return err
		}
		order := (i + 1) * 10
		if live.Order == order {
			continue
		}
		if err := ev.Tx.SetOrder(ctx, domain.WorkspaceLive, sib.ID, order); err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) onRemove(ctx context.Context, ev *lifecycle.Event) error {
	live, err := s.liveNode(ctx, ev.Tx, ev.Node.ID, "remove")
	if err != nil {
		return err
	}
	return ev.Tx.DeleteSubtree(ctx, domain.WorkspaceLive, live.ID)
}

func (s *Synchronizer) onPublish(ctx context.Context, ev *lifecycle.Event) error {
	loc := ev.Node.Localization(ev.Locale)
	if loc == nil {
		return fmt.Errorf("publish %s: no %s localization", ev.Node.ID, ev.Locale)
	}
	if err := s.EnsureLive(ctx, ev.Tx, ev.Node); err != nil {
		return err
	}
	live, err := s.liveNode(ctx, ev.Tx, ev.Node.ID, "publish")
	if err != nil {
		return err
	}

	now := s.now().UTC()
	liveLoc := loc.Clone()
	liveLoc.RoutePath = ""
	if prev := live.Localization(ev.Locale); prev != nil {
		liveLoc.RoutePath = prev.RoutePath
	}
	liveLoc.Stage = domain.StagePublished
	liveLoc.ChangedAt = now
	if err := ev.Tx.SaveLocalization(ctx, domain.WorkspaceLive, live.ID, liveLoc); err != nil {
		return err
	}

	loc.Stage = domain.StagePublished
	loc.ChangedAt = now
	if err := ev.Tx.SaveLocalization(ctx, domain.WorkspaceDraft, ev.Node.ID, loc); err != nil {
		return err
	}

	s.log.Info().Str("node_id", ev.Node.ID).Str("locale", ev.Locale).Msg("published")
	return nil
}

func (s *Synchronizer) onUnpublish(ctx context.Context, ev *lifecycle.Event) error {
	if _, err := s.liveNode(ctx, ev.Tx, ev.Node.ID, "unpublish"); err != nil {
		return err
	}
	if err := ev.Tx.DeleteLocalization(ctx, domain.WorkspaceLive, ev.Node.ID, ev.Locale); err != nil {
		return err
	}
	if loc := ev.Node.Localization(ev.Locale); loc != nil {
		loc.Stage = domain.StageDraft
		loc.ChangedAt = s.now().UTC()
		if err := ev.Tx.SaveLocalization(ctx, domain.WorkspaceDraft, ev.Node.ID, loc); err != nil {
			return err
		}
	}
	s.log.Info().Str("node_id", ev.Node.ID).Str("locale", ev.Locale).Msg("unpublished")
	return nil
}

// onPreFlush verifies that every touched node exists in both workspaces or
// in neither, under the same parent and path
func (s *Synchronizer) onPreFlush(ctx context.Context, ev *lifecycle.Event) error {
	for _, id := range ev.Touched {
		draft, err := ev.Tx.FindNode(ctx, domain.WorkspaceDraft, id)
		if err != nil {
			return err
		}
		live, err := ev.Tx.FindNode(ctx, domain.WorkspaceLive, id)
		if err != nil {
			return err
		}
		switch {
		case draft == nil && live == nil:
		case draft == nil || live == nil:
			return &application.DriftError{ID: id, Operation: "parity check"}
		case draft.ParentID != live.ParentID || draft.Path != live.Path:
			s.log.Error().
				Str("node_id", id).
				Str("draft_path", draft.Path).
				Str("live_path", live.Path).
				Msg("workspace structure diverged")
			return &application.DriftError{ID: id, Operation: "parity check"}
		}
	}
	return nil
}
