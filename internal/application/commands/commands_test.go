package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

const (
	nodeID   = "0b6f3c1e-8d2a-4c55-9e0f-3a7b2c1d4e5f"
	parentID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

// stubManager records calls; methods it does not override panic through the nil interface
type stubManager struct {
	ports.ContentManager
	created  ports.CreateRequest
	moved    [2]string
	resolved *domain.Resolution
	err      error
}

func (s *stubManager) Create(_ context.Context, req ports.CreateRequest) (*domain.Node, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Node{ID: nodeID, Path: "/" + domain.Slugify(req.Title)}, nil
}

func (s *stubManager) Move(_ context.Context, id, newParentID string) (*domain.Node, error) {
	s.moved = [2]string{id, newParentID}
	return &domain.Node{ID: id, Path: "/parent/child"}, s.err
}

func (s *stubManager) Resolve(context.Context, domain.Workspace, string, string) (*domain.Resolution, error) {
	return s.resolved, s.err
}

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		parentID string
		title    string
		locale   string
		wantErr  bool
		errMsg   string
	}{
		{name: "root node", title: "Parent"},
		{name: "child node", parentID: parentID, title: "Child", locale: "de_AT"},
		{name: "empty title", title: "  ", wantErr: true, errMsg: "title is required"},
		{name: "invalid parent", parentID: "S01.11", title: "Child", wantErr: true, errMsg: "expected parent ID"},
		{name: "invalid locale", title: "Child", locale: "english", wantErr: true, errMsg: "invalid locale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateCommand{ParentID: tt.parentID, Title: tt.title, Locale: tt.locale}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateCommand_Execute(t *testing.T) {
	mgr := &stubManager{}
	cmd := NewCreateCommand(mgr, "", "About Us")
	cmd.Publish = true

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mgr.created.Publish || mgr.created.Title != "About Us" {
		t.Errorf("request not forwarded: %+v", mgr.created)
	}
	if !strings.HasPrefix(result.Message, "Created and published") {
		t.Errorf("unexpected message %q", result.Message)
	}

	mgr.err = &application.TemplateError{Template: "{title}", Field: "title", Reason: "value is empty"}
	if _, err := cmd.Execute(context.Background()); !errors.Is(err, application.ErrTemplate) {
		t.Errorf("expected wrapped template error, got %v", err)
	}
}

func TestUpdateCommand_Validate(t *testing.T) {
	title := "New Title"
	tests := []struct {
		name    string
		cmd     UpdateCommand
		wantErr bool
	}{
		{name: "title change", cmd: UpdateCommand{ID: nodeID, Title: &title}},
		{name: "publish only", cmd: UpdateCommand{ID: nodeID, Publish: true}},
		{name: "nothing to do", cmd: UpdateCommand{ID: nodeID}, wantErr: true},
		{name: "missing id", cmd: UpdateCommand{Title: &title}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		dest    string
		wantErr error
	}{
		{name: "move under parent", source: nodeID, dest: parentID},
		{name: "move to root", source: nodeID},
		{name: "move under itself", source: nodeID, dest: nodeID, wantErr: application.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMoveCommand(nil, tt.source, tt.dest).Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	var valErr *application.ValidationError
	if err := NewMoveCommand(nil, "", parentID).Validate(); !errors.As(err, &valErr) || valErr.Field != "sourceID" {
		t.Errorf("expected sourceID validation error, got %v", err)
	}
}

func TestMoveCommand_Execute(t *testing.T) {
	mgr := &stubManager{}
	result, err := NewMoveCommand(mgr, nodeID, parentID).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.moved != [2]string{nodeID, parentID} {
		t.Errorf("unexpected move call %v", mgr.moved)
	}
	if result.Message != "Moved "+nodeID+" to /parent/child" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestReorderCommand_Validate(t *testing.T) {
	if err := NewReorderCommand(nil, nodeID, 1).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewReorderCommand(nil, nodeID, 0).Validate(); err == nil {
		t.Error("expected error for position 0")
	}
}

func TestRenameCommand_Validate(t *testing.T) {
	if err := NewRenameCommand(nil, nodeID, "About").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := NewRenameCommand(nil, nodeID, "!!!").Validate()
	if err == nil || !strings.Contains(err.Error(), "no usable characters") {
		t.Errorf("expected unusable name error, got %v", err)
	}
}

func TestResolveCommand_Execute(t *testing.T) {
	mgr := &stubManager{resolved: &domain.Resolution{
		Route:    &domain.Route{Path: "/parent/child", IsHistory: true},
		TargetID: nodeID,
		Redirect: true,
		Location: "/parent/parent-child",
	}}

	result, err := NewResolveCommand(mgr, domain.WorkspaceLive, "en", "/parent/child").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/parent/child -> 301 /parent/parent-child (" + nodeID + ")"
	if result.Message != want {
		t.Errorf("got %q, want %q", result.Message, want)
	}

	if _, err := NewResolveCommand(mgr, "staging", "en", "/x").Execute(context.Background()); err == nil {
		t.Error("expected unknown workspace error")
	}
}
