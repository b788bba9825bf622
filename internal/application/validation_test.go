package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "Parent",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "title",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		id        string
		wantErr   bool
	}{
		{
			name:      "valid uuid",
			fieldName: "id",
			id:        "1f0e2a4c-6a8b-4c1d-9e3f-5a7b9c1d3e5f",
			wantErr:   false,
		},
		{
			name:      "empty",
			fieldName: "parentID",
			id:        "",
			wantErr:   true,
		},
		{
			name:      "not a uuid",
			fieldName: "sourceID",
			id:        "S01.11",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.fieldName, tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateLocale(t *testing.T) {
	for _, locale := range []string{"en", "de", "de_AT", "zh_Hans"} {
		if err := ValidateLocale(locale); err != nil {
			t.Errorf("ValidateLocale(%q) = %v", locale, err)
		}
	}
	for _, locale := range []string{"", "english", "EN", "de-"} {
		if err := ValidateLocale(locale); err == nil {
			t.Errorf("ValidateLocale(%q) expected error", locale)
		}
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		err    error
		target error
	}{
		{&DriftError{ID: "x", Operation: "remove"}, ErrIdentifierDrift},
		{&TemplateError{Template: "{title}", Field: "title", Reason: "missing"}, ErrTemplate},
		{&ConflictError{Path: "/hello", Attempts: 3}, ErrSuffixExhausted},
		{&NotFoundError{Workspace: WorkspaceDraft, ID: "x"}, ErrNotFound},
		{&MoveError{SourceID: "a", DestID: "b", Reason: "cycle"}, ErrInvalidOperation},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.target) {
			t.Errorf("%T does not match %v", tt.err, tt.target)
		}
	}
}
