package domain

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple title", input: "Hello", want: "hello"},
		{name: "spaces", input: "Hello World", want: "hello-world"},
		{name: "accents", input: "Über Uns", want: "uber-uns"},
		{name: "punctuation collapses", input: "News, Events & More!", want: "news-events-more"},
		{name: "leading and trailing noise", input: "  --Parent Child--  ", want: "parent-child"},
		{name: "digits kept", input: "Season 2025", want: "season-2025"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "/parent-child", want: "parent-child"},
		{input: "/articles/My Title", want: "articles/my-title"},
		{input: "a//b/", want: "a/b"},
		{input: "/", want: ""},
	}

	for _, tt := range tests {
		if got := SlugifyPath(tt.input); got != tt.want {
			t.Errorf("SlugifyPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
