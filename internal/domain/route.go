package domain

import "time"

// Route maps a URL path to a content identifier within a workspace and locale
type Route struct {
	ID        string
	Workspace Workspace
	Locale    string
	Path      string
	TargetID  string
	IsHistory bool // superseded route kept as a redirect
	CreatedAt time.Time
}

// Resolution is the outcome of looking up a path in the route table
type Resolution struct {
	Route    *Route
	TargetID string
	Redirect bool
	Location string // canonical path of the target when Redirect is set
}
