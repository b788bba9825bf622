package domain

import (
	"maps"
	"slices"
	"sort"
	"time"
)

// Node is one content item in a workspace tree
type Node struct {
	ID        string // stable identifier, shared by draft and live
	Workspace Workspace
	ParentID  string // empty for children of the workspace root
	Path      string // workspace relative, e.g. "/parent/child"
	Name      string // last path segment
	Type      string // content type name
	Mixins    []string
	Order     int // explicit order weight among siblings
	CreatedAt time.Time

	Localizations map[string]*Localization
}

// Localization holds the per-locale content of a node
type Localization struct {
	Locale           string
	Title            string
	Segment          string // resource segment, a leading "/" marks an absolute route
	SegmentGenerated bool   // segment comes from the route template and follows the title
	RoutePath        string // route currently assigned in the node's workspace
	Stage            Stage
	Properties       Properties
	ChangedAt        time.Time
}

// Localization returns the localization for locale or nil
func (n *Node) Localization(locale string) *Localization {
	if n == nil || n.Localizations == nil {
		return nil
	}
	return n.Localizations[locale]
}

// SetLocalization stores loc under its locale
func (n *Node) SetLocalization(loc *Localization) {
	if n.Localizations == nil {
		n.Localizations = make(map[string]*Localization)
	}
	n.Localizations[loc.Locale] = loc
}

// Locales returns the node's locales in sorted order
func (n *Node) Locales() []string {
	locales := make([]string, 0, len(n.Localizations))
	for locale := range n.Localizations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Mixins = slices.Clone(n.Mixins)
	c.Localizations = make(map[string]*Localization, len(n.Localizations))
	for locale, loc := range n.Localizations {
		c.Localizations[locale] = loc.Clone()
	}
	return &c
}

// Shell returns a structural copy of the node for workspace ws, without content
func (n *Node) Shell(ws Workspace) *Node {
	return &Node{
		ID:            n.ID,
		Workspace:     ws,
		ParentID:      n.ParentID,
		Path:          n.Path,
		Name:          n.Name,
		Type:          n.Type,
		Mixins:        slices.Clone(n.Mixins),
		Order:         n.Order,
		CreatedAt:     n.CreatedAt,
		Localizations: map[string]*Localization{},
	}
}

// Clone returns a deep copy of the localization
func (l *Localization) Clone() *Localization {
	if l == nil {
		return nil
	}
	c := *l
	c.Properties = l.Properties.Clone()
	return &c
}

// Clone returns a deep copy of the properties
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	c := maps.Clone(p)
	for k, v := range c {
		v.Strings = slices.Clone(v.Strings)
		c[k] = v
	}
	return c
}
