// Package catalog holds the idol groups and members a ranking can refer to.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/oshichecker/internal/domain/locale"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Names holds a display name per locale. Japanese is mandatory and is the
// fallback for missing translations.
type Names map[locale.Locale]string

// In returns the name for l, falling back to Japanese.
func (n Names) In(l locale.Locale) string {
	if v := n[l]; v != "" {
		return v
	}
	return n[locale.JA]
}

// Group is an idol group.
type Group struct {
	ID      string `yaml:"id" json:"id"`
	Names   Names  `yaml:"names" json:"names"`
	BlogURL string `yaml:"blog_url" json:"blog_url,omitempty"`
}

// Member is a candidate in a ranking.
type Member struct {
	ID      string `yaml:"id" json:"id"`
	GroupID string `yaml:"group_id" json:"group_id"`
	Names   Names  `yaml:"names" json:"names"`
}

type document struct {
	Groups  []Group  `yaml:"groups"`
	Members []Member `yaml:"members"`
}

// Catalog is an immutable, validated set of groups and members.
type Catalog struct {
	groups     []Group
	members    []Member
	groupByID  map[string]int
	memberByID map[string]int
}

// Default parses the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return New(doc.Groups, doc.Members)
}

// New validates groups and members and builds the lookup indexes.
func New(groups []Group, members []Member) (*Catalog, error) {
	c := &Catalog{
		groups:     groups,
		members:    members,
		groupByID:  make(map[string]int, len(groups)),
		memberByID: make(map[string]int, len(members)),
	}
	for i, g := range groups {
		if g.ID == "" {
			return nil, fmt.Errorf("%w: group %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.groupByID[g.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate group %q", ErrInvalidCatalog, g.ID)
		}
		if g.Names[locale.JA] == "" {
			return nil, fmt.Errorf("%w: group %q has no ja name", ErrInvalidCatalog, g.ID)
		}
		c.groupByID[g.ID] = i
	}
	for i, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: member %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.memberByID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidCatalog, m.ID)
		}
		if m.Names[locale.JA] == "" {
			return nil, fmt.Errorf("%w: member %q has no ja name", ErrInvalidCatalog, m.ID)
		}
		if _, ok := c.groupByID[m.GroupID]; m.GroupID != "" && !ok {
			return nil, fmt.Errorf("%w: member %q refers to unknown group %q", ErrInvalidCatalog, m.ID, m.GroupID)
		}
		c.memberByID[m.ID] = i
	}
	return c, nil
}

// Member looks a member up by id.
func (c *Catalog) Member(id string) (Member, error) {
	i, ok := c.memberByID[id]
	if !ok {
		return Member{}, fmt.Errorf("%w: %q", ErrUnknownMember, id)
	}
	return c.members[i], nil
}

// Group looks a group up by id.
func (c *Catalog) Group(id string) (Group, bool) {
	i, ok := c.groupByID[id]
	if !ok {
		return Group{}, false
	}
	return c.groups[i], true
}

// GroupName returns the localized group name of a member, or "" when the
// member has no group.
func (c *Catalog) GroupName(m Member, l locale.Locale) string {
	g, ok := c.Group(m.GroupID)
	if !ok {
		return ""
	}
	return g.Names.In(l)
}

// Members returns a copy of all members in catalog order.
func (c *Catalog) Members() []Member {
	return append([]Member(nil), c.members...)
}

// Groups returns a copy of all groups in catalog order.
func (c *Catalog) Groups() []Group {
	return append([]Group(nil), c.groups...)
}

// MemberIDs returns all member ids in catalog order.
func (c *Catalog) MemberIDs() []string {
	out := make([]string, len(c.members))
	for i, m := range c.members {
		out[i] = m.ID
	}
	return out
}

// Len returns the number of members.
func (c *Catalog) Len() int { return len(c.members) }

// GroupView is a group rendered in one locale.
type GroupView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BlogURL string `json:"blog_url,omitempty"`
}

// MemberView is a member rendered in one locale.
type MemberView struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	GroupName string `json:"group_name"`
}

// View is the catalog rendered in one locale.
type View struct {
	Locale  locale.Locale `json:"locale"`
	Groups  []GroupView   `json:"groups"`
	Members []MemberView  `json:"members"`
}

// Localize renders the catalog in l, keeping catalog order.
func (c *Catalog) Localize(l locale.Locale) View {
	v := View{
		Locale:  l,
		Groups:  make([]GroupView, 0, len(c.groups)),
		Members: make([]MemberView, 0, len(c.members)),
	}
	for _, g := range c.groups {
		v.Groups = append(v.Groups, GroupView{ID: g.ID, Name: g.Names.In(l), BlogURL: g.BlogURL})
	}
	for _, m := range c.members {
		v.Members = append(v.Members, MemberView{
			ID:        m.ID,
			GroupID:   m.GroupID,
			Name:      m.Names.In(l),
			GroupName: c.GroupName(m, l),
		})
	}
	return v
}
