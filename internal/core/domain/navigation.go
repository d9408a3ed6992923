package domain

import "strings"

// Icon identifies the glyph rendered next to a navigation entry. A tagged
// enum keeps the menu tables free of stringly icon-name lookups.
type Icon int

const (
	IconNone Icon = iota
	IconDashboard
	IconSchool
	IconBanner
	IconNotice
	IconTeacher
	IconStudent
	IconClass
	IconSubject
	IconPackage
	IconSeries
	IconLearning
	IconProfile
)

var iconNames = map[Icon]string{
	IconNone:      "none",
	IconDashboard: "dashboard",
	IconSchool:    "school",
	IconBanner:    "banner",
	IconNotice:    "notice",
	IconTeacher:   "teacher",
	IconStudent:   "student",
	IconClass:     "class",
	IconSubject:   "subject",
	IconPackage:   "package",
	IconSeries:    "series",
	IconLearning:  "learning",
	IconProfile:   "profile",
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "none"
}

// NavigationEntry is one sidebar item. Entries are value objects: the
// per-role tables below are never mutated, and BuildNavigation hands out
// fresh copies.
type NavigationEntry struct {
	Title    string            `json:"title"`
	Path     string            `json:"path"`
	Icon     Icon              `json:"-"`
	IconName string            `json:"icon"`
	Children []NavigationEntry `json:"children,omitempty"`
}

// The per-role menu tables. The list a role receives is the complete and
// exclusive set of pages that role can discover in the UI; the route guard
// only separates authenticated from anonymous traffic, so discoverability
// here is the role-level gate.
var navigationTables = map[Role][]NavigationEntry{
	RoleSuperAdmin: {
		{Title: "Dashboard", Path: "/homepage/dashboard", Icon: IconDashboard},
		{Title: "Schools", Path: "/homepage/schools", Icon: IconSchool},
		{Title: "Banners", Path: "/homepage/banners", Icon: IconBanner},
		{Title: "Notices", Path: "/homepage/notices", Icon: IconNotice},
		{Title: "Catalog", Path: "/homepage/catalog", Icon: IconPackage, Children: []NavigationEntry{
			{Title: "Packages", Path: "/homepage/catalog/packages", Icon: IconPackage},
			{Title: "Series", Path: "/homepage/catalog/series", Icon: IconSeries},
		}},
	},
	RoleTenantAdmin: {
		{Title: "Dashboard", Path: "/homepage/dashboard", Icon: IconDashboard},
		{Title: "Teachers", Path: "/homepage/teachers", Icon: IconTeacher},
		{Title: "Students", Path: "/homepage/students", Icon: IconStudent},
		{Title: "Classes", Path: "/homepage/classes", Icon: IconClass},
		{Title: "Subjects", Path: "/homepage/subjects", Icon: IconSubject},
		{Title: "Notices", Path: "/homepage/notices", Icon: IconNotice},
	},
	RoleSchoolAdmin: {
		{Title: "Dashboard", Path: "/homepage/dashboard", Icon: IconDashboard},
		{Title: "Teachers", Path: "/homepage/teachers", Icon: IconTeacher},
		{Title: "Students", Path: "/homepage/students", Icon: IconStudent},
		{Title: "Notices", Path: "/homepage/notices", Icon: IconNotice},
	},
	RoleTeacher: {
		{Title: "Dashboard", Path: "/homepage/dashboard", Icon: IconDashboard},
		{Title: "Start Learning", Path: "/homepage/learning", Icon: IconLearning},
		{Title: "My Classes", Path: "/homepage/my-classes", Icon: IconClass},
		{Title: "Notices", Path: "/homepage/notices", Icon: IconNotice},
	},
	RoleStudent: {
		{Title: "Dashboard", Path: "/homepage/dashboard", Icon: IconDashboard},
		{Title: "Start Learning", Path: "/homepage/learning", Icon: IconLearning},
		{Title: "Notices", Path: "/homepage/notices", Icon: IconNotice},
	},
}

// BuildNavigation returns the ordered menu for a canonical role. The result
// is a deep copy; callers may annotate it freely. An unknown role yields an
// empty menu (locked-out UI), distinct from ResolveRole's student fallback
// which happens upstream.
func BuildNavigation(role Role) []NavigationEntry {
	table, ok := navigationTables[role]
	if !ok {
		return []NavigationEntry{}
	}
	return copyEntries(table)
}

func copyEntries(entries []NavigationEntry) []NavigationEntry {
	out := make([]NavigationEntry, len(entries))
	for i, e := range entries {
		e.IconName = e.Icon.String()
		if len(e.Children) > 0 {
			e.Children = copyEntries(e.Children)
		}
		out[i] = e
	}
	return out
}

// AllowedPrefixes derives the role's discoverable path prefixes from its
// menu table. Served to the client router (via the navigation access
// endpoint) so it can tell a hidden page from a broken link; the page-level
// route guard stays deliberately role-blind.
func AllowedPrefixes(role Role) []string {
	var prefixes []string
	var walk func([]NavigationEntry)
	walk = func(entries []NavigationEntry) {
		for _, e := range entries {
			prefixes = append(prefixes, e.Path)
			walk(e.Children)
		}
	}
	walk(navigationTables[role])
	return prefixes
}

// RoleMayAccess reports whether path falls under one of the role's menu
// entries.
func RoleMayAccess(role Role, path string) bool {
	for _, p := range AllowedPrefixes(role) {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
