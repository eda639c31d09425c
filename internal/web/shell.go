package web

// Shell text shown on every page.
const (
	SidebarTitle      = "Ticket System"
	HeaderTitle       = "Ticket Management System"
	NotificationCount = 3
)

// NavItem is one sidebar link.
type NavItem struct {
	Name   string
	Path   string
	Icon   string
	Active bool
}

var navigation = []NavItem{
	{Name: "Dashboard", Path: "/", Icon: "home"},
	{Name: "Tickets", Path: "/tickets", Icon: "ticket"},
	{Name: "Users", Path: "/users", Icon: "users"},
	{Name: "Reports", Path: "/reports", Icon: "chart"},
	{Name: "Settings", Path: "/settings", Icon: "cog"},
}

// Navigation returns the sidebar items with the one whose path equals
// requestPath marked active.
func Navigation(requestPath string) []NavItem {
	items := make([]NavItem, len(navigation))
	copy(items, navigation)
	for i := range items {
		items[i].Active = items[i].Path == requestPath
	}
	return items
}

type shell struct {
	SidebarTitle  string
	HeaderTitle   string
	Notifications int
	Search        string
}
