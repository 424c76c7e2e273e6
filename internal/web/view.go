package web

// View template names.
const (
	ViewPublic = "pubview"
	ViewCards  = "index"
	ViewList   = "list"
)

// SwitchLink describes the "switch view" navigation link: it always
// points at the other variant, so its label inverts the current one.
type SwitchLink struct {
	Label string
	URL   string
	Type  string
}

// ResolveView picks the presentation variant for a request. Anonymous
// requests always get the public view regardless of the hint;
// authenticated requests get the list variant only when they ask for it
// explicitly, and the card grid otherwise.
func ResolveView(authenticated bool, hint string) string {
	if !authenticated {
		return ViewPublic
	}
	if hint == ViewList {
		return ViewList
	}
	return ViewCards
}

// SwitchView builds the navigation link toggling between the card and
// list variants of the page at url.
func SwitchView(view, url string) SwitchLink {
	if view == ViewList {
		return SwitchLink{Label: "Cards", URL: url, Type: "cards"}
	}
	return SwitchLink{Label: "List", URL: url, Type: "list"}
}
