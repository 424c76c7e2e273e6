package domain

// TagCatalog is the static list of tags shown in the navigation bar.
// It only drives the filter UI; capture accepts any tag string, so the
// catalog is not a validation whitelist.
var TagCatalog = []string{
	"javascript",
	"rust",
	"go",
	"python",
	"css",
	"design",
	"devops",
	"databases",
	"security",
	"misc",
}

// DefaultTag is applied when a save request carries no tag.
const DefaultTag = "javascript"
