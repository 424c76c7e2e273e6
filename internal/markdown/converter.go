// Package markdown normalizes extracted article HTML into markdown.
package markdown

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// Converter renders HTML as markdown with a fixed rule set: ATX
// headings, "-" bullets, fenced code blocks, GitHub-flavored tables and
// strikethrough. The rules are fixed so that the same HTML always
// produces the same markdown.
type Converter struct {
	conv *md.Converter
}

// NewConverter builds a converter with the fixed rule set.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
	})
	conv.Use(plugin.GitHubFlavored())
	return &Converter{conv: conv}
}

// Convert renders html as markdown.
func (c *Converter) Convert(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert html to markdown: %w", err)
	}
	return out, nil
}
