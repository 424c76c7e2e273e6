package extract

import "context"

// Result is the normalized outcome of a successful extraction.
type Result struct {
	Title        string
	ContentHTML  string
	Domain       string
	WordCount    int
	LeadImageURL string
	// FinalURL is the URL after redirects; captures store this rather
	// than the URL the user submitted.
	FinalURL string
}

// Extractor turns a raw page URL into readable article content.
// Implementations make a single round trip and do not retry; retry
// policy, if any, belongs to the caller.
type Extractor interface {
	Extract(ctx context.Context, url string) (*Result, error)
}
