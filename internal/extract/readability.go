package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
)

// ReadabilityExtractor fetches a page with a plain HTTP client and runs
// the readability heuristics over the response body. It is the default
// backend; pages that need a JavaScript runtime are the
// BrowserExtractor's job.
type ReadabilityExtractor struct {
	client *http.Client
	log    logrus.FieldLogger
}

// NewReadabilityExtractor creates the default extractor backend.
func NewReadabilityExtractor(logger logrus.FieldLogger) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.WithField("component", "extractor"),
	}
}

// Extract fetches the page and derives title, readable content HTML,
// domain, word count and lead image.
func (e *ReadabilityExtractor) Extract(ctx context.Context, pageURL string) (*Result, error) {
	log := e.log.WithField("url", pageURL)
	log.Info("Fetching page for extraction")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to fetch page")
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("Page fetch returned non-success status")
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	finalURL := resp.Request.URL
	return readableResult(resp.Body, finalURL, log)
}

// readableResult runs the readability parser over html from src and
// normalizes its output. Shared with the browser backend.
func readableResult(src io.Reader, finalURL *url.URL, log logrus.FieldLogger) (*Result, error) {
	article, err := readability.FromReader(src, finalURL)
	if err != nil {
		log.WithError(err).Error("Readability parse failed")
		return nil, fmt.Errorf("failed to parse %s: %w", finalURL, err)
	}

	res := &Result{
		Title:        article.Title,
		ContentHTML:  article.Content,
		Domain:       finalURL.Hostname(),
		WordCount:    len(strings.Fields(article.TextContent)),
		LeadImageURL: article.Image,
		FinalURL:     finalURL.String(),
	}

	log.WithFields(logrus.Fields{
		"title":      res.Title,
		"word_count": res.WordCount,
	}).Info("Extraction completed")
	return res, nil
}
