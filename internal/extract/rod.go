package extract

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// BrowserExtractor renders the page in a headless browser before
// handing the resulting DOM to the readability parser. Use it for sites
// that assemble their articles client-side; it is noticeably heavier
// than the plain HTTP backend.
type BrowserExtractor struct {
	log logrus.FieldLogger
}

// NewBrowserExtractor creates the browser-backed extractor.
func NewBrowserExtractor(logger logrus.FieldLogger) *BrowserExtractor {
	return &BrowserExtractor{
		log: logger.WithField("component", "browser_extractor"),
	}
}

// Extract navigates to the URL, waits for the page to load and runs the
// readability heuristics over the rendered HTML.
func (e *BrowserExtractor) Extract(ctx context.Context, pageURL string) (res *Result, err error) {
	log := e.log.WithField("url", pageURL)
	log.Info("Rendering page for extraction")

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", pageURL, err)
	}

	path, exists := launcher.LookPath()
	if !exists {
		log.Error("Cannot find browser executable")
		return nil, errors.New("browser dependency not found")
	}
	u := launcher.New().Bin(path).MustLaunch()
	browser := rod.New().ControlURL(u)
	if err = browser.Connect(); err != nil {
		log.WithError(err).Error("Failed to connect to browser")
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Error closing browser instance")
			if err == nil {
				err = fmt.Errorf("error closing browser: %w", closeErr)
			}
		}
	}()

	var page *rod.Page
	page, err = browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		log.WithError(err).Error("Failed to create page")
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing page: %w", closeErr)
		}
	}()

	pageCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	page = page.Context(pageCtx)

	if err = page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			log.WithError(pageCtx.Err()).Warn("Page render timed out")
			return nil, fmt.Errorf("rendering timed out for %s: %w", pageURL, pageCtx.Err())
		}
		log.WithError(err).Error("Failed to wait for page load")
		return nil, fmt.Errorf("failed waiting for page load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		log.WithError(err).Error("Failed to read rendered HTML")
		return nil, fmt.Errorf("failed to read rendered html: %w", err)
	}

	return readableResult(strings.NewReader(html), parsed, log)
}
