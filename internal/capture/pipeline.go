// Package capture turns a raw URL into a persisted link: extract the
// readable article, render it as markdown, compute derived fields,
// store the result.
package capture

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"linkdrop/internal/domain"
	"linkdrop/internal/extract"
	"linkdrop/internal/storage"
)

// Pipeline stages reported by Error.
const (
	StageExtract = "extract"
	StagePersist = "persist"
)

// Error wraps a pipeline failure with the stage it happened in.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wordsPerMinute is the assumed reading speed behind reading_time.
const wordsPerMinute = 130

// Converter renders HTML as markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Service orchestrates one capture per call. The two external calls run
// in sequence (conversion needs extraction's output); there is no retry
// and no partial record on extraction failure.
type Service struct {
	extractor extract.Extractor
	converter Converter
	links     storage.LinkRepository
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewService creates a capture pipeline.
func NewService(extractor extract.Extractor, converter Converter, links storage.LinkRepository, logger logrus.FieldLogger) *Service {
	return &Service{
		extractor: extractor,
		converter: converter,
		links:     links,
		log:       logger.WithField("component", "capture"),
		now:       time.Now,
	}
}

// Capture runs the pipeline for one URL. An empty tag falls back to the
// default tag. Extraction failure aborts the capture; conversion
// failure does not — the link is persisted with an empty markdown body
// so the article itself is never lost to a rendering bug.
func (s *Service) Capture(ctx context.Context, url, tag string) (*domain.Link, error) {
	if tag == "" {
		tag = domain.DefaultTag
	}
	log := s.log.WithFields(logrus.Fields{"url": url, "tag": tag})

	res, err := s.extractor.Extract(ctx, url)
	if err != nil {
		log.WithError(err).Error("Extraction failed, aborting capture")
		return nil, &Error{Stage: StageExtract, Err: err}
	}

	marked, err := s.converter.Convert(res.ContentHTML)
	if err != nil {
		log.WithError(err).Error("Markdown conversion failed, capturing without markdown")
		marked = ""
	}

	readingTime := int(math.Round(float64(res.WordCount) / wordsPerMinute))

	var preview *string
	if res.LeadImageURL != "" {
		preview = &res.LeadImageURL
	}

	storeURL := res.FinalURL
	if storeURL == "" {
		storeURL = url
	}

	link, err := domain.NewLink(res.Title, storeURL, res.Domain, res.ContentHTML, marked, readingTime, preview, tag, s.now().UTC())
	if err != nil {
		return nil, &Error{Stage: StagePersist, Err: err}
	}

	if err := s.links.InsertLink(ctx, link); err != nil {
		log.WithError(err).Error("Failed to persist captured link")
		return nil, &Error{Stage: StagePersist, Err: err}
	}

	log.WithFields(logrus.Fields{
		"id":           link.ID,
		"title":        link.Title,
		"reading_time": link.ReadingTime,
	}).Info("Link captured")
	return link, nil
}
