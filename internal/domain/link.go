package domain

import (
	"errors"
	"time"
)

// CacheStatus describes the state of the local content cache for a link.
// Only CacheNone is produced today; the field is a placeholder for a
// future cache-article-to-disk feature and is persisted so existing
// records keep their shape when that feature lands.
type CacheStatus string

const (
	CacheNone CacheStatus = "NONE"
)

// Cached is the sub-record tracking the (not yet implemented) local
// copy of a link's content.
type Cached struct {
	Status   CacheStatus `json:"status"`
	Filename *string     `json:"filename"`
	Fullpath *string     `json:"fullpath"`
}

// Link is a captured article. The JSON field names are the persisted
// wire layout; changing them breaks compatibility with existing data.
type Link struct {
	// ID is assigned by the store on insert and immutable afterwards.
	ID string `json:"id"`

	Title      string `json:"title"`
	URL        string `json:"url"`
	DomainName string `json:"domain_name"`

	// ReadingTime is whole minutes, round(wordCount/130).
	ReadingTime int `json:"reading_time"`

	// CreatedAt and UpdatedAt are set once at capture time. Toggles do
	// not refresh UpdatedAt.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// PreviewPicture is the lead image URL, if extraction found one.
	PreviewPicture *string `json:"preview_picture"`

	// Content is the extracted article HTML, full fidelity.
	Content string `json:"content"`

	// Marked is the markdown rendering of Content. Empty when the
	// conversion failed; never null once the record exists.
	Marked string `json:"marked"`

	Tags []string `json:"tags"`

	IsStarred  bool `json:"is_starred"`
	IsArchived bool `json:"is_archived"`

	Cached Cached `json:"cached"`
}

// ErrEmptyURL is returned by NewLink when no URL was provided.
var ErrEmptyURL = errors.New("link URL must not be empty")

// NewLink assembles a freshly captured link with its lifecycle
// defaults: exactly one tag, starred, not archived, no cached copy.
// The ID is left empty for the store to assign.
func NewLink(title, url, domainName, content, marked string, readingTime int, previewPicture *string, tag string, now time.Time) (*Link, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if readingTime < 0 {
		readingTime = 0
	}
	return &Link{
		Title:          title,
		URL:            url,
		DomainName:     domainName,
		ReadingTime:    readingTime,
		CreatedAt:      now,
		UpdatedAt:      now,
		PreviewPicture: previewPicture,
		Content:        content,
		Marked:         marked,
		Tags:           []string{tag},
		IsStarred:      true,
		IsArchived:     false,
		Cached: Cached{
			Status:   CacheNone,
			Filename: nil,
			Fullpath: nil,
		},
	}, nil
}

// HasTag reports whether the link carries the given tag.
func (l *Link) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
