// Package lifecycle owns what happens to a link after capture: the
// list queries and the starred/archived/delete state transitions.
package lifecycle

import (
	"context"

	"github.com/sirupsen/logrus"

	"linkdrop/internal/domain"
	"linkdrop/internal/storage"
)

// Manager performs the read queries and state mutations on stored
// links. Queries return newest first. Mutations resolve missing ids to
// storage.ErrNotFound.
type Manager struct {
	links storage.LinkRepository
	log   logrus.FieldLogger
}

// NewManager creates a lifecycle manager.
func NewManager(links storage.LinkRepository, logger logrus.FieldLogger) *Manager {
	return &Manager{
		links: links,
		log:   logger.WithField("component", "lifecycle"),
	}
}

// ListStarred returns every starred link, archived or not. The front
// page is the starred view.
func (m *Manager) ListStarred(ctx context.Context) ([]domain.Link, error) {
	return m.filter(ctx, func(l *domain.Link) bool {
		return l.IsStarred
	})
}

// ListByTag returns the non-archived links carrying tag.
func (m *Manager) ListByTag(ctx context.Context, tag string) ([]domain.Link, error) {
	return m.filter(ctx, func(l *domain.Link) bool {
		return !l.IsArchived && l.HasTag(tag)
	})
}

// ListArchived returns the archived links carrying tag.
func (m *Manager) ListArchived(ctx context.Context, tag string) ([]domain.Link, error) {
	return m.filter(ctx, func(l *domain.Link) bool {
		return l.IsArchived && l.HasTag(tag)
	})
}

// GetByID returns one link, or storage.ErrNotFound.
func (m *Manager) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	return m.links.GetLink(ctx, id)
}

// ToggleStarred flips is_starred. The flip runs inside a single store
// transaction, so concurrent toggles of the same link serialize instead
// of losing an update.
func (m *Manager) ToggleStarred(ctx context.Context, id string) (*domain.Link, error) {
	link, err := m.links.UpdateLink(ctx, id, func(l *domain.Link) error {
		l.IsStarred = !l.IsStarred
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.WithFields(logrus.Fields{"id": id, "is_starred": link.IsStarred}).Info("Toggled starred")
	return link, nil
}

// ToggleArchived flips is_archived, with the same transactional
// guarantee as ToggleStarred.
func (m *Manager) ToggleArchived(ctx context.Context, id string) (*domain.Link, error) {
	link, err := m.links.UpdateLink(ctx, id, func(l *domain.Link) error {
		l.IsArchived = !l.IsArchived
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.WithFields(logrus.Fields{"id": id, "is_archived": link.IsArchived}).Info("Toggled archived")
	return link, nil
}

// Remove hard-deletes a link. There is no trash bin or tombstone;
// deleting an already deleted id yields storage.ErrNotFound.
func (m *Manager) Remove(ctx context.Context, id string) error {
	return m.links.DeleteLink(ctx, id)
}

func (m *Manager) filter(ctx context.Context, keep func(*domain.Link) bool) ([]domain.Link, error) {
	all, err := m.links.ListLinks(ctx)
	if err != nil {
		m.log.WithError(err).Error("Link query failed")
		return nil, err
	}
	out := make([]domain.Link, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
