package storage

import (
	"context"
	"errors"

	"linkdrop/internal/domain"
)

// ErrNotFound is returned when an id or email does not resolve to a
// stored record.
var ErrNotFound = errors.New("record not found")

// LinkRepository defines the store operations the capture pipeline and
// lifecycle manager need. Keeping it an interface lets tests swap in a
// fake and leaves room for another backend later.
type LinkRepository interface {
	// InsertLink persists a new link and assigns its ID. Each call
	// inserts unconditionally; captures of the same URL are not
	// deduplicated.
	InsertLink(ctx context.Context, link *domain.Link) error

	// GetLink retrieves one link by id, or ErrNotFound.
	GetLink(ctx context.Context, id string) (*domain.Link, error)

	// ListLinks retrieves every stored link, newest first by created_at.
	ListLinks(ctx context.Context) ([]domain.Link, error)

	// UpdateLink applies mutate to the stored link inside a single
	// store transaction, so read-modify-write cycles such as the
	// starred/archived toggles cannot lose updates to a concurrent
	// writer. Returns the updated link, or ErrNotFound.
	UpdateLink(ctx context.Context, id string, mutate func(*domain.Link) error) (*domain.Link, error)

	// DeleteLink removes a link for good. Returns ErrNotFound when the
	// id does not resolve, so a second delete of the same id fails
	// cleanly instead of silently succeeding.
	DeleteLink(ctx context.Context, id string) error
}

// UserRepository defines the store operations the credential gate needs.
type UserRepository interface {
	// InsertUser persists a new user and assigns its ID.
	InsertUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail retrieves one user, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// DeleteUser removes a user, or ErrNotFound.
	DeleteUser(ctx context.Context, email string) error
}
