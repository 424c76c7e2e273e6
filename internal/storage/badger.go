package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"linkdrop/internal/domain"
)

// BadgerStore implements LinkRepository and UserRepository on top of
// BadgerDB. Records are stored as JSON under typed key prefixes, so the
// persisted layout matches the domain structs field for field.
type BadgerStore struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerStore opens (or creates) the database at dbPath.
func NewBadgerStore(dbPath string, logger logrus.FieldLogger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.WithField("path", dbPath).Info("BadgerDB opened")

	return &BadgerStore{
		db:  db,
		log: logger.WithField("component", "store"),
	}, nil
}

// Close shuts down the underlying database.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	s.log.Info("BadgerDB closed")
	return nil
}

var (
	linkPrefix = []byte("link:")
	userPrefix = []byte("user:")
)

func linkKey(id string) []byte {
	return []byte("link:" + id)
}

func userKey(email string) []byte {
	return []byte("user:" + email)
}

// InsertLink assigns a fresh ID and persists the link.
func (s *BadgerStore) InsertLink(ctx context.Context, link *domain.Link) error {
	link.ID = uuid.NewString()

	raw, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(linkKey(link.ID), raw)
	})
	if err != nil {
		s.log.WithError(err).WithField("url", link.URL).Error("Failed to insert link")
		return fmt.Errorf("failed to insert link: %w", err)
	}

	s.log.WithFields(logrus.Fields{"id": link.ID, "url": link.URL}).Info("Link inserted")
	return nil
}

// GetLink retrieves one link by id.
func (s *BadgerStore) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	var link domain.Link
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(linkKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &link)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Failed to get link")
		return nil, fmt.Errorf("failed to get link %s: %w", id, err)
	}
	return &link, nil
}

// ListLinks retrieves every link, newest first.
func (s *BadgerStore) ListLinks(ctx context.Context) ([]domain.Link, error) {
	var links []domain.Link

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(linkPrefix); it.ValidForPrefix(linkPrefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var link domain.Link
				if err := json.Unmarshal(val, &link); err != nil {
					return fmt.Errorf("failed to unmarshal link data for key %s: %w", string(item.Key()), err)
				}
				links = append(links, link)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to list links")
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	// Badger iterates in key (id) order; callers want newest first.
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

// UpdateLink runs mutate against the stored record inside one badger
// transaction. Concurrent updates to the same key conflict and retry at
// the badger level rather than overwriting each other blindly.
func (s *BadgerStore) UpdateLink(ctx context.Context, id string, mutate func(*domain.Link) error) (*domain.Link, error) {
	var updated domain.Link

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(linkKey(id))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &updated)
		}); err != nil {
			return err
		}
		if err := mutate(&updated); err != nil {
			return err
		}
		raw, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("failed to marshal link: %w", err)
		}
		return txn.Set(linkKey(id), raw)
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Failed to update link")
		return nil, fmt.Errorf("failed to update link %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteLink removes a link, failing with ErrNotFound when it is gone.
func (s *BadgerStore) DeleteLink(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := linkKey(id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("Failed to delete link")
		return fmt.Errorf("failed to delete link %s: %w", id, err)
	}

	s.log.WithField("id", id).Info("Link deleted")
	return nil
}

// InsertUser assigns a fresh ID and persists the user keyed by email.
func (s *BadgerStore) InsertUser(ctx context.Context, user *domain.User) error {
	user.ID = uuid.NewString()

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.Email), raw)
	})
	if err != nil {
		s.log.WithError(err).WithField("email", user.Email).Error("Failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves one user.
func (s *BadgerStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("email", email).Error("Failed to get user")
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return &user, nil
}

// DeleteUser removes a user record.
func (s *BadgerStore) DeleteUser(ctx context.Context, email string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := userKey(email)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("email", email).Error("Failed to delete user")
		return fmt.Errorf("failed to delete user %s: %w", email, err)
	}
	return nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
