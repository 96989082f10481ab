package memoryengine

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
//
// Debug level: every accessor call with its arguments
// Info level: writes (inserted books, availability changes, opened and closed loans)
// Warn level: rejected writes like duplicate ISBNs or out-of-range availability changes.
func WithLogger(logger catalog.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// When both loggers are set, the contextual logger wins.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithBooks seeds the Store with already cataloged books, keeping their IDs.
// Seeded books with an ID of zero get the next free ID.
func WithBooks(books ...catalog.Book) Option {
	return func(s *Store) error {
		for _, book := range books {
			if _, exists := s.bookIDByISBN[book.ISBN]; exists {
				return catalog.ErrDuplicateISBN
			}

			if !book.CanAdjustAvailability(0) {
				return catalog.ErrAvailabilityOutOfRange
			}

			if book.ID == 0 {
				book.ID = s.nextBookID
			}

			if book.ID >= s.nextBookID {
				s.nextBookID = book.ID + 1
			}

			s.books[book.ID] = book
			s.bookIDByISBN[book.ISBN] = book.ID
		}

		return nil
	}
}
