// Package wishlist implements the saved-books store. A wishlist is a
// set of books keyed by ID, insertion-ordered in practice, persisted
// to the durable local key-value store after every mutation.
package wishlist

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/mrlokans/bookstore/internal/database/storage"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Storage is the slice of the key-value store the wishlist needs.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store owns the wishlist state, constructed once and injected.
type Store struct {
	mu      sync.Mutex
	storage Storage
	books   []entities.Book
}

// NewStore creates a wishlist store hydrated from persisted state.
// Absent or malformed persisted state yields an empty wishlist.
func NewStore(st Storage) *Store {
	s := &Store{storage: st}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	raw, err := s.storage.Get(entities.StorageKeyWishlist)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Wishlist: failed to read persisted state, starting empty: %v", err)
		}
		return
	}

	var books []entities.Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		log.Printf("Wishlist: malformed persisted state, starting empty: %v", err)
		return
	}
	s.books = books
}

func (s *Store) persist() {
	data, err := json.Marshal(s.books)
	if err != nil {
		log.Printf("Wishlist: failed to serialize state: %v", err)
		return
	}
	if err := s.storage.Set(entities.StorageKeyWishlist, string(data)); err != nil {
		log.Printf("Wishlist: failed to persist state: %v", err)
	}
}

// Add appends the book unless it is already saved. A book without an
// ID is rejected and logged; the store is left unchanged.
func (s *Store) Add(book entities.Book) {
	if book.ID == "" {
		log.Printf("Wishlist: rejecting book without an id (%q)", book.Title)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.ID == book.ID {
			return
		}
	}

	s.books = append(s.books, book)
	s.persist()
}

// Remove deletes the entry for the given book ID; no-op if absent.
func (s *Store) Remove(bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == bookID {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.persist()
			return
		}
	}
}

// Contains reports whether the book is on the wishlist.
func (s *Store) Contains(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// Clear empties the wishlist unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = nil
	s.persist()
}

// Books returns a copy of the saved books in insertion order.
func (s *Store) Books() []entities.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]entities.Book, len(s.books))
	copy(books, s.books)
	return books
}
