// Package cart implements the shopping cart store. The cart is an
// ordered sequence of (book, quantity) lines with at most one line per
// book ID; every mutation is written through to the durable local
// key-value store so the cart survives restarts.
package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/mrlokans/bookstore/internal/database/storage"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Storage is the slice of the key-value store the cart needs.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store owns the cart state. It is constructed once at application
// start and injected into whatever needs it; there is no ambient
// global cart.
type Store struct {
	mu      sync.Mutex
	storage Storage
	lines   []entities.CartLine
}

// NewStore creates a cart store hydrated from persisted state. Absent
// or malformed persisted state yields an empty cart, never an error.
func NewStore(st Storage) *Store {
	s := &Store{storage: st}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	raw, err := s.storage.Get(entities.StorageKeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Cart: failed to read persisted state, starting empty: %v", err)
		}
		return
	}

	var lines []entities.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Printf("Cart: malformed persisted state, starting empty: %v", err)
		return
	}
	s.lines = lines
}

// persist writes the full cart through to storage. Write failures are
// logged, not propagated: persistence is a fire-and-forget side effect
// and the in-memory state remains authoritative for the session.
func (s *Store) persist() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("Cart: failed to serialize state: %v", err)
		return
	}
	if err := s.storage.Set(entities.StorageKeyCart, string(data)); err != nil {
		log.Printf("Cart: failed to persist state: %v", err)
	}
}

// Add puts one copy of the book into the cart: an existing line has
// its quantity incremented, a new book gets a fresh line appended with
// quantity 1. Safe to call repeatedly.
func (s *Store) Add(book entities.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Book.ID == book.ID {
			s.lines[i].Quantity++
			s.persist()
			return
		}
	}

	s.lines = append(s.lines, entities.CartLine{Book: book, Quantity: 1})
	s.persist()
}

// Remove deletes the line for the given book ID. Removing an absent
// book is a no-op, not an error.
func (s *Store) Remove(bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(bookID)
}

func (s *Store) removeLocked(bookID string) {
	for i := range s.lines {
		if s.lines[i].Book.ID == bookID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity. A quantity below 1 removes
// the line. Updating a book that has no line is a silent no-op,
// matching the original storefront's behavior.
func (s *Store) UpdateQuantity(bookID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeLocked(bookID)
		return
	}

	for i := range s.lines {
		if s.lines[i].Book.ID == bookID {
			s.lines[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []entities.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]entities.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// TotalItems is the sum of quantities across all lines. It is
// recomputed on every read so it can never diverge from the lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity across all lines,
// recomputed on every read.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.Book.Price * float64(line.Quantity)
	}
	return total
}
