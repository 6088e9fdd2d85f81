package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
)

// ErrNoRemote is returned by Refresh when no remote endpoint is configured.
var ErrNoRemote = errors.New("no remote catalog endpoint configured")

// Service owns the catalog: it loads books from the remote endpoint
// (or the bundled set when none is configured), caches them in the
// local database and serves reads from that cache.
type Service struct {
	repo   *books.Repository
	client *Client // nil when no remote endpoint is configured

	mu          sync.RWMutex
	lastErr     error
	lastFetched time.Time
}

// NewService creates a catalog service. client may be nil.
func NewService(repo *books.Repository, client *Client) *Service {
	return &Service{repo: repo, client: client}
}

// EnsureLoaded populates the catalog cache on first start. A remote
// fetch failure here degrades to an error state plus whatever the
// cache already holds; it never aborts startup.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	count, err := s.repo.Count()
	if err != nil {
		return fmt.Errorf("count cached catalog: %w", err)
	}

	if s.client != nil {
		if err := s.Refresh(ctx); err != nil {
			log.Printf("Catalog fetch failed: %v (serving %d cached books)", err, count)
		}
		return nil
	}

	if count == 0 {
		if err := s.repo.ReplaceAll(BundledCatalog()); err != nil {
			return fmt.Errorf("seed bundled catalog: %w", err)
		}
		log.Printf("Seeded bundled catalog (%d books)", len(bundledCatalog))
	}
	return nil
}

// Refresh fetches the remote catalog and replaces the cache.
func (s *Service) Refresh(ctx context.Context) error {
	if s.client == nil {
		return ErrNoRemote
	}

	fetched, err := s.client.FetchAll(ctx)
	if err != nil {
		s.setFetchState(err)
		return err
	}

	if err := s.repo.ReplaceAll(fetched); err != nil {
		err = fmt.Errorf("cache fetched catalog: %w", err)
		s.setFetchState(err)
		return err
	}

	s.setFetchState(nil)
	log.Printf("Catalog refreshed: %d books", len(fetched))
	return nil
}

func (s *Service) setFetchState(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err == nil {
		s.lastFetched = time.Now()
	}
}

// FetchError returns the error of the most recent remote fetch, or nil.
// The UI surfaces this as a non-fatal "catalog may be stale" message.
func (s *Service) FetchError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LastFetched returns when the catalog was last successfully fetched.
func (s *Service) LastFetched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetched
}

// Books returns the full cached catalog in insertion order.
func (s *Service) Books() ([]entities.Book, error) {
	return s.repo.GetAll()
}

// Get returns a single book by ID.
func (s *Service) Get(id string) (*entities.Book, error) {
	return s.repo.GetByID(id)
}

// List runs the filter/sort pipeline over the cached catalog.
func (s *Service) List(p ListParams) ([]entities.Book, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return Apply(all, p), nil
}

// Genres returns the distinct genre tags across the cached catalog.
func (s *Service) Genres() ([]string, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return Genres(all), nil
}
