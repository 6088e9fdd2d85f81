// Package books provides database operations for the locally cached
// catalog. The catalog is read-only from the storefront's point of
// view: records are only replaced wholesale after a remote fetch or a
// seed run.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// ErrNotFound is returned when a book ID is not in the catalog.
var ErrNotFound = errors.New("book not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every book in the catalog in insertion order.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("created_at ASC, id ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Count returns the number of cached books.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// ReplaceAll swaps the cached catalog for the given set atomically.
func (r *Repository) ReplaceAll(books []entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		if len(books) == 0 {
			return nil
		}
		return tx.Create(&books).Error
	})
}
