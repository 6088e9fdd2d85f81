// Package storage provides the durable local key-value store backing the
// cart, wishlist and auth state. It is the server-side analog of the
// browser localStorage the storefront UI would otherwise use.
//
// # Usage
//
//	repo := storage.NewRepository(db)
//	err := repo.Set(entities.StorageKeyCart, payload)
package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage key not found")

// Repository handles all key-value storage operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new storage repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves the value stored under key.
func (r *Repository) Get(key string) (string, error) {
	var entry entities.StorageEntry
	err := r.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set creates or overwrites the value stored under key.
func (r *Repository) Set(key, value string) error {
	var entry entities.StorageEntry
	result := r.db.Where("key = ?", key).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		entry = entities.StorageEntry{
			Key:   key,
			Value: value,
		}
		return r.db.Create(&entry).Error
	} else if result.Error != nil {
		return result.Error
	}

	entry.Value = value
	return r.db.Save(&entry).Error
}

// Delete removes the key. Deleting an absent key is not an error.
func (r *Repository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.StorageEntry{}).Error
}
