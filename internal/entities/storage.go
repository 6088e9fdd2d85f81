package entities

import (
	"time"
)

// StorageEntry is one key of the durable local key-value store, the
// server-side analog of the original storefront's browser storage.
// Values are plain JSON with no schema versioning: changing a payload
// format is a breaking change for existing persisted state.
type StorageEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

// Known storage keys
const (
	// StorageKeyCart holds the serialized cart (JSON array of {book, quantity}).
	StorageKeyCart = "bookstore_cart"

	// StorageKeyWishlist holds the serialized wishlist (JSON array of books).
	StorageKeyWishlist = "bookstore_wishlist"

	// StorageKeyAuthUser and StorageKeyAuthToken hold the last known user
	// object and access token. Their presence is a non-authoritative
	// "possibly authenticated" signal, not proof of a valid session.
	StorageKeyAuthUser  = "auth"
	StorageKeyAuthToken = "token"
)
