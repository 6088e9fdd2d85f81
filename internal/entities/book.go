package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GenreList is an ordered sequence of genre tags, stored as a JSON
// array in a single text column.
type GenreList []string

func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (g *GenreList) Scan(value any) error {
	if value == nil {
		*g = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("unsupported genre list type %T", value)
	}
}

// Contains reports whether the list holds the exact tag (case-sensitive).
func (g GenreList) Contains(tag string) bool {
	for _, t := range g {
		if t == tag {
			return true
		}
	}
	return false
}

// Book is a single catalog record. Books are immutable once loaded
// from the data source; the storefront never mutates them. The JSON
// field names match the remote catalog API payload.
type Book struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Title       string    `gorm:"index;size:512" json:"title"`
	Author      string    `gorm:"index;size:256" json:"author"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `json:"price"`
	CoverImage  string    `gorm:"size:2048" json:"coverImage"`
	Genres      GenreList `gorm:"type:text" json:"genre"`
	Rating      float64   `json:"rating"`
	ReleaseDate string    `gorm:"size:32" json:"releaseDate"`
	IsNew       bool      `json:"isNew"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// CartLine pairs a book with a positive quantity. At most one line
// exists per distinct book ID in a cart.
type CartLine struct {
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}
