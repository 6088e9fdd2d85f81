package catalog

import (
	"github.com/mrlokans/bookstore/internal/entities"
)

// bundledCatalog is the statically bundled book set used when no
// remote catalog endpoint is configured. It mirrors what the remote
// API would serve so the storefront is browsable out of the box.
var bundledCatalog = []entities.Book{
	{
		ID:          "1",
		Title:       "The Midnight Library",
		Author:      "Matt Haig",
		Description: "Between life and death there is a library, and within that library the shelves go on forever. Every book provides a chance to try another life you could have lived.",
		Price:       2499,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780525559474-L.jpg",
		Genres:      entities.GenreList{"Fiction", "Fantasy", "Contemporary"},
		Rating:      4.5,
		ReleaseDate: "2020-08-13",
		IsNew:       false,
		IsFeatured:  true,
	},
	{
		ID:          "2",
		Title:       "1984",
		Author:      "George Orwell",
		Description: "A novel about a totalitarian society where the government controls every aspect of its citizens' lives. Winston Smith tries to resist the system and reclaim his individuality.",
		Price:       1999,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780451524935-L.jpg",
		Genres:      entities.GenreList{"Science Fiction", "Dystopia"},
		Rating:      4.8,
		ReleaseDate: "1949-06-08",
		IsNew:       true,
		IsFeatured:  true,
	},
	{
		ID:          "3",
		Title:       "The Master and Margarita",
		Author:      "Mikhail Bulgakov",
		Description: "The devil arrives in Moscow and upends the lives of its literary elite, while the Master and Margarita fight for their love and his suppressed novel.",
		Price:       2999,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780141180144-L.jpg",
		Genres:      entities.GenreList{"Novel", "Science Fiction"},
		Rating:      4.9,
		ReleaseDate: "1967-01-01",
		IsNew:       false,
		IsFeatured:  true,
	},
	{
		ID:          "4",
		Title:       "War and Peace",
		Author:      "Leo Tolstoy",
		Description: "An epic spanning the Napoleonic wars and their impact on the lives of Russian aristocratic families.",
		Price:       3499,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780199232765-L.jpg",
		Genres:      entities.GenreList{"Historical Fiction"},
		Rating:      4.7,
		ReleaseDate: "1869-01-01",
		IsNew:       false,
		IsFeatured:  true,
	},
	{
		ID:          "5",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Paul Atreides leads nomadic tribes in a battle for control of the desert planet Arrakis and its spice.",
		Price:       2500,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780441172719-L.jpg",
		Genres:      entities.GenreList{"Science Fiction", "Adventure"},
		Rating:      4.5,
		ReleaseDate: "1965-08-01",
		IsNew:       false,
		IsFeatured:  false,
	},
	{
		ID:          "6",
		Title:       "Project Hail Mary",
		Author:      "Andy Weir",
		Description: "A lone astronaut wakes up on a ship with no memory of his mission and must save humanity from an extinction-level threat.",
		Price:       2799,
		CoverImage:  "https://covers.openlibrary.org/b/isbn/9780593135204-L.jpg",
		Genres:      entities.GenreList{"Science Fiction"},
		Rating:      4.6,
		ReleaseDate: "2021-05-04",
		IsNew:       true,
		IsFeatured:  false,
	},
}

// BundledCatalog returns a copy of the bundled book set.
func BundledCatalog() []entities.Book {
	books := make([]entities.Book, len(bundledCatalog))
	copy(books, bundledCatalog)
	return books
}
