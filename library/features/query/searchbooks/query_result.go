package searchbooks

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// BookInfo represents one matching book.
type BookInfo struct {
	BookID          catalog.BookID `json:"book_id"`
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	ISBN            string         `json:"isbn"`
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
}

// SearchResult represents the books matching a search, ordered by title.
type SearchResult struct {
	Books []BookInfo `json:"books"`
	Count int        `json:"count"`
}
