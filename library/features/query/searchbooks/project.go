package searchbooks

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Project maps the matching books to the query result, keeping the store's order.
func Project(books catalog.Books) SearchResult {
	infos := make([]BookInfo, 0, len(books))

	for _, book := range books {
		infos = append(infos, BookInfo{
			BookID:          book.ID,
			Title:           book.Title,
			Author:          book.Author,
			ISBN:            book.ISBN,
			TotalCopies:     book.TotalCopies,
			AvailableCopies: book.AvailableCopies,
		})
	}

	return SearchResult{
		Books: infos,
		Count: len(infos),
	}
}
