package catalog

import (
	"strings"
)

// SearchField is the closed set of book attributes the catalog can be searched by.
type SearchField int

const (
	// SearchByTitle matches titles case-insensitively as a substring.
	SearchByTitle SearchField = iota + 1

	// SearchByAuthor matches authors case-insensitively as a substring.
	SearchByAuthor

	// SearchByISBN matches the ISBN exactly.
	SearchByISBN
)

// MatchMode defines how a search term is compared against a book attribute.
type MatchMode int

const (
	// ExactMatch requires the attribute to equal the term.
	ExactMatch MatchMode = iota + 1

	// PartialMatch requires the attribute to contain the term, ignoring case.
	PartialMatch
)

var searchFieldsByKind = map[string]SearchField{
	"title":  SearchByTitle,
	"author": SearchByAuthor,
	"isbn":   SearchByISBN,
}

// ParseSearchField maps a search kind like "title", "author" or "isbn" to its SearchField.
// The second return value is false for any other kind.
func ParseSearchField(kind string) (SearchField, bool) {
	field, ok := searchFieldsByKind[kind]

	return field, ok
}

// IsValid reports whether f is one of the defined search fields.
func (f SearchField) IsValid() bool {
	switch f {
	case SearchByTitle, SearchByAuthor, SearchByISBN:
		return true
	default:
		return false
	}
}

// MatchMode returns how terms are compared for this field.
func (f SearchField) MatchMode() MatchMode {
	if f == SearchByISBN {
		return ExactMatch
	}

	return PartialMatch
}

// String provides the search kind for logging and debugging.
func (f SearchField) String() string {
	switch f {
	case SearchByTitle:
		return "title"
	case SearchByAuthor:
		return "author"
	case SearchByISBN:
		return "isbn"
	default:
		return "unknown"
	}
}

// Matches reports whether the book matches term for this field.
func (f SearchField) Matches(book Book, term string) bool {
	var value string

	switch f {
	case SearchByTitle:
		value = book.Title
	case SearchByAuthor:
		value = book.Author
	case SearchByISBN:
		value = book.ISBN
	default:
		return false
	}

	if f.MatchMode() == ExactMatch {
		return value == term
	}

	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}
