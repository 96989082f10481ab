// Package addbook implements the Add Book use case.
//
// A librarian adds a new title with a number of copies, all of which start out available.
// Decide validates the input in a fixed order (title, author, ISBN, copies) and refuses ISBNs that
// are already cataloged; the CommandHandler loads that fact and inserts the book.
package addbook
