package catalog

// Book is a cataloged title.
// AvailableCopies stays within [0, TotalCopies]; TotalCopies never changes after creation.
type Book struct {
	ID              BookID
	Title           string
	Author          string
	ISBN            string
	TotalCopies     int
	AvailableCopies int
}

// NewBook carries the already validated fields needed to insert a Book.
// Engines store it with AvailableCopies equal to TotalCopies.
type NewBook struct {
	Title       string
	Author      string
	ISBN        string
	TotalCopies int
}

// BuildNewBook creates a NewBook with the provided fields.
func BuildNewBook(title, author, isbn string, totalCopies int) NewBook {
	return NewBook{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		TotalCopies: totalCopies,
	}
}

// HasAvailableCopy reports whether at least one copy can be lent out.
func (b Book) HasAvailableCopy() bool {
	return b.AvailableCopies > 0
}

// CanAdjustAvailability reports whether AvailableCopies+delta stays within [0, TotalCopies].
func (b Book) CanAdjustAvailability(delta int) bool {
	next := b.AvailableCopies + delta

	return next >= 0 && next <= b.TotalCopies
}

// Books is a list of Book.
type Books = []Book
