// Package borrowbook implements the Borrow Book use case.
//
// A patron borrows one available copy of a book for two weeks. The patron may hold at most five
// copies at a time. The CommandHandler claims the copy with a conditional decrement before the
// borrow record is written and gives the copy back if writing the record fails, so availability
// and open records never drift apart.
package borrowbook
