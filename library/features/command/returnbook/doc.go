// Package returnbook implements the Return Book use case.
//
// A patron returns a borrowed copy. The open borrow record is closed, the copy becomes available
// again and the late fee of the closed loan is reported back to the patron.
package returnbook
