// Package latefee implements the Late Fee query: the fee owed for the most recent loan of a book by a patron.
package latefee
