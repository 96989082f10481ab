package core

import (
	"strings"
	"unicode/utf8"
)

const (
	patronIDLength  = 6
	isbnLength      = 13
	maxTitleLength  = 200
	maxAuthorLength = 100
)

// Validation messages.
const (
	MsgTitleRequired       = "Title is required."
	MsgTitleTooLong        = "Title must be less than 200 characters."
	MsgAuthorRequired      = "Author is required."
	MsgAuthorTooLong       = "Author must be less than 100 characters."
	MsgISBNInvalid         = "ISBN must be exactly 13 digits."
	MsgTotalCopiesInvalid  = "Total copies must be a positive integer."
	MsgInvalidTransaction  = "Invalid transaction ID."
	MsgRefundNotPositive   = "Refund amount must be greater than 0."
	MsgRefundExceedsMaxFee = "Refund amount exceeds maximum late fee."
)

// ValidatePatronID reports whether id is a library card number: exactly six ASCII digits.
func ValidatePatronID(id string) bool {
	if len(id) != patronIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}

	return true
}

// ValidateISBN only checks the length. ISBNs are otherwise opaque, so neither digits nor checksums are verified.
func ValidateISBN(isbn string) bool {
	return utf8.RuneCountInString(isbn) == isbnLength
}

// ValidateTitle checks the trimmed title and returns the rejection message if it is invalid.
func ValidateTitle(title string) (string, bool) {
	return validateText(title, maxTitleLength, MsgTitleRequired, MsgTitleTooLong)
}

// ValidateAuthor checks the trimmed author and returns the rejection message if it is invalid.
func ValidateAuthor(author string) (string, bool) {
	return validateText(author, maxAuthorLength, MsgAuthorRequired, MsgAuthorTooLong)
}

// ValidateTotalCopies reports whether a new book has at least one copy.
func ValidateTotalCopies(totalCopies int) bool {
	return totalCopies > 0
}

// ValidateTransactionID reports whether id looks like an ID issued by the payment gateway.
func ValidateTransactionID(id string) bool {
	return strings.HasPrefix(id, TransactionIDPrefix)
}

func validateText(value string, maxLength int, msgRequired, msgTooLong string) (string, bool) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return msgRequired, false
	}

	if utf8.RuneCountInString(trimmed) > maxLength {
		return msgTooLong, false
	}

	return "", true
}
