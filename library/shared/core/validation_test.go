package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

func Test_ValidatePatronID(t *testing.T) {
	testCases := []struct {
		name     string
		patronID string
		expected bool
	}{
		{name: "six digits", patronID: "123456", expected: true},
		{name: "leading zeros", patronID: "000001", expected: true},
		{name: "empty", patronID: "", expected: false},
		{name: "five digits", patronID: "12345", expected: false},
		{name: "seven digits", patronID: "1234567", expected: false},
		{name: "letters", patronID: "ABC123", expected: false},
		{name: "whitespace", patronID: " 12345", expected: false},
		{name: "non-ascii digits", patronID: "١٢٣٤٥٦", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act & assert
			assert.Equal(t, tc.expected, core.ValidatePatronID(tc.patronID))
		})
	}
}

func Test_ValidateISBN_OnlyChecksLength(t *testing.T) {
	assert.True(t, core.ValidateISBN("9780441013593"))
	assert.True(t, core.ValidateISBN("ABCDEFGHIJKLM"), "isbns are opaque")
	assert.True(t, core.ValidateISBN("978044101359é"), "length counts characters, not bytes")
	assert.False(t, core.ValidateISBN("97804410135é"))
	assert.False(t, core.ValidateISBN("978044101359"))
	assert.False(t, core.ValidateISBN("97804410135933"))
	assert.False(t, core.ValidateISBN(""))
}

func Test_ValidateTitle(t *testing.T) {
	testCases := []struct {
		name            string
		title           string
		expectedValid   bool
		expectedMessage string
	}{
		{name: "regular title", title: "Dune", expectedValid: true},
		{name: "exactly 200 characters", title: strings.Repeat("a", 200), expectedValid: true},
		{name: "200 characters after trimming", title: "  " + strings.Repeat("a", 200) + "  ", expectedValid: true},
		{name: "200 multi-byte characters", title: strings.Repeat("é", 200), expectedValid: true},
		{name: "empty", title: "", expectedMessage: core.MsgTitleRequired},
		{name: "only whitespace", title: " \t ", expectedMessage: core.MsgTitleRequired},
		{name: "201 characters", title: strings.Repeat("a", 201), expectedMessage: core.MsgTitleTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			message, valid := core.ValidateTitle(tc.title)

			// assert
			assert.Equal(t, tc.expectedValid, valid)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}

func Test_ValidateAuthor(t *testing.T) {
	testCases := []struct {
		name            string
		author          string
		expectedValid   bool
		expectedMessage string
	}{
		{name: "regular author", author: "Frank Herbert", expectedValid: true},
		{name: "exactly 100 characters", author: strings.Repeat("b", 100), expectedValid: true},
		{name: "empty", author: "", expectedMessage: core.MsgAuthorRequired},
		{name: "only whitespace", author: "   ", expectedMessage: core.MsgAuthorRequired},
		{name: "101 characters", author: strings.Repeat("b", 101), expectedMessage: core.MsgAuthorTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			message, valid := core.ValidateAuthor(tc.author)

			// assert
			assert.Equal(t, tc.expectedValid, valid)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}

func Test_ValidateTotalCopies(t *testing.T) {
	assert.True(t, core.ValidateTotalCopies(1))
	assert.True(t, core.ValidateTotalCopies(250))
	assert.False(t, core.ValidateTotalCopies(0))
	assert.False(t, core.ValidateTotalCopies(-3))
}

func Test_ValidateTransactionID(t *testing.T) {
	assert.True(t, core.ValidateTransactionID("txn_123456_test"))
	assert.False(t, core.ValidateTransactionID(""))
	assert.False(t, core.ValidateTransactionID("invalid_123456"))
	assert.False(t, core.ValidateTransactionID("TXN_123456"))
}
