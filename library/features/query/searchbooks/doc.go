// Package searchbooks implements the Search Books query.
//
// Titles and authors match as case-insensitive substrings, ISBNs exactly. An empty term or an
// unknown search kind yields an empty result instead of an error.
package searchbooks
