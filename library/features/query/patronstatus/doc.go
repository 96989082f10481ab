// Package patronstatus implements the Patron Status query.
//
// The report lists the patron's open loans with their current late fees, the sum of those fees
// and the full borrowing history, newest loan first. A malformed patron ID yields an empty report.
package patronstatus
