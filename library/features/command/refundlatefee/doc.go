// Package refundlatefee implements the Refund Late Fee use case.
//
// A librarian refunds all or part of a late fee payment. The request is checked locally before it
// reaches the payment gateway, which owns the knowledge of which transactions exist and were refunded.
package refundlatefee
