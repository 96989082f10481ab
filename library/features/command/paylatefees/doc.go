// Package paylatefees implements the Pay Late Fees use case.
//
// A patron pays the late fee of their most recent loan of a book through the payment gateway.
// The fee is assessed at the time of the request. Gateway declines are reported with the gateway's
// message; gateway errors and panics are contained and reported as processing errors.
package paylatefees
