// Package paymentgateway provides an in-process stand-in for the external payment gateway.
//
// The Gateway approves payments up to a configurable limit, issues transaction IDs of the form
// txn_<patron>_<uuid>, accepts one refund per known transaction and keeps a ledger of every
// request it answered. A transport fault can be injected to exercise the failure paths of
// the payment features. It is used by the demo and by tests that want a gateway with state;
// production wiring would put an HTTP client for the real gateway behind the same methods.
package paymentgateway
