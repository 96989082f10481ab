package core

// GatewayResponse is the answer of the payment gateway to a payment or a refund.
// TransactionID is only set for approved payments.
type GatewayResponse struct {
	Approved      bool
	TransactionID string
	Message       string
}
