package core

// Outcome classifies how a command ended.
type Outcome string

const (
	OutcomeSuccess               Outcome = "success"
	OutcomeValidationError       Outcome = "validation_error"
	OutcomeNotFound              Outcome = "not_found"
	OutcomeBusinessRuleViolation Outcome = "business_rule_violation"
	OutcomePersistenceError      Outcome = "persistence_error"
	OutcomeGatewayDecline        Outcome = "gateway_decline"
	OutcomeGatewayFault          Outcome = "gateway_fault"
)

// Result is what every command handler returns instead of an error.
// Message is meant for the patron or librarian; Err carries the cause of a
// persistence error or gateway fault for logging and is never shown to users.
//
// Result should be constructed with Success, SuccessWithTransaction, Reject or Fail.
type Result struct {
	Outcome       Outcome
	Message       string
	TransactionID string
	Err           error
}

// Success creates a Result for a completed command.
func Success(message string) Result {
	return Result{Outcome: OutcomeSuccess, Message: message}
}

// SuccessWithTransaction creates a Result for a completed payment.
func SuccessWithTransaction(message, transactionID string) Result {
	return Result{Outcome: OutcomeSuccess, Message: message, TransactionID: transactionID}
}

// Reject creates a Result for a command that was refused by a business rule or the gateway.
func Reject(outcome Outcome, message string) Result {
	return Result{Outcome: outcome, Message: message}
}

// Fail creates a Result for a command that could not complete because a collaborator failed.
func Fail(outcome Outcome, message string, err error) Result {
	return Result{Outcome: outcome, Message: message, Err: err}
}

// Succeeded reports whether the command completed.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// IsRejection reports whether the command was refused without anything failing.
func (r Result) IsRejection() bool {
	switch r.Outcome {
	case OutcomeValidationError, OutcomeNotFound, OutcomeBusinessRuleViolation, OutcomeGatewayDecline:
		return true
	default:
		return false
	}
}

// IsFailure reports whether a collaborator failed.
func (r Result) IsFailure() bool {
	return r.Outcome == OutcomePersistenceError || r.Outcome == OutcomeGatewayFault
}
