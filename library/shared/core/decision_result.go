package core

// DecisionResult is what a Decide function returns: either the change the handler should persist
// or the rejection it should hand back unchanged.
//
// IMPORTANT: DecisionResult should only be constructed using AcceptDecision or RejectDecision.
type DecisionResult[T any] struct {
	Change    T
	Rejection Result
}

// AcceptDecision creates a DecisionResult carrying the change to persist.
func AcceptDecision[T any](change T) DecisionResult[T] {
	return DecisionResult[T]{Change: change}
}

// RejectDecision creates a DecisionResult refusing the command with outcome and message.
func RejectDecision[T any](outcome Outcome, message string) DecisionResult[T] {
	return DecisionResult[T]{Rejection: Reject(outcome, message)}
}

// IsRejected reports whether the command was refused.
func (r DecisionResult[T]) IsRejected() bool {
	return r.Rejection.Outcome != ""
}
