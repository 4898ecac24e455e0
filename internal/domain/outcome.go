package domain

// OutcomeKind tags the result of one payment attempt.
type OutcomeKind string

const (
	OutcomePending   OutcomeKind = "PENDING"
	OutcomeSucceeded OutcomeKind = "SUCCEEDED"
	OutcomeFailed    OutcomeKind = "FAILED"
)

// PaymentOutcome is the user-observable result of a single workflow run.
// Exactly one is live per run and it never regresses once terminal; a fresh
// submission starts a fresh run with a fresh Pending outcome.
type PaymentOutcome struct {
	Kind    OutcomeKind
	Message string
}

func PendingOutcome() PaymentOutcome {
	return PaymentOutcome{Kind: OutcomePending}
}

func SucceededOutcome(message string) PaymentOutcome {
	return PaymentOutcome{Kind: OutcomeSucceeded, Message: message}
}

func FailedOutcome(reason string) PaymentOutcome {
	return PaymentOutcome{Kind: OutcomeFailed, Message: reason}
}

// Terminal reports whether the outcome has settled for this run.
func (o PaymentOutcome) Terminal() bool {
	return o.Kind == OutcomeSucceeded || o.Kind == OutcomeFailed
}
