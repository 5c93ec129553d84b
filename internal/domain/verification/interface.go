package verification

import (
	"context"
)

// Result is the outcome of a verification. Failures are always presented to
// the user, Retryable tells whether trying again may succeed.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func Succeed(message string) Result {
	return Result{Success: true, Message: message}
}

func Fail(message string) Result {
	return Result{Success: false, Message: message, Retryable: true}
}

// Verifier checks whether the user has done what a quest asks. It never
// returns an error, failures are reported in the Result.
type Verifier interface {
	Verify(ctx context.Context, questID, category string) Result
}

// Processor verifies one specific quest with the validation data of that
// quest.
type Processor interface {
	Verify(ctx context.Context) Result
}

// Random is the source of the simulated checks. It must be safe for
// concurrent use.
type Random interface {
	Float64() float64
}
