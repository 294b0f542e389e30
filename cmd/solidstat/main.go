package main

import (
	"errors"
	"fmt"
	"os"
)

// A drifted corpus and a broken invocation are different problems, so the
// exit codes keep them apart for CI scripting.
const (
	ExitSuccess      = 0 // every fixture case matched
	ExitVerifyFailed = 1 // the run finished but some cases mismatched
	ExitError        = 2 // bad flags, config, or I/O
)

// VerificationFailureError indicates that the conformance run itself
// succeeded, but one or more fixture cases did not match.
type VerificationFailureError struct {
	Message string
}

func (e *VerificationFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var verifyErr *VerificationFailureError
		if errors.As(err, &verifyErr) {
			os.Exit(ExitVerifyFailed)
		}
		os.Exit(ExitError)
	}
}
