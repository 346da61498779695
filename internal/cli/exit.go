package cli

import "fmt"

// Exit statuses.
const (
	ExitFailure     = 2 // setup or run failed
	ExitInterrupted = 1 // SIGINT during a run
)

// ExitError carries the process exit status for a failed command. A nil
// Err means the command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
