package output

// FatalExitCode is the process exit code for every fatal condition.
const FatalExitCode = 23

// FatalError is the error value carried up the stack for conditions
// that must terminate the program. Library code returns it; only the
// CLI entry point turns it into an exit.
type FatalError struct {
	Message string
	Extra   any
	Code    int
}

func (e *FatalError) Error() string {
	return e.Message
}
