package speller

import "fmt"

// InvalidInputError marks a query token the engine refuses to process:
// empty, longer than the configured maximum, or not valid UTF-8. Callers
// should surface it as a usage error.
type InvalidInputError struct {
	Token  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Token, e.Reason)
}

// EngineNotReadyError is returned when a query arrives before a dictionary
// snapshot has been installed.
type EngineNotReadyError struct{}

func (e *EngineNotReadyError) Error() string {
	return "speller engine not ready: no dictionary snapshot installed"
}

// DataIntegrityError is returned at build time when a feed violates an
// invariant. Builds abort on the first violation; a corrupt table must never
// reach query time.
type DataIntegrityError struct {
	Feed   string
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation in %s feed: %s", e.Feed, e.Detail)
}
