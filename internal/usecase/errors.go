package usecase

// ValidationError reports the first form violation. It is surfaced inline
// to the user and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
