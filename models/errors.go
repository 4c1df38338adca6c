package models

// Error taxonomy. Authorization and validation failures are detected
// before any mutation and surfaced directly; upstream failures are
// passed through untouched.

// ErrorUnauthorized: no authenticated actor where one is required.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ErrorForbidden: authenticated but lacking permission for the operation.
type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// ErrorNotFound: the resource id or slug does not resolve.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

// ErrorValidation: missing or malformed input.
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

// ErrorConflict: slug allocation exhausted, duplicate email, or a reset
// token that is already used or expired.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorUpstream: the storage or session collaborator failed unexpectedly.
type ErrorUpstream struct {
	Message string
	Err     error
}

func (e ErrorUpstream) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ErrorUpstream) Unwrap() error {
	return e.Err
}
