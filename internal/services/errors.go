package services

// Typed errors carried from the service layer to the HTTP envelope. Handlers
// switch on these to pick a status code; anything else surfaces as a 500.

type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }
