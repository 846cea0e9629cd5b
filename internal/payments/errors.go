package payments

import "net/http"

// RequestError is a failure the caller sees: an HTTP status and the
// plain-text body to send with it.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(msg string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) *RequestError {
	return &RequestError{Status: http.StatusNotFound, Message: msg}
}

func internalError(msg string) *RequestError {
	return &RequestError{Status: http.StatusInternalServerError, Message: msg}
}
