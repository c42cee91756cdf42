package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is returned when a backend resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the session has no valid credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ErrValidation is a client-side or 4xx validation failure
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
}

// ErrTransport means the backend could not be reached at all
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrUpstream is a 5xx answer from the backend
type ErrUpstream struct {
	Status int
	Body   string
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("backend error: status %d, body: %s", e.Status, e.Body)
}

// ErrRejected is a business-rule soft failure carried in a 200 response,
// e.g. an installment precheck answering eligible=false.
type ErrRejected struct {
	Reason string
}

func (e *ErrRejected) Error() string {
	if e.Reason == "" {
		return "request rejected"
	}
	return "request rejected: " + e.Reason
}

// ErrInvalidStateTransition is returned when a state machine refuses a move
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// IsNotFound reports whether err is an *ErrNotFound.
func IsNotFound(err error) bool {
	var target *ErrNotFound
	return stdErrors.As(err, &target)
}

// IsTransport reports whether err is an *ErrTransport.
func IsTransport(err error) bool {
	var target *ErrTransport
	return stdErrors.As(err, &target)
}

// HTTPStatus maps an error to the status code and public message the BFF
// answers with. Unknown errors become 500 with a generic message.
func HTTPStatus(err error) (int, string) {
	var (
		notFound     *ErrNotFound
		unauthorized *ErrUnauthorized
		validation   *ErrValidation
		transport    *ErrTransport
		upstream     *ErrUpstream
		rejected     *ErrRejected
		transition   *ErrInvalidStateTransition
	)

	switch {
	case err == nil:
		return http.StatusOK, ""
	case stdErrors.As(err, &validation):
		return http.StatusUnprocessableEntity, validation.Error()
	case stdErrors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case stdErrors.As(err, &unauthorized):
		return http.StatusUnauthorized, unauthorized.Error()
	case stdErrors.As(err, &rejected):
		return http.StatusConflict, rejected.Error()
	case stdErrors.As(err, &transition):
		return http.StatusBadRequest, transition.Error()
	case stdErrors.As(err, &transport):
		return http.StatusBadGateway, "backend unavailable"
	case stdErrors.As(err, &upstream):
		return http.StatusBadGateway, "upstream request failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
