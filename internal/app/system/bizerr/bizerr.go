// Package bizerr defines the caller-visible business error taxonomy.
//
// Every failure in the group API is a policy decision, not a transient
// fault: errors carry a stable code, terminate the request, and are never
// retried internally. Handlers map codes to HTTP statuses in one place.
package bizerr

import (
	"errors"
	"fmt"
)

// Code identifies a business failure. Codes are part of the API contract.
type Code string

const (
	NotAuthorized           Code = "NOT_AUTHORIZED"
	InvalidGroupID          Code = "INVALID_GROUP_ID"
	CannotLeaveGroup        Code = "CANNOT_LEAVE_GROUP"
	CannotRemoveMyself      Code = "CANNOT_REMOVE_MYSELF"
	CannotDeleteSystemGroup Code = "CANNOT_DELETE_SYSTEM_GROUP"
	QuotaExceeded           Code = "QUOTA_EXCEEDED"
	InvalidMemberRole       Code = "INVALID_MEMBER_ROLE"
)

// Error is a coded business error.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New returns a business error whose message is the code itself.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Newf returns a business error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the business code from err, unwrapping as needed.
// ok is false when err carries no business code.
func CodeOf(err error) (code Code, ok bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// Is reports whether err carries the given business code.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
