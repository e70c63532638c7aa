// Package apperr holds the error kinds the API reports to its callers.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidID
	KindMissingAuthorName
	KindDuplicateEmail
	KindSelfDeletionForbidden
	KindSelfLockoutForbidden
	KindAuthenticationRequired
	KindInvalidCredentials
	KindInsufficientRole
	KindGuestNotAllowed
	KindBoardInactive
	KindForbidden
	KindNotFound
)

var kindNames = map[Kind]string{
	KindInternal:               "InternalError",
	KindValidation:             "ValidationError",
	KindInvalidID:              "InvalidId",
	KindMissingAuthorName:      "MissingAuthorName",
	KindDuplicateEmail:         "DuplicateEmail",
	KindSelfDeletionForbidden:  "SelfDeletionForbidden",
	KindSelfLockoutForbidden:   "SelfLockoutForbidden",
	KindAuthenticationRequired: "AuthenticationRequired",
	KindInvalidCredentials:     "InvalidCredentials",
	KindInsufficientRole:       "InsufficientRole",
	KindGuestNotAllowed:        "GuestNotAllowed",
	KindBoardInactive:          "BoardInactive",
	KindForbidden:              "Forbidden",
	KindNotFound:               "NotFound",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Status is the HTTP status code reported for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidID, KindMissingAuthorName, KindDuplicateEmail, KindSelfDeletionForbidden, KindSelfLockoutForbidden:
		return http.StatusBadRequest
	case KindAuthenticationRequired, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindInsufficientRole, KindGuestNotAllowed, KindBoardInactive, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an expected failure with a message that is safe to show to the
// client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf returns the kind of err, or KindInternal if err does not carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrAuthenticationRequired = New(KindAuthenticationRequired, "authentication required")
	ErrInvalidCredentials     = New(KindInvalidCredentials, "invalid email or password")
	ErrInsufficientRole       = New(KindInsufficientRole, "administrator privileges required")
	ErrGuestNotAllowed        = New(KindGuestNotAllowed, "this board does not accept guest writes")
	ErrBoardInactive          = New(KindBoardInactive, "this board is not accepting new posts")
	ErrMissingAuthorName      = New(KindMissingAuthorName, "author name is required for guest writes")
	ErrDuplicateEmail         = New(KindDuplicateEmail, "email is already registered")
	ErrSelfDeletion           = New(KindSelfDeletionForbidden, "you cannot delete your own account")
	ErrSelfLockout            = New(KindSelfLockoutForbidden, "you cannot demote or deactivate your own account")
	ErrInvalidID              = New(KindInvalidID, "invalid id")
	ErrForbidden              = New(KindForbidden, "you are not allowed to modify this resource")
)
