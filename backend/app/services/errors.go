package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindUnprocessable
)

// Error is a client-visible failure: a kind that maps to an HTTP status
// and the detail message shown to the caller.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Detail: fmt.Sprintf(format, args...)}
}

func Unauthorized(detail string) *Error { return &Error{Kind: KindUnauthorized, Detail: detail} }

func Forbidden(detail string) *Error { return &Error{Kind: KindForbidden, Detail: detail} }

func NotFound(detail string) *Error { return &Error{Kind: KindNotFound, Detail: detail} }

func Unprocessable(detail string) *Error { return &Error{Kind: KindUnprocessable, Detail: detail} }

// Messages shared across services and controllers.
const (
	MsgInvalidCredentials = "Invalid Credentials"
	MsgCouldNotValidate   = "Could not validate credentials"
	MsgNotAuthenticated   = "Not authenticated"
	MsgNotAllowed         = "Not allowed"
	MsgUserNotFound       = "User not found"
	MsgNoUsers            = "No users found"
	MsgPostNotFound       = "Post not found"
	MsgNoPosts            = "No posts found"
	MsgInvalidPassword    = "Password is not valid"
	MsgAlreadyLiked       = "You already liked this post"
	MsgAlreadyDisliked    = "You already disliked this post"
)

// mutationErr passes service errors through and turns store failures raised
// inside a transaction into a BadRequest carrying the store's message.
func mutationErr(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return BadRequest("%s", err.Error())
}
