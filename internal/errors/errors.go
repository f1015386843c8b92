package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrNotFound = errors.New("resource not found")
var ErrBadInput = errors.New("invalid input")
var ErrConflict = errors.New("requested dates are already booked")
var ErrUpstream = errors.New("upstream request failed")
