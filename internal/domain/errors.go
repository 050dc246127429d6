package domain

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidData    = errors.New("invalid document data")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrLayoutOverflow = errors.New("section does not fit on a page")
	ErrOutputFailed   = errors.New("writing document output failed")
	ErrUploadFailed   = errors.New("document upload to storage failed")
	ErrMailFailed     = errors.New("sending document email failed")
)
