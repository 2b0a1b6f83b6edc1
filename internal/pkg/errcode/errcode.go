package errcode

import (
	"errors"

	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrTooMany
	ErrInternal
	ErrInvalidFile
	ErrUploadFailed
	ErrInvalidABN
	ErrTooManyCompare
	ErrMailUnavailable
)

// ErrInvalidABN is listed before ErrInvalid so the more specific message wins.
var table = []struct {
	err  error
	code int
	msg  string
}{
	{appErr.ErrUnauthorized, ErrUnauthorized, "unauthorized"},
	{appErr.ErrForbidden, ErrForbidden, "forbidden"},
	{appErr.ErrNotFound, ErrNotFound, "not found"},
	{appErr.ErrInvalidABN, ErrInvalidABN, "abn must contain 11 digits"},
	{appErr.ErrInvalid, ErrInvalid, "invalid request"},
	{appErr.ErrConflict, ErrConflict, "conflict"},
	{appErr.ErrCompareLimit, ErrTooManyCompare, "too many companies to compare"},
	{appErr.ErrTooMany, ErrTooMany, "too many requests"},
	{appErr.ErrMailDisabled, ErrMailUnavailable, "mail is not configured"},
}

// Resolve maps a service error onto its response code and public message.
func Resolve(err error) (int, string) {
	for _, item := range table {
		if errors.Is(err, item.err) {
			return item.code, item.msg
		}
	}
	return ErrInternal, "internal error"
}
