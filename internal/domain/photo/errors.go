package photo

import "errors"

var (
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrClientNotFound = errors.New("client not found")
	ErrNoFiles        = errors.New("no files in upload")
	ErrTooManyFiles   = errors.New("too many files in upload")
)
