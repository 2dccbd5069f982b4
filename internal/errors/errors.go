package errors

import "errors"

var (
	ErrDownloaderNotFound = errors.New("downloader executable not found")
	ErrAborted            = errors.New("aborted by user")
)
