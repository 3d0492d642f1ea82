package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object storage errors
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrStorageUnreachable = errors.New("object storage unreachable")
	ErrStorageOperation   = errors.New("object storage operation failed")
)

func NewObjectNotFoundError(filename string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrObjectNotFound,
		Details:    fmt.Sprintf("File '%s' was not found in storage", filename),
		Field:      "filename",
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageOperation,
		Details:    fmt.Sprintf("Storage operation '%s' failed", operation),
		Cause:      cause,
	}
}

func IsObjectNotFoundError(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

func IsStorageOperationError(err error) bool {
	return errors.Is(err, ErrStorageOperation)
}
