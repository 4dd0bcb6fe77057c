package orchestrators

import (
	"errors"
	"fmt"
)

// ErrStorageFailure marks a failed store call. Handlers match on it with
// errors.Is so the underlying cause is logged server-side while the client
// gets a generic response; driver error text never reaches a response body.
var ErrStorageFailure = errors.New("storage failure")

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}
