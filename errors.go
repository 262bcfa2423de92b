package sharecraft

import "errors"

var (
	// ErrNotFound is returned when a record, blob, or route target is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePath is returned when creating an override whose path is
	// already taken by another record.
	ErrDuplicatePath = errors.New("path already exists")
)
