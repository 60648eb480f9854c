package store

import "fmt"

// NotFoundError reports a missing entity.  Kind names the collection
// ("student", "area", ...), Key the lookup key.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// ConflictError reports a uniqueness violation on save.  ExistingOwner
// names the owner already holding the conflicting key.
type ConflictError struct {
	Kind          string
	Key           string
	ExistingOwner string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict on %s: already assigned to %s", e.Kind, e.Key, e.ExistingOwner)
}
