package uploader

import "errors"

// Sentinel errors for upload and rollback failures. Callers check these
// with errors.Is to distinguish expected conflicts from provider errors.
var (
	// ErrObjectExists indicates the target object already exists and
	// override is disabled.
	ErrObjectExists = errors.New("object already exists")

	// ErrNoSuchObject indicates a rollback target object is absent.
	ErrNoSuchObject = errors.New("no such object")

	// ErrNotEnoughVersions indicates rollback was requested but the
	// object has fewer than two versions.
	ErrNotEnoughVersions = errors.New("not enough object versions")
)
