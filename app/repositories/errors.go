// Package repositories holds the persistence layer for the catalog entities.
// Each repository enforces slug uniqueness for its own kind before any write.
package repositories

import "errors"

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("repositories: record not found")

// ErrSlugTaken is returned when a slug already belongs to a different row of
// the same kind.
var ErrSlugTaken = errors.New("repositories: slug already taken")
