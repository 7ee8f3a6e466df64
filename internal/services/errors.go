package services

import "errors"

var (
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInstallationNotFound is returned when a materiel references an unknown installation.
	ErrInstallationNotFound = errors.New("installation not found")
)
