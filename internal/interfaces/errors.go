package interfaces

import "errors"

var (
	// ErrNoDocuments signals an empty intake location. It is a data-absence
	// condition, not a processing failure; callers surface "nothing to
	// report" rather than an error response.
	ErrNoDocuments = errors.New("no documents in intake location")

	// ErrSlotEmpty signals a store slot that has never been written.
	ErrSlotEmpty = errors.New("store slot has never been written")
)
