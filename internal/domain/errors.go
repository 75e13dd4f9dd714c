package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a page without a usable data block or hotel list,
	// and an unknown hotel on the read side.
	ErrNotFound = errors.New("not found")
	// ErrFetch matches every *FetchError via errors.Is.
	ErrFetch = errors.New("fetch failed")
)

// FetchError is returned when a listing page could not be retrieved: either the
// transport failed (Err set) or the response status was not 2xx (Status set).
type FetchError struct {
	Region string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Region, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.Region, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }
