package etl

import (
	"errors"
	"fmt"
)

// ErrFetch is matched by every FetchError via errors.Is.
var ErrFetch = errors.New("fetch failed")

// FetchError reports that every attempt to retrieve a dataset failed.
// Fallback is nil for sources that only make one attempt.
type FetchError struct {
	URL      string
	Primary  error
	Fallback error
}

func (e *FetchError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Primary)
	}
	return fmt.Sprintf("fetch %s: primary: %v; fallback: %v", e.URL, e.Primary, e.Fallback)
}

// Unwrap exposes both underlying causes.
func (e *FetchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }
