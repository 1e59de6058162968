package scraper

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is returned when the target is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid url")

// FetchError describes a failed attempt to download a page. StatusCode is zero
// when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
