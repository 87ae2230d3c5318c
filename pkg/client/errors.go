package client

import "fmt"

// RequestError is returned for any non-2xx provider response. It carries the
// status line and a best-effort snippet of the response body.
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %d %s: %s", e.StatusCode, e.Status, e.Body)
}
