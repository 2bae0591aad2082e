package wxauth

import "fmt"

// APIError is a non-2xx response from the auth backend. StatusCode 0 marks a
// transport failure (connection refused, DNS, timeout) where no HTTP status
// exists.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("auth backend unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("auth backend returned %d: %s", e.StatusCode, e.Detail)
}
