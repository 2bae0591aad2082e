package wxauth

import (
	"errors"
	"strings"
)

// Category is the closed failure taxonomy of the flow. Every failure maps to
// exactly one category; anything unmatched lands in CategoryUnknown.
type Category string

const (
	CategoryStateError          Category = "state_error"
	CategoryCodeError           Category = "code_error"
	CategoryProviderUnavailable Category = "provider_unavailable"
	CategoryAlreadyLinkedOther  Category = "already_linked_other"
	CategoryAlreadyLinkedSelf   Category = "already_linked_self"
	CategoryNetworkError        Category = "network_error"
	CategoryUnknown             Category = "unknown"
)

// Classify maps a failed exchange response to a Category. The rules are
// ordered and the first match wins; some signals overlap (a 409 whose detail
// mentions "state" is a state problem, not a conflict).
//
// The "state"/"code" substring matching mirrors the backend's error text and
// is a known weak contract; it should move to a structured error code if the
// backend ever grows one.
func Classify(statusCode int, detail string) Category {
	d := strings.ToLower(detail)

	switch {
	case strings.Contains(d, "state"):
		return CategoryStateError
	case strings.Contains(d, "code"):
		return CategoryCodeError
	case statusCode == 409:
		if strings.Contains(d, "already linked to another") {
			return CategoryAlreadyLinkedOther
		}
		return CategoryAlreadyLinkedSelf
	case statusCode == 502 || strings.Contains(d, "unavailable"):
		return CategoryProviderUnavailable
	case statusCode == 0 || strings.Contains(d, "network"):
		return CategoryNetworkError
	default:
		return CategoryUnknown
	}
}

// ClassifyErr classifies any error from the backend client. Errors that are
// not an *APIError are treated as transport failures (status 0).
func ClassifyErr(err error) Category {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Classify(apiErr.StatusCode, apiErr.Detail)
	}
	return Classify(0, "")
}
