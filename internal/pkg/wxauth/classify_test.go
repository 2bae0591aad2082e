package wxauth

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		detail string
		want   Category
	}{
		{status: 400, detail: "Invalid state token", want: CategoryStateError},
		{status: 400, detail: "State token expired", want: CategoryStateError},
		{status: 400, detail: "WeChat login failed: invalid_code", want: CategoryCodeError},
		{status: 409, detail: "This WeChat account is already linked to another user", want: CategoryAlreadyLinkedOther},
		{status: 409, detail: "already linked", want: CategoryAlreadyLinkedSelf},
		{status: 502, detail: "", want: CategoryProviderUnavailable},
		{status: 503, detail: "WeChat service unavailable", want: CategoryProviderUnavailable},
		{status: 0, detail: "", want: CategoryNetworkError},
		{status: 500, detail: "network problem", want: CategoryNetworkError},
		{status: 418, detail: "teapot", want: CategoryUnknown},
		{status: 500, detail: "", want: CategoryUnknown},
		// Overlapping signals: first rule wins.
		{status: 409, detail: "state mismatch", want: CategoryStateError},
		{status: 502, detail: "code expired", want: CategoryCodeError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.status, tt.detail), func(t *testing.T) {
			if got := Classify(tt.status, tt.detail); got != tt.want {
				t.Fatalf("Classify(%d, %q) = %q, want %q", tt.status, tt.detail, got, tt.want)
			}
		})
	}
}

func TestClassifyErr(t *testing.T) {
	if got := ClassifyErr(&APIError{StatusCode: 409, Detail: "already linked"}); got != CategoryAlreadyLinkedSelf {
		t.Fatalf("ClassifyErr(*APIError) = %q, want %q", got, CategoryAlreadyLinkedSelf)
	}
	if got := ClassifyErr(errors.New("dial tcp: connection refused")); got != CategoryNetworkError {
		t.Fatalf("ClassifyErr(transport error) = %q, want %q", got, CategoryNetworkError)
	}
	wrapped := fmt.Errorf("confirm link: %w", &APIError{StatusCode: 502, Detail: ""})
	if got := ClassifyErr(wrapped); got != CategoryProviderUnavailable {
		t.Fatalf("ClassifyErr(wrapped *APIError) = %q, want %q", got, CategoryProviderUnavailable)
	}
}
