package llm

import (
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		detail string
		want   Category
	}{
		{"API_KEY_INVALID: provided key is not valid", CategoryCredential},
		{"the API key is missing", CategoryCredential},
		{"quota exceeded for this project", CategoryQuota},
		{"RESOURCE_EXHAUSTED generativelanguage.googleapis.com", CategoryQuota},
		{"model not found: gemini-99", CategoryModel},
		{"NOT_FOUND models/nope", CategoryModel},
		{"unknown model identifier", CategoryModel},
		{"connection reset by peer", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.detail); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.detail, got, tc.want)
		}
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Category: CategoryQuota, Detail: "quota exceeded"}
	if err.Error() != "provider error (quota): quota exceeded" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}
