package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticPlaceholder_GetName(t *testing.T) {
	testCases := []struct {
		name        string
		placeholder StaticPlaceholder
		expected    string
	}{
		{
			name:        "name set",
			placeholder: StaticPlaceholder{ID: 1, Name: "Footer", Code: "footer"},
			expected:    "Footer",
		},
		{
			name:        "name blank falls back to code",
			placeholder: StaticPlaceholder{ID: 2, Code: "footer"},
			expected:    "footer",
		},
		{
			name:        "name and code blank falls back to id",
			placeholder: StaticPlaceholder{ID: 3},
			expected:    "static-3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.placeholder.GetName())
		})
	}
}

func TestSite_String(t *testing.T) {
	assert.Equal(t, "Example", (&Site{Name: "Example", Domain: "example.com"}).String())
	assert.Equal(t, "example.com", (&Site{Domain: "example.com"}).String())
	assert.Equal(t, "", (*Site)(nil).String())
}
