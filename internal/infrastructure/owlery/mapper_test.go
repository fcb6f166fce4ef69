package owlery

import (
	"testing"

	"github.com/containerq/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapInstances(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []domain.InstanceURI
	}{
		{
			name:     "array of IRIs",
			body:     `{"@id":"_:b0","hasInstance":["http://x.org/a#A","http://x.org/a#B"]}`,
			expected: []domain.InstanceURI{"http://x.org/a#A", "http://x.org/a#B"},
		},
		{
			name:     "order preserved",
			body:     `{"hasInstance":["z","a","m"]}`,
			expected: []domain.InstanceURI{"z", "a", "m"},
		},
		{
			name:     "single compacted IRI",
			body:     `{"hasInstance":"http://x.org/a#Only"}`,
			expected: []domain.InstanceURI{"http://x.org/a#Only"},
		},
		{
			name:     "single compacted node",
			body:     `{"hasInstance":{"@id":"http://x.org/a#Only"}}`,
			expected: []domain.InstanceURI{"http://x.org/a#Only"},
		},
		{
			name:     "node references",
			body:     `{"hasInstance":[{"@id":"http://x.org/a#A"},"http://x.org/a#B"]}`,
			expected: []domain.InstanceURI{"http://x.org/a#A", "http://x.org/a#B"},
		},
		{
			name:     "missing field",
			body:     `{"@id":"_:b0"}`,
			expected: []domain.InstanceURI{},
		},
		{
			name:     "null field",
			body:     `{"hasInstance":null}`,
			expected: []domain.InstanceURI{},
		},
		{
			name:     "empty array",
			body:     `{"hasInstance":[]}`,
			expected: []domain.InstanceURI{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MapInstances([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMapInstances_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"top-level array", `["http://x.org/a#A"]`},
		{"numeric field", `{"hasInstance":42}`},
		{"numeric element", `{"hasInstance":[42]}`},
		{"node without id", `{"hasInstance":[{"label":"x"}]}`},
		{"null body", `null`},
		{"empty body", ``},
		{"string body", `"http://x.org/a#A"`},
		{"null element", `{"hasInstance":[null,"http://x.org/a#A"]}`},
		{"empty string element", `{"hasInstance":["","http://x.org/a#A"]}`},
		{"empty single string", `{"hasInstance":""}`},
		{"single node without id", `{"hasInstance":{"label":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MapInstances([]byte(tt.body))
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}
