package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExpression(t *testing.T) {
	tests := []struct {
		name  string
		query string
		addl  string
		want  string
	}{
		{"no conditions", "cont:ClearPlate", "", "cont:ClearPlate"},
		{"with conditions", "cont:ClearPlate", "cont:SLAS-4-2004", "cont:ClearPlate and cont:SLAS-4-2004"},
		{"no parenthesization", "A or B", "C", "A or B and C"},
		{"whitespace kept", " A\n ", " B ", " A\n  and  B "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildExpression(tt.query, tt.addl))
		})
	}
}

func TestJoinConditions(t *testing.T) {
	assert.Equal(t, "", JoinConditions())
	assert.Equal(t, "A", JoinConditions("", "A", ""))
	assert.Equal(t, "A and B", JoinConditions("A", "B"))
}
