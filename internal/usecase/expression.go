package usecase

import "strings"

// conjunction joins class expressions in Manchester syntax
const conjunction = " and "

// BuildExpression conjoins addlConditions onto query. The join is purely
// textual; callers must parenthesize operands whose precedence matters.
func BuildExpression(query, addlConditions string) string {
	if addlConditions == "" {
		return query
	}
	return query + conjunction + addlConditions
}

// JoinConditions conjoins the non-empty conditions in order
func JoinConditions(conditions ...string) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, conjunction)
}
