package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// scopeArray stores a scope in a TEXT[] column.
func scopeArray(scope []checklist.Framework) pq.StringArray {
	out := make(pq.StringArray, len(scope))
	for i, f := range scope {
		out[i] = string(f)
	}
	return out
}

func scopeFrom(a pq.StringArray) []checklist.Framework {
	out := make([]checklist.Framework, 0, len(a))
	for _, s := range a {
		out = append(out, checklist.Framework(s))
	}
	return out
}

// isDuplicate reports a unique_violation.
func isDuplicate(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code == "23505"
}
