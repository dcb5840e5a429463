package mysql

import (
	"errors"
	"strings"

	driver "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// joinScope stores a scope as a comma-separated column.
func joinScope(scope []checklist.Framework) string {
	parts := make([]string, len(scope))
	for i, f := range scope {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitScope(s string) []checklist.Framework {
	out := []checklist.Framework{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, checklist.Framework(p))
		}
	}
	return out
}

// isDuplicate reports a unique-key violation (ER_DUP_ENTRY).
func isDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
