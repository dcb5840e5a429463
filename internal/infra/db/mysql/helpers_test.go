package mysql

import (
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

func TestScopeColumn(t *testing.T) {
	scope := []checklist.Framework{"PCI", "GDPR"}
	assert.Equal(t, "PCI,GDPR", joinScope(scope))
	assert.Equal(t, scope, splitScope("PCI, GDPR,"))
	assert.Equal(t, []checklist.Framework{}, splitScope(""))
}

func TestIsDuplicate(t *testing.T) {
	dup := &driver.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, isDuplicate(dup))
	assert.True(t, isDuplicate(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isDuplicate(&driver.MySQLError{Number: 1146}))
	assert.False(t, isDuplicate(errors.New("boom")))
	assert.False(t, isDuplicate(nil))
}

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash("  "))
	assert.Equal(t, "Acme", stringOrDash("Acme"))
}
