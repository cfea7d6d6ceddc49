package migration

import (
	"strings"
	"testing"

	"gohappy/domain/happiness"

	"github.com/stretchr/testify/assert"
)

func TestStatements_Order(t *testing.T) {
	stmts := Statements()
	assert.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "dataset_snapshots")
	assert.Contains(t, stmts[1], "REFERENCES dataset_snapshots(id)")

	for _, stmt := range stmts {
		assert.Contains(t, stmt, "IF NOT EXISTS", "migrations must be idempotent")
	}
}

func TestRecordsTable_HasFeatureColumns(t *testing.T) {
	for _, f := range happiness.AllFeatures() {
		assert.True(t, strings.Contains(createRecordsTable, "\t"+f.Key()+" DOUBLE PRECISION"), f.Key())
	}
}

func TestRunner_Version(t *testing.T) {
	assert.Equal(t, "1.0.0", NewRunner().Version())
}
