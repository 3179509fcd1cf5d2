package commands

import (
	"bytes"
	"testing"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLabels(&buf, models.DefaultLabels(), []string{"tags"}))

	assert.Equal(t, "tags       (tag / tags)\n  created  created\n  title    title\n", buf.String())
}

func TestPrintLabelsUnknownTable(t *testing.T) {
	var buf bytes.Buffer
	err := printLabels(&buf, models.DefaultLabels(), []string{"widgets"})
	assert.ErrorContains(t, err, "widgets")
}

func TestPrintLabelsAllTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLabels(&buf, models.DefaultLabels(), nil))
	out := buf.String()
	for table := range models.DefaultLabels() {
		assert.Contains(t, out, table)
	}
}
