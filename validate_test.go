package budgetfill

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/budgetfill/internal/fixture"
)

func TestValidateTemplate_Clean(t *testing.T) {
	issues, err := ValidateTemplate(fixture.Template(t))
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.False(t, HasErrors(issues))
}

func TestValidateTemplate_MergedTargets(t *testing.T) {
	path := fixture.Template(t, fixture.WithMerge("F60", "G60"), fixture.WithMerge("E121", "F121"))

	issues, err := ValidateTemplate(path)
	require.NoError(t, err)
	assert.False(t, HasErrors(issues))

	var cells []string
	for _, i := range issues {
		assert.Equal(t, SeverityWarning, i.Severity)
		cells = append(cells, i.CellRef.CellName())
	}
	assert.ElementsMatch(t, []string{"F60", "G60", "E121", "F121"}, cells)
}

func TestValidateTemplate_Short(t *testing.T) {
	issues, err := ValidateTemplate(fixture.Template(t, fixture.WithoutRowsAfter(110)))
	require.NoError(t, err)
	require.True(t, HasErrors(issues))
	assert.Contains(t, issues[0].Message, "row 126")
}

func TestValidateTemplate_MissingSheetAndLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.Sheet = "ORÇAMENTO"
	issues, err := ValidateTemplate(fixture.Template(t), WithLayout(layout))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)

	layout = DefaultLayout()
	layout.MarkupTotalRow = layout.GrandTotalRow
	issues, err = ValidateTemplate(fixture.Template(t), WithLayout(layout))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "invalid layout")
}

func TestValidateTemplate_Unreadable(t *testing.T) {
	_, err := ValidateTemplate("/nonexistent/modelo.xlsx")
	assert.ErrorIs(t, err, ErrTemplateLoad)
}

func TestWriteIssues(t *testing.T) {
	issues := []ValidationIssue{
		{Severity: SeverityError, CellRef: SheetRef("Sheet1", 126, 1), Message: "too short"},
		{Severity: SeverityWarning, CellRef: SheetRef("Sheet1", 60, 7), Message: "merged"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteIssues(&buf, issues))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"[ERROR] Sheet1!A126: too short",
		"[WARN] Sheet1!G60: merged",
	}, lines)
}
