package budgetfill

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/javajack/budgetfill/internal/fixture"
)

func TestOpenWorkbook(t *testing.T) {
	path := fixture.Template(t)

	wb, err := OpenWorkbook(path, "")
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, fixture.Sheet, wb.Sheet())
	used, err := wb.UsedRows()
	require.NoError(t, err)
	assert.Equal(t, 126, used)
	assert.Len(t, wb.MergedRegions(), 2)
}

func TestOpenWorkbook_Errors(t *testing.T) {
	_, err := OpenWorkbook("/nonexistent/modelo.xlsx", "")
	assert.ErrorIs(t, err, ErrTemplateLoad)

	_, err = OpenWorkbookReader(bytes.NewReader([]byte("garbage")), "")
	assert.ErrorIs(t, err, ErrTemplateLoad)

	_, err = OpenWorkbook(fixture.Template(t), "ORÇAMENTO")
	assert.ErrorIs(t, err, ErrTemplateLayout)
}

func TestWorkbook_SetValueSkipsMerged(t *testing.T) {
	wb, err := NewWorkbook(fixture.NewTemplate(t), fixture.Sheet)
	require.NoError(t, err)
	defer wb.Close()

	anchor := wb.Ref(125, 1)
	inner := wb.Ref(125, 3)
	free := wb.Ref(125, ColMaterialSum)
	assert.True(t, wb.IsMerged(anchor))
	assert.True(t, wb.IsMerged(inner))
	assert.False(t, wb.IsMerged(free))

	written, err := wb.SetValue(anchor, "x")
	require.NoError(t, err)
	assert.False(t, written)
	v, _ := wb.File().GetCellValue(fixture.Sheet, "A125")
	assert.Equal(t, "TOTAL GERAL", v)

	written, err = wb.SetValue(free, 12.5)
	require.NoError(t, err)
	assert.True(t, written)
	v, _ = wb.File().GetCellValue(fixture.Sheet, "E125")
	assert.Equal(t, "12.5", v)
}

func TestWorkbook_Styles(t *testing.T) {
	f := fixture.NewTemplate(t)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(fixture.Sheet, "E59", "E59", bold))

	wb, err := NewWorkbook(f, "")
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.ApplyCurrency(wb.Ref(59, ColMaterialSum)))
	require.NoError(t, wb.ApplyCurrency(wb.Ref(60, ColMaterialSum)))
	require.NoError(t, wb.ApplyWrappedText(wb.Ref(59, ColDesc)))

	id, err := f.GetCellStyle(fixture.Sheet, "E59")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, CurrencyFormat, *style.CustomNumFmt)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold, "existing style is kept")

	id, err = f.GetCellStyle(fixture.Sheet, "B59")
	require.NoError(t, err)
	style, err = f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "left", style.Alignment.Horizontal)
	assert.True(t, style.Alignment.WrapText)

	// Same base style and kind reuse one style id.
	again, err := f.GetCellStyle(fixture.Sheet, "E60")
	require.NoError(t, err)
	require.NoError(t, wb.ApplyCurrency(wb.Ref(61, ColMaterialSum)))
	third, err := f.GetCellStyle(fixture.Sheet, "E61")
	require.NoError(t, err)
	assert.Equal(t, again, third)
}

func TestWorkbook_UnhideAndWrite(t *testing.T) {
	wb, err := NewWorkbook(fixture.NewTemplate(t), "")
	require.NoError(t, err)

	visible, err := wb.File().GetRowVisible(fixture.Sheet, 59)
	require.NoError(t, err)
	assert.False(t, visible)

	require.NoError(t, wb.UnhideRow(59))
	visible, err = wb.File().GetRowVisible(fixture.Sheet, 59)
	require.NoError(t, err)
	assert.True(t, visible)

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, wb.Close())
	assert.NotZero(t, buf.Len())

	out, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer out.Close()
	visible, err = out.GetRowVisible(fixture.Sheet, 59)
	require.NoError(t, err)
	assert.True(t, visible)
}
