package budgetfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		in   string
		want CellRef
	}{
		{"A1", CellRef{Row: 0, Col: 0}},
		{"$G$59", CellRef{Row: 58, Col: 6}},
		{"Sheet1!E125", CellRef{Sheet: "Sheet1", Row: 124, Col: 4}},
		{"'My Sheet'!B10", CellRef{Sheet: "My Sheet", Row: 9, Col: 1}},
	}
	for _, tt := range tests {
		got, err := ParseCellRef(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "1A", "Sheet1!"} {
		_, err := ParseCellRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestCellRef_Names(t *testing.T) {
	ref := SheetRef("Sheet1", 59, ColTotal)
	assert.Equal(t, "G59", ref.CellName())
	assert.Equal(t, "Sheet1!G59", ref.String())
	assert.Equal(t, NewCellRef("Sheet1", 58, 6), ref)
	assert.Equal(t, "C3", NewCellRef("", 2, 2).String())
}

func TestAreaRef(t *testing.T) {
	area, err := ParseAreaRef("Sheet1!A125:D125")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A125:D125", area.String())

	first, last := area.Rows()
	assert.Equal(t, 125, first)
	assert.Equal(t, 125, last)

	assert.True(t, area.Contains(SheetRef("Sheet1", 125, 1)), "anchor cell")
	assert.True(t, area.Contains(SheetRef("Sheet1", 125, 4)))
	assert.False(t, area.Contains(SheetRef("Sheet1", 125, 5)))
	assert.False(t, area.Contains(SheetRef("Other", 125, 1)))

	bare, err := ParseAreaRef("B2:C3")
	require.NoError(t, err)
	assert.True(t, bare.Contains(SheetRef("Any", 3, 3)))

	_, err = ParseAreaRef("B2")
	assert.Error(t, err)
	_, err = ParseAreaRef("B2:??")
	assert.Error(t, err)
}
