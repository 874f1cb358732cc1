package budgetfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())
	assert.Equal(t, 126, l.MaxRow())

	capacities := map[Bucket]int{Civil: 48, Electrical: 44, Mechanical: 17}
	for b, want := range capacities {
		blk, ok := l.Block(b)
		require.True(t, ok)
		assert.Equal(t, want, blk.Capacity(), b.String())
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"missing block", func(l *Layout) { l.Blocks = l.Blocks[:2] }},
		{"duplicate bucket", func(l *Layout) { l.Blocks[2].Bucket = Civil }},
		{"unknown bucket", func(l *Layout) { l.Blocks[0].Bucket = Bucket(5) }},
		{"start after end", func(l *Layout) { l.Blocks[0].StartRow = 60 }},
		{"zero start", func(l *Layout) { l.Blocks[0].StartRow = 0 }},
		{"subtotal before end", func(l *Layout) { l.Blocks[1].SubtotalRow = 100 }},
		{"overlap", func(l *Layout) { l.Blocks[1].StartRow = 57 }},
		{"grand inside block", func(l *Layout) { l.GrandTotalRow = 121 }},
		{"shared grand row", func(l *Layout) { l.MarkupTotalRow = 125 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.mutate(&l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidLayout)
		})
	}
}

func TestLayout_BlocksInAnyOrder(t *testing.T) {
	l := DefaultLayout()
	l.Blocks[0], l.Blocks[2] = l.Blocks[2], l.Blocks[0]
	assert.NoError(t, l.Validate())
}
