package budgetfill

import (
	"fmt"
	"sort"
)

// Template columns, 1-based as they appear in the sheet.
const (
	ColItemID      = 1
	ColDesc        = 2
	ColQuantity    = 3
	ColUnitOfMeas  = 4
	ColMaterialSum = 5
	ColLaborSum    = 6
	ColTotal       = 7
)

// CategoryBlock is the fixed row range reserved for one bucket. Rows are
// 1-based sheet rows. SubtotalRow may equal EndRow, in which case the last
// item row is overwritten by the subtotal.
type CategoryBlock struct {
	Bucket      Bucket
	StartRow    int
	EndRow      int
	SubtotalRow int
}

// Capacity is the number of item rows available in the block.
func (b CategoryBlock) Capacity() int {
	return b.EndRow - b.StartRow + 1
}

// Layout describes where everything goes in the template.
type Layout struct {
	// Sheet is the target sheet; empty means the active sheet.
	Sheet          string
	Blocks         []CategoryBlock
	GrandTotalRow  int
	MarkupTotalRow int
}

// DefaultLayout is the row map of the budget template shipped with the form.
func DefaultLayout() Layout {
	return Layout{
		Blocks: []CategoryBlock{
			{Bucket: Civil, StartRow: 10, EndRow: 57, SubtotalRow: 57},
			{Bucket: Electrical, StartRow: 59, EndRow: 102, SubtotalRow: 103},
			{Bucket: Mechanical, StartRow: 105, EndRow: 121, SubtotalRow: 121},
		},
		GrandTotalRow:  125,
		MarkupTotalRow: 126,
	}
}

// Block returns the block assigned to b.
func (l Layout) Block(b Bucket) (CategoryBlock, bool) {
	for _, blk := range l.Blocks {
		if blk.Bucket == b {
			return blk, true
		}
	}
	return CategoryBlock{}, false
}

// MaxRow returns the highest row the layout writes to.
func (l Layout) MaxRow() int {
	top := l.GrandTotalRow
	if l.MarkupTotalRow > top {
		top = l.MarkupTotalRow
	}
	for _, b := range l.Blocks {
		if b.SubtotalRow > top {
			top = b.SubtotalRow
		}
		if b.EndRow > top {
			top = b.EndRow
		}
	}
	return top
}

// Validate checks the layout on its own: every bucket has exactly one block,
// blocks keep template order without overlapping, and both grand total rows
// sit below the last block.
func (l Layout) Validate() error {
	if len(l.Blocks) != len(Buckets) {
		return fmt.Errorf("%w: want %d category blocks, got %d", ErrInvalidLayout, len(Buckets), len(l.Blocks))
	}
	seen := make(map[Bucket]bool, len(l.Blocks))
	for _, b := range l.Blocks {
		if !b.Bucket.Valid() {
			return fmt.Errorf("%w: unknown bucket %d", ErrInvalidLayout, int(b.Bucket))
		}
		if seen[b.Bucket] {
			return fmt.Errorf("%w: duplicate block for %s", ErrInvalidLayout, b.Bucket)
		}
		seen[b.Bucket] = true
		if b.StartRow < 1 || b.EndRow < b.StartRow || b.SubtotalRow < b.EndRow {
			return fmt.Errorf("%w: %s block needs 1 <= start (%d) <= end (%d) <= subtotal (%d)",
				ErrInvalidLayout, b.Bucket, b.StartRow, b.EndRow, b.SubtotalRow)
		}
	}

	ordered := make([]CategoryBlock, len(l.Blocks))
	copy(ordered, l.Blocks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Bucket < ordered[j].Bucket })
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.StartRow <= prev.SubtotalRow {
			return fmt.Errorf("%w: %s block (row %d) overlaps or precedes %s block (ends row %d)",
				ErrInvalidLayout, cur.Bucket, cur.StartRow, prev.Bucket, prev.SubtotalRow)
		}
	}

	last := ordered[len(ordered)-1].SubtotalRow
	if l.GrandTotalRow <= last || l.MarkupTotalRow <= last {
		return fmt.Errorf("%w: grand total rows (%d, %d) must follow the last block (row %d)",
			ErrInvalidLayout, l.GrandTotalRow, l.MarkupTotalRow, last)
	}
	if l.GrandTotalRow == l.MarkupTotalRow {
		return fmt.Errorf("%w: grand total and markup total share row %d", ErrInvalidLayout, l.GrandTotalRow)
	}
	return nil
}
