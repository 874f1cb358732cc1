package budgetfill

// WriteListener is notified around every cell write made while rendering.
// Implement it for auditing, logging or extra per-cell styling.
type WriteListener interface {
	// BeforeWrite is called before value is written to ref.
	// Return false to skip the write.
	BeforeWrite(ref CellRef, value any, wb *Workbook) bool

	// AfterWrite is called after the write attempt. written is false when
	// the cell was skipped because it is merged or a listener vetoed it.
	AfterWrite(ref CellRef, value any, written bool, wb *Workbook)
}

// WriteListenerFuncs adapts plain functions to WriteListener. Nil fields are
// no-ops.
type WriteListenerFuncs struct {
	Before func(ref CellRef, value any, wb *Workbook) bool
	After  func(ref CellRef, value any, written bool, wb *Workbook)
}

func (l WriteListenerFuncs) BeforeWrite(ref CellRef, value any, wb *Workbook) bool {
	if l.Before == nil {
		return true
	}
	return l.Before(ref, value, wb)
}

func (l WriteListenerFuncs) AfterWrite(ref CellRef, value any, written bool, wb *Workbook) {
	if l.After != nil {
		l.After(ref, value, written, wb)
	}
}
