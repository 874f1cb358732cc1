package budgetfill

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// CurrencyFormat is the display format applied to monetary columns.
const CurrencyFormat = `"R$" #,##0.00`

type styleKind int

const (
	styleCurrency styleKind = iota
	styleWrapped
)

type styleKey struct {
	base int
	kind styleKind
}

// Workbook wraps one opened template sheet. Existing cell styles are kept:
// format changes are layered on top of each cell's current style.
type Workbook struct {
	file       *excelize.File
	sheet      string
	merged     []AreaRef
	styleCache map[styleKey]int
}

// OpenWorkbook opens an xlsx file for filling.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open template %q: %v", ErrTemplateLoad, path, err)
	}
	wb, err := NewWorkbook(f, sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// OpenWorkbookReader opens an xlsx document from r.
func OpenWorkbookReader(r io.Reader, sheet string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open template reader: %v", ErrTemplateLoad, err)
	}
	wb, err := NewWorkbook(f, sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// NewWorkbook wraps an already opened file. An empty sheet selects the
// active sheet. The merged regions of the sheet are read once, here.
func NewWorkbook(f *excelize.File, sheet string) (*Workbook, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q not found", ErrTemplateLayout, sheet)
	}

	wb := &Workbook{
		file:       f,
		sheet:      sheet,
		styleCache: make(map[styleKey]int),
	}
	cells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read merged cells of %q: %v", ErrTemplateLoad, sheet, err)
	}
	for _, mc := range cells {
		area, err := ParseAreaRef(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			continue
		}
		area.First.Sheet, area.Last.Sheet = sheet, sheet
		wb.merged = append(wb.merged, area)
	}
	return wb, nil
}

// Sheet returns the name of the sheet being filled.
func (wb *Workbook) Sheet() string { return wb.sheet }

// Ref returns the reference of a 1-based row and column on the fill sheet.
func (wb *Workbook) Ref(row, col int) CellRef {
	return SheetRef(wb.sheet, row, col)
}

// IsMerged reports whether ref falls inside any merged region, anchor cell
// included. Values are never written to such cells.
func (wb *Workbook) IsMerged(ref CellRef) bool {
	for _, area := range wb.merged {
		if area.Contains(ref) {
			return true
		}
	}
	return false
}

// MergedRegions returns the merged regions of the fill sheet.
func (wb *Workbook) MergedRegions() []AreaRef {
	out := make([]AreaRef, len(wb.merged))
	copy(out, wb.merged)
	return out
}

// UsedRows returns the number of rows up to the last non-empty one.
func (wb *Workbook) UsedRows() (int, error) {
	rows, err := wb.file.GetRows(wb.sheet)
	if err != nil {
		return 0, fmt.Errorf("read rows of %q: %w", wb.sheet, err)
	}
	return len(rows), nil
}

// SetValue writes value unless ref is merged. It reports whether the value
// was written.
func (wb *Workbook) SetValue(ref CellRef, value any) (bool, error) {
	if wb.IsMerged(ref) {
		return false, nil
	}
	if err := wb.file.SetCellValue(wb.sheet, ref.CellName(), value); err != nil {
		return false, fmt.Errorf("set %s: %w", ref, err)
	}
	return true, nil
}

// ApplyCurrency sets the currency display format on ref, keeping the rest of
// its style.
func (wb *Workbook) ApplyCurrency(ref CellRef) error {
	return wb.restyle(ref, styleCurrency)
}

// ApplyWrappedText left-aligns ref and wraps its text.
func (wb *Workbook) ApplyWrappedText(ref CellRef) error {
	return wb.restyle(ref, styleWrapped)
}

func (wb *Workbook) restyle(ref CellRef, kind styleKind) error {
	cell := ref.CellName()
	base, err := wb.file.GetCellStyle(wb.sheet, cell)
	if err != nil {
		return fmt.Errorf("get style %s: %w", ref, err)
	}
	key := styleKey{base: base, kind: kind}
	id, ok := wb.styleCache[key]
	if !ok {
		style, err := wb.file.GetStyle(base)
		if err != nil {
			return fmt.Errorf("read style %d: %w", base, err)
		}
		switch kind {
		case styleCurrency:
			format := CurrencyFormat
			style.NumFmt = 0
			style.CustomNumFmt = &format
		case styleWrapped:
			style.Alignment = &excelize.Alignment{Horizontal: "left", WrapText: true}
		}
		if id, err = wb.file.NewStyle(style); err != nil {
			return fmt.Errorf("create style for %s: %w", ref, err)
		}
		wb.styleCache[key] = id
	}
	return wb.file.SetCellStyle(wb.sheet, cell, cell, id)
}

// UnhideRow makes a 1-based row visible.
func (wb *Workbook) UnhideRow(row int) error {
	return wb.file.SetRowVisible(wb.sheet, row, true)
}

// Write serializes the workbook to w.
func (wb *Workbook) Write(w io.Writer) error {
	return wb.file.Write(w)
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// File returns the underlying excelize file for advanced operations.
func (wb *Workbook) File() *excelize.File {
	return wb.file
}
