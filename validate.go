package budgetfill

import (
	"errors"
	"fmt"
	"io"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // rendering will fail
	SeverityWarning                 // rendering works but some values will not appear
)

// ValidationIssue represents a single problem found while checking a
// template against a layout.
type ValidationIssue struct {
	Severity Severity
	CellRef  CellRef
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.CellRef, v.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateTemplate checks a template file against a layout without data.
// A non-nil error means the template could not be opened at all.
func ValidateTemplate(templatePath string, opts ...Option) ([]ValidationIssue, error) {
	allOpts := append([]Option{WithTemplate(templatePath)}, opts...)
	return NewFiller(allOpts...).Validate()
}

// Validate opens the configured template and checks it against the layout.
// An invalid layout is reported as a single error issue.
func (f *Filler) Validate() ([]ValidationIssue, error) {
	layout := f.opts.layout
	if err := layout.Validate(); err != nil {
		return []ValidationIssue{{Severity: SeverityError, Message: err.Error()}}, nil
	}

	wb, err := f.openTemplate(layout.Sheet)
	if err != nil {
		if errors.Is(err, ErrTemplateLayout) {
			return []ValidationIssue{{Severity: SeverityError, Message: err.Error()}}, nil
		}
		return nil, err
	}
	defer wb.Close()

	var issues []ValidationIssue
	issues = append(issues, validateRowSpan(wb, layout)...)
	issues = append(issues, validateMergedTargets(wb, layout)...)
	return issues, nil
}

// validateRowSpan checks that the template reaches the last layout row.
func validateRowSpan(wb *Workbook, layout Layout) []ValidationIssue {
	used, err := wb.UsedRows()
	if err != nil {
		return []ValidationIssue{{Severity: SeverityError, Message: err.Error()}}
	}
	if used < layout.MaxRow() {
		return []ValidationIssue{{
			Severity: SeverityError,
			CellRef:  wb.Ref(layout.MaxRow(), 1),
			Message:  fmt.Sprintf("template has %d rows, layout writes up to row %d", used, layout.MaxRow()),
		}}
	}
	return nil
}

// validateMergedTargets warns about value cells the filler will skip because
// they are merged.
func validateMergedTargets(wb *Workbook, layout Layout) []ValidationIssue {
	var issues []ValidationIssue
	check := func(row, firstCol, lastCol int, what string) {
		for col := firstCol; col <= lastCol; col++ {
			ref := wb.Ref(row, col)
			if wb.IsMerged(ref) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					CellRef:  ref,
					Message:  fmt.Sprintf("%s cell is merged; its value will not be written", what),
				})
			}
		}
	}
	for _, b := range layout.Blocks {
		for row := b.StartRow; row <= b.EndRow; row++ {
			check(row, ColItemID, ColTotal, b.Bucket.Label()+" item")
		}
		if b.SubtotalRow > b.EndRow {
			check(b.SubtotalRow, ColMaterialSum, ColTotal, b.Bucket.Label()+" subtotal")
		}
	}
	check(layout.GrandTotalRow, ColMaterialSum, ColTotal, "grand total")
	check(layout.MarkupTotalRow, ColMaterialSum, ColTotal, "markup total")
	return issues
}

// WriteIssues prints issues one per line.
func WriteIssues(w io.Writer, issues []ValidationIssue) error {
	for _, i := range issues {
		if _, err := fmt.Fprintln(w, i.String()); err != nil {
			return err
		}
	}
	return nil
}
