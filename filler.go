package budgetfill

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Filler computes budgets and renders them into the budget template.
type Filler struct {
	opts       *Options
	classifier *Classifier
}

// NewFiller creates a Filler with the given options.
func NewFiller(opts ...Option) *Filler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	c := o.classifier
	if c == nil {
		c = MustClassifier()
	}
	return &Filler{opts: o, classifier: c}
}

// Generate computes the budget for selections and renders it with the given
// options. It returns ErrNoValidSelections, and no document, when nothing
// survives resolution.
func Generate(selections []Selection, catalog *Catalog, opts ...Option) ([]byte, BudgetResult, error) {
	return NewFiller(opts...).Generate(selections, catalog)
}

// Render fills the template with an already computed budget.
func Render(result BudgetResult, opts ...Option) ([]byte, error) {
	return NewFiller(opts...).Render(result)
}

// Layout returns the layout this filler aggregates for.
func (f *Filler) Layout() Layout { return f.opts.layout }

// Budget resolves, costs and aggregates selections without touching the
// template.
func (f *Filler) Budget(selections []Selection, catalog *Catalog) (BudgetResult, error) {
	if err := f.opts.layout.Validate(); err != nil {
		return BudgetResult{}, err
	}
	items, stats := Enrich(selections, catalog, f.classifier)
	result := Aggregate(items, f.opts.layout)
	stats.Overflow = result.Stats.Overflow
	result.Stats = stats

	log := f.opts.logger
	for _, c := range result.Categories {
		if c.Dropped > 0 {
			log.Warn("category overflow, items truncated",
				zap.String("category", c.Bucket.Label()),
				zap.Int("capacity", c.Block.Capacity()),
				zap.Int("dropped", c.Dropped))
		}
	}
	log.Info("budget computed",
		zap.Int("submitted", stats.Submitted),
		zap.Int("accepted", stats.Accepted),
		zap.Int("invalid", stats.Invalid),
		zap.Int("non_positive", stats.NonPositive),
		zap.Int("unclassified", stats.Unclassified),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("overflow", stats.Overflow),
		zap.String("total_with_markup", result.TotalWithMarkup.StringFixed(2)))

	if stats.Accepted == 0 {
		return result, ErrNoValidSelections
	}
	return result, nil
}

// Generate runs Budget then Render.
func (f *Filler) Generate(selections []Selection, catalog *Catalog) ([]byte, BudgetResult, error) {
	result, err := f.Budget(selections, catalog)
	if err != nil {
		return nil, result, err
	}
	out, err := f.Render(result)
	if err != nil {
		return nil, result, err
	}
	return out, result, nil
}

// Render fills the template and returns the document bytes.
func (f *Filler) Render(result BudgetResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.RenderWriter(result, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderWriter fills the template and writes the document to w. Nothing is
// written to w when any step fails.
func (f *Filler) RenderWriter(result BudgetResult, w io.Writer) error {
	if result.ItemCount() == 0 {
		return ErrNoValidSelections
	}
	layout := result.Layout
	if err := layout.Validate(); err != nil {
		return err
	}

	wb, err := f.openTemplate(layout.Sheet)
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := checkTemplate(wb, layout); err != nil {
		return err
	}

	for _, cat := range result.Categories {
		if cat.Empty() {
			continue
		}
		if err := f.fillCategory(wb, cat); err != nil {
			return fmt.Errorf("fill %s: %w", cat.Bucket, err)
		}
	}
	if err := f.fillGrandTotals(wb, result); err != nil {
		return fmt.Errorf("fill grand totals: %w", err)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (f *Filler) fillCategory(wb *Workbook, cat CategoryResult) error {
	row := cat.Block.StartRow
	for _, li := range cat.Items {
		if err := wb.UnhideRow(row); err != nil {
			return fmt.Errorf("unhide row %d: %w", row, err)
		}
		values := []any{
			li.ItemID,
			li.Description,
			li.Quantity.InexactFloat64(),
			li.Unit,
			li.MaterialCost(),
			li.LaborCost(),
			li.RoundedTotal(),
		}
		for i, v := range values {
			if err := f.write(wb, row, i+1, v); err != nil {
				return err
			}
		}
		row++
	}
	return f.writeMoneyRow(wb, cat.Block.SubtotalRow, cat.Material, cat.Labor, cat.TotalWithMarkup)
}

func (f *Filler) fillGrandTotals(wb *Workbook, r BudgetResult) error {
	if err := f.writeMoneyRow(wb, r.Layout.GrandTotalRow, r.Material, r.Labor, r.Total); err != nil {
		return err
	}
	return f.writeMoneyRow(wb, r.Layout.MarkupTotalRow, r.MarkedUp.Material, r.MarkedUp.Labor, r.MarkedUp.Total)
}

func (f *Filler) writeMoneyRow(wb *Workbook, row int, material, labor, total decimal.Decimal) error {
	for i, v := range []decimal.Decimal{material, labor, total} {
		if err := f.write(wb, row, ColMaterialSum+i, v); err != nil {
			return err
		}
	}
	return nil
}

// write applies the per-column formatting and then writes the value unless
// the target cell is merged. Formatting is applied either way.
func (f *Filler) write(wb *Workbook, row, col int, value any) error {
	ref := wb.Ref(row, col)
	if d, ok := value.(decimal.Decimal); ok {
		value = d.InexactFloat64()
	}

	if col >= ColMaterialSum && col <= ColTotal && isNumeric(value) {
		if err := wb.ApplyCurrency(ref); err != nil {
			return err
		}
	}

	proceed := true
	for _, l := range f.opts.listeners {
		if !l.BeforeWrite(ref, value, wb) {
			proceed = false
			break
		}
	}

	written := false
	if proceed {
		var err error
		if written, err = wb.SetValue(ref, value); err != nil {
			return err
		}
		if !written {
			f.opts.logger.Debug("merged cell skipped", zap.String("cell", ref.String()))
		}
	}

	if col == ColDesc {
		if err := wb.ApplyWrappedText(ref); err != nil {
			return err
		}
	}

	for _, l := range f.opts.listeners {
		l.AfterWrite(ref, value, written, wb)
	}
	return nil
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int64, float32, float64:
		return true
	}
	return false
}

// openTemplate opens the template from file path or reader.
func (f *Filler) openTemplate(sheet string) (*Workbook, error) {
	if f.opts.templateReader != nil {
		return OpenWorkbookReader(f.opts.templateReader, sheet)
	}
	if f.opts.templatePath != "" {
		return OpenWorkbook(f.opts.templatePath, sheet)
	}
	return nil, fmt.Errorf("%w: no template specified: use WithTemplate or WithTemplateReader", ErrTemplateLoad)
}

// checkTemplate fails fast when the template is shorter than the layout
// expects, which means the template changed under the row map.
func checkTemplate(wb *Workbook, layout Layout) error {
	used, err := wb.UsedRows()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	if used < layout.MaxRow() {
		return fmt.Errorf("%w: sheet %q has %d rows, layout needs %d",
			ErrTemplateLayout, wb.Sheet(), used, layout.MaxRow())
	}
	return nil
}
