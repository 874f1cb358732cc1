package budgetfill

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Selection is one user-submitted entry. Category is free text and is
// classified before lookup. Only positive quantities are considered.
type Selection struct {
	ItemID   string  `yaml:"item" json:"item"`
	Quantity float64 `yaml:"quant" json:"quant"`
	Category string  `yaml:"category" json:"category"`
}

// LineItem is a resolved and costed selection. It is never mutated after
// creation.
type LineItem struct {
	Bucket          Bucket
	ItemID          string
	Description     string
	Quantity        decimal.Decimal
	Unit            string
	Material        decimal.Decimal // unit material cost
	Labor           decimal.Decimal // unit labor cost
	Total           decimal.Decimal // discounted, unrounded
	TotalWithMarkup decimal.Decimal // discounted then marked up, unrounded
}

// NewLineItem builds a line item from a catalog row and a quantity.
func NewLineItem(row ReferenceRow, quantity decimal.Decimal) LineItem {
	total, withMarkup := Compute(quantity, row.Material, row.Labor)
	return LineItem{
		Bucket:          row.Bucket,
		ItemID:          row.ItemID,
		Description:     row.Description,
		Quantity:        quantity,
		Unit:            row.Unit,
		Material:        row.Material,
		Labor:           row.Labor,
		Total:           total,
		TotalWithMarkup: withMarkup,
	}
}

// MaterialCost is the undiscounted material cost of the line, in cents.
func (li LineItem) MaterialCost() decimal.Decimal {
	return round2(li.Material.Mul(li.Quantity))
}

// LaborCost is the undiscounted labor cost of the line, in cents.
func (li LineItem) LaborCost() decimal.Decimal {
	return round2(li.Labor.Mul(li.Quantity))
}

// RoundedTotal is the marked-up total written to the total column.
func (li LineItem) RoundedTotal() decimal.Decimal {
	return round2(li.TotalWithMarkup)
}

// Stats counts what happened to each submitted selection.
type Stats struct {
	Submitted    int
	Accepted     int
	Invalid      int // quantity is NaN or infinite
	NonPositive  int // quantity <= 0
	Unclassified int // category label matched no rule
	Unmatched    int // item not in the catalog for its bucket
	Overflow     int // accepted but cut by block capacity
}

// Dropped is the number of selections that did not reach the document.
func (s Stats) Dropped() int {
	return s.Invalid + s.NonPositive + s.Unclassified + s.Unmatched + s.Overflow
}

// Enrich resolves selections against the catalog. Selections that cannot be
// resolved are dropped and counted, never reported as errors. A nil
// classifier means the default rules.
func Enrich(selections []Selection, catalog *Catalog, classifier *Classifier) (map[Bucket][]LineItem, Stats) {
	if classifier == nil {
		classifier = MustClassifier()
	}
	stats := Stats{Submitted: len(selections)}
	items := make(map[Bucket][]LineItem, len(Buckets))
	for _, sel := range selections {
		if math.IsNaN(sel.Quantity) || math.IsInf(sel.Quantity, 0) {
			stats.Invalid++
			continue
		}
		if sel.Quantity <= 0 {
			stats.NonPositive++
			continue
		}
		bucket, ok := classifier.Classify(sel.Category)
		if !ok {
			stats.Unclassified++
			continue
		}
		row, ok := catalog.Resolve(sel.ItemID, bucket)
		if !ok {
			stats.Unmatched++
			continue
		}
		items[bucket] = append(items[bucket], NewLineItem(row, decimal.NewFromFloat(sel.Quantity)))
		stats.Accepted++
	}
	return items, stats
}

// CategoryResult holds the rows that will be written for one bucket and
// their subtotals. Subtotals are sums of the per-row rounded values.
type CategoryResult struct {
	Bucket          Bucket
	Block           CategoryBlock
	Items           []LineItem // sorted by ItemID, truncated to capacity
	Dropped         int
	Material        decimal.Decimal
	Labor           decimal.Decimal
	TotalWithMarkup decimal.Decimal
}

// Empty reports whether nothing will be written for this bucket.
func (c CategoryResult) Empty() bool { return len(c.Items) == 0 }

// MarkedUpTotals are the grand totals with markup applied once at the top.
type MarkedUpTotals struct {
	Material decimal.Decimal
	Labor    decimal.Decimal
	Total    decimal.Decimal
}

// BudgetResult is the full computed budget for one submission.
//
// Two grand totals coexist. TotalWithMarkup is summed bottom-up from
// discounted and marked-up lines. MarkedUp applies the markup once to the
// undiscounted material and labor sums; it is what the template's markup row
// shows.
type BudgetResult struct {
	Layout          Layout
	Categories      []CategoryResult
	Material        decimal.Decimal
	Labor           decimal.Decimal
	Total           decimal.Decimal // Material + Labor
	TotalWithMarkup decimal.Decimal // sum of category TotalWithMarkup
	MarkedUp        MarkedUpTotals
	Stats           Stats
}

// Category returns the result for one bucket.
func (r BudgetResult) Category(b Bucket) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Bucket == b {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// ItemCount returns the number of line items that will be written.
func (r BudgetResult) ItemCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Items)
	}
	return n
}

// Aggregate sorts, truncates and sums line items per block of the layout.
// Items beyond a block's capacity are dropped after sorting, so the
// lexically smallest identifiers always survive.
func Aggregate(items map[Bucket][]LineItem, layout Layout) BudgetResult {
	blocks := make([]CategoryBlock, len(layout.Blocks))
	copy(blocks, layout.Blocks)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Bucket < blocks[j].Bucket })

	result := BudgetResult{Layout: layout}
	for _, blk := range blocks {
		cat := CategoryResult{Bucket: blk.Bucket, Block: blk}

		sorted := make([]LineItem, len(items[blk.Bucket]))
		copy(sorted, items[blk.Bucket])
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })
		if limit := blk.Capacity(); len(sorted) > limit {
			cat.Dropped = len(sorted) - limit
			sorted = sorted[:limit]
		}
		cat.Items = sorted

		for _, li := range sorted {
			cat.Material = cat.Material.Add(li.MaterialCost())
			cat.Labor = cat.Labor.Add(li.LaborCost())
			cat.TotalWithMarkup = cat.TotalWithMarkup.Add(li.RoundedTotal())
		}
		cat.Material = round2(cat.Material)
		cat.Labor = round2(cat.Labor)
		cat.TotalWithMarkup = round2(cat.TotalWithMarkup)

		result.Material = result.Material.Add(cat.Material)
		result.Labor = result.Labor.Add(cat.Labor)
		result.TotalWithMarkup = result.TotalWithMarkup.Add(cat.TotalWithMarkup)
		result.Stats.Overflow += cat.Dropped
		result.Categories = append(result.Categories, cat)
	}

	result.Material = round2(result.Material)
	result.Labor = round2(result.Labor)
	result.Total = round2(result.Material.Add(result.Labor))
	result.TotalWithMarkup = round2(result.TotalWithMarkup)
	result.MarkedUp = MarkedUpTotals{
		Material: round2(ApplyMarkup(result.Material)),
		Labor:    round2(ApplyMarkup(result.Labor)),
		Total:    round2(ApplyMarkup(result.Material.Add(result.Labor))),
	}
	return result
}
