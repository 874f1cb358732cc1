package budgetfill

import "github.com/shopspring/decimal"

// ReferenceRow is one catalog entry. Missing unit costs are stored as zero.
type ReferenceRow struct {
	Bucket      Bucket
	Category    string // raw category label as found in the source
	Group       string
	ItemID      string
	Description string
	Unit        string
	Material    decimal.Decimal
	Labor       decimal.Decimal
}

// Catalog is an immutable, indexed set of reference rows.
type Catalog struct {
	rows    []ReferenceRow
	index   map[Bucket]map[string]int
	skipped int
}

// NewCatalog indexes rows by bucket and item identifier. When the same
// identifier appears more than once in a bucket, the first row wins.
func NewCatalog(rows []ReferenceRow) *Catalog {
	c := &Catalog{
		rows:  rows,
		index: make(map[Bucket]map[string]int, len(Buckets)),
	}
	for i, r := range rows {
		byID, ok := c.index[r.Bucket]
		if !ok {
			byID = make(map[string]int)
			c.index[r.Bucket] = byID
		}
		if _, dup := byID[r.ItemID]; dup {
			continue
		}
		byID[r.ItemID] = i
	}
	return c
}

// Resolve looks up an item by exact identifier within a bucket.
func (c *Catalog) Resolve(itemID string, b Bucket) (ReferenceRow, bool) {
	if c == nil {
		return ReferenceRow{}, false
	}
	i, ok := c.index[b][itemID]
	if !ok {
		return ReferenceRow{}, false
	}
	return c.rows[i], true
}

// Rows returns the rows in source order.
func (c *Catalog) Rows() []ReferenceRow {
	out := make([]ReferenceRow, len(c.rows))
	copy(out, c.rows)
	return out
}

// RowsIn returns the rows of one bucket in source order.
func (c *Catalog) RowsIn(b Bucket) []ReferenceRow {
	var out []ReferenceRow
	for _, r := range c.rows {
		if r.Bucket == b {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of indexed rows.
func (c *Catalog) Len() int { return len(c.rows) }

// Skipped returns how many source rows were ignored at load time because
// their category could not be classified or their identifier was blank.
func (c *Catalog) Skipped() int { return c.skipped }
