package budgetfill

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Catalog column headers, matched after NormalizeLabel.
const (
	ColCategory    = "TIPO"
	ColGroup       = "GRUPO"
	ColItem        = "ITENS"
	ColDescription = "DESCRIÇÃO"
	ColUnit        = "UNID."
	ColMaterial    = "CUSTOS UNITÁRIOS R$MATERIAL"
	ColLabor       = "CUSTOS UNITÁRIOS R$MÃO DE OBRA"
)

var requiredColumns = []string{ColCategory, ColItem, ColDescription, ColUnit, ColMaterial, ColLabor}

// LoadCatalog reads the reference catalog from an .xlsx or .csv file. The
// classifier assigns each row's category to a bucket; nil means the default
// rules. Any failure to read the source is reported as ErrCatalogUnavailable.
func LoadCatalog(path string, classifier *Classifier) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrCatalogUnavailable, path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadCatalogXLSX(file, classifier)
	case ".csv":
		return ReadCatalogCSV(file, classifier)
	}
	return nil, fmt.Errorf("%w: unsupported catalog format %q: must be .xlsx or .csv", ErrCatalogUnavailable, filepath.Ext(path))
}

// ReadCatalogXLSX reads the first sheet of an xlsx workbook. Cell values are
// read raw so currency formats on the cost columns do not leak into parsing.
func ReadCatalogXLSX(r io.Reader, classifier *Classifier) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrCatalogUnavailable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrCatalogUnavailable, sheet, err)
	}
	return buildCatalog(rows, classifier)
}

// ReadCatalogCSV reads a comma-separated catalog with a header row.
func ReadCatalogCSV(r io.Reader, classifier *Classifier) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrCatalogUnavailable, err)
	}
	return buildCatalog(rows, classifier)
}

func buildCatalog(rows [][]string, classifier *Classifier) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrCatalogUnavailable)
	}
	if classifier == nil {
		var err error
		if classifier, err = NewClassifier(); err != nil {
			return nil, err
		}
	}

	cols, err := mapCatalogHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	var (
		out     []ReferenceRow
		skipped int
	)
	for _, row := range rows[1:] {
		get := func(name string) string {
			i, ok := cols[NormalizeLabel(name)]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		itemID := get(ColItem)
		category := get(ColCategory)
		if itemID == "" && category == "" {
			continue // blank line
		}
		bucket, ok := classifier.Classify(category)
		if !ok || itemID == "" {
			skipped++
			continue
		}
		out = append(out, ReferenceRow{
			Bucket:      bucket,
			Category:    category,
			Group:       get(ColGroup),
			ItemID:      itemID,
			Description: get(ColDescription),
			Unit:        get(ColUnit),
			Material:    parseCost(get(ColMaterial)),
			Labor:       parseCost(get(ColLabor)),
		})
	}

	c := NewCatalog(out)
	c.skipped = skipped
	return c, nil
}

// mapCatalogHeaders returns normalized header → column index. The first
// occurrence of a header wins.
func mapCatalogHeaders(headers []string) (map[string]int, error) {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeLabel(h)
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[NormalizeLabel(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrCatalogUnavailable, strings.Join(missing, ", "))
	}
	return cols, nil
}

// parseCost parses a unit cost. Blank or unparseable values count as zero.
// Both "1234.5" and the Brazilian "R$ 1.234,50" forms are accepted.
func parseCost(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
