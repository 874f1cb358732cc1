// Package selection reads the item selections submitted for one budget,
// either as a YAML list or as a CSV file with item, quant and category
// columns.
package selection

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javajack/budgetfill"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported selection format")

// document is the YAML shape: either a bare list or {selections: [...]}.
type document struct {
	Selections []budgetfill.Selection `yaml:"selections"`
}

// Load reads selections from path, choosing the reader by extension.
func Load(path string) ([]budgetfill.Selection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open selections: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	case ".csv":
		return ReadCSV(f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadYAML decodes a YAML list of selections.
func ReadYAML(r io.Reader) ([]budgetfill.Selection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read selections: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse selections: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var out []budgetfill.Selection
	if node.Content[0].Kind == yaml.MappingNode {
		var doc document
		if err := node.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse selections: %w", err)
		}
		out = doc.Selections
	} else if err := node.Content[0].Decode(&out); err != nil {
		return nil, fmt.Errorf("parse selections: %w", err)
	}
	for i := range out {
		out[i].ItemID = strings.TrimSpace(out[i].ItemID)
		if q := out[i].Quantity; math.IsNaN(q) || math.IsInf(q, 0) {
			out[i].Quantity = 0
		}
	}
	return out, nil
}

// ReadCSV reads selections from a CSV file whose header names the item,
// quant and category columns in any order. A quantity that does not parse
// is kept as zero so the selection is counted as dropped downstream.
func ReadCSV(r io.Reader) ([]budgetfill.Selection, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read selections header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range []string{"item", "quant", "category"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("selections csv: missing column %q", name)
		}
	}

	var out []budgetfill.Selection
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read selections: %w", err)
		}
		get := func(name string) string {
			if i := cols[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		item, category := get("item"), get("category")
		if item == "" && category == "" {
			continue
		}
		out = append(out, budgetfill.Selection{
			ItemID:   item,
			Quantity: parseQuantity(get("quant")),
			Category: category,
		})
	}
	return out, nil
}

// parseQuantity accepts "2.5" and the decimal-comma form "2,5". Values that
// are not finite numbers become zero.
func parseQuantity(s string) float64 {
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}
