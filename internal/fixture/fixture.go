// Package fixture builds the budget template and catalog files used by
// tests. It mirrors the shipped form: civil rows 10-57, electrical rows
// 59-103, mechanical rows 105-121 and the grand totals on rows 125 and 126.
package fixture

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is the name of the template sheet.
const Sheet = "Sheet1"

// CatalogHeader is the header row of a reference catalog.
var CatalogHeader = []string{
	"TIPO", "GRUPO", "ITENS", "DESCRIÇÃO", "UNID.",
	"CUSTOS UNITÁRIOS R$MATERIAL", "CUSTOS UNITÁRIOS R$MÃO DE OBRA",
}

// CatalogRows is a small catalog covering every category.
var CatalogRows = [][]string{
	{"CIVIL", "ALVENARIA", "C-02", "Reboco", "m2", "12.50", "8"},
	{"CIVIL", "ALVENARIA", "C-01", "Demolição de parede", "m2", "0", "35.2"},
	{"INSTALAÇÕES ELÉTRICAS", "ILUMINAÇÃO", "E-01", "Luminária LED", "un", "10.00", "5.00"},
	{"INSTALAÇÕES ELÉTRICAS", "ILUMINAÇÃO", "E-02", "Tomada dupla", "un", "", "7.5"},
	{"INSTALAÇÕES MECÂNICAS", "CLIMATIZAÇÃO", "M-01", "Split 12000 BTU", "un", "2500", "450"},
	{"SERVIÇOS GERAIS", "LIMPEZA", "X-01", "Limpeza final", "vb", "100", "100"},
}

// TemplateOption mutates the template before it is saved.
type TemplateOption func(t testing.TB, f *excelize.File)

// WithMerge merges a range of the template.
func WithMerge(from, to string) TemplateOption {
	return func(t testing.TB, f *excelize.File) {
		require.NoError(t, f.MergeCell(Sheet, from, to))
	}
}

// WithoutRowsAfter deletes the labels from row onwards, leaving a template
// shorter than the layout expects.
func WithoutRowsAfter(row int) TemplateOption {
	return func(t testing.TB, f *excelize.File) {
		rows, err := f.GetRows(Sheet)
		require.NoError(t, err)
		for r := len(rows); r >= row; r-- {
			require.NoError(t, f.RemoveRow(Sheet, r))
		}
	}
}

// NewTemplate returns an in-memory template.
func NewTemplate(t testing.TB, opts ...TemplateOption) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	set := func(cell string, v any) {
		require.NoError(t, f.SetCellValue(Sheet, cell, v))
	}

	set("A1", "PLANILHA ORÇAMENTÁRIA")
	set("A8", "ITEM")
	set("B8", "DESCRIÇÃO")
	set("C8", "QUANT.")
	set("D8", "UNID.")
	set("E8", "MATERIAL")
	set("F8", "MÃO DE OBRA")
	set("G8", "TOTAL")
	set("A9", "CIVIL")
	set("A58", "INSTALAÇÕES ELÉTRICAS")
	set("A104", "INSTALAÇÕES MECÂNICAS")
	set("A125", "TOTAL GERAL")
	set("A126", "TOTAL COM BDI")

	for _, span := range [][2]int{{10, 56}, {59, 102}, {105, 120}} {
		for r := span[0]; r <= span[1]; r++ {
			require.NoError(t, f.SetRowVisible(Sheet, r, false))
		}
	}
	require.NoError(t, f.MergeCell(Sheet, "A125", "D125"))
	require.NoError(t, f.MergeCell(Sheet, "A126", "D126"))

	for _, opt := range opts {
		opt(t, f)
	}
	return f
}

// Template writes a template to a temporary directory and returns its path.
func Template(t testing.TB, opts ...TemplateOption) string {
	t.Helper()
	f := NewTemplate(t, opts...)
	path := filepath.Join(t.TempDir(), "modelo.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

// CatalogXLSX writes header and rows to the first sheet of a workbook.
func CatalogXLSX(t testing.TB, header []string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(Sheet, cell, &values))
	}
	path := filepath.Join(t.TempDir(), "referencia.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// CatalogCSV writes header and rows as a CSV file.
func CatalogCSV(t testing.TB, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "referencia.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	w := csv.NewWriter(file)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	return path
}
