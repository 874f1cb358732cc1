package selection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/budgetfill"
)

func TestReadYAML_List(t *testing.T) {
	in := `
- item: " E-01 "
  quant: 1
  category: Instalações Elétricas
- item: C-02
  quant: 2.5
  category: civil
`
	got, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []budgetfill.Selection{
		{ItemID: "E-01", Quantity: 1, Category: "Instalações Elétricas"},
		{ItemID: "C-02", Quantity: 2.5, Category: "civil"},
	}, got)
}

func TestReadYAML_Document(t *testing.T) {
	in := `
selections:
  - {item: M-01, quant: 3, category: Mecânicas}
`
	got, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "M-01", got[0].ItemID)
	assert.Equal(t, 3.0, got[0].Quantity)
}

func TestReadYAML_NonFiniteQuantity(t *testing.T) {
	in := "- {item: E-01, quant: .inf, category: eletrica}\n- {item: E-02, quant: .nan, category: eletrica}\n"
	got, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Zero(t, got[0].Quantity)
	assert.Zero(t, got[1].Quantity)
}

func TestReadYAML_EmptyAndInvalid(t *testing.T) {
	got, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadYAML(strings.NewReader("- item: [unclosed"))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	in := "category,item,quant\n" +
		"Instalações Elétricas,E-01,1\n" +
		"CIVIL,C-01,\"2,5\"\n" +
		",,\n" +
		"CIVIL,C-02,abc\n" +
		"ELETRICA,E-02,inf\n" +
		"ELETRICA,E-03,-Inf\n" +
		"ELETRICA,E-04,NaN\n"
	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []budgetfill.Selection{
		{ItemID: "E-01", Quantity: 1, Category: "Instalações Elétricas"},
		{ItemID: "C-01", Quantity: 2.5, Category: "CIVIL"},
		{ItemID: "C-02", Quantity: 0, Category: "CIVIL"},
		{ItemID: "E-02", Quantity: 0, Category: "ELETRICA"},
		{ItemID: "E-03", Quantity: 0, Category: "ELETRICA"},
		{ItemID: "E-04", Quantity: 0, Category: "ELETRICA"},
	}, got)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("item,quant\nE-01,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "sel.yml")
	require.NoError(t, os.WriteFile(yml, []byte("- {item: E-01, quant: 1, category: eletrica}\n"), 0o600))
	got, err := Load(yml)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	csvPath := filepath.Join(dir, "sel.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("item,quant,category\nE-01,1,eletrica\n"), 0o600))
	got, err = Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	txt := filepath.Join(dir, "sel.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))
	_, err = Load(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
