package budgetfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_DefaultRules(t *testing.T) {
	c := MustClassifier()
	tests := []struct {
		label  string
		want   Bucket
		wantOK bool
	}{
		{"CIVIL", Civil, true},
		{"obras civis", Civil, true},
		{"INSTALAÇÕES ELÉTRICAS", Electrical, true},
		{"Instalações Elétricas - bloco 2", Electrical, true},
		{"instalacoes eletricas", Electrical, true},
		{"Electrical", Electrical, true},
		{"INSTALAÇÕES MECÂNICAS", Mechanical, true},
		{"mechanical", Mechanical, true},
		{"Elétrica civil", Civil, true},
		{"SERVIÇOS GERAIS", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := c.Classify(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	c, err := NewClassifier(
		ClassificationRule{Bucket: Mechanical, Expression: `label startsWith "HIDR"`},
		ClassificationRule{Bucket: Civil, Expression: `label in ["OBRA", "REFORMA"]`},
	)
	require.NoError(t, err)

	b, ok := c.Classify("Hidráulica")
	assert.True(t, ok)
	assert.Equal(t, Mechanical, b)

	b, ok = c.Classify(" reforma ")
	assert.True(t, ok)
	assert.Equal(t, Civil, b)

	_, ok = c.Classify("CIVIL")
	assert.False(t, ok, "custom rules replace the defaults")
	assert.Len(t, c.Rules(), 2)
}

func TestNewClassifier_Errors(t *testing.T) {
	_, err := NewClassifier(ClassificationRule{Bucket: Civil, Expression: `label contains`})
	assert.Error(t, err)

	_, err = NewClassifier(ClassificationRule{Bucket: Civil, Expression: `len(label)`})
	assert.Error(t, err, "non-boolean expression")

	_, err = NewClassifier(ClassificationRule{Bucket: Bucket(9), Expression: `true`})
	assert.Error(t, err)

	assert.Panics(t, func() { MustClassifier(ClassificationRule{Bucket: Civil, Expression: `)`}) })
}
