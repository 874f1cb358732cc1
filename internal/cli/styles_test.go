package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("written"), "written")
	assert.Contains(t, FormatSuccess("written"), SuccessIcon)
	assert.Contains(t, FormatWarning("nothing to do"), "nothing to do")
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatTitle("Catalog"), "Catalog")
	assert.Contains(t, FormatSubtle("note"), "note")
}
