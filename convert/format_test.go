package convert

import (
	"github.com/stretchr/testify/assert"
	"go-currency-converter/domain"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "8,310.00", FormatAmount(8310))
	assert.Equal(t, "1,038.75", FormatAmount(1038.75))
	assert.Equal(t, "0.50", FormatAmount(0.5))
	assert.Equal(t, "1,234,567.125", FormatAmount(1234567.125))
	assert.Equal(t, "0.1235", FormatAmount(0.12346))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "83.1", FormatRate(83.1))
	assert.Equal(t, "0.92", FormatRate(0.92))
	assert.Equal(t, "1", FormatRate(1))
	assert.Equal(t, "151.234568", FormatRate(151.2345678))
	assert.Equal(t, "12,345.5", FormatRate(domain.Rate(12345.5)))
}
