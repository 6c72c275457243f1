package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "100", want: 100},
		{in: "12,50", want: 12.5},
		{in: "1.234,56", want: 1234.56},
		{in: "1234.56", want: 1234.56},
		{in: " 2 500 ", want: 2500},
		{in: "", wantErr: true},
		{in: "tien", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidateOptionalRate(t *testing.T) {
	assert.NoError(t, validateOptionalRate(""))
	assert.NoError(t, validateOptionalRate("6"))
	assert.Error(t, validateOptionalRate("120"))
	assert.Error(t, validateOptionalRate("x"))
}

func TestVATModel_Calculate(t *testing.T) {
	m := NewVATModel()
	m.input.amount = "100"
	m.input.rateType = "reduced"
	m.calculate()

	assert.Equal(t, 9.0, m.result.EffectiveVATRate)
	assert.InDelta(t, 109.0, m.result.Total, 1e-9)

	m.input.amount = "121"
	m.input.rateType = "standard"
	m.input.reverse = true
	m.calculate()

	assert.Equal(t, 100.0, m.reverse.Exclusive)
	assert.Equal(t, 21.0, m.reverse.VAT)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "2.0 KB", FormatSize(2048))
	assert.Equal(t, "1.5 MB", FormatSize(3<<19))
}
