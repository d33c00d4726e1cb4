package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "0"},
		{"42", "42"},
		{"12.5", "12.5"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1,234", "1234"},
		{"1,234,567", "1234567"},
		{"₹ 250", "250"},
		{"Rs. 99", "99"},
		{"CHF 1'234.50", "1234.5"},
		{"€12,30", "12.3"},
		{"-7.10", "-7.1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("twelve")
	assert.ErrorContains(t, err, "failed to parse amount 'twelve'")
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")

	assert.Equal(t, "1234.50", FormatAmount(amount, ""))
	assert.Equal(t, "₹1234.50", FormatAmount(amount, "inr"))
	assert.Equal(t, "€1234.50", FormatAmount(amount, "EUR"))
	assert.Equal(t, "CHF 1234.50", FormatAmount(amount, "CHF"))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "-₹20.00", FormatSigned(decimal.NewFromInt(20), "INR", true))
	assert.Equal(t, "+₹20.00", FormatSigned(decimal.NewFromInt(-20), "INR", false))
}

func TestPercent(t *testing.T) {
	assert.True(t, decimal.RequireFromString("33.3").Equal(Percent(decimal.NewFromInt(1), decimal.NewFromInt(3))))
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.Zero).IsZero())
}
