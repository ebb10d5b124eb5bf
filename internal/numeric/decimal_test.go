package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenon/tradeimport/internal/models"
)

func TestParseDecimal_Table(t *testing.T) {
	cases := []struct {
		name          string
		value         string
		allowNegative bool
		want          string
		wantErr       error
	}{
		{"plain", "150.50", false, "150.50", nil},
		{"currency_sigil", "$1,234.56", false, "1234.56", nil},
		{"parens_negative", "(42.00)", true, "-42.00", nil},
		{"negative_disallowed", "-5", false, "", models.ErrNegativeDisallowed},
		{"empty", "", true, "0", nil},
		{"lone_dash", "-", true, "0", nil},
		{"garbage", "abc", false, "", models.ErrInvalidNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDecimal(tc.value, tc.allowNegative)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			want, err := decimal.NewFromString(tc.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestStripNonNumeric(t *testing.T) {
	assert.Equal(t, "0.001", StripNonNumeric("0.001 BNB"))
	assert.Equal(t, "-12.5", StripNonNumeric("-12.5 USD"))
}
