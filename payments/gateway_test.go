package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount int64
		ok     bool
	}{
		{49, false},
		{50, true},
		{20000, true},
		{1000000, true},
		{1000001, false},
		{-100, false},
	}
	for _, tt := range tests {
		err := ValidateAmount(tt.amount)
		if tt.ok {
			assert.NoError(t, err, tt.amount)
		} else {
			assert.ErrorIs(t, err, ErrAmountOutOfRange, tt.amount)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	c, err := NormalizeCurrency(" GBP ")
	require.NoError(t, err)
	assert.Equal(t, "gbp", c)

	for _, bad := range []string{"", "gb", "pound", "g1p"} {
		_, err := NormalizeCurrency(bad)
		assert.ErrorIs(t, err, ErrInvalidCurrency, bad)
	}
}

func TestIntentSucceeded(t *testing.T) {
	var nilIntent *Intent
	assert.False(t, nilIntent.Succeeded())
	assert.False(t, (&Intent{Status: "requires_payment_method"}).Succeeded())
	assert.True(t, (&Intent{Status: StatusSucceeded}).Succeeded())
	assert.True(t, (&Intent{Status: StatusProcessing}).Charged())
	assert.False(t, (&Intent{Status: StatusProcessing}).Succeeded())
	assert.False(t, (&Intent{Status: "requires_payment_method"}).Charged())
}
