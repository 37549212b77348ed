package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"memberdesk/internal/pricing"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":        "$0.00",
		"41.5":     "$41.50",
		"1234.5":   "$1,234.50",
		"1000000":  "$1,000,000.00",
		"-20":      "-$20.00",
		"179.275":  "$179.28",
		"336.1499": "$336.15",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "-", FormatPrice(pricing.NoPrice))
	assert.Equal(t, "$57.00", FormatPrice(pricing.PriceOf(decimal.NewFromInt(57))))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("6f1c2a4e-8b7d-4c3e-9a2f-1b2c3d4e5f60"))
	assert.False(t, IsUUID("Basic"))
	assert.False(t, IsUUID("6f1c2a4e8b7d4c3e9a2f1b2c3d4e5f60"))
	assert.False(t, IsUUID("zzzzzzzz-8b7d-4c3e-9a2f-1b2c3d4e5f60"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Swim", Truncate("Swim", 10))
	assert.Equal(t, "Personal…", Truncate("Personal Training", 9))
	assert.Equal(t, "…", Truncate("Swim", 1))
}
