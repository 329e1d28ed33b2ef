package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePurity(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"zero", 0, 0},
		{"negative", -5, 0},
		{"fraction kept as-is", 0.916, 0.916},
		{"pure fraction", 1, 1},
		{"18 karat", 18, 0.75},
		{"22 karat", 22, 22.0 / 24},
		{"24 karat", 24, 1},
		{"percent", 91.6, 0.916},
		{"full percent", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizePurity(tt.raw), 1e-9)
		})
	}
}

func TestItemCost(t *testing.T) {
	// 10g of 18k gold at 6000/g: 10 * 0.75 * 6000 = 45000.
	assert.InDelta(t, 45000.0, ItemCost(10, 18, 6000, 0, 0, 0, 0), 0.001)

	// Fixed components stack on top of the gold value.
	assert.InDelta(t, 45000.0+1200+800+150+300, ItemCost(10, 18, 6000, 1200, 800, 150, 300), 0.001)

	// Purity given as a percentage.
	assert.InDelta(t, 10*0.916*6000, ItemCost(10, 91.6, 6000, 0, 0, 0, 0), 0.01)

	// Result is rounded to two decimals.
	assert.Equal(t, 27.5, ItemCost(1, 1, 27.499, 0, 0, 0, 0))
}
