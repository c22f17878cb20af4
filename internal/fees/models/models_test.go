package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name          string
		baseAmount    int64
		multiplierBps int64
		quantity      int64
		want          int64
	}{
		{name: "neutral multiplier", baseAmount: 50, multiplierBps: 10000, quantity: 1, want: 50},
		{name: "quantity scales linearly", baseAmount: 50, multiplierBps: 10000, quantity: 4, want: 200},
		{name: "multiplier raises the fee", baseAmount: 100, multiplierBps: 15000, quantity: 1, want: 150},
		{name: "multiplier lowers the fee", baseAmount: 100, multiplierBps: 5000, quantity: 2, want: 100},
		{name: "zero base is free", baseAmount: 0, multiplierBps: 10000, quantity: 5, want: 0},
		{name: "zero quantity is free", baseAmount: 50, multiplierBps: 10000, quantity: 0, want: 0},
		{name: "disabled multiplier is free", baseAmount: 50, multiplierBps: 0, quantity: 1, want: 0},
		{name: "negative inputs are free", baseAmount: -50, multiplierBps: 10000, quantity: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAmount(tt.baseAmount, tt.multiplierBps, tt.quantity))
		})
	}
}
