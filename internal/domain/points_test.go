package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   int64
	}{
		{name: "whole dollars at rate 1", amount: "50.00", rate: "1.0", want: 50},
		{name: "cents are dropped", amount: "19.99", rate: "1.0", want: 19},
		{name: "just under a dollar earns nothing", amount: "0.99", rate: "1.0", want: 0},
		{name: "zero amount", amount: "0", rate: "1.0", want: 0},
		{name: "double rate", amount: "10.50", rate: "2.0", want: 21},
		{name: "fractional rate", amount: "100.00", rate: "0.5", want: 50},
		{name: "product truncates not rounds", amount: "33.33", rate: "1.5", want: 49},
		{name: "exact decimal product", amount: "19.99", rate: "100", want: 1999},
		{name: "product past int64 saturates", amount: "18446744073709551615", rate: "1.0", want: math.MaxInt64},
		{name: "exponent amount saturates", amount: "1e20", rate: "1.0", want: math.MaxInt64},
		{name: "saturation via rate", amount: "2.00", rate: "9223372036854775807", want: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			rate := decimal.RequireFromString(tt.rate)
			if got := PointsFor(amount, rate); got != tt.want {
				t.Errorf("PointsFor(%s, %s) = %d, want %d", tt.amount, tt.rate, got, tt.want)
			}
		})
	}
}

func TestMemberAccrue(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		points  int64
		want    int64
	}{
		{name: "plain addition", balance: 100, points: 50, want: 150},
		{name: "zero points", balance: 100, points: 0, want: 100},
		{name: "saturates at int64 max", balance: 100, points: math.MaxInt64, want: math.MaxInt64},
		{name: "already at max stays there", balance: math.MaxInt64, points: 1, want: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Member{Points: tt.balance}
			if got := m.Accrue(tt.points); got != tt.want {
				t.Errorf("Accrue(%d) = %d, want %d", tt.points, got, tt.want)
			}
			if m.Points != tt.want {
				t.Errorf("Points = %d, want %d", m.Points, tt.want)
			}
		})
	}
}

func TestMemberMaskedCard(t *testing.T) {
	tests := []struct {
		name string
		card string
		want string
	}{
		{name: "full card number", card: "1234567890123456", want: "************3456"},
		{name: "short value passes through", card: "1234", want: "1234"},
		{name: "empty", card: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Member{CardNumber: tt.card}
			if got := m.MaskedCard(); got != tt.want {
				t.Errorf("MaskedCard() = %q, want %q", got, tt.want)
			}
		})
	}
}
