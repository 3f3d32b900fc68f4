package load_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
)

func TestFactoringCost(t *testing.T) {
	l := load.Load{
		ID:        "1234",
		Amount:    "$2,450.00",
		Factoring: &load.Factoring{Enabled: true, Rate: 0.03},
	}

	b, err := load.FactoringCost(l)
	require.NoError(t, err)
	assert.Equal(t, 2450.0, b.Gross)
	assert.Equal(t, 73.5, b.Fee)
	assert.Equal(t, 2376.5, b.Net)
	assert.Equal(t, 97.0, b.MarginPercent)
}

func TestFactoringCostWithoutFactoring(t *testing.T) {
	for _, l := range []load.Load{
		{ID: "a", Amount: "1500.00"},
		{ID: "b", Amount: "1500.00", Factoring: &load.Factoring{Enabled: false, Rate: 0.05}},
	} {
		b, err := load.FactoringCost(l)
		require.NoError(t, err)
		assert.Equal(t, 1500.0, b.Gross)
		assert.Zero(t, b.Fee)
		assert.Equal(t, 1500.0, b.Net)
		assert.Equal(t, 100.0, b.MarginPercent)
	}
}

func TestFactoringCostBadAmount(t *testing.T) {
	_, err := load.FactoringCost(load.Load{ID: "x", Amount: "n/a"})
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"$2,450.00":     2450,
		"2450":          2450,
		"  $1,234.56  ": 1234.56,
		"0":             0,
	}
	for in, want := range cases {
		got, err := load.ParseAmount(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"", "abc", "-50", "$-50"} {
		_, err := load.ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$2,450.00", load.FormatAmount(2450))
	assert.Equal(t, "$73.50", load.FormatAmount(73.5))
	assert.Equal(t, "$1,234,567.89", load.FormatAmount(1234567.891))
	assert.Equal(t, "$0.00", load.FormatAmount(0))
}
