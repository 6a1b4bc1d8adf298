package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(12.34), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.34)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.50)
	b := NewMoneyUSDFromFloat(2.25)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "12.75", sum.StringFixed(2))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "8.25", diff.StringFixed(2))
	})

	t.Run("multiply", func(t *testing.T) {
		product := a.Multiply(decimal.NewFromInt(3))
		assert.Equal(t, "31.50", product.StringFixed(2))
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		other, err := NewMoney(decimal.NewFromInt(1), "EUR")
		require.NoError(t, err)
		_, err = a.Add(other)
		assert.Error(t, err)
	})
}

func TestMoney_FullPrecisionUntilDisplay(t *testing.T) {
	// 3 * 1.115 = 3.345; stored value keeps the third decimal,
	// only StringFixed rounds it away.
	m := NewMoneyUSDFromFloat(1.115).Multiply(decimal.NewFromInt(3))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(3.345)))
	assert.Equal(t, "3.35", m.StringFixed(2))
	assert.Equal(t, "3.345", m.Amount().String())
}

func TestMoney_Percentage(t *testing.T) {
	m := NewMoneyUSDFromFloat(200)

	pct := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "20.00", pct.StringFixed(2))

	discounted := m.ApplyDiscount(decimal.NewFromInt(25))
	assert.Equal(t, "150.00", discounted.StringFixed(2))
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(1)
	big := NewMoneyUSDFromFloat(2)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, small.Equals(NewMoneyUSDFromFloat(1)))
	assert.False(t, small.Equals(big))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.Equal(t, "42.50", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
