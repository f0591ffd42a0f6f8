package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightsTotal(t *testing.T) {
	total := NightsTotal(750_000, nil, day("2024-06-01"), day("2024-06-03"))
	assert.Equal(t, int64(1_500_000), total)

	overrides := map[string]int64{"2024-06-02": 900_000}
	total = NightsTotal(750_000, overrides, day("2024-06-01"), day("2024-06-03"))
	assert.Equal(t, int64(1_650_000), total)

	// Override outside the range does not count.
	overrides = map[string]int64{"2024-06-03": 900_000}
	total = NightsTotal(750_000, overrides, day("2024-06-01"), day("2024-06-03"))
	assert.Equal(t, int64(1_500_000), total)
}

func TestHourlyTotal(t *testing.T) {
	assert.Equal(t, int64(160_000), HourlyTotal(80_000, 8*60, 10*60))
	assert.Equal(t, int64(120_000), HourlyTotal(80_000, 8*60, 9*60+30))
	// Rounded, not truncated.
	assert.Equal(t, int64(93_333), HourlyTotal(80_000, 8*60, 9*60+10))
}

func TestResolveDeposit(t *testing.T) {
	// Default percent applies when none supplied.
	pct, amount := ResolveDeposit(1_500_000, nil)
	assert.Equal(t, 30, pct)
	assert.Equal(t, int64(450_000), amount)

	// Explicit zero disables the deposit entirely.
	zero := 0
	pct, amount = ResolveDeposit(1_500_000, &zero)
	assert.Equal(t, 0, pct)
	assert.Equal(t, int64(0), amount)

	// Out-of-band requests clamp to [20, 70].
	low := 5
	pct, _ = ResolveDeposit(1_500_000, &low)
	assert.Equal(t, 20, pct)
	high := 95
	pct, _ = ResolveDeposit(1_500_000, &high)
	assert.Equal(t, 70, pct)

	// Amount floors on division.
	fifty := 50
	_, amount = ResolveDeposit(333_333, &fifty)
	assert.Equal(t, int64(166_666), amount)
}
