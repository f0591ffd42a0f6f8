package common

import (
	"testing"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)
	return d
}

func overnight(checkIn, checkOut string) Interval {
	return Interval{Kind: types.KIND_OVERNIGHT, CheckIn: day(checkIn), CheckOut: day(checkOut)}
}

func hourly(date string, startMin, endMin int) Interval {
	return Interval{Kind: types.KIND_HOURLY, Day: day(date), StartMin: startMin, EndMin: endMin}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("08:30")
	assert.Nil(t, err)
	assert.Equal(t, 510, min)

	min, err = ParseClock("0:05")
	assert.Nil(t, err)
	assert.Equal(t, 5, min)

	for _, bad := range []string{"25:00", "12:60", "8h30", "12:3", "", "noon"} {
		_, err := ParseClock(bad)
		assert.NotNil(t, err, "expected error for %q", bad)
		code, ok := types.CodeOf(err)
		assert.True(t, ok)
		assert.Equal(t, types.ERR_VALIDATION, code)
	}
}

func TestOverlapsOvernight(t *testing.T) {
	a := overnight("2024-06-01", "2024-06-03")

	assert.True(t, Overlaps(a, overnight("2024-06-02", "2024-06-05")))
	assert.True(t, Overlaps(a, overnight("2024-05-30", "2024-06-02")))
	// Back-to-back stays share a turnover day without conflict.
	assert.False(t, Overlaps(a, overnight("2024-06-03", "2024-06-05")))
	assert.False(t, Overlaps(a, overnight("2024-05-28", "2024-06-01")))
}

func TestOverlapsHourly(t *testing.T) {
	a := hourly("2024-06-01", 8*60, 10*60)

	assert.True(t, Overlaps(a, hourly("2024-06-01", 9*60, 11*60)))
	assert.False(t, Overlaps(a, hourly("2024-06-01", 10*60, 12*60)))
	assert.False(t, Overlaps(a, hourly("2024-06-02", 9*60, 11*60)))
}

func TestOverlapsMixedKinds(t *testing.T) {
	stay := overnight("2024-06-01", "2024-06-03")

	// The hourly slot blocks its whole day against a multi-day stay.
	assert.True(t, Overlaps(stay, hourly("2024-06-01", 8*60, 10*60)))
	assert.True(t, Overlaps(stay, hourly("2024-06-02", 22*60, 23*60)))
	// Checkout day is free.
	assert.False(t, Overlaps(stay, hourly("2024-06-03", 8*60, 10*60)))
	assert.True(t, Overlaps(hourly("2024-06-02", 8*60, 10*60), stay))
}

func TestValidateIntervalOvernight(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, ValidateInterval(overnight("2024-06-02", "2024-06-04"), now))
	assert.NotNil(t, ValidateInterval(overnight("2024-06-02", "2024-06-02"), now))
	assert.NotNil(t, ValidateInterval(overnight("2024-05-20", "2024-05-22"), now))

	// Same-day check-in before vs after the 14:00 cutoff.
	sameDay := overnight("2024-06-01", "2024-06-02")
	assert.Nil(t, ValidateInterval(sameDay, now))
	late := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	assert.NotNil(t, ValidateInterval(sameDay, late))
}

func TestValidateIntervalHourly(t *testing.T) {
	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)

	assert.Nil(t, ValidateInterval(hourly("2024-06-01", 8*60, 10*60), now))
	assert.NotNil(t, ValidateInterval(hourly("2024-06-01", 8*60, 8*60+45), now))
	assert.NotNil(t, ValidateInterval(hourly("2024-05-31", 8*60, 10*60), now))
	// Start time already passed today.
	assert.NotNil(t, ValidateInterval(hourly("2024-06-01", 6*60, 10*60), now))
	// Tomorrow is fine at any hour.
	assert.Nil(t, ValidateInterval(hourly("2024-06-02", 6*60, 10*60), now))
}

func TestValidateIntervalNonUTCZone(t *testing.T) {
	hanoi := time.FixedZone("ICT", 7*3600)
	lima := time.FixedZone("PET", -5*3600)
	sameDay := overnight("2024-06-01", "2024-06-02")

	// The 14:00 cutoff fires on the local wall clock even though interval
	// dates are UTC midnights.
	late := time.Date(2024, 6, 1, 15, 0, 0, 0, hanoi)
	assert.NotNil(t, ValidateInterval(sameDay, late))

	// A morning same-day check-in west of UTC is not "in the past".
	morning := time.Date(2024, 6, 1, 9, 0, 0, 0, lima)
	assert.Nil(t, ValidateInterval(sameDay, morning))

	// Same-day hourly slots compare against the local wall clock too.
	assert.NotNil(t, ValidateInterval(hourly("2024-06-01", 8*60, 10*60), late))
	assert.Nil(t, ValidateInterval(hourly("2024-06-01", 10*60, 12*60), morning))
	assert.NotNil(t, ValidateInterval(hourly("2024-06-01", 8*60, 10*60), morning))
}

func TestIntervalOfRejectsMalformedRows(t *testing.T) {
	d := day("2024-06-01")
	r := &models.Reservation{
		Kind:      types.KIND_HOURLY,
		Date:      &d,
		StartTime: "8h00",
		EndTime:   "10h00",
	}
	_, err := IntervalOf(r)
	assert.NotNil(t, err)

	r.StartTime, r.EndTime = "08:00", "10:00"
	iv, err := IntervalOf(r)
	assert.Nil(t, err)
	assert.Equal(t, 480, iv.StartMin)
	assert.Equal(t, 600, iv.EndMin)
}
