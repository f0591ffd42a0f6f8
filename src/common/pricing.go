package common

import (
	"math"
	"time"

	"hbs/src/config"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// NightsTotal sums the per-day price over [checkIn, checkOut), falling back
// to the default nightly rate for days without an override. Override keys are
// formatted calendar dates.
func NightsTotal(defaultRate int64, overrides map[string]int64, checkIn, checkOut time.Time) int64 {
	var total int64
	for day := checkIn; day.Before(checkOut); day = day.AddDate(0, 0, 1) {
		if price, ok := overrides[day.Format(config.DATE_PARSE_FORMAT)]; ok {
			total += price
		} else {
			total += defaultRate
		}
	}
	return total
}

func HourlyTotal(rate int64, startMin, endMin int) int64 {
	hours := float64(endMin-startMin) / 60
	return int64(math.Round(hours * float64(rate)))
}

// ResolveDeposit clamps the requested percent into the configured band. A nil
// request takes the default; an explicit 0 disables the deposit so the full
// total falls due upfront.
func ResolveDeposit(total int64, requested *int) (percent int, amount int64) {
	if requested == nil {
		percent = config.DepositDefaultPercent()
	} else if *requested == 0 {
		return 0, 0
	} else {
		percent = *requested
	}
	if min := config.DepositMinPercent(); percent < min {
		percent = min
	}
	if max := config.DepositMaxPercent(); percent > max {
		percent = max
	}
	amount = total * int64(percent) / 100
	return percent, amount
}

// OverridesForRange loads a room's day-price overrides covering
// [checkIn, checkOut) keyed by formatted date.
func OverridesForRange(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (map[string]int64, error) {
	var rows []models.DayPrice
	err := tx.
		Model(&models.DayPrice{}).
		Where("room_id = ? AND day >= ? AND day < ?", roomID, checkIn, checkOut).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]int64, len(rows))
	for _, row := range rows {
		overrides[row.Day.Format(config.DATE_PARSE_FORMAT)] = row.Price
	}
	return overrides, nil
}

// PriceForInterval computes the total for a proposed interval on a room.
func PriceForInterval(tx *gorm.DB, room *models.Room, iv Interval) (int64, error) {
	if iv.Kind == types.KIND_HOURLY {
		return HourlyTotal(room.HourlyRate, iv.StartMin, iv.EndMin), nil
	}
	overrides, err := OverridesForRange(tx, room.ID, iv.CheckIn, iv.CheckOut)
	if err != nil {
		return 0, err
	}
	return NightsTotal(room.NightlyRate, overrides, iv.CheckIn, iv.CheckOut), nil
}

// MonthPriceMap resolves the effective nightly price of every day in a month.
func MonthPriceMap(tx *gorm.DB, room *models.Room, month time.Time) (map[string]int64, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	next := first.AddDate(0, 1, 0)
	overrides, err := OverridesForRange(tx, room.ID, first, next)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]int64)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		key := day.Format(config.DATE_PARSE_FORMAT)
		if price, ok := overrides[key]; ok {
			prices[key] = price
		} else {
			prices[key] = room.NightlyRate
		}
	}
	return prices, nil
}
