package common

import (
	"log"
	"regexp"
	"strconv"
	"time"

	"hbs/src/config"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"

	"gorm.io/gorm"
)

// Interval is the effective span a reservation blocks. Overnight rows use
// CheckIn/CheckOut (checkout exclusive); hourly rows use Day plus wall-clock
// minutes since midnight.
type Interval struct {
	Kind     types.ReservationKind
	CheckIn  time.Time
	CheckOut time.Time
	Day      time.Time
	StartMin int
	EndMin   int
}

var clockPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ParseClock converts an H:MM/HH:MM string into minutes since midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, types.NewValidationError("invalid time %q: expected HH:MM", value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, types.NewValidationError("invalid time %q: hour 0-23 minute 0-59", value)
	}
	return hour*60 + minute, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IntervalOf rebuilds the effective interval of a stored reservation.
func IntervalOf(r *models.Reservation) (Interval, error) {
	iv := Interval{Kind: r.Kind}
	if r.Kind == types.KIND_OVERNIGHT {
		if r.CheckIn == nil || r.CheckOut == nil {
			return iv, types.NewValidationError("overnight reservation %d has no check-in/check-out", r.ID)
		}
		iv.CheckIn = dateOnly(*r.CheckIn)
		iv.CheckOut = dateOnly(*r.CheckOut)
		return iv, nil
	}
	if r.Date == nil {
		return iv, types.NewValidationError("hourly reservation %d has no date", r.ID)
	}
	iv.Day = dateOnly(*r.Date)
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return iv, err
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return iv, err
	}
	iv.StartMin = start
	iv.EndMin = end
	return iv, nil
}

// Overlaps applies the half-open intersection rules across both kinds. An
// hourly slot blocks its whole day against overnight stays.
func Overlaps(a, b Interval) bool {
	if a.Kind == types.KIND_OVERNIGHT && b.Kind == types.KIND_OVERNIGHT {
		return a.CheckIn.Before(b.CheckOut) && a.CheckOut.After(b.CheckIn)
	}
	if a.Kind == types.KIND_HOURLY && b.Kind == types.KIND_HOURLY {
		if !a.Day.Equal(b.Day) {
			return false
		}
		return a.StartMin < b.EndMin && a.EndMin > b.StartMin
	}
	// Mixed: normalize so a is overnight and b is hourly.
	if a.Kind == types.KIND_HOURLY {
		a, b = b, a
	}
	return !b.Day.Before(a.CheckIn) && b.Day.Before(a.CheckOut)
}

// ValidateInterval enforces minimum durations and the same-day policies.
// Interval dates are UTC midnights whatever zone the server runs in, so the
// current calendar day is projected into that frame before comparing.
func ValidateInterval(iv Interval, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch iv.Kind {
	case types.KIND_OVERNIGHT:
		if !iv.CheckOut.After(iv.CheckIn) {
			return types.NewValidationError("overnight stay must be at least one night")
		}
		if iv.CheckIn.Before(today) {
			return types.NewValidationError("check-in date is in the past")
		}
		if iv.CheckIn.Equal(today) && now.Hour() >= config.SameDayCutoffHour() {
			return types.NewValidationError("same-day check-in closes at %02d:00", config.SameDayCutoffHour())
		}
	case types.KIND_HOURLY:
		if iv.EndMin-iv.StartMin < 60 {
			return types.NewValidationError("hourly booking must last at least 60 minutes")
		}
		if iv.Day.Before(today) {
			return types.NewValidationError("date is in the past")
		}
		if iv.Day.Equal(today) && iv.StartMin <= now.Hour()*60+now.Minute() {
			return types.NewValidationError("start time has already passed")
		}
	default:
		return types.NewValidationError("unknown reservation kind %q", iv.Kind)
	}
	return nil
}

// FindConflicts returns the active reservations of a room whose intervals
// intersect the proposal. Rows with malformed stored times are counted as
// conflicts rather than skipped.
func FindConflicts(tx *gorm.DB, roomID uint, iv Interval) ([]models.Reservation, error) {
	var existing []models.Reservation
	err := tx.
		Model(&models.Reservation{}).
		Scopes(scopes.WithRoom(roomID)).
		Scopes(scopes.WithActiveStatus).
		Find(&existing).
		Error
	if err != nil {
		return nil, err
	}
	conflicts := []models.Reservation{}
	for _, r := range existing {
		other, err := IntervalOf(&r)
		if err != nil {
			log.Printf("Reservation %d has an unreadable interval: %s\n", r.ID, err.Error())
			conflicts = append(conflicts, r)
			continue
		}
		if Overlaps(iv, other) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}

// BlockedIntervals projects a room's active reservations into the calendar
// payload, omitting guest identity.
func BlockedIntervals(tx *gorm.DB, roomID uint) ([]types.BlockedInterval, error) {
	var existing []models.Reservation
	err := tx.
		Model(&models.Reservation{}).
		Scopes(scopes.WithRoom(roomID)).
		Scopes(scopes.WithActiveStatus).
		Order("created_at asc").
		Find(&existing).
		Error
	if err != nil {
		return nil, err
	}
	blocking := make([]types.BlockedInterval, 0, len(existing))
	for _, r := range existing {
		b := types.BlockedInterval{Kind: r.Kind, Status: r.Status}
		if r.Kind == types.KIND_OVERNIGHT {
			if r.CheckIn != nil {
				b.CheckIn = r.CheckIn.Format(config.DATE_PARSE_FORMAT)
			}
			if r.CheckOut != nil {
				b.CheckOut = r.CheckOut.Format(config.DATE_PARSE_FORMAT)
			}
		} else {
			if r.Date != nil {
				b.Date = r.Date.Format(config.DATE_PARSE_FORMAT)
			}
			b.StartTime = r.StartTime
			b.EndTime = r.EndTime
		}
		blocking = append(blocking, b)
	}
	return blocking, nil
}

// OccupiedSlots lists the hourly windows already taken on a date, for the
// time-picker on the booking form.
func OccupiedSlots(tx *gorm.DB, roomID uint, date time.Time) ([]types.OccupiedSlot, error) {
	var existing []models.Reservation
	err := tx.
		Model(&models.Reservation{}).
		Scopes(scopes.WithRoom(roomID)).
		Scopes(scopes.WithActiveStatus).
		Where(&models.Reservation{Kind: types.KIND_HOURLY}).
		Where("date = ?", dateOnly(date)).
		Order("start_time asc").
		Find(&existing).
		Error
	if err != nil {
		return nil, err
	}
	slots := make([]types.OccupiedSlot, 0, len(existing))
	for _, r := range existing {
		slots = append(slots, types.OccupiedSlot{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
		})
	}
	return slots, nil
}
