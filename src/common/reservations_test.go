package common

import (
	"testing"
	"time"

	"hbs/src/db"
	"hbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateReservationConflict(t *testing.T) {
	gormDB, mock := NewMockDB()
	db.NewDB(gormDB)

	checkIn := time.Now().UTC().AddDate(0, 0, 30)
	checkOut := checkIn.AddDate(0, 0, 2)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "rooms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nightly_rate"}).AddRow(7, 750_000))
	// An active stay already covers the middle of the requested interval.
	mock.ExpectQuery(`SELECT (.+) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "kind", "status", "check_in", "check_out"}).
			AddRow(3, 7, "overnight", "confirmed", dateOnly(checkIn.AddDate(0, 0, 1)), dateOnly(checkOut.AddDate(0, 0, 1))))
	mock.ExpectRollback()

	_, err := CreateReservation(&types.CreateReservationRequestBody{
		RoomID:        7,
		GuestName:     "Nguyen Van A",
		GuestPhone:    "0900000000",
		Kind:          "overnight",
		CheckIn:       checkIn.Format("2006-01-02"),
		CheckOut:      checkOut.Format("2006-01-02"),
		PaymentMethod: "transfer",
	})
	if assert.NotNil(t, err) {
		code, ok := types.CodeOf(err)
		assert.True(t, ok)
		assert.Equal(t, types.ERR_CONFLICT, code)
	}
	assert.Nil(t, mock.ExpectationsWereMet())
}
