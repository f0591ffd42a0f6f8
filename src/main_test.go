package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hbs/src/db"
	"hbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB   *gorm.DB
	Mock *sqlmock.Sqlmock
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("calendardate", calendarDateValidatorFunc)
		v.RegisterValidation("calendarmonth", calendarMonthValidatorFunc)
		v.RegisterValidation("clocktime", clockTimeValidatorFunc)
	}

	d, mock := NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = &mock

	os.Setenv("PAYMENT_WEBHOOK_APIKEY", "whsecret")
	os.Setenv("MAINTENANCE_MODE", "false")
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestWebhookAuth() {
	router := setupRouter()
	paymentWebhookRoute(router)

	s.Run("Should reject a request without an api key", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/payments/sepay", strings.NewReader("{}"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should reject a wrong api key", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/payments/sepay", strings.NewReader("{}"))
		req.Header.Set("Authorization", "Apikey wrong")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should acknowledge an unreadable body", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/payments/sepay", strings.NewReader("not json"))
		req.Header.Set("Authorization", "Apikey whsecret")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should acknowledge a notice without a transaction id", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/payments/sepay", strings.NewReader(`{"transferAmount":100}`))
		req.Header.Set("Authorization", "Apikey whsecret")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
	})
}

func TestNormalizePaymentPayload(t *testing.T) {
	body := `{"id":98765,"gateway":"Vietcombank","transferType":"in","transferAmount":450000,"content":"CK HBS42 dat phong"}`
	notice := normalizePaymentPayload("sepay", body)

	assert.Equal(t, "sepay", notice.Provider)
	assert.Equal(t, "98765", notice.TxnID)
	assert.Equal(t, int64(450000), notice.Amount)
	assert.Equal(t, "CK HBS42 dat phong", notice.Narrative)
	assert.Equal(t, types.DIRECTION_IN, notice.Direction)
	assert.Equal(t, types.NOTICE_SUCCESS, notice.Status)
	// The original payload rides along for the ledger's audit column.
	assert.Equal(t, "Vietcombank", notice.Raw["gateway"])

	out := normalizePaymentPayload("sepay", `{"id":1,"transferType":"out","transferAmount":5,"description":"refund"}`)
	assert.Equal(t, types.DIRECTION_OUT, out.Direction)
	assert.Equal(t, "refund", out.Narrative)
}

func (s *TestSuite) TestCreateReservationValidation() {
	router := setupRouter()
	publicRoutes(router)

	s.Run("Should reject an unknown kind", func() {
		body := types.CreateReservationRequestBody{
			RoomID:        1,
			GuestName:     "Nguyen Van A",
			GuestPhone:    "0900000000",
			Kind:          "weekly",
			PaymentMethod: "transfer",
		}
		b, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reservations", strings.NewReader(string(b)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a malformed time string", func() {
		body := types.CreateReservationRequestBody{
			RoomID:        1,
			GuestName:     "Nguyen Van A",
			GuestPhone:    "0900000000",
			Kind:          "hourly",
			Date:          "2030-06-01",
			StartTime:     "8h00",
			EndTime:       "10:00",
			PaymentMethod: "cash",
		}
		b, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reservations", strings.NewReader(string(b)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a missing interval", func() {
		body := types.CreateReservationRequestBody{
			RoomID:        1,
			GuestName:     "Nguyen Van A",
			GuestPhone:    "0900000000",
			Kind:          "overnight",
			PaymentMethod: "cash",
		}
		b, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reservations", strings.NewReader(string(b)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
