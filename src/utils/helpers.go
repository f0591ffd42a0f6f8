package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"hbs/src/types"

	"github.com/golang-jwt/jwt/v4"
)

// Lookup codes avoid 0/O/1/I so guests can read them back over the phone.
const lookupAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const lookupCodeLength = 8

func GenerateLookupCode() string {
	max := big.NewInt(int64(len(lookupAlphabet)))
	code := make([]byte, lookupCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Printf("Error generating lookup code: %s\n", err.Error())
			return ""
		}
		code[i] = lookupAlphabet[n.Int64()]
	}
	return string(code)
}

// OrderRef is the transfer memo guests put on their bank payment.
func OrderRef(reservationID uint) string {
	return fmt.Sprintf("HBS%d", reservationID)
}

func GenerateJWT(email string, id uint, admin bool) (string, error) {
	claims := types.Claims{
		Username: email,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
