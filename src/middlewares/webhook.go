package middlewares

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"

	"hbs/src/config"

	"github.com/gin-gonic/gin"
)

// WebhookAuth checks the shared endpoint secret payment providers send as
// "Apikey <key>". This is the only condition under which the webhook may
// answer with a failure status.
func WebhookAuth(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		err := errors.New("missing authorization header")
		log.Printf("Webhook auth failed: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	key := strings.TrimPrefix(header, "Apikey ")
	expected := config.WebhookAPIKey()
	if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		log.Println("Webhook auth failed: bad api key")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}
}
