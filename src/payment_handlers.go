package main

import (
	"io"
	"log"
	"net/http"

	"hbs/src/common"
	"hbs/src/middlewares"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// normalizePaymentPayload maps a provider webhook body onto a PaymentNotice.
// Field names follow the SePay-style schema; other providers are expected to
// be close enough or get their own extractor.
func normalizePaymentPayload(provider, body string) *types.PaymentNotice {
	notice := &types.PaymentNotice{
		Provider:  provider,
		TxnID:     gjson.Get(body, "id").String(),
		Amount:    gjson.Get(body, "transferAmount").Int(),
		Narrative: gjson.Get(body, "content").String(),
		Direction: types.DIRECTION_IN,
		Status:    types.NOTICE_SUCCESS,
	}
	if notice.Narrative == "" {
		notice.Narrative = gjson.Get(body, "description").String()
	}
	if t := gjson.Get(body, "transferType"); t.Exists() && t.String() != "in" {
		notice.Direction = types.DIRECTION_OUT
	}
	if s := gjson.Get(body, "status"); s.Exists() {
		notice.Status = s.String()
	}
	if raw, ok := gjson.Parse(body).Value().(map[string]any); ok {
		notice.Raw = types.JSONB(raw)
	}
	return notice
}

// paymentWebhookRoute receives provider payment notifications. Apart from the
// api key check this endpoint always acknowledges success: a failure status
// would make the provider redeliver funds the ledger has already recorded.
func paymentWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/payments/:provider", middlewares.WebhookAuth, func(ctx *gin.Context) {
		provider := ctx.Param("provider")
		requestId := uuid.NewString()
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("[%s] Error reading webhook body: %s\n", provider, err.Error())
			ctx.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		body := string(payload)
		if !gjson.Valid(body) {
			log.Printf("[%s] Received invalid json body (request %s). Acknowledging anyway\n", provider, requestId)
			ctx.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		notice := normalizePaymentPayload(provider, body)
		if notice.TxnID == "" {
			log.Printf("[%s] Notice has no transaction id (request %s). Acknowledging anyway\n", provider, requestId)
			ctx.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		log.Printf("[%s] request=%s txn=%s amount=%d\n", provider, requestId, notice.TxnID, notice.Amount)
		if err := common.Reconcile(notice); err != nil {
			// Redelivery is absorbed by the idempotency gate.
			log.Printf("[%s] Reconcile error for txn %s: %s\n", provider, notice.TxnID, err.Error())
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
	return apiv1
}
