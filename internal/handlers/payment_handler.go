package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// PaymentNotifier processa uma notificação de pagamento pelo id.
type PaymentNotifier interface {
	Execute(ctx context.Context, paymentID string) error
}

type PaymentHandler struct {
	notifier PaymentNotifier
	log      *zap.Logger
}

func NewPaymentHandler(notifier PaymentNotifier, log *zap.Logger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentHandler{notifier: notifier, log: log}
}

// data.id chega como número ou como string, conforme a versão da API.
type mercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// paymentID aceita os dois formatos do Mercado Pago: query
// (?type=payment&data.id= ou ?topic=payment&id=) e corpo JSON.
func paymentID(c *gin.Context) (string, bool) {
	if id := c.Query("data.id"); id != "" && c.Query("type") == "payment" {
		return id, true
	}
	if id := c.Query("id"); id != "" && c.Query("topic") == "payment" {
		return id, true
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return "", false
	}

	var n mercadoPagoNotification
	if err := json.Unmarshal(body, &n); err != nil || n.Type != "payment" {
		return "", false
	}

	id := n.Data.ID.String()
	return id, id != ""
}

// Webhook responde 200 para notificações que não são de pagamento e
// para pagamentos que não pertencem a nenhum agendamento; só falhas
// internas voltam 500 para o Mercado Pago tentar de novo.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	err := h.notifier.Execute(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "processed"})

	case httperr.IsBusiness(err, "payments_disabled"):
		writeError(c, err, "", "")

	case httperr.BusinessCode(err) != "":
		h.log.Info("payment notification ignored",
			zap.String("payment_id", id),
			zap.String("reason", httperr.BusinessCode(err)),
		)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})

	default:
		h.log.Error("payment notification failed",
			zap.String("payment_id", id),
			zap.Error(err),
		)
		httperr.Internal(c, "payment_notification_failed", "Erro ao processar o pagamento.")
	}
}
