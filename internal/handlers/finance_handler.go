package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	financedomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/finance"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FinanceHandler struct {
	svc    *finance.Service
	salons SalonReader
}

func NewFinanceHandler(svc *finance.Service, salons SalonReader) *FinanceHandler {
	return &FinanceHandler{svc: svc, salons: salons}
}

type CreateEntryRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Description string `json:"description" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"` // YYYY-MM-DD
	ClientID    *uint  `json:"client_id"`
}

// filter monta o filtro a partir de ?kind=&status=&client_id=&from=&to=.
func (h *FinanceHandler) filter(c *gin.Context) (financedomain.ListFilter, bool) {
	salon, ok := currentSalon(c, h.salons)
	if !ok {
		return financedomain.ListFilter{}, false
	}

	from, to, err := h.svc.Period(salon.Timezone, c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err, "invalid_period", "Período inválido.")
		return financedomain.ListFilter{}, false
	}

	return financedomain.ListFilter{
		Kind:     c.Query("kind"),
		Status:   c.Query("status"),
		ClientID: queryUint(c, "client_id"),
		From:     from,
		To:       to,
	}, true
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	salon, ok := currentSalon(c, h.salons)
	if !ok {
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), finance.CreateEntryInput{
		SalonID:     salon.ID,
		ActorID:     userID(c),
		Timezone:    salon.Timezone,
		Kind:        req.Kind,
		Description: req.Description,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		ClientID:    req.ClientID,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_entry", "Erro ao criar lançamento.")
		return
	}

	httpresp.Created(c, entry)
}

func (h *FinanceHandler) List(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	entries, err := h.svc.List(c.Request.Context(), salonID(c), f)
	if err != nil {
		writeError(c, err, "failed_to_list_entries", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, entries)
}

func (h *FinanceHandler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	entry, err := h.svc.MarkPaid(c.Request.Context(), salonID(c), id, userID(c))
	if err != nil {
		writeError(c, err, "failed_to_mark_paid", "Erro ao baixar lançamento.")
		return
	}

	httpresp.OK(c, entry)
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	sum, err := h.svc.Summary(c.Request.Context(), salonID(c), f)
	if err != nil {
		writeError(c, err, "failed_to_summarize", "Erro ao calcular o resumo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    f.From.Format("2006-01-02"),
		"to":      f.To.AddDate(0, 0, -1).Format("2006-01-02"),
		"summary": sum,
	})
}

func (h *FinanceHandler) Export(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	data, err := h.svc.Export(c.Request.Context(), salonID(c), f)
	if err != nil {
		writeError(c, err, "failed_to_export", "Erro ao gerar a planilha.")
		return
	}

	name := fmt.Sprintf("financeiro_%s_%s.xlsx",
		f.From.Format("20060102"),
		f.To.AddDate(0, 0, -1).Format("20060102"),
	)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
