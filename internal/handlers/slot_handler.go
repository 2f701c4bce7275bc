package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// SlotHandler cuida dos placeholders que a equipe põe na agenda:
// horários liberados para o público e bloqueios.
type SlotHandler struct {
	liberate *appointment.LiberateSlot
	block    *appointment.BlockSlot
	withdraw *appointment.WithdrawSlot
}

func NewSlotHandler(
	liberate *appointment.LiberateSlot,
	block *appointment.BlockSlot,
	withdraw *appointment.WithdrawSlot,
) *SlotHandler {
	return &SlotHandler{liberate: liberate, block: block, withdraw: withdraw}
}

type SlotWindowRequest struct {
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date" binding:"required"`
	Start          string `json:"start" binding:"required"`
	End            string `json:"end"`
	DurationMin    int    `json:"duration_min"`
}

func (r SlotWindowRequest) input(c *gin.Context) appointment.SlotWindowInput {
	actor := userID(c)
	proID := r.ProfessionalID
	if proID == 0 {
		proID = actor
	}
	return appointment.SlotWindowInput{
		SalonID:        salonID(c),
		ProfessionalID: proID,
		ActorID:        actor,
		Date:           r.Date,
		Start:          r.Start,
		End:            r.End,
		DurationMin:    r.DurationMin,
	}
}

func (h *SlotHandler) Liberate(c *gin.Context) {
	var req SlotWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.liberate.Execute(c.Request.Context(), req.input(c))
	if err != nil {
		writeError(c, err, "failed_to_liberate_slot", "Erro ao liberar horário.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"slot":             out.Slot,
		"waitlist_matches": out.WaitlistMatches,
		"waitlist_count":   len(out.WaitlistMatches),
	})
}

func (h *SlotHandler) Block(c *gin.Context) {
	var req SlotWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slot, err := h.block.Execute(c.Request.Context(), req.input(c))
	if err != nil {
		writeError(c, err, "failed_to_block_slot", "Erro ao bloquear horário.")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *SlotHandler) Withdraw(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.withdraw.Execute(c.Request.Context(), appointment.WithdrawSlotInput{
		SalonID: salonID(c),
		SlotID:  id,
		ActorID: userID(c),
	})
	if err != nil {
		writeError(c, err, "failed_to_withdraw_slot", "Erro ao remover horário.")
		return
	}

	c.Status(http.StatusNoContent)
}
