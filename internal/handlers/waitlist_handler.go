package handlers

import (

	"github.com/gin-gonic/gin"

	waitlistdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/waitlist"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/waitlist"
)

type WaitlistHandler struct {
	svc *waitlist.Service
}

func NewWaitlistHandler(svc *waitlist.Service) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

type UpdateWaitlistStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List aceita ?date=YYYY-MM-DD e ?status=; ordem de chegada.
func (h *WaitlistHandler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context(), salonID(c), waitlistdomain.ListFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		writeError(c, err, "failed_to_list_waitlist", "Erro ao listar a lista de espera.")
		return
	}

	httpresp.List(c, entries)
}

func (h *WaitlistHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateWaitlistStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.svc.UpdateStatus(c.Request.Context(), waitlist.UpdateStatusInput{
		SalonID: salonID(c),
		EntryID: id,
		ActorID: userID(c),
		Status:  req.Status,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_waitlist", "Erro ao atualizar a lista de espera.")
		return
	}

	httpresp.OK(c, entry)
}
