package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create   *appointment.CreatePrivateAppointment
	ByDate   *appointment.ListAppointmentsByDate
	ByMonth  *appointment.ListAppointmentsByMonth
	Board    *appointment.GetDayBoard
	Confirm  *appointment.ConfirmAppointment
	Cancel   *appointment.CancelAppointment
	Complete *appointment.CompleteAppointment
	Deposit  *appointment.MarkDepositPaid
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
	Reopen bool   `json:"reopen"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsPhoneValid(req.ClientPhone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	actor := userID(c)
	proID := req.ProfessionalID
	if proID == 0 {
		proID = actor
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), appointment.CreatePrivateAppointmentInput{
		SalonID:        salonID(c),
		ProfessionalID: proID,
		ActorID:        actor,
		ClientName:     req.ClientName,
		ClientPhone:    validators.NormalizePhone(req.ClientPhone),
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.uc.ByDate.Execute(c.Request.Context(), professionalFor(c), salonID(c), date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Ano e mês obrigatórios.")
		return
	}

	list, err := h.uc.ByMonth.Execute(c.Request.Context(), professionalFor(c), salonID(c), year, month)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}

// Board mostra o dia inteiro, placeholders incluídos, com o estado de
// cada horário. Sem ?professional_id= traz todos os profissionais.
func (h *AppointmentHandler) Board(c *gin.Context) {
	list, err := h.uc.Board.Execute(c.Request.Context(), appointment.DayBoardInput{
		SalonID:        salonID(c),
		ProfessionalID: queryUint(c, "professional_id"),
		Date:           c.Query("date"),
	})
	if err != nil {
		writeError(c, err, "failed_to_load_board", "Erro ao carregar a agenda.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Confirm.Execute(c.Request.Context(), appointment.ConfirmAppointmentInput{
		SalonID:       salonID(c),
		AppointmentID: id,
		ActorID:       userID(c),
	})
	if err != nil {
		writeError(c, err, "failed_to_confirm_appointment", "Erro ao confirmar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	out, err := h.uc.Cancel.Execute(c.Request.Context(), appointment.CancelAppointmentInput{
		SalonID:       salonID(c),
		AppointmentID: id,
		ActorID:       userID(c),
		Reason:        req.Reason,
		Reopen:        req.Reopen,
	})
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Complete.Execute(c.Request.Context(), appointment.CompleteAppointmentInput{
		SalonID:       salonID(c),
		AppointmentID: id,
		ActorID:       userID(c),
	})
	if err != nil {
		writeError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// DepositPaid registra o sinal recebido fora do Mercado Pago (pix, dinheiro).
func (h *AppointmentHandler) DepositPaid(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Deposit.Execute(c.Request.Context(), appointment.MarkDepositPaidInput{
		SalonID:       salonID(c),
		AppointmentID: id,
		ActorID:       userID(c),
	})
	if err != nil {
		writeError(c, err, "failed_to_mark_deposit", "Erro ao registrar o sinal.")
		return
	}

	c.JSON(http.StatusOK, ap)
}
