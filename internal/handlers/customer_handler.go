package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/waitlist"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// CustomerHandler atende o cliente final: cadastro no portal do salão,
// pedidos de horário, histórico e lista de espera.
type CustomerHandler struct {
	db       *gorm.DB
	config   *config.Config
	repo     domain.Repository
	book     *appointment.RequestBooking
	cancel   *appointment.CancelAppointment
	history  HistoryReader
	waitlist *waitlist.Service
}

type CustomerDeps struct {
	DB       *gorm.DB
	Config   *config.Config
	Repo     domain.Repository
	Book     *appointment.RequestBooking
	Cancel   *appointment.CancelAppointment
	History  HistoryReader
	Waitlist *waitlist.Service
}

func NewCustomerHandler(d CustomerDeps) *CustomerHandler {
	return &CustomerHandler{
		db:       d.DB,
		config:   d.Config,
		repo:     d.Repo,
		book:     d.Book,
		cancel:   d.Cancel,
		history:  d.History,
		waitlist: d.Waitlist,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CustomerRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
}

type CustomerLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type BookingRequest struct {
	SlotID         uint   `json:"slot_id"`
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Notes          string `json:"notes"`
}

type CustomerCancelRequest struct {
	Reason string `json:"reason"`
}

type JoinWaitlistRequest struct {
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date" binding:"required"`
	Notes          string `json:"notes"`
}

// ======================================================
// AUTH
// ======================================================

// Register cria a conta do cliente. Um cliente já cadastrado pela equipe
// (mesmo telefone, sem senha) apenas ativa o acesso.
func (h *CustomerHandler) Register(c *gin.Context) {
	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req CustomerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}
	phone := validators.NormalizePhone(req.Phone)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	client, err := h.repo.GetOrCreateClient(
		c.Request.Context(),
		salon.ID,
		strings.TrimSpace(req.Name),
		phone,
		strings.ToLower(strings.TrimSpace(req.Email)),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cadastro.")
		return
	}

	if client.PasswordHash != "" {
		httperr.Conflict(c, "phone_already_registered", "Esse telefone já tem cadastro. Faça login.")
		return
	}

	res := h.db.Model(&models.Client{}).
		Where("id = ? AND password_hash = ''", client.ID).
		Update("password_hash", string(hashed))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cadastro.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Conflict(c, "phone_already_registered", "Esse telefone já tem cadastro. Faça login.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, client.ID, salon.ID, middleware.RoleCustomer)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client": client,
		"salon":  salonView(salon),
		"token":  token,
	})
}

func (h *CustomerHandler) Login(c *gin.Context) {
	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("salon_id = ? AND phone = ?", salon.ID, validators.NormalizePhone(req.Phone)).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Telefone ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}

	if client.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Telefone ou senha inválidos.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, client.ID, salon.ID, middleware.RoleCustomer)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": client,
		"salon":  salonView(salon),
		"token":  token,
	})
}

// ======================================================
// BOOKINGS
// ======================================================

// Book pede um horário liberado, por slot_id ou por data e hora.
func (h *CustomerHandler) Book(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.SlotID == 0 && (req.Date == "" || req.Time == "") {
		httperr.BadRequest(c, "missing_slot", "Informe o horário desejado.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), appointment.RequestBookingInput{
		SalonID:        salonID(c),
		ClientID:       clientID(c),
		SlotID:         req.SlotID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		ServiceID:      req.ServiceID,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_request_booking", "Erro ao solicitar o horário.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":      ap,
		"deposit_required": ap.DepositStatus == string(domain.DepositPending),
		"checkout_url":     ap.DepositCheckout,
	})
}

func (h *CustomerHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CustomerCancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	out, err := h.cancel.Execute(c.Request.Context(), appointment.CancelAppointmentInput{
		SalonID:       salonID(c),
		AppointmentID: id,
		ClientID:      clientID(c),
		Reason:        req.Reason,
	})
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) History(c *gin.Context) {
	out, err := h.history.Execute(c.Request.Context(), salonID(c), clientID(c))
	if err != nil {
		writeError(c, err, "failed_to_get_history", "Erro ao buscar histórico.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// WAITLIST
// ======================================================

func (h *CustomerHandler) JoinWaitlist(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.waitlist.Join(c.Request.Context(), waitlist.JoinInput{
		SalonID:        salonID(c),
		ClientID:       clientID(c),
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_join_waitlist", "Erro ao entrar na lista de espera.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}
