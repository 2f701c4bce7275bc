package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// HistoryReader é o caso de uso de histórico do cliente.
type HistoryReader interface {
	Execute(ctx context.Context, salonID, clientID uint) (*appointment.ClientHistory, error)
}

type ClientHandler struct {
	db      *gorm.DB
	history HistoryReader
}

func NewClientHandler(db *gorm.DB, history HistoryReader) *ClientHandler {
	return &ClientHandler{db: db, history: history}
}

type ClientRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Notes          *string `json:"notes"`
	Birthday       *string `json:"birthday"` // YYYY-MM-DD; "" apaga
	MarketingOptIn *bool   `json:"marketing_opt_in"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID(c))

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || req.Phone == nil {
		httperr.BadRequest(c, "missing_name_or_phone", "Nome e telefone obrigatórios.")
		return
	}

	client := models.Client{SalonID: salonID(c), MarketingOptIn: true}
	if !applyClient(c, &client, &req) {
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "phone_already_exists", "Já existe um cliente com esse telefone.")
			return
		}
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID(c)).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !applyClient(c, &client, &req) {
		return
	}

	if err := h.db.Save(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "phone_already_exists", "Já existe um cliente com esse telefone.")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) History(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.history.Execute(c.Request.Context(), salonID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_get_history", "Erro ao buscar histórico.")
		return
	}

	httpresp.OK(c, out)
}

// applyClient copia os campos informados e responde 400 quando algum
// é inválido.
func applyClient(c *gin.Context, client *models.Client, req *ClientRequest) bool {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "missing_name", "Nome obrigatório.")
			return false
		}
		client.Name = name
	}

	if req.Phone != nil {
		if !validators.IsPhoneValid(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return false
		}
		client.Phone = validators.NormalizePhone(*req.Phone)
	}

	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if req.Birthday != nil {
		if *req.Birthday == "" {
			client.Birthday = nil
		} else {
			b, err := time.Parse("2006-01-02", *req.Birthday)
			if err != nil {
				httperr.BadRequest(c, "invalid_birthday", "Data de aniversário inválida.")
				return false
			}
			client.Birthday = &b
		}
	}

	if req.MarketingOptIn != nil {
		client.MarketingOptIn = *req.MarketingOptIn
	}

	return true
}
