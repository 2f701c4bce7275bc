package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/campaign"
)

// limite do corpo do upload; o caso de uso valida o tamanho da imagem
const maxUploadBytes = 10 << 20

type CampaignHandler struct {
	svc    *campaign.Service
	salons SalonReader
}

func NewCampaignHandler(svc *campaign.Service, salons SalonReader) *CampaignHandler {
	return &CampaignHandler{svc: svc, salons: salons}
}

type CreateCampaignRequest struct {
	Name         string `json:"name" binding:"required"`
	Template     string `json:"template" binding:"required"`
	Audience     string `json:"audience"`
	InactiveDays int    `json:"inactive_days"`
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	salon, ok := currentSalon(c, h.salons)
	if !ok {
		return
	}

	cp, err := h.svc.Create(c.Request.Context(), campaign.CreateInput{
		Salon:        salon,
		ActorID:      userID(c),
		Name:         req.Name,
		Template:     req.Template,
		Audience:     req.Audience,
		InactiveDays: req.InactiveDays,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_campaign", "Erro ao criar campanha.")
		return
	}

	httpresp.Created(c, cp)
}

func (h *CampaignHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), salonID(c))
	if err != nil {
		writeError(c, err, "failed_to_list_campaigns", "Erro ao listar campanhas.")
		return
	}

	httpresp.List(c, list)
}

func (h *CampaignHandler) Recipients(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	list, err := h.svc.Recipients(c.Request.Context(), salonID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_list_recipients", "Erro ao listar destinatários.")
		return
	}

	httpresp.List(c, list)
}

func (h *CampaignHandler) MarkSent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipientID, ok := paramID(c, "recipientId")
	if !ok {
		return
	}

	if err := h.svc.MarkSent(c.Request.Context(), salonID(c), id, recipientID); err != nil {
		writeError(c, err, "failed_to_mark_sent", "Erro ao marcar envio.")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage recebe multipart com o campo "image".
func (h *CampaignHandler) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := currentSalon(c, h.salons)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie a imagem no campo \"image\".")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
		return
	}

	cp, err := h.svc.UploadImage(c.Request.Context(), campaign.UploadImageInput{
		Salon:      salon,
		CampaignID: id,
		ActorID:    userID(c),
		Data:       data,
	})
	if err != nil {
		writeError(c, err, "failed_to_upload_image", "Erro ao enviar a imagem.")
		return
	}

	httpresp.OK(c, cp)
}
