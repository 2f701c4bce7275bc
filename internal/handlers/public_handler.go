package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	repo         domain.Repository
	openSlots    *appointment.ListOpenSlots
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	openSlots *appointment.ListOpenSlots,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		openSlots:    openSlots,
		availability: availability,
	}
}

// salon resolve o :slug da rota.
func (h *PublicHandler) salon(c *gin.Context) (*models.Salon, bool) {
	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return salon, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("salon_id = ? AND active = true", salon.ID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var pros []models.User
	if err := h.db.
		Select("id", "name").
		Where("salon_id = ?", salon.ID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	professionals := make([]gin.H, 0, len(pros))
	for _, p := range pros {
		professionals = append(professionals, gin.H{"id": p.ID, "name": p.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":         salonView(salon),
		"services":      services,
		"professionals": professionals,
	})
}

////////////////////////////////////////////////////////
// OPEN SLOTS
////////////////////////////////////////////////////////

// OpenSlots lista só os horários que a equipe liberou. ?date= consulta
// um dia; ?from= e ?to= um período.
func (h *PublicHandler) OpenSlots(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if date := c.Query("date"); date != "" {
		from, to = date, date
	}

	slots, err := h.openSlots.Execute(c.Request.Context(), appointment.ListOpenSlotsInput{
		SalonID:        salon.ID,
		ProfessionalID: queryUint(c, "professional_id"),
		ServiceID:      queryUint(c, "service_id"),
		From:           from,
		To:             to,
	})
	if err != nil {
		writeError(c, err, "failed_to_list_open_slots", "Erro ao listar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon": salon.Slug,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	salon, ok := h.salon(c)
	if !ok {
		return
	}

	date, err := timezone.ParseDate(salon.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	proID := queryUint(c, "professional_id")
	if proID == 0 {
		pro, err := h.repo.DefaultProfessional(c.Request.Context(), salon.ID)
		if err != nil {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		proID = pro.ID
	} else if _, err := h.repo.GetProfessional(c.Request.Context(), salon.ID, proID); err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:        salon.ID,
		ProfessionalID: proID,
		ServiceID:      uint(serviceID),
		Date:           date,
	})
	if err != nil {
		writeError(c, err, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            dateStr,
		"professional_id": proID,
		"slots":           slots,
	})
}
