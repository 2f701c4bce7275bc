package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// professional confere que o profissional pedido é do salão logado.
func (h *WorkingHoursHandler) professional(c *gin.Context) (uint, bool) {
	proID := professionalFor(c)

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("id = ? AND salon_id = ?", proID, salonID(c)).
		Count(&count).Error; err != nil || count == 0 {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return 0, false
	}
	return proID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	proID, ok := h.professional(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("professional_id = ?", proID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	proID, ok := h.professional(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicated_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if !validDay(d) {
			httperr.BadRequest(c, "invalid_working_hours", "Horário de atendimento inválido.")
			return
		}

		toCreate = append(toCreate, models.WorkingHours{
			ProfessionalID: proID,
			Weekday:        d.Weekday,
			Active:         d.Active,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			LunchStart:     d.LunchStart,
			LunchEnd:       d.LunchEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professional_id = ?", proID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validDay: dias inativos passam; ativos exigem expediente e, se
// houver, almoço dentro dele.
func validDay(d WorkingDayConfig) bool {
	if !d.Active {
		return true
	}
	if !validators.IsClockRange(d.StartTime, d.EndTime) {
		return false
	}
	if d.LunchStart == "" && d.LunchEnd == "" {
		return true
	}
	return validators.IsClockRange(d.LunchStart, d.LunchEnd) &&
		!validators.IsClockRange(d.LunchStart, d.StartTime) &&
		!validators.IsClockRange(d.EndTime, d.LunchEnd)
}
