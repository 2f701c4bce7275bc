package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// CONTEXT
// ======================================================

func salonID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextSalonID).(uint)
}

func userID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func clientID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextClientID).(uint)
}

// paramID lê um id numérico da rota e responde 400 quando inválido.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// queryUint devolve 0 quando o parâmetro falta ou não é numérico.
func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// professionalFor usa ?professional_id= quando informado e cai no
// usuário logado.
func professionalFor(c *gin.Context) uint {
	if id := queryUint(c, "professional_id"); id != 0 {
		return id
	}
	return userID(c)
}

type SalonReader interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)
}

// currentSalon carrega o salão do token.
func currentSalon(c *gin.Context, r SalonReader) (*models.Salon, bool) {
	salon, err := r.GetSalonByID(c.Request.Context(), salonID(c))
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return salon, true
}

// ======================================================
// BUSINESS ERRORS
// ======================================================

type businessError struct {
	status  int
	message string
}

var businessErrors = map[string]businessError{
	"salon_not_found":          {http.StatusNotFound, "Salão não encontrado."},
	"professional_not_found":   {http.StatusNotFound, "Profissional não encontrado."},
	"service_not_found":        {http.StatusBadRequest, "Serviço não encontrado."},
	"client_not_found":         {http.StatusNotFound, "Cliente não encontrado."},
	"appointment_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"waitlist_entry_not_found": {http.StatusNotFound, "Entrada da lista de espera não encontrada."},
	"entry_not_found":          {http.StatusNotFound, "Lançamento não encontrado."},
	"campaign_not_found":       {http.StatusNotFound, "Campanha não encontrada."},
	"recipient_not_found":      {http.StatusNotFound, "Destinatário não encontrado."},

	"invalid_date":         {http.StatusBadRequest, "Data inválida."},
	"invalid_date_or_time": {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_window":       {http.StatusBadRequest, "Janela de horário inválida."},
	"invalid_month":        {http.StatusBadRequest, "Mês inválido."},
	"invalid_range":        {http.StatusBadRequest, "Período inválido (máximo de 31 dias)."},
	"invalid_status":       {http.StatusBadRequest, "Status inválido."},
	"invalid_kind":         {http.StatusBadRequest, "Tipo de lançamento inválido."},
	"invalid_amount":       {http.StatusBadRequest, "Valor inválido."},
	"invalid_audience":     {http.StatusBadRequest, "Público da campanha inválido."},
	"invalid_image":        {http.StatusBadRequest, "Imagem inválida. Envie PNG ou JPEG de até 8 MB."},
	"invalid_payment":      {http.StatusBadRequest, "Pagamento inválido."},
	"missing_description":  {http.StatusBadRequest, "Descrição obrigatória."},
	"missing_due_date":     {http.StatusBadRequest, "Vencimento obrigatório."},
	"missing_name":         {http.StatusBadRequest, "Nome obrigatório."},
	"missing_template":     {http.StatusBadRequest, "Mensagem obrigatória."},
	"date_in_past":         {http.StatusBadRequest, "A data já passou."},
	"slot_in_past":         {http.StatusBadRequest, "O horário já passou."},
	"too_soon":             {http.StatusBadRequest, "Horário inválido ou sem a antecedência mínima."},

	"outside_working_hours": {http.StatusBadRequest, "Fora do horário de atendimento."},
	"service_too_long":      {http.StatusBadRequest, "O serviço não cabe neste horário."},

	"time_conflict":          {http.StatusConflict, "Conflito de horário."},
	"slot_occupied":          {http.StatusConflict, "Já existe um agendamento neste horário."},
	"slot_blocked":           {http.StatusConflict, "Horário bloqueado."},
	"slot_already_blocked":   {http.StatusConflict, "O horário já está bloqueado."},
	"slot_already_liberated": {http.StatusConflict, "O horário já está liberado."},
	"slot_not_available":     {http.StatusConflict, "Horário indisponível."},
	"slots_available":        {http.StatusConflict, "Ainda há horários livres nesta data."},
	"already_waitlisted":     {http.StatusConflict, "Você já está na lista de espera desta data."},
	"already_paid":           {http.StatusConflict, "Lançamento já está pago."},
	"deposit_already_paid":   {http.StatusConflict, "O sinal já foi pago."},
	"deposit_not_required":   {http.StatusBadRequest, "Este agendamento não exige sinal."},
	"appointment_cancelled":  {http.StatusConflict, "Agendamento cancelado."},
	"invalid_state":          {http.StatusConflict, "Operação não permitida no estado atual."},

	"payments_disabled": {http.StatusServiceUnavailable, "Pagamentos não configurados."},
	"storage_disabled":  {http.StatusServiceUnavailable, "Armazenamento de imagens não configurado."},
}

// writeError traduz erros de negócio para o status e a mensagem
// correspondentes; o resto vira 500 com o código informado.
func writeError(c *gin.Context, err error, code, message string) {
	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, "time_conflict", businessErrors["time_conflict"].message)
		return
	}

	if bc := httperr.BusinessCode(err); bc != "" {
		if be, ok := businessErrors[bc]; ok {
			httperr.Write(c, be.status, bc, be.message)
			return
		}
		httperr.BadRequest(c, bc, "Requisição inválida.")
		return
	}

	httperr.Internal(c, code, message)
}
