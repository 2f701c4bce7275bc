package campaign

import (
	"context"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Audience string

const (
	AudienceAll           Audience = "all"
	AudienceInactive      Audience = "inactive"
	AudienceBirthdayMonth Audience = "birthday_month"
)

const defaultInactiveDays = 60

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceInactive, AudienceBirthdayMonth:
		return true
	}
	return false
}

func Validate(c *models.Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return httperr.ErrBusiness("missing_name")
	}
	if strings.TrimSpace(c.Template) == "" {
		return httperr.ErrBusiness("missing_template")
	}
	if c.Audience == "" {
		c.Audience = string(AudienceAll)
	}
	if !Audience(c.Audience).Valid() {
		return httperr.ErrBusiness("invalid_audience")
	}
	if Audience(c.Audience) == AudienceInactive && c.InactiveDays <= 0 {
		c.InactiveDays = defaultInactiveDays
	}
	return nil
}

// RenderMessage troca {name}, {first_name} e {salon} no modelo.
func RenderMessage(template string, client *models.Client, salonName string) string {
	name := strings.TrimSpace(client.Name)
	first := name
	if i := strings.IndexFunc(name, unicode.IsSpace); i > 0 {
		first = name[:i]
	}

	r := strings.NewReplacer(
		"{name}", name,
		"{first_name}", first,
		"{salon}", salonName,
	)
	return r.Replace(template)
}

// NormalizePhone mantém só dígitos e prefixa 55 em números nacionais
// (DDD + 8 ou 9 dígitos).
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if len(digits) == 10 || len(digits) == 11 {
		digits = "55" + digits
	}
	return digits
}

// WhatsAppLink monta o link wa.me. Espaços viram %20; um "+" do texto
// já sai como %2B do QueryEscape.
func WhatsAppLink(phone, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + escaped
}

// SelectAudience aplica o filtro da campanha. lastVisit guarda a data do
// último atendimento concluído de cada cliente.
func SelectAudience(
	clients []models.Client,
	lastVisit map[uint]time.Time,
	c *models.Campaign,
	now time.Time,
) []models.Client {

	var out []models.Client
	for _, cl := range clients {
		if !cl.MarketingOptIn || NormalizePhone(cl.Phone) == "" {
			continue
		}

		switch Audience(c.Audience) {
		case AudienceInactive:
			cutoff := now.AddDate(0, 0, -c.InactiveDays)
			if last, ok := lastVisit[cl.ID]; ok && last.After(cutoff) {
				continue
			}
		case AudienceBirthdayMonth:
			if cl.Birthday == nil || cl.Birthday.Month() != now.Month() {
				continue
			}
		}

		out = append(out, cl)
	}
	return out
}

// BuildRecipients monta mensagem e link por destinatário.
func BuildRecipients(c *models.Campaign, clients []models.Client, salonName string) []models.CampaignRecipient {
	out := make([]models.CampaignRecipient, 0, len(clients))
	for i := range clients {
		msg := RenderMessage(c.Template, &clients[i], salonName)
		if c.ImageURL != "" {
			msg += "\n" + c.ImageURL
		}

		out = append(out, models.CampaignRecipient{
			CampaignID: c.ID,
			ClientID:   clients[i].ID,
			Name:       clients[i].Name,
			Phone:      NormalizePhone(clients[i].Phone),
			Message:    msg,
			Link:       WhatsAppLink(clients[i].Phone, msg),
		})
	}
	return out
}

type Repository interface {
	Create(ctx context.Context, c *models.Campaign) error
	Get(ctx context.Context, salonID, id uint) (*models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	List(ctx context.Context, salonID uint) ([]models.Campaign, error)

	ListClients(ctx context.Context, salonID uint) ([]models.Client, error)
	LastVisits(ctx context.Context, salonID uint) (map[uint]time.Time, error)

	ReplaceRecipients(ctx context.Context, campaignID uint, recipients []models.CampaignRecipient) error
	ListRecipients(ctx context.Context, campaignID uint) ([]models.CampaignRecipient, error)
	MarkRecipientSent(ctx context.Context, campaignID, recipientID uint, at time.Time) error
}
