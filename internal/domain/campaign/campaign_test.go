package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestRenderMessage(t *testing.T) {
	client := &models.Client{Name: "Ana Paula Souza"}

	got := RenderMessage("Oi {first_name}! O {salon} sentiu sua falta, {name}.", client, "Studio Bella")
	assert.Equal(t, "Oi Ana! O Studio Bella sentiu sua falta, Ana Paula Souza.", got)

	single := &models.Client{Name: "Bia"}
	assert.Equal(t, "Bia", RenderMessage("{first_name}", single, ""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511987654321", NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "551133334444", NormalizePhone("11 3333-4444"))
	assert.Equal(t, "5511987654321", NormalizePhone("+55 11 98765 4321"))
	assert.Equal(t, "5511987654321", NormalizePhone("011987654321"))
	assert.Equal(t, "", NormalizePhone("sem telefone"))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("11987654321", "Olá Ana & cia")
	assert.Equal(t, "https://wa.me/5511987654321?text=Ol%C3%A1%20Ana%20%26%20cia", link)

	link = WhatsAppLink("11987654321", "1+1 grátis")
	assert.Equal(t, "https://wa.me/5511987654321?text=1%2B1%20gr%C3%A1tis", link)
}

func TestValidate(t *testing.T) {
	c := &models.Campaign{Name: "Volta", Template: "Oi", Audience: "inactive"}
	require.NoError(t, Validate(c))
	assert.Equal(t, defaultInactiveDays, c.InactiveDays)

	d := &models.Campaign{Name: "Todos", Template: "Oi"}
	require.NoError(t, Validate(d))
	assert.Equal(t, "all", d.Audience)

	assert.True(t, httperr.IsBusiness(Validate(&models.Campaign{Template: "x"}), "missing_name"))
	assert.True(t, httperr.IsBusiness(Validate(&models.Campaign{Name: "x", Template: "y", Audience: "vip"}), "invalid_audience"))
}

func TestSelectAudience(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	july := time.Date(1990, 7, 2, 0, 0, 0, 0, time.UTC)
	march := time.Date(1991, 3, 2, 0, 0, 0, 0, time.UTC)

	clients := []models.Client{
		{ID: 1, Name: "Recente", Phone: "11911112222", MarketingOptIn: true, Birthday: &july},
		{ID: 2, Name: "Sumida", Phone: "11933334444", MarketingOptIn: true, Birthday: &march},
		{ID: 3, Name: "Nunca veio", Phone: "11955556666", MarketingOptIn: true},
		{ID: 4, Name: "Sem opt-in", Phone: "11977778888", MarketingOptIn: false, Birthday: &july},
		{ID: 5, Name: "Sem fone", MarketingOptIn: true, Birthday: &july},
	}
	lastVisit := map[uint]time.Time{
		1: now.AddDate(0, 0, -5),
		2: now.AddDate(0, 0, -90),
	}

	ids := func(cs []models.Client) []uint {
		var out []uint
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	all := SelectAudience(clients, lastVisit, &models.Campaign{Audience: "all"}, now)
	assert.Equal(t, []uint{1, 2, 3}, ids(all))

	inactive := SelectAudience(clients, lastVisit, &models.Campaign{Audience: "inactive", InactiveDays: 30}, now)
	assert.Equal(t, []uint{2, 3}, ids(inactive))

	birthday := SelectAudience(clients, lastVisit, &models.Campaign{Audience: "birthday_month"}, now)
	assert.Equal(t, []uint{1}, ids(birthday))
}

func TestBuildRecipients(t *testing.T) {
	c := &models.Campaign{ID: 9, Template: "Oi {first_name}", ImageURL: "https://cdn/x.webp"}
	clients := []models.Client{{ID: 1, Name: "Carla Dias", Phone: "(21) 99999-0000"}}

	got := BuildRecipients(c, clients, "Bella")
	require.Len(t, got, 1)
	assert.Equal(t, uint(9), got[0].CampaignID)
	assert.Equal(t, "5521999990000", got[0].Phone)
	assert.Equal(t, "Oi Carla\nhttps://cdn/x.webp", got[0].Message)
	assert.Contains(t, got[0].Link, "https://wa.me/5521999990000?text=Oi%20Carla")
}
