package campaign

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/campaign"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var now = time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)

type memoryRepo struct {
	campaigns  []*models.Campaign
	recipients map[uint][]models.CampaignRecipient
	clients    []models.Client
	visits     map[uint]time.Time
}

var _ domain.Repository = (*memoryRepo)(nil)

func (m *memoryRepo) Create(_ context.Context, c *models.Campaign) error {
	c.ID = uint(len(m.campaigns) + 1)
	m.campaigns = append(m.campaigns, c)
	return nil
}

func (m *memoryRepo) Get(_ context.Context, salonID, id uint) (*models.Campaign, error) {
	for _, c := range m.campaigns {
		if c.ID == id && c.SalonID == salonID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryRepo) Update(_ context.Context, c *models.Campaign) error {
	for i, cur := range m.campaigns {
		if cur.ID == c.ID {
			m.campaigns[i] = c
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memoryRepo) List(_ context.Context, salonID uint) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range m.campaigns {
		if c.SalonID == salonID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryRepo) ListClients(context.Context, uint) ([]models.Client, error) {
	return m.clients, nil
}

func (m *memoryRepo) LastVisits(context.Context, uint) (map[uint]time.Time, error) {
	return m.visits, nil
}

func (m *memoryRepo) ReplaceRecipients(_ context.Context, campaignID uint, rs []models.CampaignRecipient) error {
	for i := range rs {
		rs[i].ID = uint(i + 1)
	}
	m.recipients[campaignID] = rs
	return nil
}

func (m *memoryRepo) ListRecipients(_ context.Context, campaignID uint) ([]models.CampaignRecipient, error) {
	return m.recipients[campaignID], nil
}

func (m *memoryRepo) MarkRecipientSent(_ context.Context, campaignID, recipientID uint, at time.Time) error {
	rs := m.recipients[campaignID]
	for i := range rs {
		if rs[i].ID == recipientID {
			rs[i].SentAt = &at
			return nil
		}
	}
	return errors.New("not found")
}

type memoryStore struct {
	keys  []string
	types []string
}

func (s *memoryStore) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	s.keys = append(s.keys, key)
	s.types = append(s.types, contentType)
	return "https://cdn.example/" + key, nil
}

var salon = &models.Salon{ID: 1, Name: "Studio Bela", Timezone: "UTC"}

func newRepo() *memoryRepo {
	return &memoryRepo{
		recipients: map[uint][]models.CampaignRecipient{},
		clients: []models.Client{
			{ID: 1, Name: "Carla Souza", Phone: "(11) 99999-0000", MarketingOptIn: true},
			{ID: 2, Name: "Bia", Phone: "11988880000", MarketingOptIn: true},
			{ID: 3, Name: "Sem Opt", Phone: "11977770000", MarketingOptIn: false},
		},
		visits: map[uint]time.Time{
			1: now.AddDate(0, 0, -90),
			2: now.AddDate(0, 0, -5),
		},
	}
}

func TestCreateCampaignBuildsRecipients(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nil, nil, func() time.Time { return now })

	c, err := svc.Create(context.Background(), CreateInput{
		Salon: salon, ActorID: 7,
		Name: "Saudades", Template: "Oi {first_name}, o {salon} sente sua falta!", Audience: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, 60, c.InactiveDays)

	rs, err := svc.Recipients(context.Background(), 1, c.ID)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, uint(1), rs[0].ClientID)
	assert.Equal(t, "Oi Carla, o Studio Bela sente sua falta!", rs[0].Message)
	assert.True(t, strings.HasPrefix(rs[0].Link, "https://wa.me/5511999990000?text="))

	require.NoError(t, svc.MarkSent(context.Background(), 1, c.ID, rs[0].ID))
	assert.NotNil(t, repo.recipients[c.ID][0].SentAt)

	assert.Equal(t, "recipient_not_found", httperr.BusinessCode(svc.MarkSent(context.Background(), 1, c.ID, 99)))
	assert.Equal(t, "campaign_not_found", httperr.BusinessCode(svc.MarkSent(context.Background(), 2, c.ID, 1)))
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewService(newRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{Salon: salon, Name: "x", Template: "y", Audience: "vip"})
	assert.Equal(t, "invalid_audience", httperr.BusinessCode(err))

	_, err = svc.Create(context.Background(), CreateInput{Salon: salon, Template: "y"})
	assert.Equal(t, "missing_name", httperr.BusinessCode(err))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	repo := newRepo()
	store := &memoryStore{}
	svc := NewService(repo, store, nil, func() time.Time { return now })

	c, err := svc.Create(context.Background(), CreateInput{Salon: salon, Name: "Maio", Template: "Oi {name}"})
	require.NoError(t, err)

	out, err := svc.UploadImage(context.Background(), UploadImageInput{Salon: salon, CampaignID: c.ID, Data: pngBytes(t, 40, 20)})
	require.NoError(t, err)

	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "campaigns/1/1-"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".webp"))
	assert.Equal(t, "image/webp", store.types[0])
	assert.Equal(t, "https://cdn.example/"+store.keys[0], out.ImageURL)

	rs := repo.recipients[c.ID]
	require.Len(t, rs, 2)
	assert.Contains(t, rs[0].Message, out.ImageURL)

	_, err = svc.UploadImage(context.Background(), UploadImageInput{Salon: salon, CampaignID: c.ID, Data: []byte("not an image")})
	assert.Equal(t, "invalid_image", httperr.BusinessCode(err))

	_, err = NewService(repo, nil, nil, nil).UploadImage(context.Background(), UploadImageInput{Salon: salon, CampaignID: c.ID, Data: []byte("x")})
	assert.Equal(t, "storage_disabled", httperr.BusinessCode(err))
}
