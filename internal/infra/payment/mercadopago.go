package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type CheckoutInput struct {
	Reference   string
	Title       string
	AmountCents int64
}

type Checkout struct {
	ID  string
	URL string
}

type Info struct {
	Reference string
	Status    string
}

func (i Info) Approved() bool {
	return i.Status == "approved"
}

// MercadoPago cria preferências de pagamento para o sinal e consulta
// pagamentos notificados pelo webhook.
type MercadoPago struct {
	preferences     preference.Client
	payments        mppayment.Client
	notificationURL string
	backURL         string
}

// backURL é a página do salão para onde o cliente volta depois do
// pagamento; vazio desliga o retorno automático.
func NewMercadoPago(accessToken, notificationURL, backURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		payments:        mppayment.NewClient(cfg),
		notificationURL: notificationURL,
		backURL:         backURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, in CheckoutInput) (Checkout, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         in.Reference,
				Title:      in.Title,
				Quantity:   1,
				UnitPrice:  float64(in.AmountCents) / 100,
				CurrencyID: "BRL",
			},
		},
		ExternalReference: in.Reference,
		NotificationURL:   m.notificationURL,
	}

	if m.backURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: m.backURL,
			Pending: m.backURL,
			Failure: m.backURL,
		}
		req.AutoReturn = "approved"
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return Checkout{}, fmt.Errorf("create preference: %w", err)
	}

	return Checkout{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) PaymentInfo(ctx context.Context, paymentID string) (Info, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return Info{}, fmt.Errorf("invalid payment id %q: %w", paymentID, err)
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return Info{}, fmt.Errorf("get payment %d: %w", id, err)
	}

	return Info{Reference: res.ExternalReference, Status: res.Status}, nil
}
