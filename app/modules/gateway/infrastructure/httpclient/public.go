package httpclient

import (
	"context"
	"net/http"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

type publicAPI struct{ c *Client }

func (p publicAPI) ProblemStatements(ctx context.Context) ([]models.ProblemStatement, error) {
	var out []models.ProblemStatement
	err := p.c.do(ctx, request{
		op:     "public.ProblemStatements",
		method: http.MethodGet,
		path:   "/api/public/problem-statements",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p publicAPI) Register(ctx context.Context, registration models.Registration) (*models.RegistrationReceipt, error) {
	var receipt models.RegistrationReceipt
	err := p.c.do(ctx, request{
		op:     "public.Register",
		method: http.MethodPost,
		path:   "/api/public/register",
		body:   registration,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (p publicAPI) ConfirmPayment(ctx context.Context, confirmation models.PaymentConfirmation) error {
	return p.c.do(ctx, request{
		op:     "public.ConfirmPayment",
		method: http.MethodPost,
		path:   "/api/public/payment",
		body:   confirmation,
	}, nil)
}
