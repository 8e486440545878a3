package endpoints

import (
	"context"
	"net/http"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
)

type Auth struct {
	requester ports.Requester
}

var _ ports.AuthAPI = (*Auth)(nil)

func NewAuth(requester ports.Requester) *Auth {
	return &Auth{requester: requester}
}

func (a *Auth) Login(ctx context.Context, credentials domain.Credentials) (domain.AuthResult, error) {
	var result domain.AuthResult
	err := a.requester.DoJSON(ctx, domain.Request{
		Method:    http.MethodPost,
		Path:      "/api/auth/login",
		Body:      credentials,
		Anonymous: true,
	}, &result)
	return result, err
}

func (a *Auth) Register(ctx context.Context, registration domain.Registration) (domain.Customer, error) {
	var envelope struct {
		Customer domain.Customer `json:"customer"`
	}
	err := a.requester.DoJSON(ctx, domain.Request{
		Method:    http.MethodPost,
		Path:      "/api/auth/register",
		Body:      registration,
		Anonymous: true,
	}, &envelope)
	return envelope.Customer, err
}

func (a *Auth) Logout(ctx context.Context) error {
	_, err := a.requester.Do(ctx, domain.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	})
	return err
}

func (a *Auth) Me(ctx context.Context) (domain.Customer, error) {
	var customer domain.Customer
	err := a.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodGet,
		Path:   "/api/customer/me",
	}, &customer)
	return customer, err
}
