package application

import (
	"context"
	"fmt"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/rs/zerolog"
)

type AuthState struct {
	IsAuthenticated bool
	Customer        *domain.Customer
	IsLoading       bool
	LastError       *domain.APIError
}

// AuthService publishes the signed-in customer. It reads the session's
// authentication flag but only changes tokens through ports.Session.
type AuthService struct {
	api      ports.AuthAPI
	session  ports.Session
	state    *Observable[AuthState]
	logger   zerolog.Logger
	inFlight int
}

// NewAuthService builds the service. When session is a ports.SessionNotifier
// the published state follows token changes made elsewhere, such as a
// failed refresh during a cart call.
func NewAuthService(api ports.AuthAPI, session ports.Session, logger zerolog.Logger) *AuthService {
	s := &AuthService{
		api:     api,
		session: session,
		state:   NewObservable(AuthState{}),
		logger:  logger.With().Str("component", "auth_service").Logger(),
	}

	if notifier, ok := session.(ports.SessionNotifier); ok {
		notifier.OnChange(s.sessionChanged)
	}

	return s
}

func (s *AuthService) State() AuthState {
	return s.state.Get()
}

func (s *AuthService) Subscribe() (<-chan AuthState, func()) {
	return s.state.Subscribe()
}

func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (domain.Customer, error) {
	s.begin()

	result, err := s.api.Login(ctx, domain.Credentials{
		Email:      email,
		Password:   password,
		RememberMe: rememberMe,
	})
	if err == nil {
		if storeErr := s.session.Store(ctx, result.Tokens); storeErr != nil {
			err = fmt.Errorf("store session: %w", storeErr)
		}
	}
	if err != nil {
		s.fail(err)
		return domain.Customer{}, err
	}

	customer := result.Customer
	s.state.Update(func(state *AuthState) {
		s.end(state)
		state.IsAuthenticated = true
		state.Customer = &customer
		state.LastError = nil
	})

	s.logger.Info().Int64("customer_id", int64(customer.ID)).Msg("signed in")
	return customer, nil
}

// Register creates an account without signing in.
func (s *AuthService) Register(ctx context.Context, registration domain.Registration) (domain.Customer, error) {
	s.begin()

	customer, err := s.api.Register(ctx, registration)
	if err != nil {
		s.fail(err)
		return domain.Customer{}, err
	}

	s.state.Update(func(state *AuthState) {
		s.end(state)
		state.LastError = nil
	})

	return customer, nil
}

// CurrentCustomer fetches the profile. Authentication and session-expired
// failures sign the user out; transient failures leave the session alone.
func (s *AuthService) CurrentCustomer(ctx context.Context) (domain.Customer, error) {
	s.begin()

	customer, err := s.api.Me(ctx)
	if err != nil {
		if !domain.IsAuthFailure(err) {
			s.fail(err)
			return domain.Customer{}, err
		}

		if clearErr := s.session.Clear(ctx); clearErr != nil {
			s.logger.Warn().Err(clearErr).Msg("clear invalidated session")
		}
		apiErr, record := recordedError(err)
		s.state.Update(func(state *AuthState) {
			s.end(state)
			state.IsAuthenticated = false
			state.Customer = nil
			if record {
				state.LastError = apiErr
			}
		})
		s.logger.Info().Str("kind", string(domain.KindOf(err))).Msg("session invalidated")
		return domain.Customer{}, err
	}

	s.state.Update(func(state *AuthState) {
		s.end(state)
		state.IsAuthenticated = s.session.IsAuthenticated()
		state.Customer = &customer
		state.LastError = nil
	})

	return customer, nil
}

// Logout signs out locally whatever the outcome of the remote call. Only a
// failure to wipe the stored tokens is returned.
func (s *AuthService) Logout(ctx context.Context) error {
	s.begin()

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("remote logout failed, signing out locally")
	}

	clearErr := s.session.Clear(ctx)
	if clearErr != nil {
		clearErr = fmt.Errorf("clear session: %w", clearErr)
	}

	s.state.Update(func(state *AuthState) {
		s.end(state)
		state.IsAuthenticated = false
		state.Customer = nil
		state.LastError = nil
	})

	return clearErr
}

// CheckAuthStatus restores the persisted session and hydrates the customer
// when needed. It never fails; see CurrentCustomer for which errors sign out.
func (s *AuthService) CheckAuthStatus(ctx context.Context) AuthState {
	s.session.Restore(ctx)

	if !s.session.IsAuthenticated() {
		return s.state.Update(func(state *AuthState) {
			state.IsAuthenticated = false
			state.Customer = nil
		})
	}

	current := s.state.Update(func(state *AuthState) {
		state.IsAuthenticated = true
	})
	if current.Customer != nil {
		return current
	}

	if _, err := s.CurrentCustomer(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("hydrate customer on startup")
	}

	return s.state.Get()
}

func (s *AuthService) sessionChanged(session domain.Session) {
	authenticated := session.IsAuthenticated()

	var signedOut bool
	s.state.Update(func(state *AuthState) {
		signedOut = state.IsAuthenticated && !authenticated
		state.IsAuthenticated = authenticated
		if !authenticated {
			state.Customer = nil
		}
	})

	if signedOut {
		s.logger.Info().Msg("session cleared")
	}
}

func (s *AuthService) begin() {
	s.state.Update(func(state *AuthState) {
		s.inFlight++
		state.IsLoading = true
	})
}

// end must run inside an Update.
func (s *AuthService) end(state *AuthState) {
	s.inFlight--
	state.IsLoading = s.inFlight > 0
}

func (s *AuthService) fail(err error) {
	apiErr, record := recordedError(err)
	s.state.Update(func(state *AuthState) {
		s.end(state)
		if record {
			state.LastError = apiErr
		}
	})
}
