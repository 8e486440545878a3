package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/shopscript-cli/internal/adapters/httptransport"
	tomlrepo "github.com/bnema/shopscript-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/shopscript-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/shopscript-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/shopscript-cli/internal/adapters/secrets/pass"
	"github.com/bnema/shopscript-cli/internal/api"
	"github.com/bnema/shopscript-cli/internal/application"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/endpoints"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	keyProfile        = "profile"
	keyBaseURL        = "base_url"
	keySecretsBackend = "secrets.backend"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"

	backendAuto = "auto"
	backendPass = "pass"
	backendFile = "file"

	// adhocProfile names the profile built from SHOPSCRIPT_BASE_URL alone.
	adhocProfile = "default"
)

var errNoProfile = errors.New("no profile configured: run `ss profile add <name> <base-url>` or set SHOPSCRIPT_BASE_URL")

type app struct {
	config     *viper.Viper
	profiles   ports.ProfileRepository
	secretsDir string
	httpClient *http.Client
	clock      clockwork.Clock
	registry   *prometheus.Registry
	logger     zerolog.Logger

	shop *shopSession
}

// shopSession is everything bound to one resolved profile.
type shopSession struct {
	profile  domain.Profile
	client   *api.Client
	auth     *application.AuthService
	cart     *application.CartService
	products *endpoints.Products
	orders   *endpoints.Orders
	checkout *endpoints.Checkout
}

func wireApp(config *viper.Viper) (*app, error) {
	profiles, err := tomlrepo.NewRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	config.SetDefault(keySecretsBackend, backendAuto)

	return &app{
		config:     config,
		profiles:   profiles,
		secretsDir: filepath.Join(home, tomlrepo.ConfigDir, "secrets"),
		clock:      clockwork.NewRealClock(),
		registry:   prometheus.NewRegistry(),
		logger:     zerolog.Nop(),
	}, nil
}

// open resolves the profile and builds the client stack for it once per
// invocation. Persisted tokens are restored before returning.
func (a *app) open(ctx context.Context) (*shopSession, error) {
	if a.shop != nil {
		return a.shop, nil
	}

	profile, err := a.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}

	store, err := a.secretStore()
	if err != nil {
		return nil, err
	}

	transport, err := httptransport.New(profile, a.httpClient, a.logger)
	if err != nil {
		return nil, fmt.Errorf("wire transport: %w", err)
	}

	client, err := api.New(api.Config{
		Profile:   profile,
		Transport: transport,
		Store:     store,
		Logger:    a.logger,
		Metrics:   api.NewMetrics(a.registry),
	})
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}
	client.Session().Restore(ctx)

	a.shop = &shopSession{
		profile:  profile,
		client:   client,
		auth:     application.NewAuthService(endpoints.NewAuth(client), client.Session(), a.logger),
		cart:     application.NewCartService(endpoints.NewCart(client), a.logger),
		products: endpoints.NewProducts(client),
		orders:   endpoints.NewOrders(client),
		checkout: endpoints.NewCheckout(client),
	}

	return a.shop, nil
}

// resolveProfile picks --profile / SHOPSCRIPT_PROFILE, then the active
// profile, then an ad hoc profile from SHOPSCRIPT_BASE_URL.
func (a *app) resolveProfile(ctx context.Context) (domain.Profile, error) {
	name := strings.TrimSpace(a.config.GetString(keyProfile))
	if name == "" {
		active, err := a.profiles.Active(ctx)
		if err != nil {
			return domain.Profile{}, err
		}
		name = active
	}

	if name == "" {
		baseURL := strings.TrimSpace(a.config.GetString(keyBaseURL))
		if baseURL == "" {
			return domain.Profile{}, errNoProfile
		}
		profile := domain.Profile{Name: adhocProfile, BaseURL: baseURL}
		return profile.WithDefaults(), profile.Validate()
	}

	profile, err := a.profiles.GetByName(ctx, name)
	if err != nil {
		return domain.Profile{}, err
	}
	if baseURL := strings.TrimSpace(a.config.GetString(keyBaseURL)); baseURL != "" {
		profile.BaseURL = baseURL
	}

	return profile.WithDefaults(), nil
}

func (a *app) secretStore() (ports.SecretStore, error) {
	switch backend := strings.ToLower(a.config.GetString(keySecretsBackend)); backend {
	case backendFile:
		return filestore.NewStore(a.secretsDir), nil
	case backendPass:
		return passstore.NewStore(), nil
	case backendAuto, "":
		store, err := chainstore.NewPassWithFileFallback(a.secretsDir)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want %s, %s or %s)", backend, backendAuto, backendPass, backendFile)
	}
}
