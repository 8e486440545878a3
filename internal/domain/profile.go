package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

// Profile is one configured backend origin. Each profile gets its own
// session and token namespace.
type Profile struct {
	Name           string
	BaseURL        string
	Headers        map[string]string
	ConnectTimeout time.Duration
	ReceiveTimeout time.Duration
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if strings.ContainsAny(p.Name, `/\`) || strings.HasPrefix(p.Name, ".") {
		return fmt.Errorf("invalid profile name %q", p.Name)
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}

	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url host is required")
	}
	if p.ConnectTimeout < 0 || p.ReceiveTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	return nil
}

// WithDefaults fills unset timeouts.
func (p Profile) WithDefaults() Profile {
	if p.ConnectTimeout == 0 {
		p.ConnectTimeout = DefaultTimeout
	}
	if p.ReceiveTimeout == 0 {
		p.ReceiveTimeout = DefaultTimeout
	}
	return p
}

// SecretKey namespaces a token key under the profile.
func (p Profile) SecretKey(name string) string {
	return "shopscript/" + p.Name + "/" + name
}
